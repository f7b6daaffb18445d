package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/storage"
	"github.com/julianstephens/alog/internal/storage/sqlite"
)

func setupTestStore(t *testing.T) (*sqlite.Store, func()) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store, func() { store.Close() }
}

// failingStore fails every log write.
type failingStore struct {
	storage.Provider
}

func (f failingStore) SetAnswer(string, string, models.Answer) error {
	return errors.New("disk full")
}

var friday = time.Date(2024, time.March, 8, 0, 0, 0, 0, time.Local)

func TestOpenWithoutProjects(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	j, err := Open(store, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if j.ProjectID() != "" {
		t.Errorf("ProjectID() = %q, want empty", j.ProjectID())
	}
	if _, err := j.AddQuestion("Anything?", []int{1}); !errors.Is(err, ErrNoProject) {
		t.Errorf("AddQuestion without project error = %v, want ErrNoProject", err)
	}

	p, err := j.AddProject("Health")
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if j.ProjectID() != p.ID {
		t.Errorf("first project not adopted: %q", j.ProjectID())
	}
}

func TestOpenFallsBackToFirstProject(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if err := store.AddProject(models.Project{ID: "p1", Name: "One"}); err != nil {
		t.Fatal(err)
	}
	j, err := Open(store, "deleted-project")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if j.ProjectID() != "p1" {
		t.Errorf("ProjectID() = %q, want p1", j.ProjectID())
	}
}

func TestAnswersWriteThrough(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	j, _ := Open(store, "")
	if _, err := j.AddProject("Health"); err != nil {
		t.Fatal(err)
	}
	q, err := j.AddQuestion("  Exercise?  ", []int{5})
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	if q.Text != "Exercise?" {
		t.Errorf("text not trimmed: %q", q.Text)
	}

	if err := j.SetAnswer(friday, q.ID, models.AnswerYes); err != nil {
		t.Fatalf("SetAnswer failed: %v", err)
	}
	if j.Answer(friday, q.ID) != models.AnswerYes {
		t.Error("cache not patched")
	}

	persisted, _ := store.GetLog("", "", "")
	if persisted.Get("2024-03-08", q.ID) != models.AnswerYes {
		t.Error("answer not written through")
	}

	// Toggling the current answer clears it.
	got, err := j.ToggleAnswer(friday, q.ID, models.AnswerYes)
	if err != nil {
		t.Fatalf("ToggleAnswer failed: %v", err)
	}
	if got != models.AnswerUnanswered {
		t.Errorf("ToggleAnswer(same) = %s, want unanswered", got)
	}
	got, _ = j.ToggleAnswer(friday, q.ID, models.AnswerNo)
	if got != models.AnswerNo {
		t.Errorf("ToggleAnswer(other) = %s, want NO", got)
	}

	if err := j.SetAnswer(friday, "ghost", models.AnswerYes); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SetAnswer(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestFailedWriteReloads(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if err := store.AddProject(models.Project{ID: "p1", Name: "One"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddQuestion(models.Question{ID: "q1", ProjectID: "p1", Text: "Q", Schedule: []int{5}}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetAnswer("2024-03-08", "q1", models.AnswerNo); err != nil {
		t.Fatal(err)
	}

	j, err := Open(failingStore{store}, "p1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := j.SetAnswer(friday, "q1", models.AnswerYes); err == nil {
		t.Fatal("expected SetAnswer to fail")
	}
	if got := j.Answer(friday, "q1"); got != models.AnswerNo {
		t.Errorf("cache = %s after failed write, want persisted NO", got)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	j, _ := Open(store, "")
	j.AddProject("Health")
	q, _ := j.AddQuestion("Q", []int{1, 2})
	j.SetAnswer(friday, q.ID, models.AnswerYes)

	qs := j.Questions()
	qs[0].Schedule[0] = 6
	qs[0].Text = "mutated"
	log := j.Log()
	log.Set("2024-03-08", q.ID, models.AnswerNo)

	again := j.Questions()
	if again[0].Schedule[0] != 1 || again[0].Text != "Q" {
		t.Error("Questions() exposed internal state")
	}
	if j.Answer(friday, q.ID) != models.AnswerYes {
		t.Error("Log() exposed internal state")
	}
}

func TestQuestionLifecycle(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	j, _ := Open(store, "")
	j.AddProject("Health")
	other, _ := j.AddProject("Work")

	if _, err := j.AddQuestion("", []int{1}); err == nil {
		t.Error("expected empty text to be rejected")
	}
	if _, err := j.AddQuestion("No days", nil); err == nil {
		t.Error("expected empty schedule to be rejected")
	}

	q, _ := j.AddQuestion("Q", []int{5})
	j.SetAnswer(friday, q.ID, models.AnswerYes)

	q.Text = "Renamed"
	q.Schedule = []int{0, 6}
	if err := j.UpdateQuestion(q); err != nil {
		t.Fatalf("UpdateQuestion failed: %v", err)
	}
	stored, _ := store.GetQuestion(q.ID)
	if stored.Text != "Renamed" || len(stored.Schedule) != 2 {
		t.Errorf("update not persisted: %+v", stored)
	}

	q.ProjectID = other.ID
	if err := j.UpdateQuestion(q); err != nil {
		t.Fatalf("UpdateQuestion (move) failed: %v", err)
	}
	if len(j.Questions()) != 0 {
		t.Error("moved question still in active snapshot")
	}
	if err := j.SwitchProject(other.ID); err != nil {
		t.Fatalf("SwitchProject failed: %v", err)
	}
	if len(j.Questions()) != 1 || j.Answer(friday, q.ID) != models.AnswerYes {
		t.Error("moved question or its answers missing after switch")
	}
	settings, _ := store.GetSettings()
	if settings.ActiveProjectID != other.ID {
		t.Errorf("active project not persisted: %+v", settings)
	}

	if err := j.DeleteQuestion(q.ID); err != nil {
		t.Fatalf("DeleteQuestion failed: %v", err)
	}
	if j.Log().Count() != 0 || len(j.Questions()) != 0 {
		t.Error("delete did not cascade in the cache")
	}
	if err := j.SwitchProject("ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("SwitchProject(ghost) error = %v", err)
	}
}

func TestDeleteActiveProject(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	store.AddProject(models.Project{ID: "first", Name: "First", CreatedAt: created})
	store.AddProject(models.Project{ID: "second", Name: "Second", CreatedAt: created.Add(time.Hour)})

	j, _ := Open(store, "first")
	j.AddQuestion("Q", []int{1})

	if err := j.DeleteProject("first"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if j.ProjectID() != "second" {
		t.Errorf("ProjectID() = %q, want second", j.ProjectID())
	}
	if len(j.Projects()) != 1 || len(j.Questions()) != 0 {
		t.Errorf("Projects() = %v, Questions() = %v", j.Projects(), j.Questions())
	}
}

func TestDayAndAggregate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	j, _ := Open(store, "")
	j.AddProject("Health")
	q, _ := j.AddQuestion("Friday?", []int{5})
	j.SetAnswer(friday, q.ID, models.AnswerYes)

	items := j.Day(friday)
	if len(items) != 1 || !items[0].Due || items[0].Answer != models.AnswerYes {
		t.Errorf("Day() = %+v", items)
	}

	r := models.DateRange{Start: friday.AddDate(0, 0, -7), End: friday}
	points := j.Aggregate(r, models.GranularityDay)
	if len(points) != 8 || points[7].Yes != 1 || points[0].Total != 1 {
		t.Errorf("Aggregate() = %+v", points)
	}
}
