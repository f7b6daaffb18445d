// Package journal keeps an in-memory snapshot of the active project's
// questions and answers in front of a storage.Provider. Mutations patch the
// snapshot first, then write through; a failed write reloads the snapshot
// from storage so the cache never drifts from what was persisted.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/stats"
	"github.com/julianstephens/alog/internal/storage"
	"github.com/julianstephens/alog/internal/utils"
)

// ErrNoProject is returned when an operation needs an active project and
// none exists.
var ErrNoProject = errors.New("no project selected")

type Journal struct {
	mu        sync.RWMutex
	store     storage.Provider
	projectID string
	projects  []models.Project
	questions []models.Question
	log       models.Log
}

// Open loads a journal for projectID. An empty or unknown projectID falls
// back to the first project, if any.
func Open(store storage.Provider, projectID string) (*Journal, error) {
	j := &Journal{store: store, projectID: projectID}
	if err := j.Reload(); err != nil {
		return nil, err
	}
	return j, nil
}

// Reload replaces the snapshot with what storage currently holds.
func (j *Journal) Reload() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.reloadLocked()
}

func (j *Journal) reloadLocked() error {
	projects, err := j.store.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	j.projects = projects
	j.projectID = resolveProject(projects, j.projectID)

	if j.projectID == "" {
		j.questions = nil
		j.log = models.Log{}
		return nil
	}

	questions, err := j.store.GetQuestions(j.projectID)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	log, err := j.store.GetLog(j.projectID, "", "")
	if err != nil {
		return fmt.Errorf("failed to load log: %w", err)
	}
	j.questions = questions
	j.log = log
	logger.Debug("Journal loaded", "project", j.projectID, "questions", len(questions), "answers", log.Count())
	return nil
}

func resolveProject(projects []models.Project, want string) string {
	for _, p := range projects {
		if p.ID == want {
			return want
		}
	}
	if len(projects) > 0 {
		return projects[0].ID
	}
	return ""
}

// resync reloads after a failed write and joins any reload failure onto err.
func (j *Journal) resync(err error) error {
	logger.Warn("Write failed, reloading journal", "error", err)
	if rerr := j.reloadLocked(); rerr != nil {
		return errors.Join(err, rerr)
	}
	return err
}

// ProjectID returns the active project id, empty when there are no projects.
func (j *Journal) ProjectID() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.projectID
}

// Project returns the active project.
func (j *Journal) Project() (models.Project, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, p := range j.projects {
		if p.ID == j.projectID {
			return p, true
		}
	}
	return models.Project{}, false
}

// Projects returns a copy of every project.
func (j *Journal) Projects() []models.Project {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]models.Project(nil), j.projects...)
}

// Questions returns copies of the active project's questions.
func (j *Journal) Questions() []models.Question {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]models.Question, len(j.questions))
	for i, q := range j.questions {
		out[i] = q.Clone()
	}
	return out
}

// Log returns a deep copy of the active project's log.
func (j *Journal) Log() models.Log {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.log.Clone()
}

// Answer returns the cached answer for a cell.
func (j *Journal) Answer(date time.Time, questionID string) models.Answer {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.log.Get(utils.FormatDateKey(date), questionID)
}

// Day returns the daily view for date.
func (j *Journal) Day(date time.Time) []scheduler.DayItem {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return scheduler.Day(j.questions, j.log, date)
}

// Aggregate runs the aggregation engine over the current snapshot.
func (j *Journal) Aggregate(r models.DateRange, g models.Granularity) []models.ChartDataPoint {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return stats.Aggregate(j.log, j.questions, r, g)
}

// SetAnswer writes a cell. Writing models.AnswerUnanswered clears it.
func (j *Journal) SetAnswer(date time.Time, questionID string, answer models.Answer) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.setAnswerLocked(utils.FormatDateKey(date), questionID, answer)
}

// ToggleAnswer sets answer unless the cell already holds it, in which case
// the cell is cleared. It returns the resulting answer.
func (j *Journal) ToggleAnswer(date time.Time, questionID string, answer models.Answer) (models.Answer, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	key := utils.FormatDateKey(date)
	next := answer
	if j.log.Get(key, questionID) == answer {
		next = models.AnswerUnanswered
	}
	if err := j.setAnswerLocked(key, questionID, next); err != nil {
		return j.log.Get(key, questionID), err
	}
	return next, nil
}

func (j *Journal) setAnswerLocked(key, questionID string, answer models.Answer) error {
	if !j.hasQuestion(questionID) {
		return fmt.Errorf("question %s: %w", questionID, storage.ErrNotFound)
	}
	j.log.Set(key, questionID, answer)
	if err := j.store.SetAnswer(key, questionID, answer); err != nil {
		return j.resync(fmt.Errorf("failed to save answer: %w", err))
	}
	return nil
}

func (j *Journal) hasQuestion(id string) bool {
	for _, q := range j.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// AddQuestion creates a question in the active project.
func (j *Journal) AddQuestion(text string, schedule []int) (models.Question, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.projectID == "" {
		return models.Question{}, ErrNoProject
	}
	q := models.Question{
		ID:        uuid.NewString(),
		ProjectID: j.projectID,
		Text:      strings.TrimSpace(text),
		Schedule:  append([]int(nil), schedule...),
		CreatedAt: time.Now(),
	}
	if err := q.Validate(); err != nil {
		return models.Question{}, err
	}

	j.questions = append(j.questions, q)
	if err := j.store.AddQuestion(q); err != nil {
		return models.Question{}, j.resync(fmt.Errorf("failed to save question: %w", err))
	}
	return q.Clone(), nil
}

// UpdateQuestion replaces the text and schedule of an existing question.
// Moving a question to another project removes it from this snapshot.
func (j *Journal) UpdateQuestion(q models.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	idx := -1
	for i := range j.questions {
		if j.questions[i].ID == q.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("question %s: %w", q.ID, storage.ErrNotFound)
	}

	q = q.Clone()
	q.CreatedAt = j.questions[idx].CreatedAt
	if q.ProjectID == "" {
		q.ProjectID = j.projectID
	}
	if q.ProjectID != j.projectID {
		j.questions = append(j.questions[:idx], j.questions[idx+1:]...)
		j.log.DeleteQuestion(q.ID)
	} else {
		j.questions[idx] = q
	}

	if err := j.store.AddQuestion(q); err != nil {
		return j.resync(fmt.Errorf("failed to save question: %w", err))
	}
	return nil
}

// DeleteQuestion removes a question and all of its answers.
func (j *Journal) DeleteQuestion(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	kept := j.questions[:0:0]
	for _, q := range j.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	j.questions = kept
	j.log.DeleteQuestion(id)

	if err := j.store.DeleteQuestion(id); err != nil {
		return j.resync(fmt.Errorf("failed to delete question: %w", err))
	}
	return nil
}

// AddProject creates a project. The active project does not change.
func (j *Journal) AddProject(name string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, fmt.Errorf("project name cannot be empty")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	p := models.Project{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
	j.projects = append(j.projects, p)
	if err := j.store.AddProject(p); err != nil {
		return models.Project{}, j.resync(fmt.Errorf("failed to save project: %w", err))
	}
	if j.projectID == "" {
		// First project: adopt it.
		if err := j.reloadLocked(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// DeleteProject removes a project with its questions and answers. Deleting
// the active project switches to the first remaining one.
func (j *Journal) DeleteProject(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.store.DeleteProject(id); err != nil {
		return j.resync(fmt.Errorf("failed to delete project: %w", err))
	}
	return j.reloadLocked()
}

// SwitchProject makes id the active project and remembers the choice.
func (j *Journal) SwitchProject(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	found := false
	for _, p := range j.projects {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("project %s: %w", id, storage.ErrNotFound)
	}

	j.projectID = id
	if err := j.reloadLocked(); err != nil {
		return err
	}

	settings, err := j.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	settings.ActiveProjectID = id
	if err := j.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save active project: %w", err)
	}
	return nil
}
