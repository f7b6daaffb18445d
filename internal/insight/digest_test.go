package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/alog/internal/models"
)

func digestFixture() []models.Question {
	return []models.Question{
		{ID: "q1", Text: "Read"},
		{ID: "q2", Text: "Run"},
	}
}

func TestBuildDigest(t *testing.T) {
	today := time.Date(2024, 3, 15, 18, 30, 0, 0, time.Local)
	log := models.Log{
		"2024-03-15": {"q1": models.AnswerYes, "q2": models.AnswerNo},
		"2024-03-14": {"q2": models.AnswerYes, "gone": models.AnswerYes},
		"2024-03-13": {"gone": models.AnswerNo},
		"2024-03-01": {"q1": models.AnswerYes}, // 14 days back, outside the window
		"2024-03-02": {"q1": models.AnswerNo},  // 13 days back, last in window
	}

	got := BuildDigest(digestFixture(), log, today, 14)
	want := "Date: 2024-03-15\n- Read: YES\n- Run: NO\n\n" +
		"Date: 2024-03-14\n- Run: YES\n\n" +
		"Date: 2024-03-02\n- Read: NO"
	if got != want {
		t.Errorf("BuildDigest() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildDigest_Empty(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	if got := BuildDigest(digestFixture(), models.Log{}, today, 14); got != "" {
		t.Errorf("expected empty digest, got %q", got)
	}
}

func TestBuildDigest_DefaultWindow(t *testing.T) {
	today := time.Date(2024, 1, 14, 0, 0, 0, 0, time.Local)
	log := models.Log{
		"2024-01-01": {"q1": models.AnswerYes},
		"2023-12-31": {"q1": models.AnswerYes},
	}
	got := BuildDigest(digestFixture(), log, today, 0)
	if !strings.Contains(got, "2024-01-01") {
		t.Errorf("expected 2024-01-01 in default window, got %q", got)
	}
	if strings.Contains(got, "2023-12-31") {
		t.Errorf("2023-12-31 is outside the default window, got %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Date: 2024-03-15\n- Read: YES")
	if !strings.HasPrefix(p, "You are a strictly logical, 8-bit retro computer terminal interface AI.") {
		t.Errorf("unexpected prompt prefix: %q", p[:60])
	}
	if !strings.HasSuffix(p, "Data:\nDate: 2024-03-15\n- Read: YES") {
		t.Errorf("digest not appended after data marker: %q", p)
	}

	if empty := BuildPrompt("  "); !strings.HasSuffix(empty, "NO DATA RECORDED.") {
		t.Errorf("expected placeholder for empty digest, got %q", empty)
	}
}
