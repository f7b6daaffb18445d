package models

import (
	"fmt"
	"strings"
	"time"
)

// Question is a recurring yes/no prompt with a weekly schedule.
type Question struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Text      string    `json:"text"`
	Schedule  []int     `json:"schedule"` // weekday indices, 0 (Sun) - 6 (Sat)
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the invariants enforced when a question is created or edited
// through normal flows. Stored questions with an empty schedule are still
// tolerated by the engine and are simply never due.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if len(q.Schedule) == 0 {
		return fmt.Errorf("schedule must contain at least one weekday")
	}
	seen := make(map[int]bool, len(q.Schedule))
	for _, wd := range q.Schedule {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("invalid weekday index %d (expected 0-6)", wd)
		}
		if seen[wd] {
			return fmt.Errorf("duplicate weekday index %d", wd)
		}
		seen[wd] = true
	}
	return nil
}

// Clone returns a copy that shares no backing arrays with q.
func (q Question) Clone() Question {
	q.Schedule = append([]int(nil), q.Schedule...)
	return q
}
