package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/utils"
)

// ConflictType represents the type of validation problem
type ConflictType string

const (
	ConflictEmptyText        ConflictType = "empty_text"
	ConflictEmptySchedule    ConflictType = "empty_schedule"
	ConflictInvalidWeekday   ConflictType = "invalid_weekday"
	ConflictDuplicateWeekday ConflictType = "duplicate_weekday"
	ConflictUnknownProject   ConflictType = "unknown_project"
	ConflictDuplicateText    ConflictType = "duplicate_text"
	ConflictOrphanAnswer     ConflictType = "orphan_answer"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictInvalidAnswer    ConflictType = "invalid_answer"
)

// Conflict is one detected problem.
type Conflict struct {
	Type        ConflictType
	Description string
	QuestionID  string
	Date        string // YYYY-MM-DD, log conflicts only
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends other's conflicts.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var sb strings.Builder
	sb.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&sb, "- %s\n", c.Description)
	}
	return sb.String()
}

// Validator checks questions and answers for data the engine would tolerate
// but that normal flows never produce.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateQuestions checks each question's text and schedule, duplicate
// texts within a project, and references to projects not in projects. A nil
// projects slice skips the project check.
func (v *Validator) ValidateQuestions(questions []models.Question, projects []models.Project) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}

	texts := make(map[string][]string)
	for _, q := range questions {
		label := q.Text
		if strings.TrimSpace(label) == "" {
			label = q.ID
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyText,
				Description: fmt.Sprintf("Question %s has empty text", q.ID),
				QuestionID:  q.ID,
			})
		} else {
			key := q.ProjectID + "\x00" + strings.ToLower(strings.TrimSpace(q.Text))
			texts[key] = append(texts[key], q.ID)
		}

		result.Conflicts = append(result.Conflicts, scheduleConflicts(q, label)...)

		if projects != nil && !known[q.ProjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownProject,
				Description: fmt.Sprintf("Question \"%s\" belongs to unknown project %q", label, q.ProjectID),
				QuestionID:  q.ID,
			})
		}
	}

	keys := make([]string, 0, len(texts))
	for k := range texts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ids := texts[k]
		if len(ids) < 2 {
			continue
		}
		text := k[strings.IndexByte(k, 0)+1:]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateText,
			Description: fmt.Sprintf("Duplicate question text: \"%s\" (IDs: %v)", text, ids),
			QuestionID:  ids[0],
		})
	}

	return result
}

func scheduleConflicts(q models.Question, label string) []Conflict {
	if len(q.Schedule) == 0 {
		return []Conflict{{
			Type:        ConflictEmptySchedule,
			Description: fmt.Sprintf("Question \"%s\" has an empty schedule and is never due", label),
			QuestionID:  q.ID,
		}}
	}

	var out []Conflict
	seen := make(map[int]bool, len(q.Schedule))
	for _, wd := range q.Schedule {
		if wd < 0 || wd > 6 {
			out = append(out, Conflict{
				Type:        ConflictInvalidWeekday,
				Description: fmt.Sprintf("Question \"%s\" has invalid weekday index %d (expected 0-6)", label, wd),
				QuestionID:  q.ID,
			})
			continue
		}
		if seen[wd] {
			out = append(out, Conflict{
				Type:        ConflictDuplicateWeekday,
				Description: fmt.Sprintf("Question \"%s\" lists %s more than once", label, utils.FormatSchedule([]int{wd})),
				QuestionID:  q.ID,
			})
		}
		seen[wd] = true
	}
	return out
}

// ValidateLog checks persisted answer rows for malformed date keys, answers
// other than YES or NO, and rows pointing at questions not in questions.
func (v *Validator) ValidateLog(entries []models.LogEntry, questions []models.Question) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	orphans := make(map[string]int)
	var orphanIDs []string
	for _, e := range entries {
		if !utils.ValidateDateKey(e.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Answer for question %s has invalid date %q", e.QuestionID, e.Date),
				QuestionID:  e.QuestionID,
				Date:        e.Date,
			})
		}
		if !e.Answer.IsAnswered() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidAnswer,
				Description: fmt.Sprintf("Answer for question %s on %s is %q (expected YES or NO)", e.QuestionID, e.Date, e.Answer),
				QuestionID:  e.QuestionID,
				Date:        e.Date,
			})
		}
		if !known[e.QuestionID] {
			if orphans[e.QuestionID] == 0 {
				orphanIDs = append(orphanIDs, e.QuestionID)
			}
			orphans[e.QuestionID]++
		}
	}

	for _, id := range orphanIDs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOrphanAnswer,
			Description: fmt.Sprintf("%d answer(s) reference unknown question %s", orphans[id], id),
			QuestionID:  id,
		})
	}

	return result
}
