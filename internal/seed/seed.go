// Package seed provides the starter project and an optional simulated history
// used by `alog init --seed`.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/storage"
	"github.com/julianstephens/alog/internal/utils"
)

var (
	daily    = []int{0, 1, 2, 3, 4, 5, 6}
	weekdays = []int{1, 2, 3, 4, 5}
	sundays  = []int{0}
)

// Project returns the starter project.
func Project(now time.Time) models.Project {
	return models.Project{ID: constants.SeedProjectID, Name: constants.SeedProjectName, CreatedAt: now}
}

// Questions returns the starter questions in display order.
func Questions(now time.Time) []models.Question {
	q := func(id, text string, schedule []int) models.Question {
		return models.Question{
			ID:        id,
			ProjectID: constants.SeedProjectID,
			Text:      text,
			Schedule:  append([]int(nil), schedule...),
			CreatedAt: now,
		}
	}
	return []models.Question{
		q("q_health_food", "Did you eat whole foods today?", daily),
		q("q_health_exercise", "Did you exercise for 30 mins?", daily),
		q("q_wlb_logoff", "Did you log off work by 6PM?", weekdays),
		q("q_self_leisure", "Did you do something just for yourself?", daily),
		q("q_social_friends", "Did you check in with friends this week?", sundays),
		q("q_social_family", "Did you call your family?", sundays),
	}
}

// yesChance is the probability a simulated answer is YES.
func yesChance(questionID string, weekday time.Weekday) float64 {
	switch questionID {
	case "q_health_food":
		if weekday == time.Friday || weekday == time.Saturday {
			return 0.4
		}
		return 0.7
	case "q_wlb_logoff":
		return 0.6
	case "q_health_exercise":
		return 0.5
	default:
		return 0.7
	}
}

// History simulates answers for the given number of days ending today. Only
// due questions are answered and roughly one in ten is skipped.
func History(questions []models.Question, today time.Time, days int, rng *rand.Rand) []models.LogEntry {
	today = utils.StripTime(today)
	var entries []models.LogEntry
	for i := 0; i < days; i++ {
		d := utils.AddDays(today, -i)
		for _, q := range questions {
			if !scheduler.IsDueOn(q, d) {
				continue
			}
			if rng.Float64() < 0.1 {
				continue
			}
			answer := models.AnswerNo
			if rng.Float64() < yesChance(q.ID, d.Weekday()) {
				answer = models.AnswerYes
			}
			entries = append(entries, models.LogEntry{
				Date:       utils.FormatDateKey(d),
				QuestionID: q.ID,
				ProjectID:  q.ProjectID,
				Answer:     answer,
			})
		}
	}
	return entries
}

// Apply writes the starter project and questions, plus simulated history when
// rng is non-nil. Existing rows with the same ids are overwritten.
func Apply(store storage.Provider, now time.Time, rng *rand.Rand) error {
	if err := store.AddProject(Project(now)); err != nil {
		return fmt.Errorf("failed to seed project: %w", err)
	}
	questions := Questions(now)
	for _, q := range questions {
		if err := store.AddQuestion(q); err != nil {
			return fmt.Errorf("failed to seed question %s: %w", q.ID, err)
		}
	}
	if rng == nil {
		return nil
	}

	entries := History(questions, now, constants.SeedHistoryDays, rng)
	for _, e := range entries {
		if err := store.SetAnswer(e.Date, e.QuestionID, e.Answer); err != nil {
			return fmt.Errorf("failed to seed answer %s/%s: %w", e.Date, e.QuestionID, err)
		}
	}
	logger.Info("Seeded starter project", "questions", len(questions), "answers", len(entries))
	return nil
}
