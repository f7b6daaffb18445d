package stats

import (
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/utils"
)

// Summary totals a series of buckets.
type Summary struct {
	Buckets   int     `json:"buckets"`
	Yes       int     `json:"yes"`
	No        int     `json:"no"`
	Due       int     `json:"due"`
	Answered  int     `json:"answered"`
	Adherence float64 `json:"adherence"` // yes / (yes + no), 0 when nothing is answered
}

// Summarize totals points.
func Summarize(points []models.ChartDataPoint) Summary {
	s := Summary{Buckets: len(points)}
	for _, p := range points {
		s.Yes += p.Yes
		s.No += p.No
		s.Due += p.Total
	}
	s.Answered = s.Yes + s.No
	if s.Answered > 0 {
		s.Adherence = float64(s.Yes) / float64(s.Answered)
	}
	return s
}

// QuestionSummary is the per-question breakdown over a range.
type QuestionSummary struct {
	Question  models.Question `json:"question"`
	Yes       int             `json:"yes"`
	No        int             `json:"no"`
	Due       int             `json:"due"`
	Adherence float64         `json:"adherence"`
	Streak    int             `json:"streak"` // consecutive due days answered YES, ending at the range end
}

// ByQuestion computes a QuestionSummary for each question over r. A range with
// start after end yields zero counts.
func ByQuestion(log models.Log, questions []models.Question, r models.DateRange) []QuestionSummary {
	out := make([]QuestionSummary, 0, len(questions))
	for _, q := range questions {
		single := []models.Question{q}
		s := Summarize(Aggregate(log, single, r, models.GranularityDay))
		out = append(out, QuestionSummary{
			Question:  q,
			Yes:       s.Yes,
			No:        s.No,
			Due:       s.Due,
			Adherence: s.Adherence,
			Streak:    Streak(log, q, r),
		})
	}
	return out
}

// Streak counts consecutive due days answered YES, walking back from r.End.
// An unanswered end day does not break the streak since it may still be
// answered; any other unanswered or NO day does.
func Streak(log models.Log, q models.Question, r models.DateRange) int {
	startKey := utils.FormatDateKey(r.Start)
	end := utils.StripTime(r.End)
	streak := 0
	for d := end; utils.FormatDateKey(d) >= startKey; d = utils.AddDays(d, -1) {
		if !scheduler.IsDueOn(q, d) {
			continue
		}
		key := utils.FormatDateKey(d)
		switch log.Get(key, q.ID) {
		case models.AnswerYes:
			streak++
		case models.AnswerNo:
			return streak
		default:
			if !d.Equal(end) {
				return streak
			}
		}
	}
	return streak
}
