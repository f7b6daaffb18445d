package scheduler

import (
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/utils"
)

// IsDue reports whether weekday (0 = Sunday) is in the question's schedule.
// An empty schedule is never due and indices outside 0-6 never match.
func IsDue(q models.Question, weekday int) bool {
	if weekday < 0 || weekday > 6 {
		return false
	}
	for _, wd := range q.Schedule {
		if wd == weekday {
			return true
		}
	}
	return false
}

// IsDueOn reports whether q is due on the calendar date of t.
func IsDueOn(q models.Question, t time.Time) bool {
	return IsDue(q, int(t.Weekday()))
}

// DueOn returns the questions due on the given weekday, in input order.
func DueOn(questions []models.Question, weekday int) []models.Question {
	var due []models.Question
	for _, q := range questions {
		if IsDue(q, weekday) {
			due = append(due, q)
		}
	}
	return due
}

// Status describes a question's state on a particular day.
type Status int

const (
	StatusPending Status = iota
	StatusAnsweredYes
	StatusAnsweredNo
	StatusOffSchedule
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAnsweredYes:
		return "yes"
	case StatusAnsweredNo:
		return "no"
	case StatusOffSchedule:
		return "off schedule"
	default:
		return "unknown"
	}
}

// DayItem pairs a question with its answer and status for one date.
type DayItem struct {
	Question models.Question
	Answer   models.Answer
	Due      bool
	Status   Status
}

// Day builds the daily view for date: every question with its answer, with due
// questions first. Off-schedule questions stay visible and answerable.
func Day(questions []models.Question, log models.Log, date time.Time) []DayItem {
	key := utils.FormatDateKey(date)
	weekday := int(date.Weekday())

	items := make([]DayItem, 0, len(questions))
	var off []DayItem
	for _, q := range questions {
		item := DayItem{
			Question: q,
			Answer:   log.Get(key, q.ID),
			Due:      IsDue(q, weekday),
		}
		switch {
		case item.Answer == models.AnswerYes:
			item.Status = StatusAnsweredYes
		case item.Answer == models.AnswerNo:
			item.Status = StatusAnsweredNo
		case item.Due:
			item.Status = StatusPending
		default:
			item.Status = StatusOffSchedule
		}
		if item.Due {
			items = append(items, item)
		} else {
			off = append(off, item)
		}
	}
	return append(items, off...)
}

// PendingCount returns the number of due questions without an answer.
func PendingCount(items []DayItem) int {
	n := 0
	for _, it := range items {
		if it.Due && !it.Answer.IsAnswered() {
			n++
		}
	}
	return n
}
