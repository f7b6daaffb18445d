package models

import (
	"fmt"
	"strings"
)

// Answer is the state of a (date, question) cell.
type Answer string

const (
	AnswerUnanswered Answer = "NULL"
	AnswerYes        Answer = "YES"
	AnswerNo         Answer = "NO"
)

// ParseAnswer accepts the spellings used on the command line.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return AnswerYes, nil
	case "no", "n", "false":
		return AnswerNo, nil
	case "clear", "none", "null", "unanswered", "":
		return AnswerUnanswered, nil
	default:
		return AnswerUnanswered, fmt.Errorf("invalid answer %q (expected yes, no or clear)", s)
	}
}

// IsAnswered reports whether a is YES or NO.
func (a Answer) IsAnswered() bool {
	return a == AnswerYes || a == AnswerNo
}

// Log maps a date key (YYYY-MM-DD) to question id to answer. Missing entries
// are UNANSWERED.
type Log map[string]map[string]Answer

// Get returns the answer for the cell, AnswerUnanswered when absent.
func (l Log) Get(date, questionID string) Answer {
	day, ok := l[date]
	if !ok {
		return AnswerUnanswered
	}
	ans, ok := day[questionID]
	if !ok || ans == "" {
		return AnswerUnanswered
	}
	return ans
}

// Set writes a cell. Writing AnswerUnanswered removes it.
func (l Log) Set(date, questionID string, answer Answer) {
	if !answer.IsAnswered() {
		if day, ok := l[date]; ok {
			delete(day, questionID)
			if len(day) == 0 {
				delete(l, date)
			}
		}
		return
	}
	day, ok := l[date]
	if !ok {
		day = make(map[string]Answer)
		l[date] = day
	}
	day[questionID] = answer
}

// DeleteQuestion removes every cell belonging to questionID.
func (l Log) DeleteQuestion(questionID string) {
	for date, day := range l {
		delete(day, questionID)
		if len(day) == 0 {
			delete(l, date)
		}
	}
}

// Clone returns a deep copy.
func (l Log) Clone() Log {
	out := make(Log, len(l))
	for date, day := range l {
		cp := make(map[string]Answer, len(day))
		for id, ans := range day {
			cp[id] = ans
		}
		out[date] = cp
	}
	return out
}

// Count returns the number of answered cells.
func (l Log) Count() int {
	n := 0
	for _, day := range l {
		for _, ans := range day {
			if ans.IsAnswered() {
				n++
			}
		}
	}
	return n
}

// LogEntry is one persisted row of the log.
type LogEntry struct {
	Date       string `json:"date"` // YYYY-MM-DD format
	QuestionID string `json:"question_id"`
	ProjectID  string `json:"project_id"`
	Answer     Answer `json:"answer"`
}
