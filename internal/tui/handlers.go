package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/tui/components/daily"
	"github.com/julianstephens/alog/internal/tui/components/questions"
	"github.com/julianstephens/alog/internal/utils"
)

// NewQuestionForm builds the add/edit form bound to fm.
func NewQuestionForm(fm *QuestionFormModel) *huh.Form {
	days := make([]huh.Option[int], 7)
	for i := range days {
		days[i] = huh.NewOption(time.Weekday(i).String()[:3], i).Selected(containsDay(fm.Days, i))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Question").
				Value(&fm.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("question text cannot be empty")
					}
					return nil
				}),
			huh.NewMultiSelect[int]().
				Title("Days").
				Options(days...).
				Value(&fm.Days).
				Validate(func(d []int) error {
					if len(d) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func containsDay(days []int, d int) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}

// handleQuestionForm drives the add/edit form until it completes or aborts.
func (m *Model) handleQuestionForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = constants.StateQuestions
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveQuestionForm(); err != nil {
			logger.Error("failed to save question", "error", err)
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return cmd
		}
		m.formError = ""
		m.editingQuestion = nil
		m.refresh()
		m.state = constants.StateQuestions
	case huh.StateAborted:
		m.formError = ""
		m.editingQuestion = nil
		m.state = constants.StateQuestions
	}
	return cmd
}

func (m *Model) saveQuestionForm() error {
	schedule, err := utils.ParseWeekdays(joinDays(m.questionForm.Days))
	if err != nil {
		return err
	}
	if m.editingQuestion == nil {
		_, err := m.journal.AddQuestion(m.questionForm.Text, schedule)
		return err
	}
	q := m.editingQuestion.Clone()
	q.Text = strings.TrimSpace(m.questionForm.Text)
	q.Schedule = schedule
	return m.journal.UpdateQuestion(q)
}

// joinDays renders weekday indices the way ParseWeekdays reads them, which
// also sorts and dedupes the selection.
func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = time.Weekday(d).String()[:3]
	}
	return strings.Join(parts, ",")
}

// handleConfirmDelete waits for y/n on the pending question delete.
func (m *Model) handleConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.questionToDeleteID != "" {
			if err := m.journal.DeleteQuestion(m.questionToDeleteID); err != nil {
				logger.Error("failed to delete question", "id", m.questionToDeleteID, "error", err)
				m.formError = err.Error()
			} else {
				m.formError = ""
			}
			m.refresh()
		}
		m.questionToDeleteID, m.questionToDeleteText = "", ""
		m.state = constants.StateQuestions
	case "n", "N", "esc":
		m.questionToDeleteID, m.questionToDeleteText = "", ""
		m.state = constants.StateQuestions
	}
	return nil
}

// handleComponentMessages applies requests emitted by the tab components.
func (m *Model) handleComponentMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case daily.AnswerMsg:
		date := m.dailyModel.Date()
		if _, err := m.journal.ToggleAnswer(date, msg.QuestionID, msg.Answer); err != nil {
			logger.Error("failed to save answer", "date", utils.FormatDateKey(date), "question", msg.QuestionID, "error", err)
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.dailyModel.SetDay(date, m.journal.Day(date))
		m.statsModel.Refresh()
		return true, nil

	case daily.ShiftDayMsg:
		date := utils.AddDays(m.dailyModel.Date(), msg.Days)
		m.dailyModel.SetDay(date, m.journal.Day(date))
		return true, nil

	case questions.AddQuestionMsg:
		m.editingQuestion = nil
		m.questionForm = &QuestionFormModel{Days: []int{0, 1, 2, 3, 4, 5, 6}}
		m.form = NewQuestionForm(m.questionForm)
		m.state = constants.StateAddQuestion
		return true, m.form.Init()

	case questions.EditQuestionMsg:
		q := msg.Question
		m.editingQuestion = &q
		m.questionForm = &QuestionFormModel{Text: q.Text, Days: append([]int(nil), q.Schedule...)}
		m.form = NewQuestionForm(m.questionForm)
		m.state = constants.StateAddQuestion
		return true, m.form.Init()

	case questions.DeleteQuestionMsg:
		m.questionToDeleteID = msg.ID
		m.questionToDeleteText = msg.Text
		m.state = constants.StateConfirmDelete
		return true, nil
	}
	return false, nil
}
