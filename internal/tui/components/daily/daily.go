package daily

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/utils"
)

// AnswerMsg asks the parent to toggle a cell for the viewed date.
type AnswerMsg struct {
	QuestionID string
	Answer     models.Answer
}

// ShiftDayMsg asks the parent to move the viewed date by Days.
type ShiftDayMsg struct {
	Days int
}

type Item struct {
	Entry scheduler.DayItem
}

func (i Item) Title() string {
	return statusBox(i.Entry.Status) + " " + i.Entry.Question.Text
}

func (i Item) Description() string {
	desc := utils.FormatSchedule(i.Entry.Question.Schedule)
	if !i.Entry.Due {
		desc += " | off schedule"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Question.Text }

func statusBox(s scheduler.Status) string {
	switch s {
	case scheduler.StatusAnsweredYes:
		return "[✓]"
	case scheduler.StatusAnsweredNo:
		return "[✗]"
	case scheduler.StatusOffSchedule:
		return "[-]"
	default:
		return "[ ]"
	}
}

type KeyMap struct {
	Yes     key.Binding
	No      key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	date  time.Time
	today time.Time
	items []scheduler.DayItem
}

func New(items []scheduler.DayItem, date, today time.Time, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Yes, keys.No, keys.PrevDay, keys.NextDay}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Yes, keys.No, keys.PrevDay, keys.NextDay, keys.Today}
	}

	m := Model{list: l, keys: keys, today: utils.StripTime(today)}
	m.SetDay(date, items)
	return m
}

// SetDay replaces the viewed date and its rows, keeping the cursor position
// when possible.
func (m *Model) SetDay(date time.Time, items []scheduler.DayItem) {
	m.date = utils.StripTime(date)
	m.items = items
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = Item{Entry: it}
	}
	idx := m.list.Index()
	m.list.SetItems(listItems)
	if idx >= len(listItems) {
		idx = len(listItems) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m Model) Date() time.Time {
	return m.date
}

// Pending is the number of due questions still unanswered on the viewed date.
func (m Model) Pending() int {
	return scheduler.PendingCount(m.items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Yes):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, answer(i.Entry.Question.ID, models.AnswerYes)
			}
			return m, nil
		case key.Matches(msg, m.keys.No):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, answer(i.Entry.Question.ID, models.AnswerNo)
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			return m, shift(-1)
		case key.Matches(msg, m.keys.NextDay):
			return m, shift(1)
		case key.Matches(msg, m.keys.Today):
			if days := utils.DaysBetween(m.date, m.today); days != 0 {
				return m, shift(days)
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func answer(id string, a models.Answer) tea.Cmd {
	return func() tea.Msg { return AnswerMsg{QuestionID: id, Answer: a} }
}

func shift(days int) tea.Cmd {
	return func() tea.Msg { return ShiftDayMsg{Days: days} }
}

func (m Model) header() string {
	label := m.date.Format("Mon Jan 2, 2006")
	if m.date.Equal(m.today) {
		label += " (today)"
	}
	return fmt.Sprintf("%s  |  Pending: %d", strings.ToUpper(label), m.Pending())
}

func (m Model) View() string {
	if len(m.items) == 0 {
		return m.header() + "\n\n  NO OBJECTIVES SCHEDULED\n  Add questions from the Questions tab."
	}
	return m.header() + "\n\n" + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-2)
}
