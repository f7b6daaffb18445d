package daily

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
)

var friday = time.Date(2024, time.March, 8, 0, 0, 0, 0, time.Local)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testItems() []scheduler.DayItem {
	qs := []models.Question{
		{ID: "q1", Text: "Read?", Schedule: []int{5}},
		{ID: "q2", Text: "Run?", Schedule: []int{5}},
		{ID: "q3", Text: "Rest?", Schedule: []int{0}},
	}
	log := models.Log{"2024-03-08": {"q2": models.AnswerNo}}
	return scheduler.Day(qs, log, friday)
}

func TestAnswerKeysEmitAnswerMsg(t *testing.T) {
	m := New(testItems(), friday, friday, 80, 20)

	tests := []struct {
		key  string
		want models.Answer
	}{
		{"y", models.AnswerYes},
		{"n", models.AnswerNo},
	}
	for _, tt := range tests {
		_, cmd := m.Update(runes(tt.key))
		if cmd == nil {
			t.Fatalf("key %q returned no command", tt.key)
		}
		msg, ok := cmd().(AnswerMsg)
		if !ok {
			t.Fatalf("key %q produced %T, want AnswerMsg", tt.key, cmd())
		}
		if msg.QuestionID != "q1" || msg.Answer != tt.want {
			t.Errorf("key %q = %+v, want q1/%s", tt.key, msg, tt.want)
		}
	}
}

func TestDayNavigation(t *testing.T) {
	m := New(testItems(), friday, friday, 80, 20)

	_, cmd := m.Update(runes("["))
	if msg, ok := cmd().(ShiftDayMsg); !ok || msg.Days != -1 {
		t.Errorf("[ produced %+v, want ShiftDayMsg{-1}", cmd())
	}
	_, cmd = m.Update(runes("]"))
	if msg, ok := cmd().(ShiftDayMsg); !ok || msg.Days != 1 {
		t.Errorf("] produced %+v, want ShiftDayMsg{1}", cmd())
	}

	if _, cmd := m.Update(runes("t")); cmd != nil {
		t.Errorf("t on today should be a no-op")
	}

	m.SetDay(friday.AddDate(0, 0, -3), nil)
	_, cmd = m.Update(runes("t"))
	if msg, ok := cmd().(ShiftDayMsg); !ok || msg.Days != 3 {
		t.Errorf("t produced %+v, want ShiftDayMsg{3}", cmd())
	}
}

func TestPendingAndEmptyView(t *testing.T) {
	m := New(testItems(), friday, friday, 80, 20)
	if got := m.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
	if !strings.Contains(m.View(), "Pending: 1") {
		t.Errorf("header missing pending count:\n%s", m.View())
	}

	m.SetDay(friday, nil)
	if !strings.Contains(m.View(), "NO OBJECTIVES SCHEDULED") {
		t.Errorf("empty view = %q", m.View())
	}
	if _, cmd := m.Update(runes("y")); cmd != nil {
		t.Errorf("y with no rows should not emit a command")
	}
}

func TestItemRendering(t *testing.T) {
	items := testItems()
	tests := []struct {
		item  Item
		title string
		desc  string
	}{
		{Item{items[0]}, "[ ] Read?", "Fri"},
		{Item{items[1]}, "[✗] Run?", "Fri"},
		{Item{items[2]}, "[-] Rest?", "Sun | off schedule"},
	}
	for _, tt := range tests {
		if got := tt.item.Title(); got != tt.title {
			t.Errorf("Title() = %q, want %q", got, tt.title)
		}
		if got := tt.item.Description(); got != tt.desc {
			t.Errorf("Description() = %q, want %q", got, tt.desc)
		}
	}
}
