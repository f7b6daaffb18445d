package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/presets"
	corestats "github.com/julianstephens/alog/internal/stats"
	"github.com/julianstephens/alog/internal/utils"
)

// Source produces chart buckets for a range. *journal.Journal satisfies it.
type Source interface {
	Aggregate(r models.DateRange, g models.Granularity) []models.ChartDataPoint
}

var (
	yesStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	noStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	rangeStyle   = lipgloss.NewStyle().Background(lipgloss.Color("24"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const (
	barRune = "█"
	dueRune = "░"
)

type KeyMap struct {
	NextPreset  key.Binding
	PrevPreset  key.Binding
	Granularity key.Binding
	Pick        key.Binding
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Cancel      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPreset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next preset"),
		),
		PrevPreset: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "prev preset"),
		),
		Granularity: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "granularity"),
		),
		Pick: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom range"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "pick day"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close picker"),
		),
	}
}

type Model struct {
	src         Source
	keys        KeyMap
	today       time.Time
	catalog     presets.Catalog
	labels      []string
	presetIdx   int
	granularity models.Granularity
	selection   presets.Selection
	picking     bool
	cursor      time.Time
	points      []models.ChartDataPoint
	width       int
	height      int
}

// New builds the analytics view starting on preset (falling back to the
// default preset when unknown) at granularity g.
func New(src Source, today time.Time, preset string, g models.Granularity, width, height int) Model {
	catalog := presets.Generate(today)
	idx := catalog.Index(preset)
	if idx < 0 {
		idx = max(catalog.Index(constants.DefaultPreset), 0)
	}
	if _, err := models.ParseGranularity(string(g)); err != nil {
		g = models.GranularityDay
	}

	m := Model{
		src:         src,
		keys:        DefaultKeyMap(),
		today:       utils.StripTime(today),
		catalog:     catalog,
		labels:      catalog.Labels(),
		presetIdx:   idx,
		granularity: g,
		width:       width,
		height:      height,
	}
	r, _ := catalog.Find(m.labels[idx])
	m.selection = presets.NewSelection(r)
	m.cursor = m.today
	m.Refresh()
	return m
}

// Refresh re-aggregates the current selection. A half-picked custom range
// keeps the previous chart.
func (m *Model) Refresh() {
	if m.selection.Pending() {
		return
	}
	m.points = m.src.Aggregate(m.selection.Range(), m.granularity)
}

func (m Model) Range() models.DateRange {
	return m.selection.Range()
}

func (m Model) Granularity() models.Granularity {
	return m.granularity
}

func (m Model) Points() []models.ChartDataPoint {
	return m.points
}

// Picking reports whether the custom range picker is open.
func (m Model) Picking() bool {
	return m.picking
}

func (m Model) Cursor() time.Time {
	return m.cursor
}

func (m Model) Summary() corestats.Summary {
	return corestats.Summarize(m.points)
}

// HelpKeys lists the bindings active in the current mode.
func (m Model) HelpKeys() []key.Binding {
	if m.picking {
		return []key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Cancel}
	}
	return []key.Binding{m.keys.NextPreset, m.keys.PrevPreset, m.keys.Granularity, m.keys.Pick}
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.picking {
		m.updatePicker(keyMsg)
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.NextPreset):
		m.applyPreset(m.presetIdx + 1)
	case key.Matches(keyMsg, m.keys.PrevPreset):
		m.applyPreset(m.presetIdx - 1)
	case key.Matches(keyMsg, m.keys.Granularity):
		m.granularity = nextGranularity(m.granularity)
		m.Refresh()
	case key.Matches(keyMsg, m.keys.Pick):
		m.picking = true
		m.cursor = utils.StripTime(m.selection.Range().End)
	}
	return m, nil
}

func (m *Model) applyPreset(i int) {
	n := len(m.labels)
	m.presetIdx = (i%n + n) % n
	r, _ := m.catalog.Find(m.labels[m.presetIdx])
	m.selection.Apply(r)
	m.Refresh()
}

func (m *Model) updatePicker(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor = utils.AddDays(m.cursor, -1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = utils.AddDays(m.cursor, 1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = utils.AddDays(m.cursor, -7)
	case key.Matches(msg, m.keys.Down):
		m.cursor = utils.AddDays(m.cursor, 7)
	case key.Matches(msg, m.keys.Select):
		m.selection.Click(m.cursor)
		if !m.selection.Pending() {
			m.picking = false
			m.Refresh()
		}
	case key.Matches(msg, m.keys.Cancel):
		m.picking = false
		if m.selection.Pending() {
			m.applyPreset(m.presetIdx)
		}
	}
}

func nextGranularity(g models.Granularity) models.Granularity {
	for i, cur := range models.Granularities {
		if cur == g {
			return models.Granularities[(i+1)%len(models.Granularities)]
		}
	}
	return models.GranularityDay
}

func (m Model) View() string {
	r := m.selection.Range()
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s → %s  [%s]\n\n",
		titleStyle.Render(strings.ToUpper(r.Label)),
		utils.FormatDateKey(r.Start), utils.FormatDateKey(r.End),
		strings.ToUpper(string(m.granularity)))

	if m.picking {
		b.WriteString(m.viewPicker())
		return b.String()
	}

	b.WriteString(m.viewChart())
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(FormatSummary(m.Summary())))
	return b.String()
}

// FormatSummary renders the one-line totals footer.
func FormatSummary(s corestats.Summary) string {
	return fmt.Sprintf("YES %d  NO %d  DUE %d  ANSWERED %d  ADHERENCE %.0f%%",
		s.Yes, s.No, s.Due, s.Answered, s.Adherence*100)
}

func (m Model) viewChart() string {
	maxTotal := 0
	labelWidth := 0
	for _, p := range m.points {
		maxTotal = max(maxTotal, p.Total, p.Yes+p.No)
		labelWidth = max(labelWidth, lipgloss.Width(p.Key))
	}
	if maxTotal == 0 {
		return "NO DATA IN RANGE\n"
	}

	barWidth := max(m.width-labelWidth-14, 10)
	var b strings.Builder
	for _, p := range m.points {
		yes, no, due := BarCells(p, maxTotal, barWidth)
		fmt.Fprintf(&b, "%s │%s%s%s %d/%d\n",
			labelStyle.Render(fmt.Sprintf("%*s", labelWidth, p.Key)),
			yesStyle.Render(strings.Repeat(barRune, yes)),
			noStyle.Render(strings.Repeat(barRune, no)),
			dueStyle.Render(strings.Repeat(dueRune, due)),
			p.Yes, p.Total)
	}
	return b.String()
}

// BarCells splits width cells between yes, no and the unanswered remainder of
// a bucket, scaled so a bucket of maxTotal fills the whole width.
func BarCells(p models.ChartDataPoint, maxTotal, width int) (yes, no, due int) {
	if maxTotal <= 0 || width <= 0 {
		return 0, 0, 0
	}
	total := max(p.Total, p.Yes+p.No)
	full := total * width / maxTotal
	yes = p.Yes * width / maxTotal
	no = p.No * width / maxTotal
	if yes+no > full {
		no = full - yes
	}
	return yes, no, full - yes - no
}

func (m Model) viewPicker() string {
	var b strings.Builder
	start := utils.StartOfMonth(m.cursor)
	b.WriteString(titleStyle.Render(start.Format("January 2006")))
	b.WriteString("\nSu Mo Tu We Th Fr Sa\n")

	b.WriteString(strings.Repeat("   ", int(start.Weekday())))
	for day := start; !day.After(utils.EndOfMonth(m.cursor)); day = utils.AddDays(day, 1) {
		cell := fmt.Sprintf("%2d", day.Day())
		switch {
		case day.Equal(m.cursor):
			cell = cursorStyle.Render(cell)
		case m.selection.Contains(day):
			cell = rangeStyle.Render(cell)
		}
		b.WriteString(cell)
		if day.Weekday() == time.Saturday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	b.WriteString("\n\n")
	if m.selection.Pending() {
		fmt.Fprintf(&b, "From %s, pick the end day.", utils.FormatDateKey(m.selection.Range().Start))
	} else {
		b.WriteString("Pick the first day of the range.")
	}
	return b.String()
}
