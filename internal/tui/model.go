package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/journal"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/tui/components/daily"
	"github.com/julianstephens/alog/internal/tui/components/questions"
	"github.com/julianstephens/alog/internal/tui/components/stats"
	"github.com/julianstephens/alog/internal/utils"
	"github.com/julianstephens/alog/internal/validation"
)

// tabCount is the number of tabbed views; states below it are tabs.
const tabCount = 3

type QuestionFormModel struct {
	Text string
	Days []int
}

type Model struct {
	journal              *journal.Journal
	settings             models.Settings
	today                time.Time
	state                constants.SessionState
	keys                 KeyMap
	help                 help.Model
	dailyModel           daily.Model
	questionsModel       questions.Model
	statsModel           stats.Model
	form                 *huh.Form
	questionForm         *QuestionFormModel
	editingQuestion      *models.Question
	questionToDeleteID   string
	questionToDeleteText string
	formError            string
	validationWarning    string
	quitting             bool
	width                int
	height               int
}

func NewModel(j *journal.Journal, settings models.Settings, today time.Time) Model {
	models.ApplyDefaultSettings(&settings)
	today = utils.StripTime(today)
	g, err := models.ParseGranularity(settings.DefaultGranularity)
	if err != nil {
		g = models.GranularityDay
	}

	m := Model{
		journal:        j,
		settings:       settings,
		today:          today,
		state:          constants.StateDaily,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dailyModel:     daily.New(j.Day(today), today, today, 0, 0),
		questionsModel: questions.New(j.Questions(), 0, 0),
		statsModel:     stats.New(j, today, settings.DefaultPreset, g, 0, 0),
	}
	m.updateValidationStatus()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.NextView, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDaily:
		dk := daily.DefaultKeyMap()
		keys = append(keys, dk.Yes, dk.No)
	case constants.StateQuestions:
		qk := questions.DefaultKeyMap()
		keys = append(keys, qk.Add, qk.Delete)
	case constants.StateStats:
		keys = append(keys, m.statsModel.HelpKeys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{
		m.keys.NextView, m.keys.PrevView,
		m.keys.Daily, m.keys.Questions, m.keys.Analytics,
		m.keys.Reload, m.keys.Quit, m.keys.Help,
	}

	var actions []key.Binding
	switch m.state {
	case constants.StateDaily:
		dk := daily.DefaultKeyMap()
		actions = []key.Binding{dk.Yes, dk.No, dk.PrevDay, dk.NextDay, dk.Today}
	case constants.StateQuestions:
		qk := questions.DefaultKeyMap()
		actions = []key.Binding{qk.Add, qk.Edit, qk.Delete}
	case constants.StateStats:
		actions = m.statsModel.HelpKeys()
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh rebuilds every view from the journal snapshot.
func (m *Model) refresh() {
	date := m.dailyModel.Date()
	m.dailyModel.SetDay(date, m.journal.Day(date))
	m.questionsModel.SetQuestions(m.journal.Questions())
	m.statsModel.Refresh()
	m.updateValidationStatus()
}

// reload discards the snapshot and reads the journal back from storage, for
// edits made by the CLI while the TUI is open.
func (m *Model) reload() {
	if err := m.journal.Reload(); err != nil {
		logger.Error("failed to reload journal", "error", err)
		m.formError = err.Error()
	} else {
		m.formError = ""
	}
	m.refresh()
}

func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateQuestions(m.journal.Questions(), m.journal.Projects())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
