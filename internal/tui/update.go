package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/alog/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		bodyHeight := msg.Height - v - 4
		m.dailyModel.SetSize(msg.Width-h, bodyHeight)
		m.questionsModel.SetSize(msg.Width-h, bodyHeight)
		m.statsModel.SetSize(msg.Width-h, bodyHeight)
		return m, nil
	}

	switch m.state {
	case constants.StateAddQuestion:
		return m, m.handleQuestionForm(msg)
	case constants.StateConfirmDelete:
		return m, m.handleConfirmDelete(msg)
	}

	if handled, cmd := m.handleComponentMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case m.capturesKeys():
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextView):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.PrevView):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Daily):
			m.state = constants.StateDaily
			return m, nil
		case key.Matches(msg, m.keys.Questions):
			m.state = constants.StateQuestions
			return m, nil
		case key.Matches(msg, m.keys.Analytics):
			m.state = constants.StateStats
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDaily:
		m.dailyModel, cmd = m.dailyModel.Update(msg)
	case constants.StateQuestions:
		m.questionsModel, cmd = m.questionsModel.Update(msg)
	case constants.StateStats:
		m.statsModel, cmd = m.statsModel.Update(msg)
	}
	return m, cmd
}

// capturesKeys reports whether the active tab is in a text or picker mode
// that needs every key except ctrl+c.
func (m Model) capturesKeys() bool {
	switch m.state {
	case constants.StateQuestions:
		return m.questionsModel.Filtering()
	case constants.StateStats:
		return m.statsModel.Picking()
	}
	return false
}
