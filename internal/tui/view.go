package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/alog/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDaily:
		content = docStyle.Render(m.dailyModel.View())
	case constants.StateQuestions:
		content = docStyle.Render(m.questionsModel.View())
	case constants.StateStats:
		content = docStyle.Render(m.statsModel.View())
	case constants.StateAddQuestion:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render("Error: "+m.formError))
	}
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(m.validationWarning+" (run 'alog validate')"))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Daily", "Questions", "Analytics"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if p, ok := m.journal.Project(); ok {
		tabs = append(tabs, projectStyle.Render(p.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this question and all of its answers?"),
			fmt.Sprintf("%q", m.questionToDeleteText),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
