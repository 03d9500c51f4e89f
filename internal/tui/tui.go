package tui

import (
	"taskdeck/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(sess *session.Store, gw Gateway) error {
	m := newAppModel(sess, gw)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
