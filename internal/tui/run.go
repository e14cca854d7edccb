package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flycam/internal/session"
)

// Run blocks until the user quits the terminal view.
func Run(sess *session.Session, opts ...Option) error {
	p := tea.NewProgram(NewModel(sess, opts...), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
