package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	program := tea.NewProgram(
		newModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)

	_, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
