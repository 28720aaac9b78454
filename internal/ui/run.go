package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, deps Deps) error {
	m, err := newModel(ctx, deps)
	if err != nil {
		return err
	}
	defer m.cancel()
	defer m.scanner.Cancel()
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
