// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program around the preview model
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the preview TUI and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
