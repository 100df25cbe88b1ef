// Package tui wires the bubbletea program together
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PizzaHomicide/hotaru/internal/log"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/models"
)

// Run starts the TUI and blocks until the user quits
func Run(deps models.Deps) error {
	app := models.NewAppModel(deps)

	p := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting TUI")
	_, err := p.Run()
	return err
}
