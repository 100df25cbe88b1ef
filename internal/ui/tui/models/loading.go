package models

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
)

// LoadingModel is a reusable spinner overlay shown while something slow runs
type LoadingModel struct {
	width, height int
	message       string
	spinner       spinner.Model
}

func NewLoadingModel(message string) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &LoadingModel{
		message: message,
		spinner: s,
	}
}

func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *LoadingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *LoadingModel) SetMessage(message string) {
	m.message = message
}

func (m *LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *LoadingModel) View() string {
	return styles.CenteredView(
		m.width,
		m.height,
		fmt.Sprintf("%s %s", m.spinner.View(), m.message),
	)
}
