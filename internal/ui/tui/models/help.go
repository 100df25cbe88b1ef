package models

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
)

// HelpModel shows the key bindings for whichever context was active when help
// was opened, plus the global bindings
type HelpModel struct {
	width, height int
	context       keybindings.ContextName
}

func NewHelpModel(context keybindings.ContextName) *HelpModel {
	return &HelpModel{context: context}
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m *HelpModel) View() string {
	boxWidth := m.width - 10
	if boxWidth > 70 {
		boxWidth = 70
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Help") + "\n\n")

	if bindings, ok := keybindings.ContextBindings[m.context]; ok {
		b.WriteString(renderBindingSection(contextTitle(m.context), bindings))
		b.WriteString("\n")
	}
	b.WriteString(renderBindingSection("Global", keybindings.ContextBindings[keybindings.ContextGlobal]))

	b.WriteString("\n" + styles.Subtle.Render("Press ctrl+h or esc to close"))

	box := styles.ContentBox(boxWidth, b.String(), 1)
	return styles.CenteredView(m.width, m.height, box)
}

func renderBindingSection(title string, bindings []keybindings.Binding) string {
	out := styles.CategoryTitle.Render(title) + "\n"
	for _, binding := range bindings {
		key := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			key += "/" + binding.KeyMap.Secondary
		}
		out += styles.Info.Render("  "+key) + styles.Subtle.Render("  "+binding.KeyMap.Help) + "\n"
	}
	return out
}

func contextTitle(name keybindings.ContextName) string {
	switch name {
	case keybindings.ContextAuth:
		return "Sign in"
	case keybindings.ContextProfiles:
		return "Profiles"
	case keybindings.ContextBrowse:
		return "Browse"
	case keybindings.ContextDetails:
		return "Details"
	case keybindings.ContextMusic:
		return "Music"
	case keybindings.ContextPlayer:
		return "Player"
	case keybindings.ContextSearchMode:
		return "Search"
	default:
		return string(name)
	}
}
