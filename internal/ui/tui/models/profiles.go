package models

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/components"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
)

// avatarGlyphs are the selectable profile avatars, addressed by AvatarIndex
var avatarGlyphs = []string{"🦊", "🐱", "🐼", "🐸", "🦉", "🐙", "🦄", "🐧"}

// ProfilesModel handles the "who's watching" profile picker
type ProfilesModel struct {
	deps          Deps
	width, height int
	loading       bool
	loadError     error
	profiles      []*domain.Profile
	cursor        int

	// Create-profile sub-mode
	creating    bool
	nameInput   textinput.Model
	avatarIndex int
	errMsg      string
}

func NewProfilesModel(deps Deps) *ProfilesModel {
	name := textinput.New()
	name.Placeholder = "Profile name"
	name.CharLimit = 30
	name.Width = 30

	return &ProfilesModel{
		deps:      deps,
		loading:   true,
		nameInput: name,
	}
}

func (m *ProfilesModel) Init() tea.Cmd {
	m.loading = true
	m.loadError = nil
	return m.loadProfiles()
}

func (m *ProfilesModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ProfilesModel) loadProfiles() tea.Cmd {
	repo := m.deps.Profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		profiles, err := repo.ListProfiles(ctx)
		if err != nil {
			log.Error("Failed to load profiles", "error", err)
			return ProfilesErrorMsg{Error: err}
		}
		return ProfilesLoadedMsg{Profiles: profiles}
	}
}

func (m *ProfilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.creating {
			return m.updateCreating(msg)
		}
		return m.updateList(msg)

	case ProfilesLoadedMsg:
		m.loading = false
		m.creating = false
		m.profiles = msg.Profiles
		if m.cursor >= len(m.profiles) {
			m.cursor = 0
		}
		return m, nil

	case ProfilesErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil
	}

	return m, nil
}

func (m *ProfilesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keybindings.GetActionByKey(msg, keybindings.ContextProfiles) {
	case keybindings.ActionMoveUp, keybindings.ActionMoveLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case keybindings.ActionMoveDown, keybindings.ActionMoveRight:
		if len(m.profiles) > 0 && m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
	case keybindings.ActionSelectProfile:
		if profile := m.selected(); profile != nil {
			log.Info("Profile selected", "id", profile.ID, "name", profile.Name)
			return m, func() tea.Msg { return ProfileSelectedMsg{Profile: profile} }
		}
	case keybindings.ActionNewProfile:
		if len(m.profiles) >= domain.MaxProfiles {
			m.errMsg = fmt.Sprintf("An account can have at most %d profiles", domain.MaxProfiles)
			return m, nil
		}
		m.creating = true
		m.errMsg = ""
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink
	case keybindings.ActionDeleteProfile:
		if profile := m.selected(); profile != nil {
			if profile.IsMain {
				m.errMsg = "The main profile cannot be deleted"
				return m, nil
			}
			m.loading = true
			return m, m.deleteProfile(profile.ID)
		}
	}
	return m, nil
}

func (m *ProfilesModel) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creating = false
		return m, nil
	case "enter":
		m.loading = true
		return m, m.createProfile(m.nameInput.Value(), m.avatarIndex)
	case "left":
		m.avatarIndex = (m.avatarIndex - 1 + len(avatarGlyphs)) % len(avatarGlyphs)
		return m, nil
	case "right":
		m.avatarIndex = (m.avatarIndex + 1) % len(avatarGlyphs)
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *ProfilesModel) createProfile(name string, avatarIndex int) tea.Cmd {
	repo := m.deps.Profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := repo.CreateProfile(ctx, name, avatarIndex); err != nil {
			log.Warn("Failed to create profile", "error", err)
			return ProfilesErrorMsg{Error: err}
		}

		// Reload so the list reflects what the service actually stored
		profiles, err := repo.ListProfiles(ctx)
		if err != nil {
			return ProfilesErrorMsg{Error: err}
		}
		return ProfilesLoadedMsg{Profiles: profiles}
	}
}

func (m *ProfilesModel) deleteProfile(id string) tea.Cmd {
	repo := m.deps.Profiles
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := repo.DeleteProfile(ctx, id); err != nil {
			log.Warn("Failed to delete profile", "error", err)
			return ProfilesErrorMsg{Error: err}
		}

		profiles, err := repo.ListProfiles(ctx)
		if err != nil {
			return ProfilesErrorMsg{Error: err}
		}
		return ProfilesLoadedMsg{Profiles: profiles}
	}
}

func (m *ProfilesModel) selected() *domain.Profile {
	if len(m.profiles) == 0 || m.cursor >= len(m.profiles) {
		return nil
	}
	return m.profiles[m.cursor]
}

func (m *ProfilesModel) View() string {
	contentWidth := min(m.width, 80)
	header := styles.Header(contentWidth, "Who's watching?")

	if m.loading {
		return styles.CenteredView(m.width, m.height, header+"\n\nLoading profiles...")
	}

	if m.loadError != nil {
		errorMsg := fmt.Sprintf("Error loading profiles: %v", m.loadError)
		return styles.CenteredView(m.width, m.height,
			lipgloss.JoinVertical(lipgloss.Center, header, styles.ContentBox(contentWidth-10, styles.Error.Render(errorMsg), 1)))
	}

	if m.creating {
		return m.viewCreating(contentWidth, header)
	}

	var rows []string
	for i, profile := range m.profiles {
		avatar := avatarGlyphs[profile.AvatarIndex%len(avatarGlyphs)]
		label := fmt.Sprintf("%s  %s", avatar, profile.Name)
		if profile.IsMain {
			label += "  (main)"
		}
		if i == m.cursor {
			rows = append(rows, styles.Selected.Padding(0, 1).Render(label))
		} else {
			rows = append(rows, styles.Info.Padding(0, 1).Render(label))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, styles.Subtle.Render("No profiles yet.  Press 'n' to create one."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.errMsg != "" {
		content += "\n\n" + styles.Error.Render(m.errMsg)
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)
	keyBar := components.KeyBindingsBar(contentWidth, []components.KeyBinding{
		{Key: "enter", Desc: "select"},
		{Key: "n", Desc: "new profile"},
		{Key: "ctrl+d", Desc: "delete"},
		{Key: "ctrl+l", Desc: "sign out"},
	})

	return styles.CenteredView(m.width, m.height,
		lipgloss.JoinVertical(lipgloss.Center, header, mainContent, keyBar))
}

func (m *ProfilesModel) viewCreating(contentWidth int, header string) string {
	avatarRow := ""
	for i, glyph := range avatarGlyphs {
		if i == m.avatarIndex {
			avatarRow += styles.Selected.Render(" "+glyph+" ") + " "
		} else {
			avatarRow += " " + glyph + "  "
		}
	}

	content := styles.Info.Render("New profile") + "\n\n" +
		m.nameInput.View() + "\n\n" +
		avatarRow
	if m.errMsg != "" {
		content += "\n\n" + styles.Error.Render(m.errMsg)
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)
	keyBar := components.KeyBindingsBar(contentWidth, []components.KeyBinding{
		{Key: "enter", Desc: "create"},
		{Key: "left/right", Desc: "pick avatar"},
		{Key: "esc", Desc: "cancel"},
	})

	return styles.CenteredView(m.width, m.height,
		lipgloss.JoinVertical(lipgloss.Center, header, mainContent, keyBar))
}
