package models

import (
	"context"
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

// authMode distinguishes the sign in form from the sign up form
type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

// AuthModel handles the sign in / sign up form
type AuthModel struct {
	deps          Deps
	width, height int
	mode          authMode
	inputs        []textinput.Model
	focused       int
	submitting    bool
	errMsg        string
}

const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
)

func NewAuthModel(deps Deps) *AuthModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.CharLimit = 100
	confirm.Width = 40
	confirm.EchoMode = textinput.EchoPassword

	return &AuthModel{
		deps:    deps,
		inputs:  []textinput.Model{email, password, confirm},
		focused: fieldEmail,
	}
}

func (m *AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AuthModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Reset clears the form so it is ready for a fresh sign in
func (m *AuthModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = fieldEmail
	m.inputs[fieldEmail].Focus()
	m.submitting = false
	m.errMsg = ""
}

func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch keybindings.GetActionByKey(msg, keybindings.ContextAuth) {
		case keybindings.ActionSubmit:
			return m, m.submit()
		case keybindings.ActionNextField:
			m.focusNext()
			return m, nil
		case keybindings.ActionSwitchMode:
			m.switchMode()
			return m, nil
		}
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focusPrev()
			return m, nil
		}

	case AuthFailedMsg:
		m.submitting = false
		m.errMsg = msg.Error
		return m, nil
	}

	// Everything else goes to the focused input
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// fieldCount is how many inputs the current mode shows
func (m *AuthModel) fieldCount() int {
	if m.mode == modeSignUp {
		return 3
	}
	return 2
}

func (m *AuthModel) focusNext() {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + 1) % m.fieldCount()
	m.inputs[m.focused].Focus()
}

func (m *AuthModel) focusPrev() {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused - 1 + m.fieldCount()) % m.fieldCount()
	m.inputs[m.focused].Focus()
}

func (m *AuthModel) switchMode() {
	if m.mode == modeSignIn {
		m.mode = modeSignUp
	} else {
		m.mode = modeSignIn
		if m.focused == fieldConfirm {
			m.inputs[m.focused].Blur()
			m.focused = fieldEmail
			m.inputs[m.focused].Focus()
		}
	}
	m.errMsg = ""
}

// submit runs the sign in or sign up against the service
func (m *AuthModel) submit() tea.Cmd {
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	confirm := m.inputs[fieldConfirm].Value()
	mode := m.mode
	auth := m.deps.Auth

	m.submitting = true
	m.errMsg = ""

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if mode == modeSignUp {
			err = auth.SignUp(ctx, email, password, confirm)
		} else {
			err = auth.SignIn(ctx, email, password)
		}
		if err != nil {
			log.Warn("Authentication failed", "error", err)
			return AuthFailedMsg{Error: err.Error()}
		}

		return AuthCompletedMsg{User: auth.CurrentUser()}
	}
}

func (m *AuthModel) View() string {
	contentWidth := min(m.width, 80)

	title := "Sign in to Hotaru"
	action := "sign in"
	other := "sign up"
	if m.mode == modeSignUp {
		title = "Create your Hotaru account"
		action = "sign up"
		other = "sign in"
	}

	header := styles.Header(contentWidth, "Hotaru")

	var content string
	content += styles.CenteredText(contentWidth-2, styles.Info.Render(title)) + "\n\n"

	for i := 0; i < m.fieldCount(); i++ {
		content += m.inputs[i].View() + "\n"
	}

	if m.submitting {
		content += "\n" + styles.Info.Render("Signing in...")
	} else if m.errMsg != "" {
		content += "\n" + styles.Error.Render(m.errMsg)
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)

	keyBar := components.KeyBindingsBar(contentWidth, []components.KeyBinding{
		{Key: "enter", Desc: action},
		{Key: "tab", Desc: "next field"},
		{Key: "ctrl+s", Desc: "switch to " + other},
		{Key: "ctrl+c", Desc: "quit"},
	})

	combinedContent := lipgloss.JoinVertical(lipgloss.Center, header, mainContent, keyBar)
	return styles.CenteredView(m.width, m.height, combinedContent)
}

// CurrentUser is a convenience used by the app model after auth completes
func (m *AuthModel) CurrentUser() *domain.User {
	return m.deps.Auth.CurrentUser()
}
