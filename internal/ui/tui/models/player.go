package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/components"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/util"
)

const (
	skipSeconds = 10
	volumeStep  = 0.05
)

// PlayerModel renders the active playback session and translates key presses
// into session controls
type PlayerModel struct {
	deps          Deps
	width, height int
	session       *player.Session
	snapshot      player.Snapshot
}

func NewPlayerModel(deps Deps, session *player.Session) *PlayerModel {
	return &PlayerModel{
		deps:     deps,
		session:  session,
		snapshot: session.Snapshot(),
	}
}

func (m *PlayerModel) Init() tea.Cmd {
	return listenForUpdates(m.session)
}

func (m *PlayerModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// listenForUpdates waits for the next session change and delivers a fresh
// snapshot.  The app re-arms it after every PlaybackUpdateMsg until the
// session closes.
func listenForUpdates(session *player.Session) tea.Cmd {
	return func() tea.Msg {
		<-session.Updates()
		return PlaybackUpdateMsg{Snapshot: session.Snapshot()}
	}
}

func (m *PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case PlaybackUpdateMsg:
		// Snapshots from a session other than ours are stale; drop them
		if msg.Snapshot.ID != m.snapshot.ID {
			return m, nil
		}
		m.snapshot = msg.Snapshot
		if m.snapshot.State == player.StateClosed {
			return m, func() tea.Msg { return PlaybackClosedMsg{} }
		}
		return m, listenForUpdates(m.session)
	}
	return m, nil
}

func (m *PlayerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key counts as activity and brings the controls back
	m.session.ShowControls()

	// Control errors are ignored here: the only one a key can produce is
	// ErrControlUnsupported, and the view already explains that embedded
	// sources have no controls
	switch keybindings.GetActionByKey(msg, keybindings.ContextPlayer) {
	case keybindings.ActionTogglePlay:
		_ = m.session.TogglePlay()
	case keybindings.ActionSkipBack:
		_ = m.session.Skip(-skipSeconds)
	case keybindings.ActionSkipForward:
		_ = m.session.Skip(skipSeconds)
	case keybindings.ActionVolumeUp:
		_ = m.session.SetVolume(m.snapshot.Volume + volumeStep)
	case keybindings.ActionVolumeDown:
		_ = m.session.SetVolume(m.snapshot.Volume - volumeStep)
	case keybindings.ActionToggleMute:
		_ = m.session.ToggleMute()
	case keybindings.ActionRetry:
		if m.snapshot.State == player.StateFailed {
			source := m.snapshot.Source
			return m, func() tea.Msg { return PlayRequestMsg{Source: source} }
		}
	case keybindings.ActionClosePlayer:
		m.deps.Manager.CloseActive()
		return m, func() tea.Msg { return PlaybackClosedMsg{} }
	}

	m.snapshot = m.session.Snapshot()
	return m, nil
}

func (m *PlayerModel) View() string {
	contentWidth := m.width - 8
	if contentWidth > 90 {
		contentWidth = 90
	}

	snap := m.snapshot
	header := styles.Header(contentWidth, "Now Playing")

	var b strings.Builder
	b.WriteString(styles.Info.Bold(true).Render(util.TruncateString(snap.Source.Title, contentWidth-4)) + "\n\n")

	switch snap.State {
	case player.StateLoading:
		b.WriteString(styles.Info.Render("Loading..."))
	case player.StateFailed:
		b.WriteString(styles.Error.Render("Playback failed"))
		if snap.Err != nil {
			b.WriteString("\n" + styles.Subtle.Render(snap.Err.Error()))
		}
	default:
		if snap.Capability == player.OpaqueEmbed {
			b.WriteString(styles.Info.Render("Playing in your browser") + "\n")
			b.WriteString(styles.Subtle.Render("This source is embedded; playback controls are in the browser."))
		} else {
			b.WriteString(m.viewTransport(contentWidth - 4))
		}
	}

	body := styles.ContentBox(contentWidth, b.String(), 1)

	sections := []string{header, body}
	if snap.ControlsVisible || snap.State == player.StateFailed {
		sections = append(sections, m.keyBar(contentWidth))
	}

	return styles.CenteredView(m.width, m.height,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m *PlayerModel) viewTransport(width int) string {
	snap := m.snapshot

	stateLabel := "▶ Playing"
	if snap.State == player.StatePaused {
		stateLabel = "⏸ Paused"
	}

	volume := fmt.Sprintf("Vol %3.0f%%", snap.Volume*100)
	if snap.Muted {
		volume = "Muted"
	}

	barWidth := width - 2
	if barWidth < 10 {
		barWidth = 10
	}

	timeline := fmt.Sprintf("%s / %s",
		util.FormatTime(snap.Position),
		util.FormatTime(snap.Duration))

	return styles.Info.Render(stateLabel) + "   " + styles.Subtle.Render(volume) + "\n\n" +
		renderProgressBar(barWidth, snap.Position, snap.Duration) + "\n" +
		styles.Subtle.Render(timeline)
}

func renderProgressBar(width int, position, duration float64) string {
	filled := 0
	if duration > 0 {
		filled = int(position / duration * float64(width))
		if filled > width {
			filled = width
		}
	}
	return styles.Selected.Render(strings.Repeat("━", filled)) +
		styles.Subtle.Render(strings.Repeat("─", width-filled))
}

func (m *PlayerModel) keyBar(width int) string {
	if m.snapshot.State == player.StateFailed {
		return components.KeyBindingsBar(width, []components.KeyBinding{
			{Key: "r", Desc: "retry"},
			{Key: "esc", Desc: "close"},
		})
	}
	if m.snapshot.Capability == player.OpaqueEmbed {
		return components.KeyBindingsBar(width, []components.KeyBinding{
			{Key: "esc", Desc: "close"},
		})
	}
	return components.KeyBindingsBar(width, []components.KeyBinding{
		{Key: "space", Desc: "play/pause"},
		{Key: "←/→", Desc: "skip 10s"},
		{Key: "↑/↓", Desc: "volume"},
		{Key: "m", Desc: "mute"},
		{Key: "esc", Desc: "close"},
	})
}
