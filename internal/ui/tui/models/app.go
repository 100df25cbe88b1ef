package models

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PizzaHomicide/hotaru/internal/log"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
)

// selectedProfileKey is where the last used profile id is remembered
const selectedProfileKey = "selected_profile"

// sessionOpenedMsg is internal to the app model: the manager finished opening
// a playback session
type sessionOpenedMsg struct {
	session *player.Session
}

// AppModel is the top level coordinator.  It owns which view is active, routes
// messages to child models and handles the keys that work everywhere.
type AppModel struct {
	deps          Deps
	width, height int

	view     View
	prevView View // where to return when the player closes
	modal    Modal

	auth     *AuthModel
	profiles *ProfilesModel
	browse   *BrowseModel
	music    *MusicModel
	playerUI *PlayerModel
	detail   *DetailModel
	help     *HelpModel

	// Spinner shown while a playback session is being opened
	loading *LoadingModel
}

func NewAppModel(deps Deps) *AppModel {
	m := &AppModel{
		deps:     deps,
		view:     ViewAuth,
		prevView: ViewBrowse,
		modal:    ModalNone,
		auth:     NewAuthModel(deps),
		profiles: NewProfilesModel(deps),
		browse:   NewBrowseModel(deps),
		music:    NewMusicModel(deps),
	}

	// A resumed token skips the sign in form entirely
	if deps.Auth.CurrentUser() != nil {
		m.view = ViewProfiles
	}
	return m
}

func (m *AppModel) Init() tea.Cmd {
	if m.view == ViewProfiles {
		return m.profiles.Init()
	}
	return m.auth.Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, child := range m.children() {
			child.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

	case AuthCompletedMsg:
		log.Info("Signed in", "email", msg.User.Email)
		m.view = ViewProfiles
		return m, m.profiles.Init()

	case ProfileSelectedMsg:
		return m, m.selectProfile(msg)

	case OpenDetailsMsg:
		m.detail = NewDetailModel(m.deps, msg.Content)
		m.detail.Resize(m.width, m.height)
		m.modal = ModalDetails
		return m, nil

	case TabChangedMsg:
		if msg.Tab == TabMusic {
			m.view = ViewMusic
		} else {
			m.view = ViewBrowse
			m.browse.SetTab(msg.Tab)
		}
		return m, nil

	case PlayRequestMsg:
		m.modal = ModalNone
		if m.view != ViewPlayer {
			m.prevView = m.view
		}
		m.loading = NewLoadingModel("Starting playback...")
		m.loading.Resize(m.width, m.height)
		return m, tea.Batch(m.loading.Init(), m.openSession(msg.Source))

	case sessionOpenedMsg:
		m.loading = nil
		m.playerUI = NewPlayerModel(m.deps, msg.session)
		m.playerUI.Resize(m.width, m.height)
		m.view = ViewPlayer
		return m, m.playerUI.Init()

	case PlaybackClosedMsg:
		m.playerUI = nil
		m.view = m.prevView
		return m, nil
	}

	return m.routeToChild(msg)
}

// handleGlobalKey deals with the keys that work in every view.  It reports
// whether the key was consumed.
func (m *AppModel) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Text-entry modes get every key except ctrl+c
	inTextEntry := (m.view == ViewBrowse && m.browse.searchMode && m.modal == ModalNone) ||
		(m.view == ViewMusic && m.music.searchMode && m.modal == ModalNone) ||
		m.view == ViewAuth ||
		(m.view == ViewProfiles && m.profiles.creating)

	switch keybindings.GetActionByKey(msg, keybindings.ContextGlobal) {
	case keybindings.ActionQuit:
		m.deps.Manager.CloseActive()
		return true, tea.Quit

	case keybindings.ActionToggleHelp:
		if m.modal == ModalHelp {
			m.modal = ModalNone
		} else {
			m.help = NewHelpModel(m.helpContext())
			m.help.Resize(m.width, m.height)
			m.modal = ModalHelp
		}
		return true, nil

	case keybindings.ActionSignOut:
		if m.view == ViewAuth || inTextEntry {
			return false, nil
		}
		return true, m.signOut()

	case keybindings.ActionBack:
		if m.modal != ModalNone {
			m.modal = ModalNone
			return true, nil
		}
		// Views with their own esc handling (search mode, the player,
		// profile creation) see the key themselves
		return false, nil
	}

	return false, nil
}

// helpContext is the binding context help should document for the active view
func (m *AppModel) helpContext() keybindings.ContextName {
	switch m.view {
	case ViewAuth:
		return keybindings.ContextAuth
	case ViewProfiles:
		return keybindings.ContextProfiles
	case ViewMusic:
		return keybindings.ContextMusic
	case ViewPlayer:
		return keybindings.ContextPlayer
	default:
		if m.modal == ModalDetails {
			return keybindings.ContextDetails
		}
		return keybindings.ContextBrowse
	}
}

func (m *AppModel) selectProfile(msg ProfileSelectedMsg) tea.Cmd {
	m.deps.Manager.SetProfile(msg.Profile.ID)
	if err := m.deps.KV.Set(selectedProfileKey, msg.Profile.ID); err != nil {
		log.Warn("Failed to remember selected profile", "error", err)
	}
	// The configured start tab decides where browsing begins
	m.view = ViewBrowse
	if tab, ok := TabFromName(m.deps.Config.UI.StartTab); ok {
		if tab == TabMusic {
			m.view = ViewMusic
		} else {
			m.browse.SetTab(tab)
		}
	}
	return m.browse.Init()
}

// openSession opens playback through the manager.  Even on error the session
// exists in the Failed state, so the player view always has something to show.
func (m *AppModel) openSession(source player.Source) tea.Cmd {
	manager := m.deps.Manager
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		session, err := manager.Open(ctx, source)
		if err != nil {
			log.Warn("Playback session opened in failed state", "error", err, "title", source.Title)
		}
		return sessionOpenedMsg{session: session}
	}
}

func (m *AppModel) signOut() tea.Cmd {
	m.deps.Manager.CloseActive()
	if err := m.deps.KV.Delete(selectedProfileKey); err != nil {
		log.Warn("Failed to clear selected profile", "error", err)
	}

	auth := m.deps.Auth
	m.view = ViewAuth
	m.modal = ModalNone
	m.playerUI = nil
	m.auth.Reset()
	m.profiles = NewProfilesModel(m.deps)
	m.profiles.Resize(m.width, m.height)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := auth.SignOut(ctx); err != nil {
			log.Warn("Sign out cleanup failed", "error", err)
		}
		return nil
	}
}

// routeToChild delivers a message to the modal when one is up, otherwise to
// the active view.  Catalog and wishlist changes fan out to every view that
// renders them.
func (m *AppModel) routeToChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The loading spinner owns its tick messages while it is up
	if _, isTick := msg.(spinner.TickMsg); isTick && m.loading != nil {
		_, cmd := m.loading.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case CatalogLoadedMsg, CatalogErrorMsg:
		_, cmd := m.browse.Update(msg)
		_, musicCmd := m.music.Update(msg)
		return m, tea.Batch(cmd, musicCmd)

	case WishlistChangedMsg:
		_, cmd := m.browse.Update(msg)
		var detailCmd tea.Cmd
		if m.detail != nil {
			_, detailCmd = m.detail.Update(msg)
		}
		return m, tea.Batch(cmd, detailCmd)

	case PlaybackUpdateMsg:
		if m.playerUI == nil {
			return m, nil
		}
		_, cmd := m.playerUI.Update(msg)
		return m, cmd
	}

	if _, isKey := msg.(tea.KeyMsg); isKey && m.modal != ModalNone {
		switch m.modal {
		case ModalDetails:
			_, cmd := m.detail.Update(msg)
			return m, cmd
		case ModalHelp:
			// Help consumes keys but acts on none of them
			return m, nil
		}
	}

	switch m.view {
	case ViewAuth:
		_, cmd := m.auth.Update(msg)
		return m, cmd
	case ViewProfiles:
		_, cmd := m.profiles.Update(msg)
		return m, cmd
	case ViewBrowse:
		_, cmd := m.browse.Update(msg)
		return m, cmd
	case ViewMusic:
		_, cmd := m.music.Update(msg)
		return m, cmd
	case ViewPlayer:
		if m.playerUI == nil {
			return m, nil
		}
		_, cmd := m.playerUI.Update(msg)
		return m, cmd
	}

	return m, nil
}

// children collects the models that exist right now, for resize fan-out
func (m *AppModel) children() []interface{ Resize(width, height int) } {
	children := []interface{ Resize(width, height int) }{
		m.auth, m.profiles, m.browse, m.music,
	}
	if m.playerUI != nil {
		children = append(children, m.playerUI)
	}
	if m.detail != nil {
		children = append(children, m.detail)
	}
	if m.help != nil {
		children = append(children, m.help)
	}
	if m.loading != nil {
		children = append(children, m.loading)
	}
	return children
}

func (m *AppModel) View() string {
	if m.loading != nil {
		return m.loading.View()
	}

	switch m.modal {
	case ModalHelp:
		return m.help.View()
	case ModalDetails:
		return m.detail.View()
	}

	switch m.view {
	case ViewAuth:
		return m.auth.View()
	case ViewProfiles:
		return m.profiles.View()
	case ViewBrowse:
		return m.browse.View()
	case ViewMusic:
		return m.music.View()
	case ViewPlayer:
		if m.playerUI == nil {
			return ""
		}
		return m.playerUI.View()
	}
	return ""
}
