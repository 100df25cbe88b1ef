package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/components"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/util"
)

// MusicModel renders the music catalog: a track list with a genre filter and a
// fuzzy quick-filter
type MusicModel struct {
	deps          Deps
	width, height int
	cursor        int

	// Genre filter; empty string means all genres
	genre string

	searchMode  bool
	searchInput textinput.Model
	query       string
}

func NewMusicModel(deps Deps) *MusicModel {
	search := textinput.New()
	search.Placeholder = "Filter tracks..."
	search.CharLimit = 100
	search.Width = 40

	return &MusicModel{
		deps:        deps,
		searchInput: search,
	}
}

func (m *MusicModel) Init() tea.Cmd {
	return nil
}

func (m *MusicModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MusicModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearchMode(msg)
		}
		return m.updateList(msg)

	case CatalogLoadedMsg:
		m.clampCursor()
		return m, nil
	}
	return m, nil
}

func (m *MusicModel) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keybindings.GetActionByKey(msg, keybindings.ContextSearchMode) {
	case keybindings.ActionBack:
		m.searchMode = false
		m.searchInput.SetValue("")
		m.query = ""
		m.clampCursor()
		return m, nil
	case keybindings.ActionSearchComplete:
		m.searchMode = false
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	m.clampCursor()
	return m, cmd
}

func (m *MusicModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keybindings.GetActionByKey(msg, keybindings.ContextMusic) {
	case keybindings.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keybindings.ActionMoveDown:
		if tracks := m.visibleTracks(); m.cursor < len(tracks)-1 {
			m.cursor++
		}
	case keybindings.ActionMoveTop:
		m.cursor = 0
	case keybindings.ActionMoveBottom:
		if tracks := m.visibleTracks(); len(tracks) > 0 {
			m.cursor = len(tracks) - 1
		}
	case keybindings.ActionPlay:
		tracks := m.visibleTracks()
		if m.cursor < len(tracks) {
			track := tracks[m.cursor]
			source := player.Source{
				Track: &track,
				URL:   track.AudioURL,
				Title: fmt.Sprintf("%s - %s", track.Artist, track.Title),
			}
			return m, func() tea.Msg { return PlayRequestMsg{Source: source} }
		}
	case keybindings.ActionCycleGenre:
		m.cycleGenre()
	case keybindings.ActionEnableSearch:
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case keybindings.ActionNextTab:
		return m, func() tea.Msg { return TabChangedMsg{Tab: TabHome} }
	case keybindings.ActionPrevTab:
		return m, func() tea.Msg { return TabChangedMsg{Tab: TabMyList} }
	}
	return m, nil
}

// genres returns the distinct genre names present in the catalog, sorted
func (m *MusicModel) genres() []string {
	seen := map[string]bool{}
	for _, track := range m.deps.Catalog.Tracks() {
		if track.Genre != "" {
			seen[track.Genre] = true
		}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func (m *MusicModel) cycleGenre() {
	genres := m.genres()
	if len(genres) == 0 {
		return
	}
	if m.genre == "" {
		m.genre = genres[0]
	} else {
		next := ""
		for i, g := range genres {
			if g == m.genre && i+1 < len(genres) {
				next = genres[i+1]
			}
		}
		m.genre = next
	}
	m.cursor = 0
}

// visibleTracks applies the genre filter, then the quick-filter.  Short
// queries use substring matching; longer ones fall back to fuzzy matching so
// typos like "bohemain" still find the track.
func (m *MusicModel) visibleTracks() []domain.Track {
	tracks := m.deps.Catalog.Tracks()

	if m.genre != "" {
		var filtered []domain.Track
		for _, track := range tracks {
			if track.Genre == m.genre {
				filtered = append(filtered, track)
			}
		}
		tracks = filtered
	}

	query := strings.TrimSpace(m.query)
	if query == "" {
		return tracks
	}

	if substring := catalog.FilterTracks(query, tracks); len(substring) > 0 {
		return substring
	}

	var fuzzed []domain.Track
	for _, track := range tracks {
		haystack := track.Title + " " + track.Artist + " " + track.Album
		if fuzzy.MatchNormalizedFold(query, haystack) {
			fuzzed = append(fuzzed, track)
		}
	}
	return fuzzed
}

func (m *MusicModel) clampCursor() {
	if tracks := m.visibleTracks(); m.cursor >= len(tracks) {
		m.cursor = 0
	}
}

func (m *MusicModel) View() string {
	contentWidth := m.width - 4
	if contentWidth > 110 {
		contentWidth = 110
	}

	header := styles.Header(contentWidth, "Hotaru")
	tabBar := renderTabBar(TabMusic)

	genreLabel := "All genres"
	if m.genre != "" {
		genreLabel = m.genre
	}
	genreLine := styles.Subtle.Render("Genre: ") + styles.Info.Render(genreLabel) +
		styles.Subtle.Render("  (g to cycle)")

	var searchLine string
	if m.searchMode {
		searchLine = "Filter: " + m.searchInput.View()
	} else if m.query != "" {
		searchLine = styles.Subtle.Render(fmt.Sprintf("Filter: %q  (press / to edit, esc to clear)", m.query))
	}

	body := m.viewTracks(contentWidth)

	sections := []string{header, tabBar, genreLine}
	if searchLine != "" {
		sections = append(sections, searchLine)
	}
	sections = append(sections, styles.ContentBox(contentWidth, body, 1), m.keyBar(contentWidth))

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *MusicModel) viewTracks(width int) string {
	tracks := m.visibleTracks()
	if len(tracks) == 0 {
		if m.query != "" {
			return styles.Subtle.Render(fmt.Sprintf("No tracks match %q", m.query))
		}
		return styles.Subtle.Render("No tracks in this genre.")
	}

	visible := m.height - 13
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(tracks) {
		end = len(tracks)
	}

	titleWidth := (width - 14) / 2
	artistWidth := width - 14 - titleWidth

	var lines []string
	for i := start; i < end; i++ {
		track := tracks[i]
		line := fmt.Sprintf("%s %s %6s",
			util.PadString(util.TruncateString(track.Title, titleWidth), titleWidth),
			util.PadString(util.TruncateString(track.Artist, artistWidth), artistWidth),
			util.FormatTrackDuration(track.DurationSeconds))
		if i == m.cursor {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Info.Render(line))
		}
	}

	if len(tracks) > visible {
		lines = append(lines, styles.Subtle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(tracks))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *MusicModel) keyBar(width int) string {
	if m.searchMode {
		return components.KeyBindingsBar(width, []components.KeyBinding{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "clear"},
		})
	}
	return components.KeyBindingsBar(width, []components.KeyBinding{
		{Key: "enter", Desc: "play"},
		{Key: "g", Desc: "genre"},
		{Key: "/", Desc: "filter"},
		{Key: "tab", Desc: "next tab"},
		{Key: "ctrl+h", Desc: "help"},
	})
}
