package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/components"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/util"
)

// DetailModel is the details modal for one catalog entry.  For a series it
// also hosts the season/episode picker.
type DetailModel struct {
	deps          Deps
	width, height int
	content       domain.Content

	// Series picker state
	seasons       []catalog.Season
	seasonCursor  int
	episodeCursor int

	statusMsg string
}

func NewDetailModel(deps Deps, content domain.Content) *DetailModel {
	m := &DetailModel{deps: deps, content: content}
	if series, ok := content.(*domain.Series); ok {
		m.seasons = catalog.EpisodesBySeason(series)
	}
	return m
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case WishlistChangedMsg:
		switch msg.Result {
		case "added":
			m.statusMsg = "Added to My List"
		case "removed":
			m.statusMsg = "Removed from My List"
		}
		return m, nil
	}
	return m, nil
}

func (m *DetailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keybindings.GetActionByKey(msg, keybindings.ContextDetails) {
	case keybindings.ActionMoveUp:
		if m.episodeCursor > 0 {
			m.episodeCursor--
		}
	case keybindings.ActionMoveDown:
		if eps := m.currentEpisodes(); m.episodeCursor < len(eps)-1 {
			m.episodeCursor++
		}
	case keybindings.ActionMoveLeft:
		if m.seasonCursor > 0 {
			m.seasonCursor--
			m.episodeCursor = 0
		}
	case keybindings.ActionMoveRight:
		if m.seasonCursor < len(m.seasons)-1 {
			m.seasonCursor++
			m.episodeCursor = 0
		}
	case keybindings.ActionPlay:
		return m, m.play()
	case keybindings.ActionToggleWishlist:
		return m, toggleWishlist(m.deps.Wishlist, m.content)
	}
	return m, nil
}

func (m *DetailModel) currentEpisodes() []domain.Episode {
	if m.seasonCursor >= len(m.seasons) {
		return nil
	}
	return m.seasons[m.seasonCursor].Episodes
}

// play builds the playback source: the movie itself, or the selected episode
func (m *DetailModel) play() tea.Cmd {
	switch c := m.content.(type) {
	case *domain.Movie:
		source := player.Source{Content: c, URL: c.VideoURL, Title: c.Title}
		return func() tea.Msg { return PlayRequestMsg{Source: source} }
	case *domain.Series:
		eps := m.currentEpisodes()
		if m.episodeCursor >= len(eps) {
			return nil
		}
		ep := eps[m.episodeCursor]
		source := player.Source{
			Content: c,
			Episode: &ep,
			URL:     ep.VideoURL,
			Title:   fmt.Sprintf("%s - S%02dE%02d %s", c.Title, ep.SeasonNumber, ep.EpisodeNumber, ep.Title),
		}
		return func() tea.Msg { return PlayRequestMsg{Source: source} }
	}
	return nil
}

func (m *DetailModel) View() string {
	boxWidth := m.width - 10
	if boxWidth > 90 {
		boxWidth = 90
	}
	innerWidth := boxWidth - 4

	info := m.content.Info()

	var b strings.Builder
	b.WriteString(styles.Title.Render(info.Title) + "\n\n")

	meta := fmt.Sprintf("%d  |  %s", info.Year, info.Rating)
	switch c := m.content.(type) {
	case *domain.Movie:
		meta += "  |  " + c.Duration
	case *domain.Series:
		meta += fmt.Sprintf("  |  %d seasons", c.SeasonCount)
	}
	if len(info.Genres) > 0 {
		meta += "  |  " + strings.Join(info.Genres, ", ")
	}
	b.WriteString(styles.Subtle.Render(meta) + "\n\n")

	if m.deps.Wishlist.Contains(info.ID) {
		b.WriteString(styles.Info.Render("★ On My List") + "\n\n")
	}

	b.WriteString(wordWrap(info.Description, innerWidth) + "\n")

	if series, ok := m.content.(*domain.Series); ok {
		b.WriteString("\n" + m.viewEpisodePicker(series, innerWidth))
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + styles.Info.Render(m.statusMsg))
	}

	playDesc := "play"
	if _, ok := m.content.(*domain.Series); ok {
		playDesc = "play episode"
	}
	keyBar := components.KeyBindingsBar(innerWidth, []components.KeyBinding{
		{Key: "enter", Desc: playDesc},
		{Key: "w", Desc: "my list"},
		{Key: "esc", Desc: "close"},
	})

	box := styles.ContentBox(boxWidth, b.String()+"\n"+keyBar, 1)
	return styles.CenteredView(m.width, m.height, box)
}

func (m *DetailModel) viewEpisodePicker(series *domain.Series, width int) string {
	if len(m.seasons) == 0 {
		return styles.Subtle.Render("No episodes available")
	}

	var tabs []string
	for i, season := range m.seasons {
		label := fmt.Sprintf("Season %d", season.Number)
		if i == m.seasonCursor {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	out := lipgloss.JoinHorizontal(lipgloss.Center, tabs...) + "\n\n"

	for i, ep := range m.currentEpisodes() {
		line := fmt.Sprintf("%2d. %s  %s",
			ep.EpisodeNumber,
			util.TruncateString(ep.Title, width-20),
			styles.Subtle.Render(ep.Duration))
		if i == m.episodeCursor {
			out += styles.Selected.Render(line) + "\n"
		} else {
			out += styles.Info.Render(line) + "\n"
		}
	}

	return out
}

// wordWrap breaks text on spaces so descriptions fit the modal
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
