package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/components"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hotaru/internal/ui/tui/util"
	"github.com/PizzaHomicide/hotaru/internal/wishlist"
)

// browseTabs are the tabs this model owns.  Music lives in its own view; the
// tab strip still shows it so cycling feels like one continuous row.
var browseTabs = []Tab{TabHome, TabMovies, TabSeries, TabMyList}

// BrowseModel renders the catalog: the home rows, the per-kind tabs, the
// wishlist tab and the substring search
type BrowseModel struct {
	deps          Deps
	width, height int
	tab           Tab

	// Home tab cursor: which row, and which item within it
	rowCursor int
	colCursor int

	// Flat cursor used by every non-home tab
	cursor int

	searchMode  bool
	searchInput textinput.Model
	query       string

	refreshing bool
	statusMsg  string
	errMsg     string
}

func NewBrowseModel(deps Deps) *BrowseModel {
	search := textinput.New()
	search.Placeholder = "Search titles and descriptions..."
	search.CharLimit = 100
	search.Width = 40

	return &BrowseModel{
		deps:        deps,
		tab:         TabHome,
		searchInput: search,
	}
}

func (m *BrowseModel) Init() tea.Cmd {
	if !m.deps.Catalog.Loaded() {
		return m.refreshCatalog()
	}
	return nil
}

func (m *BrowseModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// SetTab is used by the app model when tab cycling crosses view boundaries
func (m *BrowseModel) SetTab(tab Tab) {
	m.tab = tab
	m.clampCursors()
}

func (m *BrowseModel) refreshCatalog() tea.Cmd {
	m.refreshing = true
	m.errMsg = ""
	svc := m.deps.Catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := svc.Load(ctx); err != nil {
			log.Error("Catalog refresh failed", "error", err)
			return CatalogErrorMsg{Error: err}
		}
		return CatalogLoadedMsg{}
	}
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearchMode(msg)
		}
		return m.updateBrowse(msg)

	case CatalogLoadedMsg:
		m.refreshing = false
		m.clampCursors()
		return m, nil

	case CatalogErrorMsg:
		m.refreshing = false
		// Whatever snapshot we already had is still being shown
		m.errMsg = fmt.Sprintf("Catalog refresh failed: %v", msg.Error)
		return m, nil

	case WishlistChangedMsg:
		switch msg.Result {
		case "added":
			m.statusMsg = fmt.Sprintf("Added %q to My List", msg.Title)
		case "removed":
			m.statusMsg = fmt.Sprintf("Removed %q from My List", msg.Title)
		}
		m.clampCursors()
		return m, nil
	}

	return m, nil
}

func (m *BrowseModel) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keybindings.GetActionByKey(msg, keybindings.ContextSearchMode) {
	case keybindings.ActionBack:
		m.searchMode = false
		m.searchInput.SetValue("")
		m.query = ""
		m.clampCursors()
		return m, nil
	case keybindings.ActionSearchComplete:
		m.searchMode = false
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	m.clampCursors()
	return m, cmd
}

func (m *BrowseModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch keybindings.GetActionByKey(msg, keybindings.ContextBrowse) {
	case keybindings.ActionMoveUp:
		m.moveVertical(-1)
	case keybindings.ActionMoveDown:
		m.moveVertical(1)
	case keybindings.ActionMoveLeft:
		m.moveHorizontal(-1)
	case keybindings.ActionMoveRight:
		m.moveHorizontal(1)
	case keybindings.ActionMoveTop:
		m.rowCursor, m.colCursor, m.cursor = 0, 0, 0
	case keybindings.ActionMoveBottom:
		m.moveToEnd()
	case keybindings.ActionOpenDetails:
		if item := m.Selected(); item != nil {
			return m, func() tea.Msg { return OpenDetailsMsg{Content: item} }
		}
	case keybindings.ActionPlay:
		if item := m.Selected(); item != nil {
			return m, m.playContent(item)
		}
	case keybindings.ActionToggleWishlist:
		if item := m.Selected(); item != nil {
			return m, toggleWishlist(m.deps.Wishlist, item)
		}
	case keybindings.ActionRefreshCatalog:
		return m, m.refreshCatalog()
	case keybindings.ActionEnableSearch:
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case keybindings.ActionNextTab:
		return m, m.cycleTab(1)
	case keybindings.ActionPrevTab:
		return m, m.cycleTab(-1)
	}

	return m, nil
}

// playContent plays a movie directly.  A series has no single thing to play,
// so it routes through the details modal where an episode gets picked.
func (m *BrowseModel) playContent(item domain.Content) tea.Cmd {
	switch c := item.(type) {
	case *domain.Movie:
		source := player.Source{Content: c, URL: c.VideoURL, Title: c.Title}
		return func() tea.Msg { return PlayRequestMsg{Source: source} }
	case *domain.Series:
		return func() tea.Msg { return OpenDetailsMsg{Content: c} }
	}
	return nil
}

// toggleWishlist adds the item when absent and removes it when present.
// Both directions are idempotent so a stale Contains check is harmless.
func toggleWishlist(store *wishlist.Store, item domain.Content) tea.Cmd {
	return func() tea.Msg {
		info := item.Info()
		if store.Contains(info.ID) {
			store.Remove(info.ID)
			return WishlistChangedMsg{Result: "removed", Title: info.Title}
		}
		store.Add(item)
		return WishlistChangedMsg{Result: "added", Title: info.Title}
	}
}

func (m *BrowseModel) cycleTab(dir int) tea.Cmd {
	idx := 0
	for i, t := range browseTabs {
		if t == m.tab {
			idx = i
		}
	}
	idx += dir
	if idx < 0 || idx >= len(browseTabs) {
		// Fell off the edge of the tabs this view owns: hand over to music
		return func() tea.Msg { return TabChangedMsg{Tab: TabMusic} }
	}
	m.tab = browseTabs[idx]
	m.clampCursors()
	return nil
}

// visibleItems is the flat item list for the current non-home tab, with the
// search filter applied
func (m *BrowseModel) visibleItems() []domain.Content {
	var items []domain.Content
	switch m.tab {
	case TabMovies, TabSeries:
		want := domain.KindMovie
		if m.tab == TabSeries {
			want = domain.KindSeries
		}
		for _, item := range m.deps.Catalog.Content() {
			if item.Kind() == want {
				items = append(items, item)
			}
		}
	case TabMyList:
		items = m.deps.Wishlist.List()
	}
	return catalog.FilterBySubstring(m.query, items)
}

// homeRows is the category rows for the home tab.  While a search filter is
// active the rows collapse into a single results row.
func (m *BrowseModel) homeRows() []catalog.Category {
	content := m.deps.Catalog.Content()
	if strings.TrimSpace(m.query) != "" {
		results := catalog.FilterBySubstring(m.query, content)
		if len(results) == 0 {
			return nil
		}
		return []catalog.Category{{Name: "Search results", Items: results}}
	}
	return catalog.Categories(content)
}

// Selected returns the catalog entry under the cursor, or nil
func (m *BrowseModel) Selected() domain.Content {
	if m.tab == TabHome {
		rows := m.homeRows()
		if m.rowCursor >= len(rows) {
			return nil
		}
		row := rows[m.rowCursor]
		if m.colCursor >= len(row.Items) {
			return nil
		}
		return row.Items[m.colCursor]
	}

	items := m.visibleItems()
	if m.cursor >= len(items) {
		return nil
	}
	return items[m.cursor]
}

func (m *BrowseModel) moveVertical(dir int) {
	if m.tab == TabHome {
		rows := m.homeRows()
		next := m.rowCursor + dir
		if next >= 0 && next < len(rows) {
			m.rowCursor = next
			if m.colCursor >= len(rows[m.rowCursor].Items) {
				m.colCursor = len(rows[m.rowCursor].Items) - 1
			}
		}
		return
	}

	items := m.visibleItems()
	next := m.cursor + dir
	if next >= 0 && next < len(items) {
		m.cursor = next
	}
}

func (m *BrowseModel) moveHorizontal(dir int) {
	if m.tab != TabHome {
		return
	}
	rows := m.homeRows()
	if m.rowCursor >= len(rows) {
		return
	}
	next := m.colCursor + dir
	if next >= 0 && next < len(rows[m.rowCursor].Items) {
		m.colCursor = next
	}
}

func (m *BrowseModel) moveToEnd() {
	if m.tab == TabHome {
		rows := m.homeRows()
		if len(rows) > 0 {
			m.rowCursor = len(rows) - 1
			m.colCursor = 0
		}
		return
	}
	if items := m.visibleItems(); len(items) > 0 {
		m.cursor = len(items) - 1
	}
}

// clampCursors pulls the cursors back inside whatever the current filter and
// tab expose
func (m *BrowseModel) clampCursors() {
	rows := m.homeRows()
	if m.rowCursor >= len(rows) {
		m.rowCursor = 0
		m.colCursor = 0
	} else if len(rows) > 0 && m.colCursor >= len(rows[m.rowCursor].Items) {
		m.colCursor = 0
	}

	if items := m.visibleItems(); m.cursor >= len(items) {
		m.cursor = 0
	}
}

func (m *BrowseModel) View() string {
	contentWidth := m.width - 4
	if contentWidth > 110 {
		contentWidth = 110
	}

	header := styles.Header(contentWidth, "Hotaru")
	tabBar := renderTabBar(m.tab)

	var body string
	switch {
	case m.refreshing && !m.deps.Catalog.Loaded():
		body = styles.Info.Render("Loading catalog...")
	case m.tab == TabHome:
		body = m.viewHome(contentWidth)
	default:
		body = m.viewList(contentWidth)
	}

	var statusLine string
	switch {
	case m.errMsg != "":
		statusLine = styles.Error.Render(m.errMsg)
	case m.statusMsg != "":
		statusLine = styles.Info.Render(m.statusMsg)
	case m.refreshing:
		statusLine = styles.Subtle.Render("Refreshing catalog...")
	}

	var searchLine string
	if m.searchMode {
		searchLine = "Search: " + m.searchInput.View()
	} else if m.query != "" {
		searchLine = styles.Subtle.Render(fmt.Sprintf("Filter: %q  (press / to edit, esc to clear)", m.query))
	}

	sections := []string{header, tabBar}
	if searchLine != "" {
		sections = append(sections, searchLine)
	}
	sections = append(sections, styles.ContentBox(contentWidth, body, 1))
	if statusLine != "" {
		sections = append(sections, statusLine)
	}
	sections = append(sections, m.keyBar(contentWidth))

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *BrowseModel) keyBar(width int) string {
	if m.searchMode {
		return components.KeyBindingsBar(width, []components.KeyBinding{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "clear"},
		})
	}
	return components.KeyBindingsBar(width, []components.KeyBinding{
		{Key: "enter", Desc: "details"},
		{Key: "p", Desc: "play"},
		{Key: "w", Desc: "my list"},
		{Key: "/", Desc: "search"},
		{Key: "tab", Desc: "next tab"},
		{Key: "ctrl+h", Desc: "help"},
	})
}

func renderTabBar(active Tab) string {
	var rendered []string
	for _, t := range []Tab{TabHome, TabMovies, TabSeries, TabMyList, TabMusic} {
		if t == active {
			rendered = append(rendered, styles.TabActive.Render(t.String()))
		} else {
			rendered = append(rendered, styles.TabInactive.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

func (m *BrowseModel) viewHome(width int) string {
	rows := m.homeRows()
	if len(rows) == 0 {
		if m.query != "" {
			return styles.Subtle.Render(fmt.Sprintf("Nothing matches %q", m.query))
		}
		return styles.Subtle.Render("The catalog is empty.  Press 'r' to refresh.")
	}

	cellWidth := 22
	perRow := width / (cellWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	var out []string
	for rowIdx, row := range rows {
		out = append(out, styles.CategoryTitle.Render(row.Name))

		// Window the row around the column cursor so the selection stays visible
		start := 0
		if rowIdx == m.rowCursor && m.colCursor >= perRow {
			start = m.colCursor - perRow + 1
		}
		end := start + perRow
		if end > len(row.Items) {
			end = len(row.Items)
		}

		var cells []string
		for i := start; i < end; i++ {
			title := row.Items[i].Info().Title
			marker := "  "
			if m.deps.Wishlist.Contains(row.Items[i].Info().ID) {
				marker = "★ "
			}
			label := util.PadString(marker+util.TruncateString(title, cellWidth-2), cellWidth)
			if rowIdx == m.rowCursor && i == m.colCursor {
				cells = append(cells, styles.Selected.Render(" "+label+" "))
			} else {
				cells = append(cells, styles.Info.Render(" "+label+" "))
			}
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...), "")
	}

	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, out...), "\n")
}

func (m *BrowseModel) viewList(width int) string {
	items := m.visibleItems()
	if len(items) == 0 {
		switch {
		case m.query != "":
			return styles.Subtle.Render(fmt.Sprintf("Nothing matches %q", m.query))
		case m.tab == TabMyList:
			return styles.Subtle.Render("My List is empty.  Press 'w' on a title to add it.")
		default:
			return styles.Subtle.Render("Nothing here yet.")
		}
	}

	visible := m.height - 12
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	var lines []string
	for i := start; i < end; i++ {
		info := items[i].Info()
		marker := "  "
		if m.deps.Wishlist.Contains(info.ID) {
			marker = "★ "
		}
		line := fmt.Sprintf("%s%s (%d)", marker, util.TruncateString(info.Title, width-20), info.Year)
		if i == m.cursor {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Info.Render(line))
		}
	}

	if len(items) > visible {
		lines = append(lines, styles.Subtle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(items))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
