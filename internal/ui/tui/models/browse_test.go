package models

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/config"
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/wishlist"
)

type fakeCatalogRepo struct {
	content []domain.Content
	tracks  []domain.Track
}

func (f *fakeCatalogRepo) ListAll(ctx context.Context) ([]domain.Content, error) {
	return f.content, nil
}

func (f *fakeCatalogRepo) ListMusic(ctx context.Context) ([]domain.Track, error) {
	return f.tracks, nil
}

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func testDeps(t *testing.T, content []domain.Content, tracks []domain.Track) Deps {
	t.Helper()

	svc := catalog.NewService(&fakeCatalogRepo{content: content, tracks: tracks})
	require.NoError(t, svc.Load(context.Background()))

	return Deps{
		Config:   &config.Config{},
		Catalog:  svc,
		Wishlist: wishlist.NewStore(newMemKV()),
		KV:       newMemKV(),
	}
}

func testMovie(id, title string) *domain.Movie {
	return &domain.Movie{
		ContentInfo: domain.ContentInfo{ID: id, Title: title, Year: 2020},
		VideoURL:    "https://media.example.com/" + id + ".mp4",
	}
}

func testSeries(id, title string) *domain.Series {
	return &domain.Series{
		ContentInfo: domain.ContentInfo{ID: id, Title: title, Year: 2021},
		Episodes: []domain.Episode{
			{ID: id + "-e1", Title: "Pilot", SeasonNumber: 1, EpisodeNumber: 1, VideoURL: "https://media.example.com/" + id + "-e1.mp4"},
		},
	}
}

func keyMsg(key string) tea.KeyMsg {
	if len(key) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestBrowseSelectionFollowsTab(t *testing.T) {
	deps := testDeps(t, []domain.Content{
		testMovie("m1", "Inception"),
		testSeries("s1", "Severance"),
		testMovie("m2", "Arrival"),
	}, nil)

	m := NewBrowseModel(deps)
	m.Resize(100, 40)

	m.SetTab(TabMovies)
	selected := m.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "m1", selected.Info().ID)

	m.Update(keyMsg("down"))
	selected = m.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "m2", selected.Info().ID)

	m.SetTab(TabSeries)
	selected = m.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "s1", selected.Info().ID)
}

func TestBrowseSearchFiltersCurrentTab(t *testing.T) {
	deps := testDeps(t, []domain.Content{
		testMovie("m1", "Inception"),
		testMovie("m2", "Arrival"),
	}, nil)

	m := NewBrowseModel(deps)
	m.Resize(100, 40)
	m.SetTab(TabMovies)

	m.Update(keyMsg("/"))
	require.True(t, m.searchMode)
	for _, r := range "arr" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(keyMsg("enter"))
	assert.False(t, m.searchMode)

	items := m.visibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, "m2", items[0].Info().ID)

	// Clearing the search restores the full tab
	m.Update(keyMsg("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.visibleItems(), 2)
}

func TestBrowseMyListTabShowsWishlist(t *testing.T) {
	movie := testMovie("m1", "Inception")
	deps := testDeps(t, []domain.Content{movie, testMovie("m2", "Arrival")}, nil)
	deps.Wishlist.Add(movie)

	m := NewBrowseModel(deps)
	m.Resize(100, 40)
	m.SetTab(TabMyList)

	items := m.visibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].Info().ID)
}

func TestBrowseWishlistToggleRoundTrips(t *testing.T) {
	movie := testMovie("m1", "Inception")
	deps := testDeps(t, []domain.Content{movie}, nil)

	cmd := toggleWishlist(deps.Wishlist, movie)
	msg := cmd()
	changed, ok := msg.(WishlistChangedMsg)
	require.True(t, ok)
	assert.Equal(t, "added", changed.Result)
	assert.True(t, deps.Wishlist.Contains("m1"))

	msg = toggleWishlist(deps.Wishlist, movie)()
	changed = msg.(WishlistChangedMsg)
	assert.Equal(t, "removed", changed.Result)
	assert.False(t, deps.Wishlist.Contains("m1"))
}

func TestBrowsePlayOnSeriesOpensDetails(t *testing.T) {
	series := testSeries("s1", "Severance")
	deps := testDeps(t, []domain.Content{series}, nil)

	m := NewBrowseModel(deps)
	m.Resize(100, 40)
	m.SetTab(TabSeries)

	_, cmd := m.Update(keyMsg("p"))
	require.NotNil(t, cmd)
	msg := cmd()
	details, ok := msg.(OpenDetailsMsg)
	require.True(t, ok)
	assert.Equal(t, "s1", details.Content.Info().ID)
}

func TestBrowseTabCyclesIntoMusic(t *testing.T) {
	deps := testDeps(t, []domain.Content{testMovie("m1", "Inception")}, nil)

	m := NewBrowseModel(deps)
	m.Resize(100, 40)
	m.SetTab(TabMyList)

	_, cmd := m.Update(keyMsg("tab"))
	require.NotNil(t, cmd)
	changed, ok := cmd().(TabChangedMsg)
	require.True(t, ok)
	assert.Equal(t, TabMusic, changed.Tab)
}
