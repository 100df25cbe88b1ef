package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaHomicide/hotaru/internal/domain"
)

func TestCategoriesDerivesFixedRows(t *testing.T) {
	items := []domain.Content{
		&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "A", Genres: []string{"Action & Adventure"}}},
		&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m2", Title: "B", Genres: []string{"Animation"}}},
		&domain.Series{ContentInfo: domain.ContentInfo{ID: "s1", Title: "C", Genres: []string{"Sci-Fi"}}},
		&domain.Series{ContentInfo: domain.ContentInfo{ID: "s2", Title: "D", Genres: []string{"Animation"}}},
		&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m3", Title: "E", Genres: []string{"Sci-Fi"}}},
	}

	categories := Categories(items)
	byName := map[string]Category{}
	for _, c := range categories {
		byName[c.Name] = c
	}

	featured := byName["Featured"]
	require.Len(t, featured.Items, 4)
	assert.Equal(t, "m1", featured.Items[0].Info().ID)
	assert.Equal(t, "s2", featured.Items[3].Info().ID)

	require.Len(t, byName["Movies"].Items, 3)
	require.Len(t, byName["Series"].Items, 2)

	animation := byName["Animation"]
	require.Len(t, animation.Items, 2)
	assert.Equal(t, "m2", animation.Items[0].Info().ID)
	assert.Equal(t, "s2", animation.Items[1].Info().ID)

	require.Len(t, byName["Sci-Fi"].Items, 2)
	require.Len(t, byName["Action & Adventure"].Items, 1)
}

func TestCategoriesOmitsEmptyRows(t *testing.T) {
	items := []domain.Content{
		&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "A", Genres: []string{"Drama"}}},
	}

	categories := Categories(items)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Featured", "Movies"}, names)
}

func TestCategoriesEmptyCatalog(t *testing.T) {
	assert.Empty(t, Categories(nil))
}

func TestCategoriesShareSnapshotItems(t *testing.T) {
	items := []domain.Content{
		&domain.Movie{ContentInfo: domain.ContentInfo{ID: "m1", Title: "A"}},
	}

	categories := Categories(items)
	require.NotEmpty(t, categories)
	// Buckets are views over the snapshot, not copies of its items
	assert.Same(t, items[0], categories[0].Items[0])
}

func TestEpisodesBySeasonGroupsAndSorts(t *testing.T) {
	series := &domain.Series{
		ContentInfo: domain.ContentInfo{ID: "s1", Title: "Show"},
		Episodes: []domain.Episode{
			{ID: "e2", SeasonNumber: 1, EpisodeNumber: 2},
			{ID: "e1", SeasonNumber: 1, EpisodeNumber: 1},
			{ID: "e3", SeasonNumber: 2, EpisodeNumber: 1},
		},
	}

	seasons := EpisodesBySeason(series)
	require.Len(t, seasons, 2)

	assert.Equal(t, 1, seasons[0].Number)
	require.Len(t, seasons[0].Episodes, 2)
	assert.Equal(t, "e1", seasons[0].Episodes[0].ID)
	assert.Equal(t, "e2", seasons[0].Episodes[1].ID)

	assert.Equal(t, 2, seasons[1].Number)
	require.Len(t, seasons[1].Episodes, 1)
	assert.Equal(t, "e3", seasons[1].Episodes[0].ID)
}

func TestEpisodesBySeasonEmptySeries(t *testing.T) {
	assert.Empty(t, EpisodesBySeason(&domain.Series{}))
}
