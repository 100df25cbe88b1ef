package catalog

import (
	"sort"

	"github.com/PizzaHomicide/hotaru/internal/domain"
)

// featuredCount is how many leading catalog entries make up the featured row
const featuredCount = 4

// genreRows are the genre buckets rendered as home rows, in display order
var genreRows = []string{"Action & Adventure", "Animation", "Sci-Fi"}

// Category is a named view over the catalog snapshot.  It shares the snapshot's
// items rather than owning copies, so recomputing after a catalog reload is the
// only way membership changes.
type Category struct {
	Name  string
	Items []domain.Content
}

// Categories derives the fixed category rows from a catalog snapshot: a
// featured row of the first entries, one row each for movies and series, then
// one row per known genre.  Empty rows are omitted.
func Categories(items []domain.Content) []Category {
	var categories []Category

	featured := items
	if len(featured) > featuredCount {
		featured = featured[:featuredCount]
	}
	if len(featured) > 0 {
		categories = append(categories, Category{Name: "Featured", Items: featured})
	}

	var movies, series []domain.Content
	for _, item := range items {
		switch item.Kind() {
		case domain.KindMovie:
			movies = append(movies, item)
		case domain.KindSeries:
			series = append(series, item)
		}
	}
	if len(movies) > 0 {
		categories = append(categories, Category{Name: "Movies", Items: movies})
	}
	if len(series) > 0 {
		categories = append(categories, Category{Name: "Series", Items: series})
	}

	for _, genre := range genreRows {
		var bucket []domain.Content
		for _, item := range items {
			if hasGenre(item, genre) {
				bucket = append(bucket, item)
			}
		}
		if len(bucket) > 0 {
			categories = append(categories, Category{Name: genre, Items: bucket})
		}
	}

	return categories
}

func hasGenre(item domain.Content, genre string) bool {
	for _, g := range item.Info().Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Season is one season's worth of episodes, sorted by episode number
type Season struct {
	Number   int
	Episodes []domain.Episode
}

// EpisodesBySeason groups a series' episodes by season.  Seasons come back in
// ascending order and each season's episodes are sorted by episode number,
// whatever order the backend stored them in.
func EpisodesBySeason(series *domain.Series) []Season {
	buckets := map[int][]domain.Episode{}
	for _, ep := range series.Episodes {
		buckets[ep.SeasonNumber] = append(buckets[ep.SeasonNumber], ep)
	}

	numbers := make([]int, 0, len(buckets))
	for n := range buckets {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	seasons := make([]Season, 0, len(numbers))
	for _, n := range numbers {
		eps := buckets[n]
		sort.Slice(eps, func(i, j int) bool {
			return eps[i].EpisodeNumber < eps[j].EpisodeNumber
		})
		seasons = append(seasons, Season{Number: n, Episodes: eps})
	}
	return seasons
}
