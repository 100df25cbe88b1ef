package wishlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaHomicide/hotaru/internal/domain"
)

// fakeKV is an in-memory KV with optional fault injection
type fakeKV struct {
	data    map[string]string
	failSet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func movie(id, title string) *domain.Movie {
	return &domain.Movie{
		ContentInfo: domain.ContentInfo{
			ID:     id,
			Title:  title,
			Genres: []string{"Animation"},
		},
		Duration: "1h 47m",
		VideoURL: "https://cdn.example.com/" + id + ".mp4",
	}
}

func series(id, title string) *domain.Series {
	return &domain.Series{
		ContentInfo: domain.ContentInfo{
			ID:     id,
			Title:  title,
			Genres: []string{"Sci-Fi"},
		},
		SeasonCount: 2,
		Episodes: []domain.Episode{
			{ID: id + "-e1", Title: "Pilot", SeasonNumber: 1, EpisodeNumber: 1},
			{ID: id + "-e2", Title: "Fallout", SeasonNumber: 1, EpisodeNumber: 2},
		},
	}
}

func TestAddIsIdempotent(t *testing.T) {
	store := NewStore(newFakeKV())
	moana := movie("m1", "Moana")

	assert.Equal(t, Added, store.Add(moana))
	assert.Equal(t, AlreadyPresent, store.Add(moana))
	assert.Len(t, store.List(), 1)
}

func TestAddContainsRemove(t *testing.T) {
	store := NewStore(newFakeKV())

	assert.False(t, store.Contains("m1"))

	store.Add(movie("m1", "Moana"))
	assert.True(t, store.Contains("m1"))

	assert.Equal(t, Removed, store.Remove("m1"))
	assert.False(t, store.Contains("m1"))

	// A second remove finds nothing
	assert.Equal(t, NotFound, store.Remove("m1"))
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store := NewStore(newFakeKV())
	store.Add(movie("m2", "Interstellar"))
	store.Add(series("s1", "Breaking Bad"))
	store.Add(movie("m1", "Moana"))

	items := store.List()
	require.Len(t, items, 3)
	assert.Equal(t, "m2", items[0].Info().ID)
	assert.Equal(t, "s1", items[1].Info().ID)
	assert.Equal(t, "m1", items[2].Info().ID)
}

func TestPersistedWishlistSurvivesRestart(t *testing.T) {
	kv := newFakeKV()

	store := NewStore(kv)
	store.Add(movie("m1", "Moana"))
	store.Add(series("s1", "Breaking Bad"))

	// A fresh store over the same KV simulates an application restart
	reloaded := NewStore(kv)
	items := reloaded.List()
	require.Len(t, items, 2)

	m, ok := items[0].(*domain.Movie)
	require.True(t, ok)
	assert.Equal(t, "Moana", m.Title)
	assert.Equal(t, "https://cdn.example.com/m1.mp4", m.VideoURL)

	s, ok := items[1].(*domain.Series)
	require.True(t, ok)
	assert.Equal(t, "Breaking Bad", s.Title)
	require.Len(t, s.Episodes, 2)
	assert.Equal(t, "Pilot", s.Episodes[0].Title)
}

func TestCorruptStoredDataStartsEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.data[storageKey] = `{not valid json`

	store := NewStore(kv)
	assert.Empty(t, store.List())

	// The store recovers: the next mutation persists a clean list
	store.Add(movie("m1", "Moana"))
	assert.Len(t, NewStore(kv).List(), 1)
}

func TestUnknownEntryKindIsSkipped(t *testing.T) {
	kv := newFakeKV()
	kv.data[storageKey] = `[{"kind":"podcast"},{"kind":"movie","movie":{"id":"m1","title":"Moana"}}]`

	store := NewStore(kv)
	items := store.List()
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].Info().ID)
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	kv := newFakeKV()
	kv.failSet = true

	store := NewStore(kv)
	assert.Equal(t, Added, store.Add(movie("m1", "Moana")))
	assert.True(t, store.Contains("m1"))
	assert.Len(t, store.List(), 1)

	// Nothing reached storage
	_, ok, err := kv.Get(storageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoredEntryIsASnapshot(t *testing.T) {
	store := NewStore(newFakeKV())

	moana := movie("m1", "Moana")
	store.Add(moana)

	// Mutations to the caller's copy must not leak into the wishlist
	moana.Title = "renamed"
	moana.Genres[0] = "Horror"

	items := store.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Moana", items[0].Info().Title)
	assert.Equal(t, []string{"Animation"}, items[0].Info().Genres)
}
