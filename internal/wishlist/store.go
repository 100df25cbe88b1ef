// Package wishlist implements the user's saved-for-later list.  The store owns
// the in-memory collection and mirrors every mutation to durable storage; the
// in-memory state is authoritative for the running session even when the
// mirror fails.
package wishlist

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
	"github.com/PizzaHomicide/hotaru/internal/storage"
)

// storageKey is where the serialized wishlist lives in the KV store
const storageKey = "wishlist"

// AddResult reports the outcome of an Add call
type AddResult string

const (
	// Added indicates the item was appended to the wishlist
	Added AddResult = "added"
	// AlreadyPresent indicates an item with the same id was already stored.  The
	// call was a no-op.
	AlreadyPresent AddResult = "already_present"
)

// RemoveResult reports the outcome of a Remove call
type RemoveResult string

const (
	// Removed indicates the item was deleted from the wishlist
	Removed RemoveResult = "removed"
	// NotFound indicates no item with the given id was stored
	NotFound RemoveResult = "not_found"
)

// entry is the persistence envelope for one wishlist item.  The kind tag keeps
// the movie/series union decodable.
type entry struct {
	Kind   domain.ContentKind `json:"kind"`
	Movie  *domain.Movie      `json:"movie,omitempty"`
	Series *domain.Series     `json:"series,omitempty"`
}

// Store holds the wishlist.  Entries are frozen snapshots taken at Add time:
// later catalog changes do not propagate into stored entries.  Create exactly
// one Store at the application root and inject it into the views that need it.
type Store struct {
	kv storage.KV

	mu    sync.Mutex
	items []domain.Content // Insertion order
}

// NewStore creates a wishlist store, loading any previously persisted entries.
// Absent or corrupt stored data results in an empty wishlist; it is never an
// error visible to the caller.
func NewStore(kv storage.KV) *Store {
	s := &Store{kv: kv}
	s.load()
	return s
}

// Add appends a snapshot of item to the wishlist.  Adding an id that is
// already present is a no-op reported as AlreadyPresent.
func (s *Store) Add(item domain.Content) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := item.Info().ID
	if s.indexOf(id) >= 0 {
		log.Debug("Wishlist add skipped, item already present", "id", id)
		return AlreadyPresent
	}

	s.items = append(s.items, cloneContent(item))
	s.persist()
	log.Info("Added item to wishlist", "id", id, "title", item.Info().Title)
	return Added
}

// Remove deletes the item with the given id
func (s *Store) Remove(id string) RemoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return NotFound
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist()
	log.Info("Removed item from wishlist", "id", id)
	return Removed
}

// Contains reports whether an item with the given id is on the wishlist
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// List returns the wishlist in insertion order
func (s *Store) List() []domain.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Content, len(s.items))
	copy(out, s.items)
	return out
}

// indexOf must be called with the lock held
func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.Info().ID == id {
			return i
		}
	}
	return -1
}

// load reads the persisted wishlist into memory.  Parse failures are logged and
// leave the wishlist empty; they are never surfaced to the caller.
func (s *Store) load() {
	data, ok, err := s.kv.Get(storageKey)
	if err != nil {
		log.Warn("Failed to read wishlist from storage, starting empty", "error", err)
		return
	}
	if !ok {
		return
	}

	var entries []entry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		log.Warn("Stored wishlist is corrupt, starting empty", "error", err)
		return
	}

	items := make([]domain.Content, 0, len(entries))
	for _, e := range entries {
		item, err := e.content()
		if err != nil {
			log.Warn("Skipping unreadable wishlist entry", "error", err)
			continue
		}
		items = append(items, item)
	}
	s.items = items
	log.Debug("Loaded wishlist from storage", "count", len(items))
}

// persist mirrors the in-memory wishlist to durable storage.  Write failures
// are swallowed: the session keeps its in-memory state but it will not survive
// a restart.  Must be called with the lock held.
func (s *Store) persist() {
	entries := make([]entry, 0, len(s.items))
	for _, item := range s.items {
		entries = append(entries, toEntry(item))
	}

	data, err := json.Marshal(entries)
	if err != nil {
		log.Error("Failed to serialize wishlist", "error", err)
		return
	}

	if err := s.kv.Set(storageKey, string(data)); err != nil {
		log.Warn("Failed to persist wishlist, changes will not survive a restart", "error", err)
	}
}

func toEntry(item domain.Content) entry {
	switch c := item.(type) {
	case *domain.Movie:
		return entry{Kind: domain.KindMovie, Movie: c}
	case *domain.Series:
		return entry{Kind: domain.KindSeries, Series: c}
	default:
		// The union is closed, so this cannot happen without a code change
		panic(fmt.Sprintf("unknown content type %T", item))
	}
}

func (e entry) content() (domain.Content, error) {
	switch e.Kind {
	case domain.KindMovie:
		if e.Movie == nil {
			return nil, fmt.Errorf("movie entry with no movie payload")
		}
		return e.Movie, nil
	case domain.KindSeries:
		if e.Series == nil {
			return nil, fmt.Errorf("series entry with no series payload")
		}
		return e.Series, nil
	default:
		return nil, fmt.Errorf("unknown content kind %q", e.Kind)
	}
}

// cloneContent deep-copies a catalog entry so the stored snapshot is isolated
// from later mutations of the catalog's copy
func cloneContent(item domain.Content) domain.Content {
	switch c := item.(type) {
	case *domain.Movie:
		clone := *c
		clone.Genres = append([]string(nil), c.Genres...)
		return &clone
	case *domain.Series:
		clone := *c
		clone.Genres = append([]string(nil), c.Genres...)
		clone.Episodes = append([]domain.Episode(nil), c.Episodes...)
		return &clone
	default:
		panic(fmt.Sprintf("unknown content type %T", item))
	}
}
