// Package catalog caches the remote content catalog in memory and derives the
// views the UI renders: category rows, substring search results and per-season
// episode groupings.  The cached snapshot is immutable between loads.
package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// Service loads and caches the catalog
type Service struct {
	repo domain.CatalogRepository

	mu      sync.RWMutex
	loaded  bool
	content []domain.Content
	tracks  []domain.Track
	byID    map[string]domain.Content
}

// NewService creates a catalog service backed by the given repository
func NewService(repo domain.CatalogRepository) *Service {
	return &Service{repo: repo}
}

// Load fetches the video catalog and the music catalog concurrently and
// replaces the cached snapshot.  On error the previous snapshot is kept.
func (s *Service) Load(ctx context.Context) error {
	var (
		content []domain.Content
		tracks  []domain.Track
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		content, err = s.repo.ListAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tracks, err = s.repo.ListMusic(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	content = dedupe(content)

	byID := make(map[string]domain.Content, len(content))
	for _, item := range content {
		byID[item.Info().ID] = item
	}

	s.mu.Lock()
	s.loaded = true
	s.content = content
	s.tracks = tracks
	s.byID = byID
	s.mu.Unlock()

	log.Info("Catalog loaded", "content_count", len(content), "track_count", len(tracks))
	return nil
}

// Loaded reports whether a catalog snapshot is available
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Content returns the cached catalog snapshot
func (s *Service) Content() []domain.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Tracks returns the cached music catalog
func (s *Service) Tracks() []domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks
}

// ByID looks up a catalog entry by id
func (s *Service) ByID(id string) (domain.Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.byID[id]
	return item, ok
}

// dedupe collapses duplicate ids.  The service has no control over the data the
// backend returns, so duplicates are tolerated: the last occurrence wins and
// takes the position of the first.
func dedupe(items []domain.Content) []domain.Content {
	index := make(map[string]int, len(items))
	out := make([]domain.Content, 0, len(items))
	for _, item := range items {
		id := item.Info().ID
		if i, seen := index[id]; seen {
			log.Warn("Duplicate catalog id, keeping the later entry", "id", id, "title", item.Info().Title)
			out[i] = item
			continue
		}
		index[id] = len(out)
		out = append(out, item)
	}
	return out
}
