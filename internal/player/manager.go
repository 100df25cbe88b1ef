package player

import (
	"context"
	"sync"
	"time"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// BackendFactory picks a backend for a source
type BackendFactory func(source Source) Backend

// Manager enforces the single-active-session rule: opening a new session fully
// tears down the previous one, timers and listeners included, before the new
// one starts.  It also records watch history when sessions close.
type Manager struct {
	factory BackendFactory
	history domain.HistoryRepository

	mu        sync.Mutex
	active    *Session
	nextID    int64
	profileID string
}

// NewManager creates a session manager.  history may be nil, in which case no
// watch history is recorded.
func NewManager(factory BackendFactory, history domain.HistoryRepository) *Manager {
	return &Manager{factory: factory, history: history}
}

// SetProfile sets the profile watch history is recorded against
func (m *Manager) SetProfile(profileID string) {
	m.mu.Lock()
	m.profileID = profileID
	m.mu.Unlock()
}

// Open starts playback of source, closing any prior session first.  The
// returned session may be in the Failed state when the backend could not be
// launched; the error says why.
func (m *Manager) Open(ctx context.Context, source Source) (*Session, error) {
	m.mu.Lock()
	prev := m.active
	m.mu.Unlock()

	// Tear down the old session completely before the new one exists so none
	// of its late events or timers can touch the replacement
	if prev != nil {
		prev.Close()
	}

	m.mu.Lock()
	m.nextID++
	session := newSession(m.nextID, m.factory(source), source, m.sessionClosed)
	m.active = session
	m.mu.Unlock()

	log.Info("Opening playback session", "session_id", session.id, "title", source.Title, "url", source.URL)
	err := session.start(ctx)
	return session, err
}

// Active returns the current session, or nil when nothing is open.  A session
// in the Failed state is still active so the UI can offer retry/close.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil
	}
	if m.active.Snapshot().State == StateClosed {
		return nil
	}
	return m.active
}

// CloseActive closes the current session if one is open
func (m *Manager) CloseActive() {
	m.mu.Lock()
	active := m.active
	m.mu.Unlock()
	if active != nil {
		active.Close()
	}
}

// sessionClosed records watch history for the finished session.  Fire and
// forget: a failed upsert is the repository's problem to log, never playback's.
func (m *Manager) sessionClosed(snap Snapshot) {
	m.mu.Lock()
	history := m.history
	profileID := m.profileID
	m.mu.Unlock()

	if history == nil || profileID == "" || snap.Position <= 0 {
		return
	}

	entry := domain.WatchEntry{
		ProfileID:       profileID,
		ContentID:       snap.Source.ContentID(),
		ContentType:     snap.Source.ContentType(),
		DurationSeconds: snap.Position,
		WatchedAt:       time.Now(),
	}
	if snap.Source.Episode != nil {
		entry.EpisodeID = snap.Source.Episode.ID
	}
	if entry.ContentID == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = history.UpsertWatch(ctx, entry)
	}()
}
