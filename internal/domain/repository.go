package domain

import (
	"context"
	"time"
)

// CatalogRepository defines the interface for content data access
type CatalogRepository interface {
	// ListAll retrieves the complete movie and series catalog
	ListAll(ctx context.Context) ([]Content, error)

	// ListMusic retrieves the music track catalog
	ListMusic(ctx context.Context) ([]Track, error)
}

// ProfileRepository defines the interface for viewing profile management
type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]*Profile, error)

	// CreateProfile creates a new profile.  The service marks the first profile
	// created on an account as the main profile.
	CreateProfile(ctx context.Context, name string, avatarIndex int) (*Profile, error)

	DeleteProfile(ctx context.Context, id string) error
}

// WatchEntry records that a profile watched (or listened to) a piece of content
type WatchEntry struct {
	ProfileID       string
	ContentID       string
	ContentType     string // "movie", "series" or "track"
	EpisodeID       string // Only set when ContentType is "series"
	DurationSeconds float64
	WatchedAt       time.Time
}

// HistoryRepository defines the interface for watch history tracking.  Upserts
// are fire-and-forget from the caller's perspective: failures are logged by the
// implementation and must never block playback.
type HistoryRepository interface {
	UpsertWatch(ctx context.Context, entry WatchEntry) error
}

// AuthService is the capability gate in front of the catalog service.  None of
// the playback or wishlist logic depends on its internals.
type AuthService interface {
	// CurrentUser returns the authenticated user, or nil when signed out
	CurrentUser() *User

	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password, confirmPassword string) error
	SignOut(ctx context.Context) error
}
