package models

import (
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/player"
)

// AuthCompletedMsg is sent when sign in or sign up succeeds
type AuthCompletedMsg struct {
	User *domain.User
}

// AuthFailedMsg is sent when sign in or sign up fails
type AuthFailedMsg struct {
	Error string
}

// ProfilesLoadedMsg is sent when the account's profiles have been fetched
type ProfilesLoadedMsg struct {
	Profiles []*domain.Profile
}

// ProfilesErrorMsg is sent when profiles could not be fetched or changed
type ProfilesErrorMsg struct {
	Error error
}

// ProfileSelectedMsg is sent when the user picks the profile to browse with
type ProfileSelectedMsg struct {
	Profile *domain.Profile
}

// CatalogLoadedMsg is sent when the catalog snapshot has been loaded
type CatalogLoadedMsg struct{}

// CatalogErrorMsg is sent when the catalog could not be loaded.  Browsing
// continues with whatever snapshot is already cached.
type CatalogErrorMsg struct {
	Error error
}

// OpenDetailsMsg asks the app to open the details modal for a catalog entry
type OpenDetailsMsg struct {
	Content domain.Content
}

// TabChangedMsg is sent when the user cycles to another top-level tab
type TabChangedMsg struct {
	Tab Tab
}

// PlayRequestMsg asks the app to open a playback session for the source
type PlayRequestMsg struct {
	Source player.Source
}

// PlaybackUpdateMsg carries the latest session snapshot to the player view
type PlaybackUpdateMsg struct {
	Snapshot player.Snapshot
}

// PlaybackClosedMsg is sent when the active session has fully closed
type PlaybackClosedMsg struct{}

// WishlistChangedMsg is sent after a wishlist mutation so views can refresh
// their indicators
type WishlistChangedMsg struct {
	Result string
	Title  string
}
