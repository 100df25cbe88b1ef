// Package player owns media playback: the session state machine the UI renders,
// the manager enforcing the single-active-session rule, and the playback
// backends (an mpv process driven over its IPC socket, and an opaque
// browser-embedded player).
package player

import (
	"context"
	"errors"
)

// Capability describes how much control a backend exposes
type Capability string

const (
	// DirectMedia backends support the full control surface: pause, seek,
	// volume and mute
	DirectMedia Capability = "direct_media"
	// OpaqueEmbed backends only support open and close.  No programmatic
	// seeking, volume or progress reporting is available.
	OpaqueEmbed Capability = "opaque_embed"
)

// ErrControlUnsupported is returned by control methods the backend's
// capability does not cover
var ErrControlUnsupported = errors.New("playback control not supported by this backend")

// MediaEventType represents the type of event emitted by a backend
type MediaEventType string

const (
	// MediaStarted indicates playback has successfully started
	MediaStarted MediaEventType = "started"
	// MediaProgress carries a position or duration update
	MediaProgress MediaEventType = "progress"
	// MediaEnded indicates playback has completed or the player was closed
	MediaEnded MediaEventType = "ended"
	// MediaError indicates the media could not be resolved or played
	MediaError MediaEventType = "error"
)

// MediaEvent is an asynchronous event from a playback backend.  Position and
// Duration are in seconds; a zero Duration means metadata has not loaded yet.
type MediaEvent struct {
	Type     MediaEventType
	Position float64
	Duration float64
	Err      error
}

// Backend is a playback implementation.  Start launches playback of the URL
// and returns the event channel; the channel is closed when playback ends.
// Control methods return ErrControlUnsupported when the capability is
// OpaqueEmbed.
type Backend interface {
	Capability() Capability

	Start(ctx context.Context, url string) (<-chan MediaEvent, error)

	// SetPause pauses or resumes playback
	SetPause(paused bool) error

	// Seek jumps to an absolute position in seconds
	Seek(seconds float64) error

	// SetVolume sets the output volume as a fraction in [0, 1]
	SetVolume(fraction float64) error

	// Stop terminates playback
	Stop() error

	// Cleanup releases any resources left behind by the backend
	Cleanup()
}
