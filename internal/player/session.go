package player

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// State is the playback session lifecycle state
type State string

const (
	// StateClosed is both the initial and the terminal state
	StateClosed State = "closed"
	// StateLoading covers the window between launching the backend and the
	// first started event, while the media source resolves
	StateLoading State = "loading"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	// StateFailed means the media could not be resolved or played.  The UI
	// offers retry/close instead of spinning on Loading forever.
	StateFailed State = "failed"
)

// controlsHideDelay is how long the on-screen controls stay up without input
// while playing
const controlsHideDelay = 3 * time.Second

// Source identifies what a session is playing.  Exactly one of Content or
// Track is set; Episode is set when Content is a series.
type Source struct {
	Content domain.Content
	Episode *domain.Episode
	Track   *domain.Track
	URL     string
	Title   string
}

// ContentID returns the catalog id of whatever the source points at
func (s Source) ContentID() string {
	switch {
	case s.Content != nil:
		return s.Content.Info().ID
	case s.Track != nil:
		return s.Track.ID
	default:
		return ""
	}
}

// ContentType returns the history content type label for the source
func (s Source) ContentType() string {
	switch {
	case s.Track != nil:
		return "track"
	case s.Content != nil:
		return string(s.Content.Kind())
	default:
		return ""
	}
}

// Snapshot is an immutable view of a session for rendering
type Snapshot struct {
	ID              int64
	State           State
	Source          Source
	Position        float64
	Duration        float64
	Volume          float64
	Muted           bool
	ControlsVisible bool
	Capability      Capability
	Err             error
}

// Session is the playback state machine for a single piece of media.  Sessions
// are created by the Manager, play exactly one source and end up Closed; they
// are never reused.  Backend events for a torn-down session hit its own (now
// inert) Session value and can never leak into a successor.
type Session struct {
	id      int64
	backend Backend
	onClose func(Snapshot)

	mu                sync.Mutex
	state             State
	source            Source
	position          float64
	duration          float64
	volume            float64
	muted             bool
	lastNonZeroVolume float64
	controlsVisible   bool
	hideGen           int
	hideTimer         *time.Timer
	err               error
	closed            sync.Once

	updates chan struct{}
}

func newSession(id int64, backend Backend, source Source, onClose func(Snapshot)) *Session {
	if onClose == nil {
		onClose = func(Snapshot) {}
	}
	return &Session{
		id:                id,
		backend:           backend,
		onClose:           onClose,
		state:             StateClosed,
		source:            source,
		volume:            1.0,
		lastNonZeroVolume: 1.0,
		controlsVisible:   true,
		updates:           make(chan struct{}, 1),
	}
}

// start launches the backend.  On launch failure the session lands in Failed
// rather than Closed so the UI can offer a retry.
func (s *Session) start(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.controlsVisible = true
	s.mu.Unlock()
	s.notify()

	events, err := s.backend.Start(ctx, s.source.URL)
	if err != nil {
		log.Error("Failed to start playback backend", "error", err, "title", s.source.Title)
		s.mu.Lock()
		s.state = StateFailed
		s.err = err
		s.mu.Unlock()
		s.notify()
		return err
	}

	go s.pump(events)
	return nil
}

// pump applies backend events until the channel closes.  A closed channel
// means the player exited, which ends the session.
func (s *Session) pump(events <-chan MediaEvent) {
	for ev := range events {
		s.apply(ev)
	}
	s.apply(MediaEvent{Type: MediaEnded})
}

func (s *Session) apply(ev MediaEvent) {
	s.mu.Lock()

	// A session that has been closed or failed ignores everything else the
	// backend sends afterwards
	if s.state == StateClosed || s.state == StateFailed {
		s.mu.Unlock()
		return
	}

	switch ev.Type {
	case MediaStarted:
		if s.state == StateLoading {
			log.Info("Playback started", "title", s.source.Title)
			s.state = StatePlaying
			s.scheduleHideLocked()
		}
	case MediaProgress:
		if ev.Duration > 0 {
			s.duration = ev.Duration
		}
		s.position = clamp(ev.Position, 0, s.maxPositionLocked())
	case MediaEnded:
		log.Info("Playback ended", "title", s.source.Title, "position", s.position)
		s.mu.Unlock()
		s.Close()
		return
	case MediaError:
		log.Error("Playback failed", "error", ev.Err, "title", s.source.Title)
		s.state = StateFailed
		s.err = ev.Err
		s.controlsVisible = true
		s.cancelHideLocked()
	}

	s.mu.Unlock()
	s.notify()
}

// Snapshot returns the current session state for rendering
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:              s.id,
		State:           s.state,
		Source:          s.source,
		Position:        s.position,
		Duration:        s.duration,
		Volume:          s.volume,
		Muted:           s.muted,
		ControlsVisible: s.controlsVisible,
		Capability:      s.backend.Capability(),
		Err:             s.err,
	}
}

// Updates signals whenever the session state changes.  The channel coalesces:
// a slow reader sees at least one signal, not every intermediate state.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// Capability reports how much of the control surface the backend supports
func (s *Session) Capability() Capability {
	return s.backend.Capability()
}

// TogglePlay switches between Playing and Paused.  It is a no-op unless the
// session is in one of those two states.
func (s *Session) TogglePlay() error {
	s.mu.Lock()

	if s.backend.Capability() != DirectMedia {
		s.mu.Unlock()
		return ErrControlUnsupported
	}

	var paused bool
	switch s.state {
	case StatePlaying:
		s.state = StatePaused
		paused = true
		// Pausing brings the controls back and keeps them up
		s.controlsVisible = true
		s.cancelHideLocked()
	case StatePaused:
		s.state = StatePlaying
		paused = false
		s.scheduleHideLocked()
	default:
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.backend.SetPause(paused); err != nil {
		log.Warn("Failed to toggle pause", "error", err)
	}
	s.notify()
	return nil
}

// Seek jumps to an absolute position, clamped to [0, duration]
func (s *Session) Seek(seconds float64) error {
	s.mu.Lock()

	if s.backend.Capability() != DirectMedia {
		s.mu.Unlock()
		return ErrControlUnsupported
	}
	if s.state != StatePlaying && s.state != StatePaused {
		s.mu.Unlock()
		return nil
	}

	target := clamp(seconds, 0, s.maxPositionLocked())
	s.position = target
	s.mu.Unlock()

	if err := s.backend.Seek(target); err != nil {
		log.Warn("Failed to seek", "error", err, "target", target)
	}
	s.notify()
	return nil
}

// Skip seeks relative to the current position with the same clamping as Seek
func (s *Session) Skip(deltaSeconds float64) error {
	s.mu.Lock()
	target := s.position + deltaSeconds
	s.mu.Unlock()
	return s.Seek(target)
}

// SetVolume sets the volume as a fraction clamped to [0, 1].  Setting zero
// mutes; setting anything else unmutes.
func (s *Session) SetVolume(fraction float64) error {
	s.mu.Lock()

	if s.backend.Capability() != DirectMedia {
		s.mu.Unlock()
		return ErrControlUnsupported
	}

	v := clamp(fraction, 0, 1)
	s.volume = v
	if v == 0 {
		s.muted = true
	} else {
		s.muted = false
		s.lastNonZeroVolume = v
	}
	effective := s.effectiveVolumeLocked()
	s.mu.Unlock()

	if err := s.backend.SetVolume(effective); err != nil {
		log.Warn("Failed to set volume", "error", err)
	}
	s.notify()
	return nil
}

// ToggleMute flips mute.  Unmuting restores the last non-zero volume; muting
// keeps the stored volume value.
func (s *Session) ToggleMute() error {
	s.mu.Lock()

	if s.backend.Capability() != DirectMedia {
		s.mu.Unlock()
		return ErrControlUnsupported
	}

	if s.muted {
		s.muted = false
		s.volume = s.lastNonZeroVolume
	} else {
		s.muted = true
	}
	effective := s.effectiveVolumeLocked()
	s.mu.Unlock()

	if err := s.backend.SetVolume(effective); err != nil {
		log.Warn("Failed to set volume", "error", err)
	}
	s.notify()
	return nil
}

// ShowControls forces the controls visible, as on any pointer/key activity.
// While playing, the auto-hide timer restarts.
func (s *Session) ShowControls() {
	s.mu.Lock()
	s.controlsVisible = true
	if s.state == StatePlaying {
		s.scheduleHideLocked()
	} else {
		s.cancelHideLocked()
	}
	s.mu.Unlock()
	s.notify()
}

// Close tears the session down: the hide timer is cancelled, the backend is
// stopped and the state becomes Closed.  Closing twice is harmless.
func (s *Session) Close() {
	s.closed.Do(func() {
		s.mu.Lock()
		s.cancelHideLocked()
		s.state = StateClosed
		snap := Snapshot{
			ID:       s.id,
			State:    s.state,
			Source:   s.source,
			Position: s.position,
			Duration: s.duration,
		}
		s.mu.Unlock()

		if err := s.backend.Stop(); err != nil {
			log.Warn("Failed to stop playback backend", "error", err)
		}
		s.backend.Cleanup()

		log.Debug("Playback session closed", "session_id", s.id, "title", snap.Source.Title)
		s.notify()
		s.onClose(snap)
	})
}

// scheduleHideLocked (re)starts the auto-hide countdown.  The generation
// counter makes timers from earlier schedules inert.
func (s *Session) scheduleHideLocked() {
	s.cancelHideLocked()
	s.hideGen++
	gen := s.hideGen
	s.hideTimer = time.AfterFunc(controlsHideDelay, func() {
		s.hideControls(gen)
	})
}

func (s *Session) cancelHideLocked() {
	if s.hideTimer != nil {
		s.hideTimer.Stop()
		s.hideTimer = nil
	}
}

func (s *Session) hideControls(gen int) {
	s.mu.Lock()
	// Only the most recent schedule may hide, and only while still playing
	if gen != s.hideGen || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	s.controlsVisible = false
	s.mu.Unlock()
	s.notify()
}

func (s *Session) effectiveVolumeLocked() float64 {
	if s.muted {
		return 0
	}
	return s.volume
}

// maxPositionLocked is the seek ceiling: the duration when known, otherwise
// unbounded because metadata has not loaded yet
func (s *Session) maxPositionLocked() float64 {
	if s.duration > 0 {
		return s.duration
	}
	return math.Inf(1)
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
