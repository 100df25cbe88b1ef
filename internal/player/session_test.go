package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaHomicide/hotaru/internal/domain"
)

// fakeBackend is a scriptable in-memory backend
type fakeBackend struct {
	capability Capability
	startErr   error

	mu      sync.Mutex
	events  chan MediaEvent
	stopped bool
	closed  bool
	paused  []bool
	seeks   []float64
	volumes []float64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		capability: DirectMedia,
		events:     make(chan MediaEvent, 10),
	}
}

func (f *fakeBackend) Capability() Capability { return f.capability }

func (f *fakeBackend) Start(ctx context.Context, url string) (<-chan MediaEvent, error) {
	if f.startErr != nil {
		close(f.events)
		return f.events, f.startErr
	}
	return f.events, nil
}

func (f *fakeBackend) SetPause(paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = append(f.paused, paused)
	return nil
}

func (f *fakeBackend) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	return nil
}

func (f *fakeBackend) SetVolume(fraction float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, fraction)
	return nil
}

func (f *fakeBackend) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

func (f *fakeBackend) Cleanup() {}

func (f *fakeBackend) emit(ev MediaEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.events <- ev
	}
}

func (f *fakeBackend) wasStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func movieSource(id, title string) Source {
	return Source{
		Content: &domain.Movie{
			ContentInfo: domain.ContentInfo{ID: id, Title: title},
			VideoURL:    "https://cdn.example.com/" + id + ".mp4",
		},
		URL:   "https://cdn.example.com/" + id + ".mp4",
		Title: title,
	}
}

// startPlayingSession returns a session driven to the Playing state with the
// given duration known
func startPlayingSession(t *testing.T, backend *fakeBackend, duration float64) *Session {
	t.Helper()
	session := newSession(1, backend, movieSource("m1", "Moana"), nil)
	require.NoError(t, session.start(context.Background()))
	assert.Equal(t, StateLoading, session.Snapshot().State)

	backend.emit(MediaEvent{Type: MediaStarted})
	backend.emit(MediaEvent{Type: MediaProgress, Position: 0, Duration: duration})
	require.Eventually(t, func() bool {
		snap := session.Snapshot()
		return snap.State == StatePlaying && snap.Duration == duration
	}, time.Second, 5*time.Millisecond)

	t.Cleanup(session.Close)
	return session
}

func TestSessionLifecycle(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 120)

	require.NoError(t, session.TogglePlay())
	assert.Equal(t, StatePaused, session.Snapshot().State)

	require.NoError(t, session.TogglePlay())
	assert.Equal(t, StatePlaying, session.Snapshot().State)

	session.Close()
	assert.Equal(t, StateClosed, session.Snapshot().State)
	assert.True(t, backend.wasStopped())

	// Closing again is harmless
	session.Close()
	assert.Equal(t, StateClosed, session.Snapshot().State)
}

func TestSeekClampsToDuration(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	require.NoError(t, session.Seek(50))
	assert.Equal(t, 50.0, session.Snapshot().Position)

	require.NoError(t, session.Seek(250))
	assert.Equal(t, 100.0, session.Snapshot().Position)

	require.NoError(t, session.Seek(-10))
	assert.Equal(t, 0.0, session.Snapshot().Position)

	// Whatever sequence of skips runs, the position stays in [0, duration]
	for _, delta := range []float64{30, 30, 30, 30, -500, 70, 9999} {
		require.NoError(t, session.Skip(delta))
		pos := session.Snapshot().Position
		assert.GreaterOrEqual(t, pos, 0.0)
		assert.LessOrEqual(t, pos, 100.0)
	}
}

func TestSkipIsRelative(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	require.NoError(t, session.Seek(40))
	require.NoError(t, session.Skip(10))
	assert.Equal(t, 50.0, session.Snapshot().Position)

	require.NoError(t, session.Skip(-60))
	assert.Equal(t, 0.0, session.Snapshot().Position)
}

func TestSetVolumeZeroMutes(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	require.NoError(t, session.SetVolume(0))
	snap := session.Snapshot()
	assert.True(t, snap.Muted)
	assert.Equal(t, 0.0, snap.Volume)

	require.NoError(t, session.SetVolume(0.4))
	snap = session.Snapshot()
	assert.False(t, snap.Muted)
	assert.Equal(t, 0.4, snap.Volume)
}

func TestUnmuteRestoresPreMuteVolume(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	require.NoError(t, session.SetVolume(0.6))
	require.NoError(t, session.ToggleMute())
	snap := session.Snapshot()
	assert.True(t, snap.Muted)
	// Muting keeps the stored volume value
	assert.Equal(t, 0.6, snap.Volume)

	require.NoError(t, session.ToggleMute())
	snap = session.Snapshot()
	assert.False(t, snap.Muted)
	assert.Equal(t, 0.6, snap.Volume)

	// The backend heard effective volume 0 while muted
	backend.mu.Lock()
	volumes := append([]float64(nil), backend.volumes...)
	backend.mu.Unlock()
	assert.Contains(t, volumes, 0.0)
}

func TestUnmuteAfterVolumeZeroRestoresLastNonZero(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	require.NoError(t, session.SetVolume(0.6))
	require.NoError(t, session.SetVolume(0))
	assert.True(t, session.Snapshot().Muted)

	require.NoError(t, session.ToggleMute())
	snap := session.Snapshot()
	assert.False(t, snap.Muted)
	assert.Equal(t, 0.6, snap.Volume)
}

func TestVolumeClamped(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	require.NoError(t, session.SetVolume(2.5))
	assert.Equal(t, 1.0, session.Snapshot().Volume)

	require.NoError(t, session.SetVolume(-1))
	snap := session.Snapshot()
	assert.Equal(t, 0.0, snap.Volume)
	assert.True(t, snap.Muted)
}

func TestControlsAutoHideOnlyWhilePlaying(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)
	assert.True(t, session.Snapshot().ControlsVisible)

	// The scheduled hide fires while playing
	session.hideControls(session.hideGen)
	assert.False(t, session.Snapshot().ControlsVisible)

	// Any activity brings them back
	session.ShowControls()
	assert.True(t, session.Snapshot().ControlsVisible)

	// Pausing keeps them up: the pending hide is inert
	gen := session.hideGen
	require.NoError(t, session.TogglePlay())
	session.hideControls(gen)
	assert.True(t, session.Snapshot().ControlsVisible)
}

func TestStaleHideTimerIsInert(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	stale := session.hideGen
	// ShowControls reschedules, invalidating the earlier timer generation
	session.ShowControls()
	session.hideControls(stale)
	assert.True(t, session.Snapshot().ControlsVisible)
}

func TestMediaErrorMovesToFailed(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	backend.emit(MediaEvent{Type: MediaError, Err: errors.New("unsupported format")})
	require.Eventually(t, func() bool {
		return session.Snapshot().State == StateFailed
	}, time.Second, 5*time.Millisecond)

	snap := session.Snapshot()
	assert.Error(t, snap.Err)
	assert.True(t, snap.ControlsVisible)
}

func TestStartFailureMovesToFailed(t *testing.T) {
	backend := newFakeBackend()
	backend.startErr = errors.New("binary not found")

	session := newSession(1, backend, movieSource("m1", "Moana"), nil)
	assert.Error(t, session.start(context.Background()))
	assert.Equal(t, StateFailed, session.Snapshot().State)
}

func TestMediaEndedClosesSession(t *testing.T) {
	backend := newFakeBackend()
	session := startPlayingSession(t, backend, 100)

	backend.emit(MediaEvent{Type: MediaEnded, Position: 100, Duration: 100})
	require.Eventually(t, func() bool {
		return session.Snapshot().State == StateClosed
	}, time.Second, 5*time.Millisecond)
}

func TestControlsUnsupportedOnEmbed(t *testing.T) {
	backend := newFakeBackend()
	backend.capability = OpaqueEmbed
	session := newSession(1, backend, movieSource("m1", "Moana"), nil)
	require.NoError(t, session.start(context.Background()))

	assert.ErrorIs(t, session.TogglePlay(), ErrControlUnsupported)
	assert.ErrorIs(t, session.Seek(10), ErrControlUnsupported)
	assert.ErrorIs(t, session.SetVolume(0.5), ErrControlUnsupported)
	assert.ErrorIs(t, session.ToggleMute(), ErrControlUnsupported)

	session.Close()
}

func TestTogglePlayNoopWhenNotStarted(t *testing.T) {
	backend := newFakeBackend()
	session := newSession(1, backend, movieSource("m1", "Moana"), nil)
	require.NoError(t, session.start(context.Background()))

	// Still Loading: nothing to toggle
	require.NoError(t, session.TogglePlay())
	assert.Equal(t, StateLoading, session.Snapshot().State)

	session.Close()
}
