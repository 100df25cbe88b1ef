package player

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/PizzaHomicide/hotaru/internal/log"
)

// embedMarkers are URL fragments identifying opaque third-party player pages
// that cannot be driven programmatically and must be handed to a browser
var embedMarkers = []string{"embed", "vidsrc", "iframe"}

// IsEmbedURL reports whether url points at an opaque embedded player rather
// than a direct media stream
func IsEmbedURL(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range embedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// EmbedBackend plays opaque embedded player URLs by handing them to the
// system browser.  Only open and close are supported; there is no seeking,
// volume control or progress reporting.
type EmbedBackend struct {
	mu     sync.Mutex
	events chan MediaEvent
	done   bool
}

func NewEmbedBackend() *EmbedBackend {
	return &EmbedBackend{}
}

func (b *EmbedBackend) Capability() Capability {
	return OpaqueEmbed
}

// Start opens the URL in the default browser.  The session stays open until
// Stop because there is no way to observe the embedded player.
func (b *EmbedBackend) Start(ctx context.Context, url string) (<-chan MediaEvent, error) {
	events := make(chan MediaEvent, 1)

	if err := OpenBrowser(url); err != nil {
		close(events)
		return events, fmt.Errorf("failed to open browser: %w", err)
	}

	log.Info("Opened embedded player in browser", "url", url)
	events <- MediaEvent{Type: MediaStarted}

	b.mu.Lock()
	b.events = events
	b.mu.Unlock()

	return events, nil
}

func (b *EmbedBackend) SetPause(bool) error {
	return ErrControlUnsupported
}

func (b *EmbedBackend) Seek(float64) error {
	return ErrControlUnsupported
}

func (b *EmbedBackend) SetVolume(float64) error {
	return ErrControlUnsupported
}

// Stop ends the session.  The browser tab is the user's to close.
func (b *EmbedBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.events != nil && !b.done {
		b.done = true
		close(b.events)
	}
	return nil
}

func (b *EmbedBackend) Cleanup() {}

// OpenBrowser opens the specified URL in the default browser
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}
