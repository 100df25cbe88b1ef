package player

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/PizzaHomicide/hotaru/internal/config"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// MPVBackend plays direct media URLs in an external mpv process controlled
// over its IPC socket.  It supports the full control surface.
type MPVBackend struct {
	config     *config.Config
	ipcClient  *IPCClient
	cmd        *exec.Cmd
	socketPath string
}

// NewMPVBackend creates an mpv backend instance
func NewMPVBackend(cfg *config.Config) *MPVBackend {
	socketPath := SocketPath()
	return &MPVBackend{
		config:     cfg,
		socketPath: socketPath,
		ipcClient:  NewIPCClient(socketPath),
	}
}

func (p *MPVBackend) Capability() Capability {
	return DirectMedia
}

// Start launches mpv with the media URL, connects to its IPC socket and
// translates mpv's event stream into MediaEvents
func (p *MPVBackend) Start(ctx context.Context, url string) (<-chan MediaEvent, error) {
	log.Info("Starting mpv playback", "url", url)

	events := make(chan MediaEvent, 10)

	mpvPath := p.config.Player.Path
	if mpvPath == "" {
		mpvPath = "mpv"
	}

	args := []string{
		"--no-terminal",
		"--keep-open=no",
		"--input-ipc-server=" + p.socketPath,
	}
	if p.config.Player.Args != "" {
		args = append(args, ParseArgs(p.config.Player.Args)...)
	}
	args = append(args, url)

	cmd := exec.Command(mpvPath, args...)
	setupPlayerProcess(cmd)

	if err := cmd.Start(); err != nil {
		close(events)
		return events, fmt.Errorf("failed to start mpv: %w", err)
	}
	p.cmd = cmd

	if err := releasePlayerProcess(cmd); err != nil {
		log.Warn("Failed to release mpv process", "error", err)
	}

	go p.monitor(ctx, events)

	return events, nil
}

// monitor connects to mpv, waits for playback to start and then relays
// progress until mpv exits
func (p *MPVBackend) monitor(ctx context.Context, events chan<- MediaEvent) {
	defer close(events)

	// Allow time for mpv to create the socket
	time.Sleep(300 * time.Millisecond)

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.ipcClient.WaitForConnection(connCtx, 20, 500*time.Millisecond); err != nil {
		log.Error("Failed to connect to mpv", "error", err)
		events <- MediaEvent{Type: MediaError, Err: err}
		return
	}

	if err := p.ipcClient.WaitForPlaybackStart(ctx, 30*time.Second); err != nil {
		log.Error("Failed to detect mpv playback start", "error", err)
		events <- MediaEvent{Type: MediaError, Err: err}
		return
	}

	// Duration and pause state come in as property changes alongside the
	// playback-time observation WaitForPlaybackStart already registered
	if err := p.ipcClient.ObserveProperty(2, "duration"); err != nil {
		log.Warn("Failed to observe duration property", "error", err)
	}

	events <- MediaEvent{Type: MediaStarted}

	var playbackTime, duration float64

	mpvEvents := p.ipcClient.Events()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Context cancelled, stopping mpv monitoring")
			return
		case event, ok := <-mpvEvents:
			if !ok {
				log.Debug("mpv event channel closed")
				events <- MediaEvent{Type: MediaEnded, Position: playbackTime, Duration: duration}
				return
			}

			switch event.Event {
			case "end-file":
				log.Info("mpv playback ended")
				events <- MediaEvent{Type: MediaEnded, Position: playbackTime, Duration: duration}
				return
			case "property-change":
				if value, err := propertyFloat(event, "duration"); err == nil {
					duration = value
					events <- MediaEvent{Type: MediaProgress, Position: playbackTime, Duration: duration}
				}
				if value, err := propertyFloat(event, "playback-time"); err == nil {
					playbackTime = value
					events <- MediaEvent{Type: MediaProgress, Position: playbackTime, Duration: duration}
				}
			}
		}
	}
}

func propertyFloat(event mpvEvent, targetName string) (float64, error) {
	if event.Name != targetName {
		return 0.0, fmt.Errorf("event name %s does not match target name %s", event.Name, targetName)
	}

	var value float64
	if err := json.Unmarshal(event.Data, &value); err != nil {
		return 0.0, fmt.Errorf("failed to unmarshal property value: %w", err)
	}
	return value, nil
}

// SetPause pauses or resumes mpv
func (p *MPVBackend) SetPause(paused bool) error {
	return p.ipcClient.SetProperty("pause", paused)
}

// Seek jumps to an absolute position in seconds
func (p *MPVBackend) Seek(seconds float64) error {
	return p.ipcClient.SendCommand([]interface{}{"seek", seconds, "absolute"})
}

// SetVolume sets the output volume.  mpv speaks percentages, the session
// speaks fractions.
func (p *MPVBackend) SetVolume(fraction float64) error {
	return p.ipcClient.SetProperty("volume", fraction*100)
}

// Stop stops playback if it's active
func (p *MPVBackend) Stop() error {
	if p.ipcClient != nil {
		p.ipcClient.Close()
	}

	if p.cmd != nil && p.cmd.Process != nil {
		log.Info("Stopping mpv playback")
		return p.cmd.Process.Kill()
	}
	return nil
}

// Cleanup removes the socket file if mpv left one behind
func (p *MPVBackend) Cleanup() {
	if _, err := os.Stat(p.socketPath); err == nil {
		if err := os.Remove(p.socketPath); err != nil {
			log.Warn("Failed to remove mpv socket file", "path", p.socketPath, "error", err)
		}
	}
}
