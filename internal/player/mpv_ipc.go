package player

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/PizzaHomicide/hotaru/internal/log"
)

// IPCClient talks to a running mpv instance over its JSON IPC socket
type IPCClient struct {
	socketPath string
	conn       net.Conn
	events     chan mpvEvent
}

// mpvEvent is one line of mpv's IPC protocol
type mpvEvent struct {
	Event     string          `json:"event"`
	Name      string          `json:"name,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID int             `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewIPCClient creates an IPC client for the given socket path
func NewIPCClient(socketPath string) *IPCClient {
	return &IPCClient{
		socketPath: socketPath,
		events:     make(chan mpvEvent, 100),
	}
}

// SocketPath returns the platform-appropriate path for the mpv IPC socket
func SocketPath() string {
	if path := os.Getenv("HOTARU_MPV_SOCKET"); path != "" {
		return path
	}

	switch runtime.GOOS {
	case "windows":
		return `\\.\pipe\hotaru-mpv`
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("Failed to get user home directory", "error", err)
			return "/tmp/hotaru-mpv"
		}
		return filepath.Join(homeDir, ".config", "hotaru", "mpv-socket")
	default:
		if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
			return filepath.Join(runtimeDir, "hotaru-mpv")
		}
		return "/tmp/hotaru-mpv"
	}
}

// Connect establishes the IPC connection and starts the event reader
func (c *IPCClient) Connect(ctx context.Context) error {
	conn, err := dialIPC(ctx, c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to mpv: %w", err)
	}
	c.conn = conn
	go c.readEvents()
	return nil
}

// WaitForConnection attempts to connect to mpv with retries, giving the
// process time to create its socket
func (c *IPCClient) WaitForConnection(ctx context.Context, maxAttempts int, retryDelay time.Duration) error {
	log.Debug("Waiting for mpv socket", "socket_path", c.socketPath, "max_attempts", maxAttempts)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if runtime.GOOS != "windows" {
			if _, err := os.Stat(c.socketPath); os.IsNotExist(err) {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retryDelay):
					continue
				}
			}
		}

		if err := c.Connect(ctx); err == nil {
			log.Info("Connected to mpv", "attempt", attempt)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return fmt.Errorf("failed to connect to mpv after %d attempts", maxAttempts)
}

// Close closes the IPC connection
func (c *IPCClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Events returns the channel of raw mpv events.  The channel closes when the
// connection drops.
func (c *IPCClient) Events() <-chan mpvEvent {
	return c.events
}

func (c *IPCClient) readEvents() {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		line := scanner.Text()
		log.Trace("Raw mpv event", "data", line)

		var event mpvEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			log.Error("Failed to unmarshal mpv event", "error", err)
			continue
		}
		c.events <- event
	}

	if err := scanner.Err(); err != nil {
		log.Error("Error reading from mpv socket", "error", err)
	}

	log.Debug("mpv event reader stopped")
	close(c.events)
}

// SendCommand sends a command array to mpv
func (c *IPCClient) SendCommand(cmd []interface{}) error {
	if c.conn == nil {
		return fmt.Errorf("not connected to mpv")
	}

	data, err := json.Marshal(map[string]interface{}{"command": cmd})
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}

// ObserveProperty subscribes to property-change events for name
func (c *IPCClient) ObserveProperty(id int, name string) error {
	return c.SendCommand([]interface{}{"observe_property", id, name})
}

// SetProperty sets an mpv property
func (c *IPCClient) SetProperty(name string, value interface{}) error {
	return c.SendCommand([]interface{}{"set_property", name, value})
}

// WaitForPlaybackStart blocks until mpv reports the media is actually playing
func (c *IPCClient) WaitForPlaybackStart(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.SendCommand([]interface{}{"get_property", "idle-active"}); err != nil {
		return fmt.Errorf("failed to query playback state: %w", err)
	}
	if err := c.ObserveProperty(1, "playback-time"); err != nil {
		log.Warn("Failed to observe playback-time property", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for mpv to start playback")
		case event, ok := <-c.events:
			if !ok {
				return fmt.Errorf("mpv connection closed while waiting for playback")
			}

			switch event.Event {
			case "property-change":
				if event.Name == "playback-time" {
					var playbackTime float64
					if err := json.Unmarshal(event.Data, &playbackTime); err != nil {
						continue
					}
					if playbackTime > 0 {
						log.Info("mpv playback has started", "time", playbackTime)
						return nil
					}
				}
				if event.Name == "idle-active" {
					var idleActive bool
					if err := json.Unmarshal(event.Data, &idleActive); err != nil {
						continue
					}
					if !idleActive {
						return nil
					}
				}
			case "playback-restart", "file-loaded":
				log.Info("mpv playback has started", "event", event.Event)
				return nil
			}
		}
	}
}
