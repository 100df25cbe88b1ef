//go:build windows

package player

import (
	"context"
	"net"

	"gopkg.in/natefinch/npipe.v2"
)

// dialIPC connects to mpv's named pipe
func dialIPC(ctx context.Context, socketPath string) (net.Conn, error) {
	return npipe.Dial(socketPath)
}
