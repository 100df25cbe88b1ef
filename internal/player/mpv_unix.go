//go:build !windows

package player

import (
	"context"
	"net"
)

// dialIPC connects to mpv's unix domain socket
func dialIPC(ctx context.Context, socketPath string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", socketPath)
}
