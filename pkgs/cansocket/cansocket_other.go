//go:build !linux

package cansocket

import (
	"errors"
	"time"
)

// ErrUnsupportedPlatform is returned by Open on any OS other than Linux;
// SocketCAN is a Linux kernel facility.
var ErrUnsupportedPlatform = errors.New("cansocket: SocketCAN is only available on linux")

// Open always fails outside Linux. Use pkgs/remote.UDPSocket for bench
// testing on other platforms.
func Open(iface string, enableFD bool, recvTimeout time.Duration) (Socket, error) {
	return nil, ErrUnsupportedPlatform
}
