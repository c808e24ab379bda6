// Package cansocket is the thin transport layer over Linux SocketCAN: open,
// close, set read timeout, read one raw frame, write one raw frame, timed
// readiness probe. This is the one place the library talks to the kernel
// directly; everywhere else goes through the Socket interface so
// pkgs/remote can substitute a different transport for bench testing.
package cansocket

import "time"

// Frame is one raw CAN frame as read off the bus: an 11-bit standard
// identifier and up to 8 bytes of payload (the codec layouts this package
// carries all fit in the classic 8-byte payload, FD or not).
type Frame struct {
	ID   uint32
	Data []byte
}

// Socket is the transport contract the rest of the library depends on.
// cansocket.CANSocket (Linux-only, golang.org/x/sys/unix-backed) and
// pkgs/remote.UDPSocket both implement it.
type Socket interface {
	IsOpen() bool
	WriteRaw(id uint32, data []byte) error
	ReadRaw() (Frame, error)
	IsDataAvailable(timeout time.Duration) (bool, error)
	SetRecvTimeout(d time.Duration) error
	Close() error
}

// MaxStandardID is the highest valid 11-bit standard CAN identifier.
const MaxStandardID uint32 = 0x7FF
