package cansocket

import (
	"errors"
	"fmt"
)

// ErrSocketNotOpen is returned by any operation attempted before Open or
// after Close.
var ErrSocketNotOpen = errors.New("cansocket: socket not open")

// ErrNoFrame is the sentinel "no frame available" result from ReadRaw on
// timeout or EAGAIN. It is not a transport failure.
var ErrNoFrame = errors.New("cansocket: no frame available")

// ErrCanFdNotSupported is returned when a caller writes an FD-sized payload
// to a socket opened without FD mode enabled.
var ErrCanFdNotSupported = errors.New("cansocket: CAN-FD not supported on this socket")

// InvalidCanIDError reports an identifier outside the 11-bit standard range.
type InvalidCanIDError struct {
	ID uint32
}

func (e *InvalidCanIDError) Error() string {
	return fmt.Sprintf("cansocket: invalid CAN id 0x%X", e.ID)
}

// SocketError wraps an underlying OS error encountered during a SocketCAN
// syscall (open, bind, read, write, setsockopt).
type SocketError struct {
	Op  string
	Err error
}

func (e *SocketError) Error() string {
	return fmt.Sprintf("cansocket: %s: %s", e.Op, e.Err)
}

func (e *SocketError) Unwrap() error {
	return e.Err
}
