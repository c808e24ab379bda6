//go:build linux

package cansocket

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// classic can_frame is 16 bytes: 4-byte id, 1-byte dlc, 3 reserved, 8 data.
// canfd_frame is 72 bytes: 4-byte id, 1-byte len, 1 flags, 2 reserved, 64 data.
const (
	classicFrameSize = 16
	fdFrameSize      = 72
	maxDataLen       = 8
)

// CANSocket is a Linux SocketCAN endpoint opened in classic CAN 2.0A or
// CAN-FD mode. It is the only component in this library that talks to the
// kernel directly.
type CANSocket struct {
	mu      sync.Mutex
	fd      int
	iface   string
	enableFD bool
	open    bool
}

// Open binds a raw AF_CAN/SOCK_RAW/CAN_RAW socket to the named interface
// and sets its read timeout. If enableFD is set, CAN_RAW_FD_FRAMES is
// enabled on the socket so CAN-FD frames may be exchanged.
func Open(iface string, enableFD bool, recvTimeout time.Duration) (*CANSocket, error) {
	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, &SocketError{Op: "socket", Err: err}
	}

	ifreq, err := unix.NewIfreq(iface)
	if err != nil {
		unix.Close(fd)
		return nil, &SocketError{Op: "ifreq", Err: err}
	}
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, ifreq); err != nil {
		unix.Close(fd)
		return nil, &SocketError{Op: "SIOCGIFINDEX", Err: err}
	}
	ifindex := ifreq.Uint32()

	if enableFD {
		if err := unix.SetsockoptInt(fd, unix.SOL_CAN_RAW, unix.CAN_RAW_FD_FRAMES, 1); err != nil {
			unix.Close(fd)
			return nil, &SocketError{Op: "setsockopt CAN_RAW_FD_FRAMES", Err: err}
		}
	}

	sa := &unix.SockaddrCAN{Ifindex: int(ifindex)}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, &SocketError{Op: "bind", Err: err}
	}

	s := &CANSocket{fd: fd, iface: iface, enableFD: enableFD, open: true}
	if err := s.SetRecvTimeout(recvTimeout); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return s, nil
}

// Interface returns the bound interface name.
func (s *CANSocket) Interface() string {
	return s.iface
}

func (s *CANSocket) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetRecvTimeout sets SO_RCVTIMEO. Idempotent.
func (s *CANSocket) SetRecvTimeout(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrSocketNotOpen
	}
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if err := unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return &SocketError{Op: "setsockopt SO_RCVTIMEO", Err: err}
	}
	return nil
}

// WriteRaw sends a single frame. Only 11-bit standard identifiers are
// accepted. A payload longer than the 8-byte classic data length is
// rejected with ErrCanFdNotSupported unless the socket was opened with
// enableFD.
func (s *CANSocket) WriteRaw(id uint32, data []byte) error {
	if id > MaxStandardID {
		return &InvalidCanIDError{ID: id}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrSocketNotOpen
	}

	n := len(data)
	if n > maxDataLen && !s.enableFD {
		return ErrCanFdNotSupported
	}

	var buf []byte
	if s.enableFD {
		buf = make([]byte, fdFrameSize)
	} else {
		buf = make([]byte, classicFrameSize)
	}
	putUint32LE(buf[0:4], id)
	buf[4] = byte(n)
	copy(buf[8:8+n], data[:n])

	if _, err := unix.Write(s.fd, buf); err != nil {
		return &SocketError{Op: "write", Err: err}
	}
	return nil
}

// ReadRaw attempts one read. On timeout or "would block" it returns
// ErrNoFrame, never an error wrapping EAGAIN/EWOULDBLOCK.
func (s *CANSocket) ReadRaw() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return Frame{}, ErrSocketNotOpen
	}

	buf := make([]byte, fdFrameSize)
	n, err := unix.Read(s.fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return Frame{}, ErrNoFrame
		}
		return Frame{}, &SocketError{Op: "read", Err: err}
	}
	if n < classicFrameSize {
		return Frame{}, ErrNoFrame
	}

	id := getUint32LE(buf[0:4]) & unix.CAN_SFF_MASK
	dlc := int(buf[4])
	if dlc > maxDataLen {
		dlc = maxDataLen
	}
	data := make([]byte, dlc)
	copy(data, buf[8:8+dlc])

	return Frame{ID: id, Data: data}, nil
}

// IsDataAvailable performs a poll(2)-based readiness probe. EINTR is
// treated as "no data" rather than propagated, so the drain loop survives
// process-directed signals.
func (s *CANSocket) IsDataAvailable(timeout time.Duration) (bool, error) {
	s.mu.Lock()
	fd := s.fd
	open := s.open
	s.mu.Unlock()
	if !open {
		return false, ErrSocketNotOpen
	}

	timeoutMS := int(timeout.Milliseconds())
	if timeout > 0 && timeoutMS == 0 {
		timeoutMS = 1
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, &SocketError{Op: "poll", Err: err}
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// Close releases the endpoint. A closed CANSocket cannot be reopened: every
// later operation on it returns ErrSocketNotOpen and a second Close is a
// no-op. A new endpoint comes from a fresh Open call, which returns a new
// CANSocket.
func (s *CANSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil
	}
	s.open = false
	if err := unix.Close(s.fd); err != nil {
		return &SocketError{Op: "close", Err: err}
	}
	return nil
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

var _ Socket = (*CANSocket)(nil)
