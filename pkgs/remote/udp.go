// Package remote implements a bench transport for running the library
// without a physical SocketCAN interface: a UDP pair carrying the same
// identifier-plus-payload frames a CAN socket would, for development on
// non-Linux hosts or against a remote bus bridge.
package remote

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dmotor/opencan/pkgs/cansocket"
)

// datagram layout: 4-byte big-endian id, 1-byte length, payload. CAN's
// 8-byte ceiling makes a fixed-size datagram unnecessary; the length byte
// is enough to recover the payload on the other end.
const headerSize = 5

// UDPSocket implements cansocket.Socket over a connected UDP pair, for use
// where a real CAN interface is not available.
//
// UDP is message-oriented: a read shorter than the datagram discards the
// remainder, so readiness cannot be probed by a partial read without losing
// data. IsDataAvailable instead performs the full read and holds the result
// in pending for the next ReadRaw to return, which matches how Registry
// always follows a true IsDataAvailable with exactly one ReadRaw.
type UDPSocket struct {
	conn    net.Conn
	timeout time.Duration
	open    bool
	pending *cansocket.Frame
}

// DialUDP connects to a remote bus bridge listening at addr.
func DialUDP(addr string) (*UDPSocket, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("remote: UDP dial error connecting to bus bridge: %s", err)
	}
	return &UDPSocket{conn: conn, timeout: time.Second, open: true}, nil
}

func (s *UDPSocket) IsOpen() bool { return s.open }

// WriteRaw sends one frame as a length-prefixed UDP datagram.
func (s *UDPSocket) WriteRaw(id uint32, data []byte) error {
	if !s.open {
		return cansocket.ErrSocketNotOpen
	}
	if id > cansocket.MaxStandardID {
		return &cansocket.InvalidCanIDError{ID: id}
	}
	buf := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint32(buf[0:4], id)
	buf[4] = byte(len(data))
	copy(buf[headerSize:], data)

	logrus.Debugf("remote: writing frame id=%#x data=% X", id, data)
	_, err := s.conn.Write(buf)
	if err != nil {
		return &cansocket.SocketError{Op: "write", Err: err}
	}
	return nil
}

// ReadRaw returns a frame buffered by a prior IsDataAvailable, if any;
// otherwise it blocks for up to the configured recv timeout waiting for one
// datagram. A read that times out is reported as cansocket.ErrNoFrame
// rather than a transport failure.
func (s *UDPSocket) ReadRaw() (cansocket.Frame, error) {
	if !s.open {
		return cansocket.Frame{}, cansocket.ErrSocketNotOpen
	}
	if s.pending != nil {
		f := *s.pending
		s.pending = nil
		return f, nil
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
		return cansocket.Frame{}, &cansocket.SocketError{Op: "setdeadline", Err: err}
	}
	return s.readDatagram()
}

func (s *UDPSocket) readDatagram() (cansocket.Frame, error) {
	buf := make([]byte, headerSize+8)
	n, err := s.conn.Read(buf)
	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return cansocket.Frame{}, cansocket.ErrNoFrame
		}
		return cansocket.Frame{}, &cansocket.SocketError{Op: "read", Err: err}
	}
	if n < headerSize {
		return cansocket.Frame{}, &cansocket.SocketError{Op: "read", Err: fmt.Errorf("short datagram: %d bytes", n)}
	}

	id := binary.BigEndian.Uint32(buf[0:4])
	dlc := int(buf[4])
	if headerSize+dlc > n {
		return cansocket.Frame{}, &cansocket.SocketError{Op: "read", Err: fmt.Errorf("truncated payload: dlc=%d have=%d", dlc, n-headerSize)}
	}

	data := make([]byte, dlc)
	copy(data, buf[headerSize:headerSize+dlc])
	return cansocket.Frame{ID: id, Data: data}, nil
}

// IsDataAvailable sets the read deadline to timeout and attempts a full
// read, buffering any datagram it receives for the next ReadRaw and
// restoring the socket's configured timeout afterward.
func (s *UDPSocket) IsDataAvailable(timeout time.Duration) (bool, error) {
	if !s.open {
		return false, cansocket.ErrSocketNotOpen
	}
	if s.pending != nil {
		return true, nil
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return false, &cansocket.SocketError{Op: "setdeadline", Err: err}
	}
	defer s.conn.SetReadDeadline(time.Now().Add(s.timeout))

	frame, err := s.readDatagram()
	if err == cansocket.ErrNoFrame {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.pending = &frame
	return true, nil
}

// SetRecvTimeout sets the deadline duration future reads use.
func (s *UDPSocket) SetRecvTimeout(d time.Duration) error {
	s.timeout = d
	return s.conn.SetReadDeadline(time.Now().Add(d))
}

// Close releases the underlying UDP connection.
func (s *UDPSocket) Close() error {
	s.open = false
	return s.conn.Close()
}

var _ cansocket.Socket = (*UDPSocket)(nil)
