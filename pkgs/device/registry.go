package device

import (
	"sync"
	"time"

	"github.com/dmotor/opencan/pkgs/cansocket"
	"github.com/dmotor/opencan/pkgs/motortype"
)

// Registry maps receive identifier to motor state cell and drives the
// drain loop that pulls all frames currently available from the socket,
// routing each to its cell. The registry's map lock and each cell's lock
// are disjoint: Dispatch drops the registry lock before calling into the
// cell's decode-and-store path, and the socket is never called while
// holding either lock.
type Registry struct {
	mu     sync.RWMutex
	cells  map[uint32]*Cell
	socket cansocket.Socket
}

// NewRegistry creates a registry driven by the given socket.
func NewRegistry(socket cansocket.Socket) *Registry {
	return &Registry{
		cells:  make(map[uint32]*Cell),
		socket: socket,
	}
}

// Register adds a cell keyed by its receive id. A duplicate registration
// replaces the previous cell for that id; this is not treated as an error.
func (r *Registry) Register(cell *Cell) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cells[cell.RecvID()] = cell
}

// RegisterMany registers a batch of cells in order.
func (r *Registry) RegisterMany(cells []*Cell) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range cells {
		r.cells[c.RecvID()] = c
	}
}

// Unregister removes the cell for a receive id, if any.
func (r *Registry) Unregister(recvID uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cells, recvID)
}

// Count returns the number of registered cells.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cells)
}

// SendPacket forwards a built frame to the socket.
func (r *Registry) SendPacket(id uint32, data []byte) error {
	return r.socket.WriteRaw(id, data)
}

// SetCallbackModeAll walks every registered cell and sets its callback
// mode.
func (r *Registry) SetCallbackModeAll(mode motortype.CallbackMode) {
	r.mu.RLock()
	cells := make([]*Cell, 0, len(r.cells))
	for _, c := range r.cells {
		cells = append(cells, c)
	}
	r.mu.RUnlock()

	for _, c := range cells {
		c.SetCallbackMode(mode)
	}
}

// Dispatch looks up the cell for can_id and, if found, routes the payload
// to it. It reports whether the frame was claimed; unclaimed frames are
// dropped silently by the caller.
func (r *Registry) Dispatch(canID uint32, data []byte) bool {
	r.mu.RLock()
	cell, ok := r.cells[canID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	cell.Dispatch(data)
	return true
}

// RecvAll implements the drain algorithm: block up to firstTimeout waiting
// for the first frame, then drain every frame currently queued without
// blocking. It returns the number of frames read (claimed or not); a
// transport failure mid-drain fails the call after the count so far.
func (r *Registry) RecvAll(firstTimeout time.Duration) (int, error) {
	n := 0

	available, err := r.socket.IsDataAvailable(firstTimeout)
	if err != nil {
		return n, &RecvError{Dispatched: n, Err: err}
	}
	if !available {
		return n, nil
	}

	for {
		frame, err := r.socket.ReadRaw()
		if err == cansocket.ErrNoFrame {
			break
		}
		if err != nil {
			return n, &RecvError{Dispatched: n, Err: err}
		}
		r.Dispatch(frame.ID, frame.Data)
		n++

		available, err := r.socket.IsDataAvailable(0)
		if err != nil {
			return n, &RecvError{Dispatched: n, Err: err}
		}
		if !available {
			break
		}
	}

	return n, nil
}
