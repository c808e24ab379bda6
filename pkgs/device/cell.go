// Package device holds the motor state cell (the shared-mutable container
// a dispatcher writes into and callers read from) and the receive-id
// registry that multiplexes one CAN socket across many motors.
package device

import (
	"sync"

	"github.com/dmotor/opencan/pkgs/codec"
	"github.com/dmotor/opencan/pkgs/motortype"
)

// State is a snapshot of a cell's mutable feedback fields.
type State struct {
	Position float64
	Velocity float64
	Torque   float64
	TMos     int32
	TRotor   int32
	Enabled  bool
}

// Cell is the per-motor shared container: immutable identity plus feedback
// and parameter scratch guarded by one lock. The identity triple (type,
// send id, recv id) is fixed at construction and never changes; only the
// modes, feedback and scratch fields are mutated, always under the lock.
// Decoded feedback and parameter values are written by Dispatch; the
// enabled flag and the modes are written by their setters.
type Cell struct {
	motorType motortype.Type
	sendID    uint32
	recvID    uint32

	mu           sync.RWMutex
	controlMode  motortype.ControlMode
	callbackMode motortype.CallbackMode
	state        State
	params       map[motortype.MotorVariable]float64
}

// NewCell constructs a cell for a single physical motor.
func NewCell(motorType motortype.Type, sendID, recvID uint32, controlMode motortype.ControlMode) *Cell {
	return &Cell{
		motorType:    motorType,
		sendID:       sendID,
		recvID:       recvID,
		controlMode:  controlMode,
		callbackMode: motortype.CallbackState,
		params:       make(map[motortype.MotorVariable]float64),
	}
}

func (c *Cell) MotorType() motortype.Type { return c.motorType }
func (c *Cell) SendID() uint32            { return c.sendID }
func (c *Cell) RecvID() uint32            { return c.recvID }

// ControlMode returns the motor's last-declared control mode.
func (c *Cell) ControlMode() motortype.ControlMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controlMode
}

// SetControlMode records the mode a "set control mode" command put the
// motor into; it does not itself send anything.
func (c *Cell) SetControlMode(mode motortype.ControlMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controlMode = mode
}

// CallbackMode reports how this cell currently interprets received frames.
func (c *Cell) CallbackMode() motortype.CallbackMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.callbackMode
}

// SetCallbackMode switches how the cell interprets its next received
// frames. Callers querying parameters must switch to CallbackParam before
// the query burst and back to CallbackState afterward.
func (c *Cell) SetCallbackMode(mode motortype.CallbackMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbackMode = mode
}

// State returns a consistent snapshot of the feedback fields.
func (c *Cell) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Cell) Position() float64 { c.mu.RLock(); defer c.mu.RUnlock(); return c.state.Position }
func (c *Cell) Velocity() float64 { c.mu.RLock(); defer c.mu.RUnlock(); return c.state.Velocity }
func (c *Cell) Torque() float64   { c.mu.RLock(); defer c.mu.RUnlock(); return c.state.Torque }
func (c *Cell) TMos() int32       { c.mu.RLock(); defer c.mu.RUnlock(); return c.state.TMos }
func (c *Cell) TRotor() int32     { c.mu.RLock(); defer c.mu.RUnlock(); return c.state.TRotor }
func (c *Cell) Enabled() bool     { c.mu.RLock(); defer c.mu.RUnlock(); return c.state.Enabled }

// Param returns the last-seen value for a register id, if one has arrived.
func (c *Cell) Param(rid motortype.MotorVariable) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.params[rid]
	return v, ok
}

// SetEnabled records the motor's enable/disable state as inferred by the
// caller (the protocol carries no dedicated "enabled" bit on state frames;
// callers set this around Enable/Disable command frames).
func (c *Cell) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Enabled = enabled
}

// Dispatch routes a received payload through the decoder selected by the
// cell's current callback mode, updating state or parameter scratch.
// Invalid (short) payloads are absorbed silently: the cell is left at its
// last-good value, matching the DecodeInvalid contract.
func (c *Cell) Dispatch(data []byte) {
	switch c.CallbackMode() {
	case motortype.CallbackState:
		res := codec.DecodeState(c.motorType.Limits(), data)
		if !res.Valid {
			return
		}
		c.mu.Lock()
		c.state.Position = res.Position
		c.state.Velocity = res.Velocity
		c.state.Torque = res.Torque
		c.state.TMos = res.TMos
		c.state.TRotor = res.TRotor
		c.mu.Unlock()
	case motortype.CallbackParam:
		res := codec.DecodeParam(data)
		if !res.Valid {
			return
		}
		c.mu.Lock()
		c.params[res.RID] = res.Value
		c.mu.Unlock()
	case motortype.CallbackIgnore:
		// nothing to do
	}
}
