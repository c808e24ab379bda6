// Package components assembles registered motor cells into the ordered
// groups an end effector actually exposes: an arm's joint chain and a
// gripper's single actuator, each built on pkgs/device's registry/cell pair.
package components

import (
	"time"

	"github.com/dmotor/opencan/pkgs/codec"
	"github.com/dmotor/opencan/pkgs/device"
	"github.com/dmotor/opencan/pkgs/motortype"
)

// Group is an ordered set of motor cells sharing one registry (and so one
// underlying socket). Index order is caller-assigned at Add time and is the
// order joints are addressed by in every All-suffixed operation.
type Group struct {
	registry *device.Registry
	motors   []*device.Cell
}

// NewGroup creates an empty group bound to a registry.
func NewGroup(registry *device.Registry) *Group {
	return &Group{registry: registry}
}

// Add appends a cell, registers it with the group's registry, and returns
// its index.
func (g *Group) Add(cell *device.Cell) int {
	g.registry.Register(cell)
	g.motors = append(g.motors, cell)
	return len(g.motors) - 1
}

// Motors returns the group's cells in index order.
func (g *Group) Motors() []*device.Cell {
	return g.motors
}

// Count returns the number of motors in the group.
func (g *Group) Count() int {
	return len(g.motors)
}

// MotorAt returns the cell at index i.
func (g *Group) MotorAt(i int) (*device.Cell, error) {
	if i < 0 || i >= len(g.motors) {
		return nil, &IndexOutOfRangeError{Index: i, Count: len(g.motors)}
	}
	return g.motors[i], nil
}

// EnableAll sends the enable command to every motor in the group.
func (g *Group) EnableAll() error {
	for _, m := range g.motors {
		f := codec.EncodeEnable(m.SendID())
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
		m.SetEnabled(true)
	}
	return nil
}

// DisableAll sends the disable command to every motor in the group.
func (g *Group) DisableAll() error {
	for _, m := range g.motors {
		f := codec.EncodeDisable(m.SendID())
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
		m.SetEnabled(false)
	}
	return nil
}

// SetZeroAll flashes the current position as zero on every motor. This is
// destructive on the motor side; callers should not invoke it in a loop.
func (g *Group) SetZeroAll() error {
	for _, m := range g.motors {
		f := codec.EncodeSetZero(m.SendID())
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
	}
	return nil
}

// RefreshAll requests one state frame from every motor in the group.
func (g *Group) RefreshAll() error {
	for _, m := range g.motors {
		f := codec.EncodeRefresh(m.SendID())
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
	}
	return nil
}

// RefreshOne requests a state frame from the motor at index i.
func (g *Group) RefreshOne(i int) error {
	m, err := g.MotorAt(i)
	if err != nil {
		return err
	}
	f := codec.EncodeRefresh(m.SendID())
	return g.registry.SendPacket(f.ID, f.Data[:])
}

// SetControlModeAll issues a set-control-mode broadcast to every motor and
// records the mode on each cell.
func (g *Group) SetControlModeAll(mode motortype.ControlMode) error {
	for _, m := range g.motors {
		f := codec.EncodeSetMode(m.SendID(), mode)
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
		m.SetControlMode(mode)
	}
	return nil
}

// SetMode sets the control mode of a single motor.
func (g *Group) SetMode(i int, mode motortype.ControlMode) error {
	m, err := g.MotorAt(i)
	if err != nil {
		return err
	}
	f := codec.EncodeSetMode(m.SendID(), mode)
	if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
		return err
	}
	m.SetControlMode(mode)
	return nil
}

// SetCallbackModeAll switches every motor's frame interpretation, e.g.
// around a parameter query burst.
func (g *Group) SetCallbackModeAll(mode motortype.CallbackMode) {
	for _, m := range g.motors {
		m.SetCallbackMode(mode)
	}
}

// QueryParam requests a single register from the motor at index i. The
// caller is responsible for switching the cell to CallbackParam mode first
// and draining the reply via RecvAll.
func (g *Group) QueryParam(i int, rid motortype.MotorVariable) error {
	m, err := g.MotorAt(i)
	if err != nil {
		return err
	}
	f := codec.EncodeQueryParam(m.SendID(), rid)
	return g.registry.SendPacket(f.ID, f.Data[:])
}

// QueryParamAll requests the same register from every motor in the group.
func (g *Group) QueryParamAll(rid motortype.MotorVariable) error {
	for _, m := range g.motors {
		f := codec.EncodeQueryParam(m.SendID(), rid)
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
	}
	return nil
}

// MITControlOne sends an impedance-control command to the motor at index i.
func (g *Group) MITControlOne(i int, p codec.MITParam) error {
	m, err := g.MotorAt(i)
	if err != nil {
		return err
	}
	f := codec.EncodeMIT(m.SendID(), m.MotorType().Limits(), p)
	return g.registry.SendPacket(f.ID, f.Data[:])
}

// MITControlAll sends one impedance-control command per motor. len(params)
// must equal Count().
func (g *Group) MITControlAll(params []codec.MITParam) error {
	if len(params) != len(g.motors) {
		return &ParamCountMismatchError{Expected: len(g.motors), Actual: len(params)}
	}
	for i, m := range g.motors {
		f := codec.EncodeMIT(m.SendID(), m.MotorType().Limits(), params[i])
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
	}
	return nil
}

// PosVelControlOne sends a position/velocity command to the motor at index i.
func (g *Group) PosVelControlOne(i int, p codec.PosVelParam) error {
	m, err := g.MotorAt(i)
	if err != nil {
		return err
	}
	f := codec.EncodePosVel(m.SendID(), m.MotorType().Limits(), p)
	return g.registry.SendPacket(f.ID, f.Data[:])
}

// PosVelControlAll sends one position/velocity command per motor. len(params)
// must equal Count().
func (g *Group) PosVelControlAll(params []codec.PosVelParam) error {
	if len(params) != len(g.motors) {
		return &ParamCountMismatchError{Expected: len(g.motors), Actual: len(params)}
	}
	for i, m := range g.motors {
		f := codec.EncodePosVel(m.SendID(), m.MotorType().Limits(), params[i])
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
	}
	return nil
}

// PosForceControlOne sends a position/current-limited command to the motor
// at index i.
func (g *Group) PosForceControlOne(i int, p codec.PosForceParam) error {
	m, err := g.MotorAt(i)
	if err != nil {
		return err
	}
	f := codec.EncodePosForce(m.SendID(), m.MotorType().Limits(), p)
	return g.registry.SendPacket(f.ID, f.Data[:])
}

// PosForceControlAll sends one position/current-limited command per motor.
// len(params) must equal Count().
func (g *Group) PosForceControlAll(params []codec.PosForceParam) error {
	if len(params) != len(g.motors) {
		return &ParamCountMismatchError{Expected: len(g.motors), Actual: len(params)}
	}
	for i, m := range g.motors {
		f := codec.EncodePosForce(m.SendID(), m.MotorType().Limits(), params[i])
		if err := g.registry.SendPacket(f.ID, f.Data[:]); err != nil {
			return err
		}
	}
	return nil
}

// RecvAll drains the group's shared socket, routing every available frame
// to its owning cell.
func (g *Group) RecvAll(firstTimeout time.Duration) (int, error) {
	return g.registry.RecvAll(firstTimeout)
}
