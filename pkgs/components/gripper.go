package components

import (
	"github.com/dmotor/opencan/pkgs/codec"
	"github.com/dmotor/opencan/pkgs/device"
)

// Gripper positions are expressed on a normalized [0,1] scale (1=open,
// 0=closed) and remapped onto the actuator's native radians range.
const (
	gripperOpen   = 1.0
	gripperClosed = 0.0
	gripperGrasp  = -0.1

	motorOpen   = -1.0472
	motorClosed = 0.0

	defaultSpeedRadS = 5.0
	defaultTorquePU  = 0.3
)

// Gripper is a single-motor end effector addressed through index 0 of its
// group.
type Gripper struct {
	*Group
}

// NewGripper wraps a registry as a gripper's single-motor group.
func NewGripper(registry *device.Registry) *Gripper {
	return &Gripper{Group: NewGroup(registry)}
}

// gripperToMotor remaps a normalized gripper position onto motor radians.
// Grasp (-0.1) extends slightly past closed to keep squeezing against an
// object without driving the motor against a hard stop.
func gripperToMotor(position float64) float64 {
	span := gripperOpen - gripperClosed
	motorSpan := motorOpen - motorClosed
	return motorClosed + ((position-gripperClosed)/span)*motorSpan
}

//
// Contextual options
//

type gripperOptions func(*gripperParams)

type gripperParams struct {
	speed  float64
	torque float64
	raw    bool
}

// WithSpeed overrides the commanded velocity, in rad/s.
func WithSpeed(speed float64) gripperOptions {
	return func(p *gripperParams) { p.speed = speed }
}

// WithTorque overrides the commanded per-unit current limit, in [0,1].
func WithTorque(torque float64) gripperOptions {
	return func(p *gripperParams) { p.torque = torque }
}

// WithRawPosition treats SetPosition's argument as motor radians instead of
// the normalized [0,1] gripper scale.
func WithRawPosition(raw bool) gripperOptions {
	return func(p *gripperParams) { p.raw = raw }
}

func applyGripperOptions(options []gripperOptions) gripperParams {
	p := gripperParams{speed: defaultSpeedRadS, torque: defaultTorquePU}
	for _, o := range options {
		o(&p)
	}
	return p
}

// Open drives the gripper fully open using a single MIT impedance command
// (zero velocity and feed-forward torque; kp/kd set the stiffness).
func (g *Gripper) Open(kp, kd float64) error {
	return g.MITControlOne(0, codec.MITParam{Kp: kp, Kd: kd, Q: gripperToMotor(gripperOpen), Dq: 0, Tau: 0})
}

// Close drives the gripper fully closed using a single MIT impedance
// command (zero velocity and feed-forward torque; kp/kd set the
// stiffness).
func (g *Gripper) Close(kp, kd float64) error {
	return g.MITControlOne(0, codec.MITParam{Kp: kp, Kd: kd, Q: gripperToMotor(gripperClosed), Dq: 0, Tau: 0})
}

// Grasp drives the gripper slightly past closed, for holding an object
// under continuous force rather than position control.
func (g *Gripper) Grasp(options ...gripperOptions) error {
	return g.SetPosition(gripperGrasp, options...)
}

// SetPosition commands the gripper to a normalized position (or a raw
// motor-radian position, with WithRawPosition) using position/force control.
func (g *Gripper) SetPosition(position float64, options ...gripperOptions) error {
	p := applyGripperOptions(options)

	target := position
	if !p.raw {
		target = gripperToMotor(position)
	}

	return g.PosForceControlOne(0, codec.PosForceParam{
		Q:  target,
		Dq: p.speed,
		I:  p.torque,
	})
}
