// Package openarm orchestrates one CAN transport shared by an arm's joint
// chain and a gripper, presenting the whole robot as a single handle.
package openarm

import (
	"time"

	"github.com/dmotor/opencan/pkgs/cansocket"
	"github.com/dmotor/opencan/pkgs/components"
	"github.com/dmotor/opencan/pkgs/device"
	"github.com/dmotor/opencan/pkgs/motortype"
)

// OpenArm owns the socket and registry and exposes the arm and gripper
// groups built on top of them. Arm and gripper motors share one socket and
// one registry, so a single RecvAll drains frames for both.
type OpenArm struct {
	socket   cansocket.Socket
	registry *device.Registry
	arm      *components.Arm
	gripper  *components.Gripper
	enableFD bool
}

// New opens the named CAN interface and builds an empty orchestrator; call
// InitArmMotors and InitGripperMotor to populate the joint chain and
// gripper before use.
func New(iface string, enableFD bool) (*OpenArm, error) {
	sock, err := cansocket.Open(iface, enableFD, 10*time.Millisecond)
	if err != nil {
		return nil, err
	}
	registry := device.NewRegistry(sock)
	return &OpenArm{
		socket:   sock,
		registry: registry,
		arm:      components.NewArm(registry),
		gripper:  components.NewGripper(registry),
		enableFD: enableFD,
	}, nil
}

// NewWithSocket builds an orchestrator over an already-open transport,
// letting callers substitute pkgs/remote.UDPSocket or a test fake.
func NewWithSocket(sock cansocket.Socket) *OpenArm {
	registry := device.NewRegistry(sock)
	return &OpenArm{
		socket:   sock,
		registry: registry,
		arm:      components.NewArm(registry),
		gripper:  components.NewGripper(registry),
	}
}

// InitArmMotors registers one cell per joint, in order. All four slices
// must be the same length.
func (o *OpenArm) InitArmMotors(types []motortype.Type, sendIDs, recvIDs []uint32, modes []motortype.ControlMode) error {
	if len(types) != len(sendIDs) || len(types) != len(recvIDs) || len(types) != len(modes) {
		return &components.ParamCountMismatchError{Expected: len(types), Actual: len(sendIDs)}
	}
	for i := range types {
		o.arm.Add(device.NewCell(types[i], sendIDs[i], recvIDs[i], modes[i]))
	}
	return nil
}

// InitGripperMotor registers the gripper's single cell.
func (o *OpenArm) InitGripperMotor(motorType motortype.Type, sendID, recvID uint32, mode motortype.ControlMode) {
	o.gripper.Add(device.NewCell(motorType, sendID, recvID, mode))
}

// Arm returns the joint-chain group.
func (o *OpenArm) Arm() *components.Arm { return o.arm }

// Gripper returns the gripper group.
func (o *OpenArm) Gripper() *components.Gripper { return o.gripper }

// Registry returns the shared receive-id registry.
func (o *OpenArm) Registry() *device.Registry { return o.registry }

// Socket returns the underlying transport.
func (o *OpenArm) Socket() cansocket.Socket { return o.socket }

// EnableFD reports whether the transport was opened in CAN-FD mode.
func (o *OpenArm) EnableFD() bool { return o.enableFD }

// EnableAll enables every arm joint then the gripper.
func (o *OpenArm) EnableAll() error {
	if err := o.arm.EnableAll(); err != nil {
		return err
	}
	return o.gripper.EnableAll()
}

// DisableAll disables every arm joint then the gripper.
func (o *OpenArm) DisableAll() error {
	if err := o.arm.DisableAll(); err != nil {
		return err
	}
	return o.gripper.DisableAll()
}

// SetZeroAll flashes zero on every arm joint then the gripper.
func (o *OpenArm) SetZeroAll() error {
	if err := o.arm.SetZeroAll(); err != nil {
		return err
	}
	return o.gripper.SetZeroAll()
}

// RefreshAll requests a state frame from every arm joint then the gripper.
func (o *OpenArm) RefreshAll() error {
	if err := o.arm.RefreshAll(); err != nil {
		return err
	}
	return o.gripper.RefreshAll()
}

// RefreshOne requests a state frame from the arm joint at index i.
func (o *OpenArm) RefreshOne(i int) error {
	return o.arm.RefreshOne(i)
}

// QueryParamAll requests the same register from every arm joint then the
// gripper.
func (o *OpenArm) QueryParamAll(rid motortype.MotorVariable) error {
	if err := o.arm.QueryParamAll(rid); err != nil {
		return err
	}
	return o.gripper.QueryParamAll(rid)
}

// SetCallbackModeAll switches every registered cell's frame interpretation.
func (o *OpenArm) SetCallbackModeAll(mode motortype.CallbackMode) {
	o.registry.SetCallbackModeAll(mode)
}

// RecvAll drains the shared socket, routing frames to both the arm and the
// gripper's cells.
func (o *OpenArm) RecvAll(firstTimeout time.Duration) (int, error) {
	return o.registry.RecvAll(firstTimeout)
}

// Close releases the underlying transport.
func (o *OpenArm) Close() error {
	return o.socket.Close()
}
