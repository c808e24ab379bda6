package components

import "github.com/dmotor/opencan/pkgs/device"

// Arm is the joint chain of an end effector: a thin name over Group so
// callers reading an orchestrator's fields can tell which physical member
// they are addressing.
type Arm struct {
	*Group
}

// NewArm wraps a registry as an arm's joint group.
func NewArm(registry *device.Registry) *Arm {
	return &Arm{Group: NewGroup(registry)}
}
