package app

// GripperAction drives the gripper to one of the named presets: "open" and
// "close" issue an MIT impedance command at the given gains; "grasp" uses
// position/force control at the default speed and torque limit.
func (app *OpenCANApp) GripperAction(preset string, kp, kd float64) error {
	if err := app.initializeOrchestrator(); err != nil {
		return err
	}
	defer app.arm.Close()

	gripper := app.arm.Gripper()
	switch preset {
	case "open":
		return gripper.Open(kp, kd)
	case "close":
		return gripper.Close(kp, kd)
	case "grasp":
		return gripper.Grasp()
	default:
		return &UnknownGripperPresetError{Preset: preset}
	}
}

// UnknownGripperPresetError reports a preset name GripperAction does not
// recognize.
type UnknownGripperPresetError struct {
	Preset string
}

func (e *UnknownGripperPresetError) Error() string {
	return "app: unknown gripper preset " + e.Preset
}

var _ error = (*UnknownGripperPresetError)(nil)
