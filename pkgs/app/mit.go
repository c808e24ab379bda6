package app

import (
	"fmt"

	"github.com/dmotor/opencan/pkgs/codec"
	"github.com/dmotor/opencan/pkgs/motortype"
)

// MITAction sends a single impedance-control command to one arm joint.
func (app *OpenCANApp) MITAction(jointIndex int, kp, kd, q, dq, tau float64) error {
	if err := app.initializeOrchestrator(); err != nil {
		return err
	}
	defer app.arm.Close()

	if err := app.arm.Arm().SetMode(jointIndex, motortype.MIT); err != nil {
		return err
	}

	err := app.arm.Arm().MITControlOne(jointIndex, codec.MITParam{Kp: kp, Kd: kd, Q: q, Dq: dq, Tau: tau})
	if err != nil {
		return fmt.Errorf("cannot send MIT command: %w", err)
	}
	return nil
}
