package app

import (
	"time"

	"github.com/sirupsen/logrus"
)

// StatusAction requests a state frame from every motor, waits briefly for
// replies to arrive, and prints each joint's position, velocity, torque
// and temperatures.
func (app *OpenCANApp) StatusAction() error {
	if err := app.initializeOrchestrator(); err != nil {
		return err
	}
	defer app.arm.Close()

	if err := app.arm.RefreshAll(); err != nil {
		return err
	}

	n, err := app.arm.RecvAll(100 * time.Millisecond)
	if err != nil {
		logrus.Error(err)
	}
	logrus.Debugf("status: received %d frame(s)", n)

	for i, m := range app.arm.Arm().Motors() {
		s := m.State()
		app.P.Printf("joint%d  pos=%7.3f rad  vel=%7.3f rad/s  torque=%6.3f Nm  tmos=%dC trotor=%dC\n",
			i, s.Position, s.Velocity, s.Torque, s.TMos, s.TRotor)
	}

	gripper := app.arm.Gripper()
	if gripper.Count() > 0 {
		s := gripper.Motors()[0].State()
		app.P.Printf("gripper pos=%7.3f rad  vel=%7.3f rad/s  torque=%6.3f Nm  tmos=%dC trotor=%dC\n",
			s.Position, s.Velocity, s.Torque, s.TMos, s.TRotor)
	}

	return nil
}
