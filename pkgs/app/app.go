// Package app is the controller level: one method per user-facing action,
// each responsible for everything needed to carry it out. Prints are
// allowed only through the Printer interface.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dmotor/opencan/pkgs/config"
	"github.com/dmotor/opencan/pkgs/motortype"
	"github.com/dmotor/opencan/pkgs/openarm"
	"github.com/dmotor/opencan/pkgs/output"
)

type OpenCANApp struct {
	Config *config.Configuration
	arm    *openarm.OpenArm

	// runtime parameters
	Debug bool
	P     output.Printer
}

// Initialize runs after parsing the arguments, so we know how to configure
// the app.
func (app *OpenCANApp) Initialize() error {
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Debug("Reading configuration files")
	cfg, cfgErr := config.NewConfig()
	app.Config = cfg
	if cfgErr != nil {
		return fmt.Errorf("cannot initialize app: %s", cfgErr)
	}
	return nil
}

// initializeOrchestrator opens the CAN transport and registers the arm and
// gripper motors named by the configured topology. Arm joints start in MIT
// mode and the gripper in position/force mode.
func (app *OpenCANApp) initializeOrchestrator() error {
	logrus.Debugf("Opening CAN interface %s (fd=%v)", app.Config.Socket.Interface, app.Config.Socket.EnableFD)
	a, err := openarm.New(app.Config.Socket.Interface, app.Config.Socket.EnableFD)
	if err != nil {
		return fmt.Errorf("cannot initialize app: %s", err)
	}
	app.arm = a

	types, err := app.Config.Topology.ParseArmMotorTypes()
	if err != nil {
		return fmt.Errorf("cannot initialize app: %s", err)
	}
	modes := make([]motortype.ControlMode, len(types))
	for i := range modes {
		modes[i] = motortype.MIT
	}
	if err := a.InitArmMotors(types, app.Config.Topology.ArmSendIDs, app.Config.Topology.ArmRecvIDs, modes); err != nil {
		return fmt.Errorf("cannot initialize app: %s", err)
	}

	gripperType, err := app.Config.Topology.ParseGripperMotorType()
	if err != nil {
		return fmt.Errorf("cannot initialize app: %s", err)
	}
	a.InitGripperMotor(gripperType, app.Config.Topology.GripperSendID, app.Config.Topology.GripperRecvID, motortype.PosForce)

	return nil
}
