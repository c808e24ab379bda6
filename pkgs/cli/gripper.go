package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmotor/opencan/pkgs/app"
)

func NewGripperCommand(app *app.OpenCANApp) *cobra.Command {
	type Args struct {
		Kp, Kd float64
	}

	cmdArgs := Args{Kp: 10, Kd: 1}
	command := &cobra.Command{
		Use:   "gripper [open|close|grasp]",
		Short: "Drive the gripper to a named preset",
		Long: `Drive the gripper to a named preset.

open and close issue a single MIT impedance command at the given gains
(--kp, --kd set the stiffness). grasp uses position/force control at the
default speed and torque limit instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}
			return app.GripperAction(args[0], cmdArgs.Kp, cmdArgs.Kd)
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().Float64Var(&cmdArgs.Kp, "kp", 10, "Position gain for open/close")
	command.Flags().Float64Var(&cmdArgs.Kd, "kd", 1, "Velocity gain for open/close")

	return command
}
