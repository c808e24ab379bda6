package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmotor/opencan/pkgs/app"
)

func NewMITCommand(app *app.OpenCANApp) *cobra.Command {
	type Args struct {
		Joint             int
		Kp, Kd, Q, Dq, Tau float64
	}

	cmdArgs := Args{Kp: 10, Kd: 1}
	command := &cobra.Command{
		Use:   "mit",
		Short: "Send a single impedance-control command to one arm joint",
		Long: `Send a single impedance-control command to one arm joint:

  tau = kp*(q_des-q) + kd*(dq_des-dq) + tau_ff

Examples:
  opencan mit --joint 0 --kp 10 --kd 1 --q 0.5
  opencan mit --joint 2 --tau 0.2`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}
			return app.MITAction(cmdArgs.Joint, cmdArgs.Kp, cmdArgs.Kd, cmdArgs.Q, cmdArgs.Dq, cmdArgs.Tau)
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().IntVarP(&cmdArgs.Joint, "joint", "j", 0, "Arm joint index (required)")
	command.Flags().Float64Var(&cmdArgs.Kp, "kp", 10, "Position gain")
	command.Flags().Float64Var(&cmdArgs.Kd, "kd", 1, "Velocity gain")
	command.Flags().Float64Var(&cmdArgs.Q, "q", 0, "Desired position, rad")
	command.Flags().Float64Var(&cmdArgs.Dq, "dq", 0, "Desired velocity, rad/s")
	command.Flags().Float64Var(&cmdArgs.Tau, "tau", 0, "Feed-forward torque, Nm")

	command.MarkFlagRequired("joint")

	return command
}
