package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmotor/opencan/pkgs/app"
)

func NewZeroCommand(app *app.OpenCANApp) *cobra.Command {
	cmdArgs := struct{ Confirm bool }{}

	command := &cobra.Command{
		Use:   "zero",
		Short: "Flash the current position as zero on every motor",
		Long: `Flash the current position as zero on every arm joint and the gripper.

This is destructive: it overwrites the motor's stored zero reference.
Pass --yes to confirm; without it the command fails and sends nothing.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if !cmdArgs.Confirm {
				return errZeroNotConfirmed
			}
			if err := app.Initialize(); err != nil {
				return err
			}
			return app.ZeroAction()
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().BoolVarP(&cmdArgs.Confirm, "yes", "y", false, "Confirm the destructive zero operation")

	return command
}

var errZeroNotConfirmed = zeroNotConfirmedError{}

type zeroNotConfirmedError struct{}

func (zeroNotConfirmedError) Error() string {
	return "zero is destructive; re-run with --yes to confirm"
}
