package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmotor/opencan/pkgs/app"
)

func NewStatusCommand(app *app.OpenCANApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "status",
		Short: "Print position, velocity, torque and temperature for every motor",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}
			return app.StatusAction()
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")

	return command
}
