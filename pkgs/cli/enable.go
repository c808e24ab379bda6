package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmotor/opencan/pkgs/app"
)

func NewEnableCommand(app *app.OpenCANApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "enable",
		Short: "Enable every arm joint and the gripper",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}
			return app.EnableAction()
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")

	return command
}
