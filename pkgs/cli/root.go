package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dmotor/opencan/pkgs/app"
)

func NewRootCommand(app *app.OpenCANApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "opencan",
		Short: "Damiao brushless servo control over Linux SocketCAN",
		RunE: func(command *cobra.Command, args []string) error {
			return errors.New("please select a command")
		},
	}

	command.AddCommand(NewEnableCommand(app))
	command.AddCommand(NewDisableCommand(app))
	command.AddCommand(NewZeroCommand(app))
	command.AddCommand(NewStatusCommand(app))
	command.AddCommand(NewMITCommand(app))
	command.AddCommand(NewGripperCommand(app))

	return command
}
