package main

import (
	"os"

	"github.com/dmotor/opencan/pkgs/app"
	"github.com/dmotor/opencan/pkgs/cli"
	"github.com/dmotor/opencan/pkgs/output"
)

func main() {
	application := app.OpenCANApp{P: output.ConsolePrinter{}}
	cmd := cli.NewRootCommand(&application)
	args := os.Args
	if args != nil {
		args = args[1:]
		cmd.SetArgs(args)
	}
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
