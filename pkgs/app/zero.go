package app

// ZeroAction flashes the current position as zero on every arm joint and
// the gripper. Destructive on the motor side; the caller is expected to
// confirm before invoking it.
func (app *OpenCANApp) ZeroAction() error {
	if err := app.initializeOrchestrator(); err != nil {
		return err
	}
	defer app.arm.Close()

	return app.arm.SetZeroAll()
}
