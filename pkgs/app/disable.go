package app

// DisableAction disables every arm joint and the gripper.
func (app *OpenCANApp) DisableAction() error {
	if err := app.initializeOrchestrator(); err != nil {
		return err
	}
	defer app.arm.Close()

	return app.arm.DisableAll()
}
