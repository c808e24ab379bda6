package app

// EnableAction enables every arm joint and the gripper.
func (app *OpenCANApp) EnableAction() error {
	if err := app.initializeOrchestrator(); err != nil {
		return err
	}
	defer app.arm.Close()

	return app.arm.EnableAll()
}
