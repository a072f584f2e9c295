// Package app wires the shared runtime of every command: configuration,
// the run logger, telemetry and signal handling.
//
// Each command builds an Application for its tool, runs its work under the
// Application's context and stops it on exit:
//
//	application, err := app.NewApplication(app.Converter, *configFile)
//	if err != nil {
//		fmt.Fprintln(os.Stderr, err)
//		os.Exit(1)
//	}
//	os.Exit(application.Run(func(ctx context.Context) error {
//		_, err := application.RunStage(ctx, *dir, converter.New(application.Logger))
//		return err
//	}))
package app
