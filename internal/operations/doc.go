// Package operations runs a file stage over every CSV file in a directory.
//
// A Stage processes one file at a time. The Runner discovers the directory's
// CSV files, sorts them by name and hands them to the stage strictly in
// sequence. A failing file is logged and counted; the run always continues
// with the next file.
//
// Example usage:
//
//	runner := operations.NewRunner(telemetry, logger)
//	summary, err := runner.Run(ctx, ".", cleaner.New(logger))
package operations
