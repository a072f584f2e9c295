// Command cleaner normalizes every CSV file in a directory in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bikpis/internal/app"
	"bikpis/internal/cleaner"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the CSV files")
	configFile := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	application, err := app.NewApplication(app.Cleaner, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cleaner:", err)
		os.Exit(1)
	}

	os.Exit(application.Run(func(ctx context.Context) error {
		summary, err := application.RunStage(ctx, *dir, cleaner.New(application.Logger))
		fmt.Printf("%d cleaned, %d failed\n", summary.Processed, summary.Failed)
		return err
	}))
}
