// Command metrics adds the TME/TMT and repeat-contact columns to every CSV
// file in a directory, chosen by each file's name.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bikpis/internal/app"
	"bikpis/internal/metrics"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the CSV files")
	configFile := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	application, err := app.NewApplication(app.Metrics, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "metrics:", err)
		os.Exit(1)
	}

	os.Exit(application.Run(func(ctx context.Context) error {
		summary, err := application.RunStage(ctx, *dir, metrics.NewEnricher(application.Logger))
		fmt.Printf("%d enriched, %d failed\n", summary.Processed, summary.Failed)
		return err
	}))
}
