// Command exporter downloads the reporting exports created DAYS_BACK days
// ago whose file names are on the allowlist.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bikpis/internal/app"
	"bikpis/internal/reporting"
)

func main() {
	configFile := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	application, err := app.NewApplication(app.Exporter, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "exporter:", err)
		os.Exit(1)
	}

	os.Exit(application.Run(func(ctx context.Context) error {
		cfg := application.Config.Genesys
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "exporter:", err)
			return err
		}

		client := reporting.NewClient(cfg, application.Logger)
		exporter := reporting.NewExporter(client, cfg, application.Telemetry, application.Logger)
		result, err := exporter.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%d of %d exports downloaded for %s\n", result.Downloaded, result.Selected, result.Day)
		return nil
	}))
}
