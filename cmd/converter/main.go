// Command converter writes an .xlsx workbook and a _utf8.csv twin for every
// CSV file in a directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bikpis/internal/app"
	"bikpis/internal/converter"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the CSV files")
	configFile := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	application, err := app.NewApplication(app.Converter, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "converter:", err)
		os.Exit(1)
	}

	os.Exit(application.Run(func(ctx context.Context) error {
		summary, err := application.RunStage(ctx, *dir, converter.New(application.Logger))
		fmt.Printf("%d converted, %d failed\n", summary.Processed, summary.Failed)
		return err
	}))
}
