// Package reporting downloads scheduled analytics exports from the
// contact-center reporting API.
//
// A Client authenticates with the OAuth2 client-credentials grant, lists the
// exports the API has produced and downloads their CSV payloads. An Exporter
// runs one pass: it selects the exports created on the target day whose file
// name is on the allowlist and writes them to the download directory.
//
// Example usage:
//
//	client := reporting.NewClient(cfg.Genesys, logger)
//	exporter := reporting.NewExporter(client, cfg.Genesys, telemetry, logger)
//	result, err := exporter.Run(ctx)
package reporting
