// Package config provides centralized configuration management for the BI KPI tools.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority), including a .env file in the
//	   working directory
//	2. Optional YAML file passed with -config
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// Variables are not prefixed, so the reporting API credentials keep their
// usual names:
//
//	GENESYS_CLIENT_ID=...
//	GENESYS_CLIENT_SECRET=...
//	GENESYS_DAYS_BACK=2
//	GENESYS_ALLOWLIST=Base - Texto.csv,Base - Voz.csv
//	LOGGING_LEVEL=debug
//	LOGGING_OUTPUT=both
//	TELEMETRY_METRICS_FILE=/var/lib/node_exporter/bikpis.prom
//
// # Validation
//
// Logging and telemetry settings are validated by Load. The reporting API
// credentials are only required by the exporter, which calls
// GenesysConfig.Validate before any network call.
package config
