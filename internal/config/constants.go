package config

import "time"

// Application constants
const (
	AppName    = "BI KPIs"
	AppVersion = "1.0.0"

	// Reporting API defaults (US region)
	DefaultLoginURL    = "https://login.mypurecloud.com"
	DefaultAPIURL      = "https://api.mypurecloud.com"
	DefaultDownloadDir = "POWER_BI"
	DefaultDaysBack    = 2
	DefaultHTTPTimeout = 30 * time.Second

	// Log files, one per tool
	ExporterLogFile  = "exporter.log"
	ConverterLogFile = "conversao.log"
	CleanerLogFile   = "verificação.log"
	MetricsLogFile   = "metricas.log"
)

// DefaultAllowlist is the set of export files the BI dashboards consume.
var DefaultAllowlist = []string{
	"Base - Texto.csv",
	"Base - Voz.csv",
	"Base - Voz e Texto.csv",
	"Base - Gestão de entrega N1.csv",
}
