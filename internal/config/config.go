package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "bikpis/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Genesys   GenesysConfig   `yaml:"genesys" envconfig:"GENESYS" validate:"-"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=line json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=file console both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// GenesysConfig contains the reporting API credentials and export selection.
// Only the exporter needs it, so it is validated on demand by Validate.
type GenesysConfig struct {
	ClientID     string        `yaml:"client_id" envconfig:"CLIENT_ID" validate:"required"`
	ClientSecret string        `yaml:"client_secret" envconfig:"CLIENT_SECRET" validate:"required"`
	LoginURL     string        `yaml:"login_url" envconfig:"LOGIN_URL" validate:"required,url"`
	APIURL       string        `yaml:"api_url" envconfig:"API_URL" validate:"required,url"`
	DownloadDir  string        `yaml:"download_dir" envconfig:"DOWNLOAD_DIR" validate:"required"`
	DaysBack     int           `yaml:"days_back" envconfig:"DAYS_BACK" validate:"gte=0"`
	Allowlist    []string      `yaml:"allowlist" envconfig:"ALLOWLIST" validate:"min=1,dive,required"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

// TelemetryConfig enables the optional trace and metrics files
type TelemetryConfig struct {
	TracesFile  string `yaml:"traces_file" envconfig:"TRACES_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

var validate = validator.New()

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.NewConfigError("failed to load .env file", err)
	}

	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration shared by every tool
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// Validate checks that credentials and endpoints are present before the
// exporter makes any network call.
func (g GenesysConfig) Validate() error {
	if err := validate.Struct(g); err != nil {
		return apperrors.NewConfigError(
			fmt.Sprintf("genesys configuration is incomplete (%s)", missingFields(err)), err)
	}
	return nil
}

func missingFields(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return "invalid: " + strings.Join(names, ", ")
}

// ForTool returns a copy of the logging config whose file path defaults to
// the tool's own log file.
func (l LoggingConfig) ForTool(logFile string) LoggingConfig {
	if l.FilePath == "" {
		l.FilePath = logFile
	}
	return l
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "line",
			Output: "file",
		},
		Genesys: GenesysConfig{
			LoginURL:    DefaultLoginURL,
			APIURL:      DefaultAPIURL,
			DownloadDir: DefaultDownloadDir,
			DaysBack:    DefaultDaysBack,
			Allowlist:   append([]string(nil), DefaultAllowlist...),
			Timeout:     DefaultHTTPTimeout,
		},
	}
}
