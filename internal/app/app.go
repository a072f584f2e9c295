package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikpis/internal/config"
	apperrors "bikpis/internal/errors"
	"bikpis/internal/infrastructure"
	"bikpis/internal/operations"
)

// Tool identifies a command and its default log file
type Tool struct {
	Name    string
	LogFile string
}

// The four commands
var (
	Exporter  = Tool{Name: "exporter", LogFile: config.ExporterLogFile}
	Converter = Tool{Name: "converter", LogFile: config.ConverterLogFile}
	Cleaner   = Tool{Name: "cleaner", LogFile: config.CleanerLogFile}
	Metrics   = Tool{Name: "metrics", LogFile: config.MetricsLogFile}
)

const shutdownTimeout = 10 * time.Second

// Application holds the runtime shared by one command run
type Application struct {
	Tool      Tool
	Config    *config.Config
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry

	closeLog func() error
}

// NewApplication loads configuration and opens the tool's logger and
// telemetry
func NewApplication(tool Tool, configFile string) (*Application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := infrastructure.NewLogger(cfg.Logging.ForTool(tool.LogFile))
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	logger = logger.With(slog.String("tool", tool.Name))

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, tool.Name, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		closeLog()
		return nil, apperrors.NewConfigError("failed to initialize telemetry", err)
	}

	return &Application{
		Tool:      tool,
		Config:    cfg,
		Logger:    logger,
		Telemetry: telemetry,
		closeLog:  closeLog,
	}, nil
}

// Run executes work under a context cancelled on interrupt, stops the
// application and returns the process exit code.
func (a *Application) Run(work func(ctx context.Context) error) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("Run started", slog.String("version", config.AppVersion))
	err := work(ctx)
	code := ExitCode(err)
	if err != nil {
		a.Logger.Error("Run failed",
			slog.String("error", err.Error()),
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.Bool("fatal", code != 0))
	}
	a.Logger.Info("Run finished", slog.Int("exit_code", code))

	if stopErr := a.Stop(context.Background()); stopErr != nil && code == 0 {
		code = 1
	}
	return code
}

// RunStage passes every CSV file of dir to stage
func (a *Application) RunStage(ctx context.Context, dir string, stage operations.Stage) (operations.Summary, error) {
	return operations.NewRunner(a.Telemetry, a.Logger).Run(ctx, dir, stage)
}

// Stop flushes telemetry and closes the log file
func (a *Application) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var firstErr error
	if a.Telemetry != nil {
		firstErr = a.Telemetry.Shutdown(ctx)
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ExitCode maps a run error to the process exit code. Only configuration
// and authentication failures are non-zero; per-file failures are logged
// and the run still succeeds.
func ExitCode(err error) int {
	if err != nil && apperrors.IsFatal(err) {
		return 1
	}
	return 0
}
