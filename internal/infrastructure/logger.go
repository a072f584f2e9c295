package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bikpis/internal/config"
)

// LineTimeFormat matches the timestamp layout of the historical log files.
const LineTimeFormat = "2006-01-02 15:04:05,000"

// NewLogger creates the run-scoped logger for one tool. The returned close
// function releases the log file and must be called when the run ends.
// Every record carries the run_id attribute.
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	output, closeFn, err := openOutput(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(NewHandler(output, cfg)).With(slog.String("run_id", uuid.NewString()))
	return logger, closeFn, nil
}

// NewHandler returns the slog handler for the configured format
func NewHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	level := parseLogLevel(cfg.Level)
	if strings.ToLower(cfg.Format) == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return NewLineHandler(w, level)
}

func openOutput(cfg config.LoggingConfig) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Output) {
	case "console":
		return os.Stdout, noop, nil
	case "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return io.MultiWriter(os.Stdout, file), file.Close, nil
	default:
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return file, file.Close, nil
	}
}

// LineHandler writes one "timestamp LEVEL:message key=value" line per record
type LineHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// NewLineHandler creates a LineHandler writing to w
func NewLineHandler(w io.Writer, level slog.Leveler) *LineHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &LineHandler{mu: &sync.Mutex{}, w: w, level: level}
}

// Enabled reports whether the handler handles records at the given level
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.Format(LineTimeFormat))
	b.WriteByte(' ')
	b.WriteString(levelName(r.Level))
	b.WriteByte(':')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a new Handler with additional attributes
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &nh
}

// WithGroup returns a new Handler whose attribute keys are prefixed by name
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, groupPrefix, ga)
		}
		return
	}

	value := a.Value.String()
	if a.Value.Kind() == slog.KindTime {
		value = a.Value.Time().Format(time.RFC3339)
	}
	if strings.ContainsAny(value, " =\"") {
		value = fmt.Sprintf("%q", value)
	}
	b.WriteByte(' ')
	b.WriteString(prefix + a.Key)
	b.WriteByte('=')
	b.WriteString(value)
}

// levelName renders levels the way the historical logs did (WARNING, not WARN)
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogFile opens or creates a log file in append mode
func openLogFile(filePath string) (*os.File, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}

	return file, nil
}

// NopLogger returns a logger that discards everything, for callers that
// pass a nil logger.
func NopLogger() *slog.Logger {
	return slog.New(NewLineHandler(io.Discard, slog.LevelError+1))
}
