package operations

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikpis/internal/config"
	apperrors "bikpis/internal/errors"
	"bikpis/internal/infrastructure"
)

type recordingStage struct {
	name    string
	fail    map[string]bool
	reject  map[string]bool
	seen    []string
	onVisit func()
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) ProcessFile(_ context.Context, path string) error {
	name := filepath.Base(path)
	s.seen = append(s.seen, name)
	if s.onVisit != nil {
		s.onVisit()
	}
	if s.fail[name] {
		return errors.New("boom")
	}
	return nil
}

type filteringStage struct {
	*recordingStage
}

func (s filteringStage) Accept(name string) bool {
	return !s.reject[name]
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("a\n1\n"), 0644))
	}
}

func newTestRunner(telemetry *infrastructure.Telemetry) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRunner(telemetry, slog.New(infrastructure.NewLineHandler(&buf, slog.LevelDebug))), &buf
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.csv", "A.CSV", "b.csv", "readme.txt")

	stage := &recordingStage{name: "test", fail: map[string]bool{"b.csv": true}}
	runner, logs := newTestRunner(nil)

	summary, err := runner.Run(context.Background(), dir, stage)
	require.NoError(t, err)

	assert.Equal(t, []string{"A.CSV", "b.csv", "c.csv"}, stage.seen)
	assert.Equal(t, "test", summary.Stage)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
	require.Len(t, summary.Files, 3)
	assert.Equal(t, FileStatusFailed, summary.Files[1].Status)
	assert.EqualError(t, summary.Files[1].Error, "boom")
	assert.Contains(t, logs.String(), "INFO:Stage finished stage=test processed=2 failed=1 skipped=0")
}

func TestRunner_Run_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.csv", "a_utf8.csv")

	stage := filteringStage{&recordingStage{name: "converter", reject: map[string]bool{"a_utf8.csv": true}}}
	runner, _ := newTestRunner(nil)

	summary, err := runner.Run(context.Background(), dir, stage)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, stage.seen)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRunner_Run_EmptyDirectory(t *testing.T) {
	stage := &recordingStage{name: "test"}
	runner, _ := newTestRunner(nil)

	summary, err := runner.Run(context.Background(), t.TempDir(), stage)
	require.NoError(t, err)
	assert.Empty(t, stage.seen)
	assert.Zero(t, summary.Processed)
}

func TestRunner_Run_MissingDirectory(t *testing.T) {
	runner, logs := newTestRunner(nil)

	stage := &recordingStage{name: "test"}
	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), stage)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
	assert.Contains(t, logs.String(), "ERROR:Input directory does not exist")
	assert.Empty(t, stage.seen)
}

func TestRunner_Run_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.csv")
	runner, _ := newTestRunner(nil)

	_, err := runner.Run(context.Background(), filepath.Join(dir, "a.csv"), &recordingStage{name: "test"})
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
}

func TestRunner_Run_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.csv", "b.csv", "c.csv")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stage := &recordingStage{name: "test", onVisit: cancel}
	runner, _ := newTestRunner(nil)

	summary, err := runner.Run(ctx, dir, stage)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a.csv"}, stage.seen)
	assert.Equal(t, 1, summary.Processed)
}

func TestRunner_Run_Telemetry(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.csv", "b.csv")
	out := t.TempDir()

	telemetry, err := infrastructure.InitializeTelemetry(config.TelemetryConfig{
		TracesFile:  filepath.Join(out, "traces.json"),
		MetricsFile: filepath.Join(out, "metrics.prom"),
	}, "metrics", nil)
	require.NoError(t, err)

	stage := &recordingStage{name: "metrics", fail: map[string]bool{"b.csv": true}}
	runner, _ := newTestRunner(telemetry)
	_, err = runner.Run(context.Background(), dir, stage)
	require.NoError(t, err)
	require.NoError(t, telemetry.Shutdown(context.Background()))

	metrics, err := os.ReadFile(filepath.Join(out, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `bikpis_files_total{outcome="ok",stage="metrics"} 1`)
	assert.Contains(t, string(metrics), `bikpis_files_total{outcome="failed",stage="metrics"} 1`)

	traces, err := os.ReadFile(filepath.Join(out, "traces.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(traces), `"Name":"metrics.process_file"`))
}
