package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikpis/internal/errors"
)

const bom = "\xEF\xBB\xBF"

func TestEnricher_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Base - Voz.csv")
	require.NoError(t, os.WriteFile(path, []byte(bom+"ani,tempo\nA,00:00:10\nB,00:00:20\nC,00:00:02\n"), 0644))

	logger, logs := captureLogger()
	enricher := NewEnricher(logger)
	assert.Equal(t, "metrics", enricher.Name())

	require.NoError(t, enricher.ProcessFile(context.Background(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bom+
		"ani,tempo,tempo_segundos,tempo_tme_tmt,tempo_media_segundos\n"+
		"A,00:00:10,10.0,00:00:15,15.0\n"+
		"B,00:00:20,20.0,00:00:15,15.0\n"+
		"C,00:00:02,2.0,00:00:15,15.0\n",
		string(content))
	assert.Contains(t, logs.String(), `INFO:Metrics applied file="Base - Voz.csv" operations=1`)

	// a second pass rewrites the same bytes
	require.NoError(t, enricher.ProcessFile(context.Background(), path))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(again))
}

func TestEnricher_ProcessFile_PassThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Base - Texto.csv")
	require.NoError(t, os.WriteFile(path, []byte("ani,tempo\nA,1\n"), 0644))

	logger, _ := captureLogger()
	require.NoError(t, NewEnricher(logger).ProcessFile(context.Background(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bom+"ani,tempo\nA,1\n", string(content))
}

func TestEnricher_ProcessFile_Errors(t *testing.T) {
	dir := t.TempDir()
	latin1 := filepath.Join(dir, "Base - Voz latin1.csv")
	require.NoError(t, os.WriteFile(latin1, []byte("descri\xe7\xe3o\nx\n"), 0644))
	empty := filepath.Join(dir, "Base - Voz vazio.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	tests := []struct {
		name string
		path string
	}{
		{"not utf-8", latin1},
		{"empty file", empty},
		{"missing file", filepath.Join(dir, "missing.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := captureLogger()
			err := NewEnricher(logger).ProcessFile(context.Background(), tt.path)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
			assert.Contains(t, logs.String(), "ERROR:Failed to process metrics file=")
			assert.Contains(t, logs.String(), filepath.Base(tt.path))
		})
	}

	content, err := os.ReadFile(latin1)
	require.NoError(t, err)
	assert.Equal(t, "descri\xe7\xe3o\nx\n", string(content), "failed files are not rewritten")
}
