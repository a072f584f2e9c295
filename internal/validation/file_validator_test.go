package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikpis/internal/errors"
	"bikpis/internal/shared/testutil"
)

func TestValidateInputDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Base - Voz.csv")
	require.NoError(t, os.WriteFile(file, []byte("a\n1\n"), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr bool
		message string
	}{
		{"existing directory", dir, false, ""},
		{"missing directory", filepath.Join(dir, "POWER_BI"), true, "Input directory does not exist"},
		{"regular file", file, true, "Input path is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutil.NewTestLogger(t)
			err := NewFileValidator(logger).ValidateInputDirectory(tt.path)

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Zero(t, handler.Count())
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
			assert.True(t, apperrors.IsFatal(err))
			testutil.AssertLogContains(t, handler, slog.LevelError, tt.message)
		})
	}
}

func TestValidateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "POWER_BI", "Planilhas")
	validator := NewFileValidator(nil)

	require.NoError(t, validator.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidateOutputDirectory_BlockedByFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "POWER_BI")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := NewFileValidator(nil).ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestValidateCSVFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{"valid", write("ok.csv", "a,b\n1,2\n"), ""},
		{"upper-case extension", write("OK.CSV", "a\n"), ""},
		{"empty", write("vazio.csv", ""), apperrors.ErrTypeParsing},
		{"wrong extension", write("dados.xlsx", "x"), apperrors.ErrTypeParsing},
		{"missing", filepath.Join(dir, "missing.csv"), apperrors.ErrTypeNotFound},
		{"directory", dir, apperrors.ErrTypeStorage},
	}

	validator := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateCSVFile(tt.path)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
		})
	}
}
