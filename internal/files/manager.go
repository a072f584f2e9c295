package files

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "bikpis/internal/errors"
	"bikpis/internal/infrastructure"
)

// Manager provides file management operations
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	return &Manager{logger: logger}
}

// EnsureDirectory creates a directory, and its parents, if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return apperrors.NewStorageError("path exists and is not a directory", nil).WithContext("path", path)
		}
		return nil
	}

	m.logger.Debug("Creating directory", slog.String("path", path))
	if err := os.MkdirAll(path, 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("path", path)
	}
	return nil
}

// WriteFrom streams r into path and returns the number of bytes written. The
// content goes to a temporary sibling first and is renamed over path, so a
// failed write never leaves a partial file behind.
func (m *Manager) WriteFrom(path string, r io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := m.EnsureDirectory(dir); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, apperrors.NewStorageError("failed to create temporary file", err).WithContext("file", path)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return n, apperrors.NewStorageError("failed to write file", err).WithContext("file", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return n, apperrors.NewStorageError("failed to close file", err).WithContext("file", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return n, apperrors.NewStorageError("failed to move file into place", err).WithContext("file", path)
	}

	m.logger.Debug("Wrote file", slog.String("file", path), slog.Int64("size_bytes", n))
	return n, nil
}
