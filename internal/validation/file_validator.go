package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "bikpis/internal/errors"
	"bikpis/internal/infrastructure"
)

// FileValidator provides the file checks shared by every command
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputDirectory checks that dir exists and is a directory. A
// missing working directory is a usage error, so it is reported as a
// configuration error.
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist", slog.String("directory", dir))
		return apperrors.NewConfigError("input directory does not exist", err).WithContext("dir", dir)
	}
	if err != nil {
		v.logger.Error("Failed to stat input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewConfigError("failed to stat input directory", err).WithContext("dir", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory", slog.String("path", dir))
		return apperrors.NewConfigError("input path is not a directory", nil).WithContext("dir", dir)
	}
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it if needed, and is
// writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("dir", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("dir", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path is an existing, readable regular file
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return apperrors.NewNotFoundError("file " + path)
	}
	if err != nil {
		return apperrors.NewStorageError("failed to stat file", err).WithContext("file", path)
	}
	if info.IsDir() {
		return apperrors.NewStorageError("path is a directory, not a file", nil).WithContext("file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError("file is not readable", err).WithContext("file", path)
	}
	file.Close()

	v.logger.Debug("File validated", slog.String("file", path), slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile checks that path is a readable, non-empty .csv file
func (v *FileValidator) ValidateCSVFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" {
		return apperrors.NewParsingError("file is not a CSV file", nil).
			WithContext("file", path).
			WithContext("extension", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return apperrors.NewStorageError("failed to stat file", err).WithContext("file", path)
	}
	if info.Size() == 0 {
		return apperrors.NewParsingError("file is empty", nil).WithContext("file", path)
	}
	return nil
}
