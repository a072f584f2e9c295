package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewNotFoundError("column tempo"),
			expected: "[NOT_FOUND] column tempo not found",
		},
		{
			name:     "with cause",
			err:      NewStorageError("failed to write file", fmt.Errorf("disk full")),
			expected: "[STORAGE] failed to write file: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("failed to list exports", cause)

	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("run: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeNetwork, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("invalid csv", nil).
		WithContext("file", "Base - Voz.csv").
		WithContext("line", 12)

	assert.Equal(t, "Base - Voz.csv", err.Context["file"])
	assert.Equal(t, 12, err.Context["line"])

	bare := &AppError{Type: ErrTypeParsing}
	bare.WithContext("k", "v")
	assert.Equal(t, "v", bare.Context["k"])
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"config", NewConfigError("missing GENESYS_CLIENT_ID", nil), true},
		{"auth", NewAuthError("token rejected", nil), true},
		{"wrapped auth", fmt.Errorf("exporter: %w", NewAuthError("token rejected", nil)), true},
		{"parsing", NewParsingError("bad csv", nil), false},
		{"storage", NewStorageError("read-only", nil), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeStorage, TypeOf(NewStorageError("x", nil)))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}
