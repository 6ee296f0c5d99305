package errors

import (
	"errors"
	"io/fs"
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
			err:      NewAppError(ErrTypeConfig, "bad output root", nil),
			expected: "[CONFIG] bad output root",
		},
		{
			name:     "with cause",
			err:      NewStorageError("write workbook", errors.New("disk full")),
			expected: "[STORAGE] write workbook: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fs.ErrNotExist
	err := NewNotFoundError("data file", cause)

	require.ErrorIs(t, err, fs.ErrNotExist)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, ErrTypeNotFound, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewRenderError("scatter plot", nil).WithContext("path", "/tmp/out.png")
	assert.Equal(t, "/tmp/out.png", err.Context["path"])
}

func TestMissingColumnsError(t *testing.T) {
	err := NewMissingColumnsError(
		[]string{"satisfaction", "average_monthly_hours", "left"},
		[]string{"foo", "bar"},
	)

	msg := err.Error()
	assert.Contains(t, msg, "satisfaction")
	assert.Contains(t, msg, "average_monthly_hours")
	assert.Contains(t, msg, "left")
	assert.Contains(t, msg, "available: foo, bar")
}
