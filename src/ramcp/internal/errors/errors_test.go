package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCustomErrors(t *testing.T) {
	inner := errors.New("connection refused")
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "not installed",
			err:      &NotInstalledError{Binary: "lspmux"},
			contains: "lspmux",
		},
		{
			name:     "unreachable",
			err:      &UnreachableError{Socket: "/tmp/lspmux.sock", Err: inner},
			contains: "unreachable",
		},
		{
			name:     "invalid request",
			err:      &InvalidRequestError{Reason: "file_path must be absolute"},
			contains: "absolute",
		},
		{
			name:     "backing failure",
			err:      &BackingFailureError{Method: "textDocument/hover", Err: inner},
			contains: "textDocument/hover",
		},
		{
			name:     "timeout",
			err:      &TimeoutError{Method: "textDocument/diagnostic", Timeout: 30 * time.Second},
			contains: "timed out",
		},
		{
			name:     "uuid not found",
			err:      &UUIDNotFoundError{UUID: uuid.Must(uuid.NewV4())},
			contains: "not found",
		},
		{
			name:     "no session in context",
			err:      &NoSessionFoundError{},
			contains: "no session",
		},
		{
			name:     "analyzer not found",
			err:      &AnalyzerNotFoundError{WorkspaceRoot: "/home/user/project"},
			contains: "/home/user/project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("broken pipe")

	wrapped := fmt.Errorf("calling analyzer: %w", &UnreachableError{Socket: "/tmp/s.sock", Err: inner})
	var unreachable *UnreachableError
	assert.ErrorAs(t, wrapped, &unreachable)
	assert.ErrorIs(t, wrapped, inner)

	var backing *BackingFailureError
	err := fmt.Errorf("tool call: %w", &BackingFailureError{Method: "m", Err: inner})
	assert.ErrorAs(t, err, &backing)
	assert.ErrorIs(t, err, inner)
}
