package errors

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// UUIDNotFoundError indicates that no session exists for the given UUID.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", n.UUID)
}

// NoSessionFoundError indicates that the context carries no session UUID.
type NoSessionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoSessionFoundError) Error() string {
	return "no session UUID found in context"
}

// AnalyzerNotFoundError indicates that no backing analyzer reference has been
// registered for the given workspace, i.e. bootstrap has not reached Ready.
type AnalyzerNotFoundError struct {
	WorkspaceRoot string
}

// Error is an implementation of the error interface.
func (n *AnalyzerNotFoundError) Error() string {
	return fmt.Sprintf("no analyzer registered for workspace %q", n.WorkspaceRoot)
}
