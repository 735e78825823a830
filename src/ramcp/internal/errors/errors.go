// Package errors defines the typed failure taxonomy surfaced by ramcp.
package errors

import (
	stderr "errors"
	"fmt"
	"time"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// NotInstalledError indicates that the lspmux binary could not be found.
// Fatal for the session; never retried automatically.
type NotInstalledError struct {
	Binary string
}

// Error is an implementation of the error interface.
func (n *NotInstalledError) Error() string {
	return fmt.Sprintf("%q is not installed", n.Binary)
}

// UnreachableError indicates that the backing analyzer did not answer the
// probe, or that an established connection to it was lost.
type UnreachableError struct {
	Socket string
	Err    error
}

// Error is an implementation of the error interface.
func (n *UnreachableError) Error() string {
	return fmt.Sprintf("analyzer unreachable at %q: %v", n.Socket, n.Err)
}

// Unwrap returns the underlying error.
func (n *UnreachableError) Unwrap() error {
	return n.Err
}

// InvalidRequestError indicates a caller contract violation, such as a
// relative file path or an unknown tool name. Never retried.
type InvalidRequestError struct {
	Reason string
}

// Error is an implementation of the error interface.
func (n *InvalidRequestError) Error() string {
	return n.Reason
}

// BackingFailureError indicates that the backing analyzer returned an error
// response. Surfaced verbatim to the caller.
type BackingFailureError struct {
	Method string
	Err    error
}

// Error is an implementation of the error interface.
func (n *BackingFailureError) Error() string {
	return fmt.Sprintf("analyzer request %q failed: %v", n.Method, n.Err)
}

// Unwrap returns the underlying error.
func (n *BackingFailureError) Unwrap() error {
	return n.Err
}

// TimeoutError indicates that the backing analyzer did not respond within the
// configured bound. Distinct from BackingFailureError so callers can decide
// to retry.
type TimeoutError struct {
	Method  string
	Timeout time.Duration
}

// Error is an implementation of the error interface.
func (n *TimeoutError) Error() string {
	return fmt.Sprintf("analyzer request %q timed out after %s", n.Method, n.Timeout)
}
