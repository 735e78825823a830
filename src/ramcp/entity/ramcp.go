// Package entity contains the domain logic for the ramcp service.
package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// Session entity representing a single MCP caller connection.
type Session struct {
	UUID          uuid.UUID           `json:"uuid" zap:"uuid"`
	Conn          *jsonrpc2.Conn      `json:"-" zap:"-"`
	ClientInfo    *ImplementationInfo `json:"clientInfo" zap:"clientInfo"`
	WorkspaceRoot string              `json:"workspaceRoot" zap:"workspaceRoot"`
	Initialized   bool                `json:"initialized" zap:"initialized"`
}

// Analyzer is the reference to a running backing analyzer for one workspace.
// Once registered for a workspace it never changes for the process lifetime.
type Analyzer struct {
	WorkspaceRoot string `json:"workspaceRoot" zap:"workspaceRoot"`
	Socket        string `json:"socket" zap:"socket"`
}

// EditEventKind classifies a host filesystem change.
type EditEventKind string

const (
	// EditEventCreate indicates a newly created file.
	EditEventCreate EditEventKind = "create"
	// EditEventModify indicates an existing file whose content changed.
	EditEventModify EditEventKind = "modify"
)

// EditEvent is one host-environment notification that a file changed on disk.
// Delivery is at-least-once with no ordering guarantee.
type EditEvent struct {
	Path string
	Kind EditEventKind
}

// BootstrapState describes where the workspace sits in the analyzer lifecycle.
type BootstrapState string

const (
	// BootstrapStateUnknown is the initial state before any probe has run.
	BootstrapStateUnknown BootstrapState = "unknown"
	// BootstrapStateStarting means a start attempt is in flight.
	BootstrapStateStarting BootstrapState = "starting"
	// BootstrapStateReady means the analyzer answered a probe and is registered.
	BootstrapStateReady BootstrapState = "ready"
	// BootstrapStateNotInstalled means the multiplexer binary is absent.
	BootstrapStateNotInstalled BootstrapState = "not_installed"
	// BootstrapStateUnavailable means the analyzer could not be started.
	BootstrapStateUnavailable BootstrapState = "unavailable"
)

// BootstrapOutcome records how a Ready state was reached.
type BootstrapOutcome string

const (
	// BootstrapOutcomeAdopted means an already-running analyzer answered the first probe.
	BootstrapOutcomeAdopted BootstrapOutcome = "adopted"
	// BootstrapOutcomeUnitStarted means the analyzer came up via its systemd unit.
	BootstrapOutcomeUnitStarted BootstrapOutcome = "unit_started"
	// BootstrapOutcomeSpawned means the analyzer was spawned as a detached process.
	BootstrapOutcomeSpawned BootstrapOutcome = "spawned"
)

// BootstrapResult is the terminal answer of a bootstrap attempt.
type BootstrapResult struct {
	State    BootstrapState
	Outcome  BootstrapOutcome
	Analyzer *Analyzer
}
