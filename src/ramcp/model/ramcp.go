package model

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// Session is the repository layer model for an individual MCP caller connection.
type Session struct {
	UUID          uuid.UUID
	Conn          *jsonrpc2.Conn
	ClientName    string
	ClientVersion string
	WorkspaceRoot string
	Initialized   bool
}

// Analyzer is the repository layer model for a registered backing analyzer.
type Analyzer struct {
	WorkspaceRoot string
	Socket        string
}
