// Package protocol supplies LSP 3.17 pull-diagnostics types which are not yet
// present in go.lsp.dev/protocol.
package protocol

import (
	"go.lsp.dev/protocol"
)

// MethodTextDocumentDiagnostic is the LSP method for document pull diagnostics.
const MethodTextDocumentDiagnostic = "textDocument/diagnostic"

// DocumentDiagnosticParams are the parameters of a textDocument/diagnostic request.
type DocumentDiagnosticParams struct {
	TextDocument     protocol.TextDocumentIdentifier `json:"textDocument"`
	Identifier       string                          `json:"identifier,omitempty"`
	PreviousResultID string                          `json:"previousResultId,omitempty"`
}

// Document diagnostic report kinds.
const (
	// DiagnosticReportKindFull carries the complete set of current diagnostics.
	DiagnosticReportKindFull = "full"
	// DiagnosticReportKindUnchanged means diagnostics are unchanged since the previous result.
	DiagnosticReportKindUnchanged = "unchanged"
)

// DocumentDiagnosticReport is the response to a textDocument/diagnostic request.
type DocumentDiagnosticReport struct {
	Kind     string                `json:"kind"`
	ResultID string                `json:"resultId,omitempty"`
	Items    []protocol.Diagnostic `json:"items,omitempty"`
}
