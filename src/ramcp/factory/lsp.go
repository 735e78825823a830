package factory

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Location returns a protocol.Location for the given file and zero-based position.
func Location(path string, line, character uint32) protocol.Location {
	return protocol.Location{
		URI: uri.File(path),
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: character},
			End:   protocol.Position{Line: line, Character: character + 1},
		},
	}
}

// Diagnostic returns a protocol.Diagnostic at the given zero-based position.
func Diagnostic(line, character uint32, severity protocol.DiagnosticSeverity, message string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: character},
			End:   protocol.Position{Line: line, Character: character + 1},
		},
		Severity: severity,
		Message:  message,
	}
}
