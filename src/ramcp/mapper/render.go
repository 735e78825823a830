package mapper

import (
	"fmt"
	"strings"

	"go.lsp.dev/protocol"
)

// FormatLocation renders a location as file:line:col, one-indexed.
func FormatLocation(loc protocol.Location) string {
	return fmt.Sprintf(
		"%s:%d:%d",
		loc.URI.Filename(),
		loc.Range.Start.Line+1,
		loc.Range.Start.Character+1,
	)
}

// DiagnosticsToText renders diagnostics as one line per item with one-indexed
// positions and an upper-case severity label.
func DiagnosticsToText(items []protocol.Diagnostic) string {
	if len(items) == 0 {
		return "No diagnostics found."
	}

	lines := make([]string, 0, len(items))
	for _, d := range items {
		lines = append(lines, fmt.Sprintf(
			"%d:%d: [%s] %s",
			d.Range.Start.Line+1,
			d.Range.Start.Character+1,
			severityLabel(d.Severity),
			d.Message,
		))
	}
	return strings.Join(lines, "\n")
}

// HoverToText renders the markup content of a hover result.
func HoverToText(hover *protocol.Hover) string {
	if hover == nil || hover.Contents.Value == "" {
		return "No hover information available at this position."
	}
	return hover.Contents.Value
}

// DefinitionsToText renders definition locations, one per line.
func DefinitionsToText(locations []protocol.Location) string {
	if len(locations) == 0 {
		return "No definition found."
	}

	lines := make([]string, 0, len(locations))
	for _, loc := range locations {
		lines = append(lines, FormatLocation(loc))
	}
	return strings.Join(lines, "\n")
}

// ReferencesToText renders reference locations with a count header.
func ReferencesToText(locations []protocol.Location) string {
	if len(locations) == 0 {
		return "No references found."
	}

	lines := make([]string, 0, len(locations))
	for _, loc := range locations {
		lines = append(lines, FormatLocation(loc))
	}
	return fmt.Sprintf("Found %d reference(s):\n%s", len(locations), strings.Join(lines, "\n"))
}

func severityLabel(s protocol.DiagnosticSeverity) string {
	switch s {
	case protocol.DiagnosticSeverityError:
		return "ERROR"
	case protocol.DiagnosticSeverityWarning:
		return "WARNING"
	case protocol.DiagnosticSeverityInformation:
		return "INFO"
	case protocol.DiagnosticSeverityHint:
		return "HINT"
	default:
		return "UNKNOWN"
	}
}
