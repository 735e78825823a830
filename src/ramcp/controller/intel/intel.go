// Package intel mediates MCP tool calls onto the backing analyzer.
package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/lspmux/ramcp/src/ramcp/entity"
	analyzerclient "github.com/lspmux/ramcp/src/ramcp/gateway/analyzer-client"
	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs"
	"github.com/lspmux/ramcp/src/ramcp/mapper"
	"github.com/lspmux/ramcp/src/ramcp/repository/analyzer"
	"github.com/lspmux/ramcp/src/ramcp/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "intel"

// Tool names exposed over tools/list.
const (
	ToolDiagnostics    = "rust_diagnostics"
	ToolHover          = "rust_hover"
	ToolGotoDefinition = "rust_goto_definition"
	ToolFindReferences = "rust_find_references"
)

// _retryNote is appended to request failures that commonly resolve once the
// analyzer finishes indexing.
const _retryNote = "\n\nNote: rust-analyzer may still be loading. Try again in a few seconds."

var _fileSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"file_path": {"type": "string", "description": "Absolute path to the Rust source file"}
	},
	"required": ["file_path"]
}`)

var _positionSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"file_path": {"type": "string", "description": "Absolute path to the Rust source file"},
		"line": {"type": "integer", "description": "Zero-based line number"},
		"character": {"type": "integer", "description": "Zero-based character offset within the line"}
	},
	"required": ["file_path", "line", "character"]
}`)

// Controller dispatches tool calls: validate, sync the file, issue exactly one
// backing request, render the result. Results reflect the analyzer's current
// snapshot, which may trail a just-written edit; callers that need the newest
// state retry after a short delay. The mediator itself never blocks, polls, or
// retries on their behalf.
type Controller interface {
	// Tools lists the available tool descriptors.
	Tools(ctx context.Context) []entity.Tool

	// CallTool runs the named tool. Caller contract violations (unknown tool,
	// malformed arguments, relative or missing path) return an error without
	// contacting the analyzer; analyzer-side failures come back as a tool
	// result with IsError set.
	CallTool(ctx context.Context, params *entity.CallToolParams) (*entity.ToolResult, error)
}

// Params are inbound parameters to initialize an intel controller.
type Params struct {
	fx.In

	Sessions  session.Repository
	Analyzers analyzer.Repository
	Gateway   analyzerclient.Gateway
	FS        fs.RamcpFS
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	sessions  session.Repository
	analyzers analyzer.Repository
	gateway   analyzerclient.Gateway
	fs        fs.RamcpFS
	logger    *zap.SugaredLogger
	stats     tally.Scope
}

// New creates a new controller for tool mediation.
func New(p Params) Controller {
	return &controller{
		sessions:  p.Sessions,
		analyzers: p.Analyzers,
		gateway:   p.Gateway,
		fs:        p.FS,
		logger:    p.Logger.With("plugin", _nameKey),
		stats:     p.Stats.SubScope(_nameKey),
	}
}

// Tools returns the four tool descriptors.
func (c *controller) Tools(ctx context.Context) []entity.Tool {
	return []entity.Tool{
		{
			Name:        ToolDiagnostics,
			Description: "Get compiler diagnostics (errors and warnings) for a Rust file",
			InputSchema: _fileSchema,
		},
		{
			Name:        ToolHover,
			Description: "Get type information and documentation for the symbol at a position (zero-based line and character)",
			InputSchema: _positionSchema,
		},
		{
			Name:        ToolGotoDefinition,
			Description: "Find the definition of the symbol at a position (zero-based line and character)",
			InputSchema: _positionSchema,
		},
		{
			Name:        ToolFindReferences,
			Description: "Find all references to the symbol at a position (zero-based line and character)",
			InputSchema: _positionSchema,
		},
	}
}

// CallTool dispatches by tool name.
func (c *controller) CallTool(ctx context.Context, params *entity.CallToolParams) (*entity.ToolResult, error) {
	c.stats.Counter(params.Name).Inc(1)

	switch params.Name {
	case ToolDiagnostics:
		return c.diagnostics(ctx, params.Arguments)
	case ToolHover:
		return c.hover(ctx, params.Arguments)
	case ToolGotoDefinition:
		return c.definition(ctx, params.Arguments)
	case ToolFindReferences:
		return c.references(ctx, params.Arguments)
	default:
		return nil, &errors.InvalidRequestError{Reason: fmt.Sprintf("unknown tool: %s", params.Name)}
	}
}

func (c *controller) diagnostics(ctx context.Context, raw json.RawMessage) (*entity.ToolResult, error) {
	args, err := mapper.ArgumentsToFileArgs(raw)
	if err != nil {
		return nil, &errors.InvalidRequestError{Reason: err.Error()}
	}
	if err := c.validateFile(args.FilePath); err != nil {
		return nil, err
	}
	if result := c.prepare(ctx, ToolDiagnostics, args.FilePath); result != nil {
		return result, nil
	}

	items, err := c.gateway.Diagnostics(ctx, args.FilePath)
	if err != nil {
		return c.failure(ToolDiagnostics, fmt.Sprintf("Diagnostics request failed: %v%s", err, _retryNote)), nil
	}
	return entity.TextResult(mapper.DiagnosticsToText(items)), nil
}

func (c *controller) hover(ctx context.Context, raw json.RawMessage) (*entity.ToolResult, error) {
	args, err := mapper.ArgumentsToPositionArgs(raw)
	if err != nil {
		return nil, &errors.InvalidRequestError{Reason: err.Error()}
	}
	if err := c.validateFile(args.FilePath); err != nil {
		return nil, err
	}
	if result := c.prepare(ctx, ToolHover, args.FilePath); result != nil {
		return result, nil
	}

	hover, err := c.gateway.Hover(ctx, args.FilePath, args.Line, args.Character)
	if err != nil {
		return c.failure(ToolHover, fmt.Sprintf("Hover request failed: %v", err)), nil
	}
	return entity.TextResult(mapper.HoverToText(hover)), nil
}

func (c *controller) definition(ctx context.Context, raw json.RawMessage) (*entity.ToolResult, error) {
	args, err := mapper.ArgumentsToPositionArgs(raw)
	if err != nil {
		return nil, &errors.InvalidRequestError{Reason: err.Error()}
	}
	if err := c.validateFile(args.FilePath); err != nil {
		return nil, err
	}
	if result := c.prepare(ctx, ToolGotoDefinition, args.FilePath); result != nil {
		return result, nil
	}

	locations, err := c.gateway.Definition(ctx, args.FilePath, args.Line, args.Character)
	if err != nil {
		return c.failure(ToolGotoDefinition, fmt.Sprintf("Go to definition failed: %v", err)), nil
	}
	return entity.TextResult(mapper.DefinitionsToText(locations)), nil
}

func (c *controller) references(ctx context.Context, raw json.RawMessage) (*entity.ToolResult, error) {
	args, err := mapper.ArgumentsToPositionArgs(raw)
	if err != nil {
		return nil, &errors.InvalidRequestError{Reason: err.Error()}
	}
	if err := c.validateFile(args.FilePath); err != nil {
		return nil, err
	}
	if result := c.prepare(ctx, ToolFindReferences, args.FilePath); result != nil {
		return result, nil
	}

	locations, err := c.gateway.References(ctx, args.FilePath, args.Line, args.Character)
	if err != nil {
		return c.failure(ToolFindReferences, fmt.Sprintf("Find references failed: %v", err)), nil
	}
	return entity.TextResult(mapper.ReferencesToText(locations)), nil
}

// validateFile enforces the caller contract before the analyzer is contacted.
func (c *controller) validateFile(path string) error {
	if !filepath.IsAbs(path) {
		return &errors.InvalidRequestError{Reason: fmt.Sprintf("file_path must be absolute, got: %s", path)}
	}
	exists, err := c.fs.FileExists(path)
	if err != nil || !exists {
		return &errors.InvalidRequestError{Reason: fmt.Sprintf("file not found: %s", path)}
	}
	return nil
}

// prepare resolves the analyzer handle for the session's workspace and syncs
// the file. A non-nil result is the failure to return to the caller.
func (c *controller) prepare(ctx context.Context, tool, path string) *entity.ToolResult {
	s, err := c.sessions.GetFromContext(ctx)
	if err == nil {
		if _, err := c.analyzers.Get(ctx, s.WorkspaceRoot); err != nil {
			return c.failure(tool, fmt.Sprintf("rust-analyzer is not ready: %v%s", err, _retryNote))
		}
	}

	if err := c.gateway.EnsureFileOpen(ctx, path); err != nil {
		return c.failure(tool, fmt.Sprintf("Failed to open file: %v", err))
	}
	return nil
}

func (c *controller) failure(tool, text string) *entity.ToolResult {
	c.stats.Counter(tool + "_failed").Inc(1)
	c.logger.Warnw("tool call failed", "tool", tool, "message", text)
	return entity.ErrorResult(text)
}
