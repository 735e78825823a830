// Package mcp implements the top-level business logic for each MCP session.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/gofrs/uuid"
	"github.com/lspmux/ramcp/src/ramcp/controller/bootstrap"
	editsync "github.com/lspmux/ramcp/src/ramcp/controller/edit-sync"
	"github.com/lspmux/ramcp/src/ramcp/controller/intel"
	"github.com/lspmux/ramcp/src/ramcp/entity"
	"github.com/lspmux/ramcp/src/ramcp/factory"
	analyzerclient "github.com/lspmux/ramcp/src/ramcp/gateway/analyzer-client"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs"
	"github.com/lspmux/ramcp/src/ramcp/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_serverName    = "ramcp"
	_serverVersion = "0.1.0"

	_configKeyWorkspaceRoot = "workspace.root"
	_envKeyWorkspaceRoot    = "RAMCP_WORKSPACE_ROOT"

	_instructions = "ramcp exposes rust-analyzer over four tools: rust_diagnostics, " +
		"rust_hover, rust_goto_definition and rust_find_references. All tools take " +
		"absolute file paths; positions are zero-based. Results reflect the " +
		"analyzer's current snapshot, so immediately after an edit they may be " +
		"stale; retry after a short delay if freshness matters."
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// MCP methods defined per protocol.
	Initialize(ctx context.Context, params *entity.InitializeParams) (*entity.InitializeResult, error)
	Initialized(ctx context.Context) error
	Ping(ctx context.Context) (interface{}, error)
	ToolsList(ctx context.Context) (*entity.ToolsListResult, error)
	ToolsCall(ctx context.Context, params *entity.CallToolParams) (*entity.ToolResult, error)

	// Custom methods for use within this service.
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Sessions   session.Repository
	Bootstrap  bootstrap.Controller
	EditSync   editsync.Controller
	Intel      intel.Controller
	Gateway    analyzerclient.Gateway
	FS         fs.RamcpFS
	Logger     *zap.SugaredLogger
	Config     config.Provider
}

type controller struct {
	shutdowner fx.Shutdowner
	sessions   session.Repository
	bootstrap  bootstrap.Controller
	editSync   editsync.Controller
	intel      intel.Controller
	gateway    analyzerclient.Gateway
	fs         fs.RamcpFS
	logger     *zap.SugaredLogger

	configuredRoot string
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	c := &controller{
		shutdowner: p.Shutdowner,
		sessions:   p.Sessions,
		bootstrap:  p.Bootstrap,
		editSync:   p.EditSync,
		intel:      p.Intel,
		gateway:    p.Gateway,
		fs:         p.FS,
		logger:     p.Logger,
	}

	if err := p.Config.Get(_configKeyWorkspaceRoot).Populate(&c.configuredRoot); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyWorkspaceRoot, err)
	}

	return c, nil
}

// InitSession assigns a UUID to a new connection and stores its session.
func (c *controller) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	id := factory.UUID()
	s := &entity.Session{
		UUID: id,
		Conn: conn,
	}
	if err := c.sessions.Set(ctx, s); err != nil {
		return uuid.Nil, fmt.Errorf("storing new session: %w", err)
	}
	c.logger.Infow("session started", "uuid", id)
	return id, nil
}

// EndSession removes the session. The backing analyzer is shared and unowned,
// so it keeps running after the last session ends.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	if err := c.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	c.logger.Infow("session ended", "uuid", id)
	return nil
}

// Initialize answers the MCP handshake and records the caller's identity.
func (c *controller) Initialize(ctx context.Context, params *entity.InitializeParams) (*entity.InitializeResult, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}

	root, err := c.resolveWorkspaceRoot()
	if err != nil {
		return nil, err
	}

	s.ClientInfo = params.ClientInfo
	s.WorkspaceRoot = root
	s.Initialized = true
	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}

	if params.ProtocolVersion != entity.ProtocolVersion {
		c.logger.Infow("caller requested a different protocol revision",
			"requested", params.ProtocolVersion, "serving", entity.ProtocolVersion)
	}

	return &entity.InitializeResult{
		ProtocolVersion: entity.ProtocolVersion,
		Capabilities: entity.ServerCapabilities{
			Tools: &entity.ToolsCapability{},
		},
		ServerInfo: entity.ImplementationInfo{
			Name:    _serverName,
			Version: _serverVersion,
		},
		Instructions: _instructions,
	}, nil
}

// Initialized runs the analyzer bootstrap for the session's workspace. This is
// the session-start convergence point: failure here is terminal for the
// daemon, signalled by a warning log, the info file state and a non-zero exit.
func (c *controller) Initialized(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	result, err := c.bootstrap.EnsureReady(ctx, s.WorkspaceRoot)
	if err != nil {
		state := entity.BootstrapStateUnknown
		if result != nil {
			state = result.State
		}
		c.logger.Warnw("analyzer bootstrap failed, shutting down",
			"state", state, "workspaceRoot", s.WorkspaceRoot, "error", err)
		return c.shutdowner.Shutdown(fx.ExitCode(1))
	}

	if err := c.gateway.Connect(ctx, s.WorkspaceRoot); err != nil {
		c.logger.Warnw("analyzer connection failed, shutting down", "error", err)
		return c.shutdowner.Shutdown(fx.ExitCode(1))
	}

	if err := c.editSync.StartWatching(ctx, s.WorkspaceRoot); err != nil {
		// Degraded but usable: tool calls still sync files on demand.
		c.logger.Warnw("workspace watch unavailable, continuing without edit sync", "error", err)
	}

	c.logger.Infow("session ready", "outcome", result.Outcome, "workspaceRoot", s.WorkspaceRoot)
	return nil
}

// Ping answers the MCP liveness check.
func (c *controller) Ping(ctx context.Context) (interface{}, error) {
	return map[string]interface{}{}, nil
}

// ToolsList returns the tool catalog.
func (c *controller) ToolsList(ctx context.Context) (*entity.ToolsListResult, error) {
	return &entity.ToolsListResult{Tools: c.intel.Tools(ctx)}, nil
}

// ToolsCall dispatches one tool invocation.
func (c *controller) ToolsCall(ctx context.Context, params *entity.CallToolParams) (*entity.ToolResult, error) {
	return c.intel.CallTool(ctx, params)
}

// resolveWorkspaceRoot picks the workspace from config, environment or the
// working directory, in that order, and canonicalizes it.
func (c *controller) resolveWorkspaceRoot() (string, error) {
	root := c.configuredRoot
	if root == "" {
		root = os.Getenv(_envKeyWorkspaceRoot)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		root = wd
	}

	canonical, err := c.fs.Canonicalize(root)
	if err != nil {
		return "", fmt.Errorf("canonicalizing workspace root %q: %w", root, err)
	}
	return canonical, nil
}
