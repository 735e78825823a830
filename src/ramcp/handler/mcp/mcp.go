// Package mcp wires inbound JSON-RPC connections to the MCP controller.
package mcp

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	controller "github.com/lspmux/ramcp/src/ramcp/controller/mcp"
	"github.com/lspmux/ramcp/src/ramcp/entity"
	"github.com/lspmux/ramcp/src/ramcp/internal/jsonrpcfx"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
)

// Handler accepts MCP caller connections for the service.
type Handler interface {
	// ConnectionManager exposes the registered manager, mainly for tests.
	ConnectionManager() jsonrpcfx.ConnectionManager
}

type handler struct {
	mcp               controller.Controller
	connectionManager jsonrpcfx.ConnectionManager
	stats             tally.Scope
}

// New constructs a new MCP Handler and registers it as the connection manager
// of the JSON-RPC inbound.
func New(ctrl controller.Controller, jsonrpcmod jsonrpcfx.JSONRPCModule, stats tally.Scope) (Handler, error) {
	c := jsonRPCConnectionManager{
		ctrl:  ctrl,
		stats: stats.SubScope("json_rpc"),
	}
	if err := jsonrpcmod.RegisterConnectionManager(&c); err != nil {
		return nil, err
	}

	return &handler{
		mcp:               ctrl,
		connectionManager: &c,
		stats:             stats,
	}, nil
}

func (h *handler) ConnectionManager() jsonrpcfx.ConnectionManager {
	return h.connectionManager
}

type jsonRPCConnectionManager struct {
	ctrl  controller.Controller
	stats tally.Scope
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router jsonrpcfx.Router, err error) {
	id, err := c.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	r := jsonRPCRouter{
		mcp:   c.ctrl,
		uuid:  id,
		stats: c.stats,
	}

	return &r, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	// Ensure session is removed even if the caller disconnected abruptly.
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	c.ctrl.EndSession(ctx, id)
}
