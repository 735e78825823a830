package mcp

import (
	"context"
	stderrors "errors"

	"github.com/gofrs/uuid"
	controller "github.com/lspmux/ramcp/src/ramcp/controller/mcp"
	"github.com/lspmux/ramcp/src/ramcp/entity"
	"github.com/lspmux/ramcp/src/ramcp/internal/errors"
	"github.com/lspmux/ramcp/src/ramcp/mapper"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
)

type jsonRPCRouter struct {
	mcp   controller.Controller
	uuid  uuid.UUID
	stats tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)
	r.stats.Counter("requests").Inc(1)

	switch req.Method() {
	case entity.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case entity.MethodNotificationsInitialized:
		return r.Initialized(ctx, reply, req)

	case entity.MethodPing:
		return r.Ping(ctx, reply, req)

	case entity.MethodToolsList:
		return r.ToolsList(ctx, reply, req)

	case entity.MethodToolsCall:
		return r.ToolsCall(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}

// Initialize extracts entity.InitializeParams from the request and calls initialization logic for a new caller connection.
func (r *jsonRPCRouter) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToInitializeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.mcp.Initialize(ctx, params)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// Initialized is sent after the caller received the initialize result. It is
// a notification, so bootstrap failures surface through logs and exit rather
// than a reply.
func (r *jsonRPCRouter) Initialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.mcp.Initialized(ctx)
	return reply(ctx, nil, err)
}

// Ping answers the MCP liveness check.
func (r *jsonRPCRouter) Ping(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.mcp.Ping(ctx)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

// ToolsList returns the tool catalog.
func (r *jsonRPCRouter) ToolsList(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.mcp.ToolsList(ctx)
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

// ToolsCall dispatches a tool invocation. Caller contract violations map to
// an invalid params error; analyzer-side failures are already carried inside
// the tool result.
func (r *jsonRPCRouter) ToolsCall(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCallToolParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.mcp.ToolsCall(ctx, params)
	if err != nil {
		var invalid *errors.InvalidRequestError
		if stderrors.As(err, &invalid) {
			r.stats.Counter("invalid_requests").Inc(1)
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, invalid.Reason))
		}
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}
