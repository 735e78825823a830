package handler

import (
	controller "github.com/lspmux/ramcp/src/ramcp/controller"
	mcpcontroller "github.com/lspmux/ramcp/src/ramcp/controller/mcp"
	mcphandler "github.com/lspmux/ramcp/src/ramcp/handler/mcp"
	"github.com/lspmux/ramcp/src/ramcp/repository/analyzer"
	"github.com/lspmux/ramcp/src/ramcp/repository/session"
	"go.uber.org/fx"
)

// Module provides the ramcp server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(analyzer.New),
	fx.Provide(mcphandler.New),
	fx.Invoke(outputAnalyzerConnectionInfo),
	fx.Invoke(func(m mcphandler.Handler) {}),
	fx.Invoke(func(m mcpcontroller.Controller) {}),
)
