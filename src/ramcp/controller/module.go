package controller

import (
	"github.com/lspmux/ramcp/src/ramcp/controller/bootstrap"
	editsync "github.com/lspmux/ramcp/src/ramcp/controller/edit-sync"
	"github.com/lspmux/ramcp/src/ramcp/controller/intel"
	"github.com/lspmux/ramcp/src/ramcp/controller/mcp"
	"go.uber.org/fx"
)

// Module provides the service's controllers for injection using fx.
var Module = fx.Options(
	fx.Provide(mcp.New),
	fx.Provide(bootstrap.New),
	fx.Provide(editsync.New),
	fx.Provide(intel.New),
)
