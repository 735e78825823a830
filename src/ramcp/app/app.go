package app

import (
	"context"
	"time"

	"github.com/lspmux/ramcp/src/ramcp/gateway"
	"github.com/lspmux/ramcp/src/ramcp/handler"
	"github.com/lspmux/ramcp/src/ramcp/internal/clock"
	"github.com/lspmux/ramcp/src/ramcp/internal/core"
	"github.com/lspmux/ramcp/src/ramcp/internal/executor"
	"github.com/lspmux/ramcp/src/ramcp/internal/fs"
	"github.com/lspmux/ramcp/src/ramcp/internal/jsonrpcfx"
	"github.com/lspmux/ramcp/src/ramcp/internal/serverinfofile"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the ramcp application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	executor.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(clock.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "ramcp",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
