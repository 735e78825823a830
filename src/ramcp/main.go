package main

import (
	"github.com/lspmux/ramcp/src/ramcp/app"
	"go.uber.org/fx"
)

const _version = "0.1.0"

func opts() fx.Option {
	return fx.Options(
		app.Module,
	)
}

func main() {
	fx.New(opts()).Run()
}
