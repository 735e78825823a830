package gateway

import (
	analyzerclient "github.com/lspmux/ramcp/src/ramcp/gateway/analyzer-client"
	"go.uber.org/fx"
)

// Module provides the service's gateways for injection using fx.
var Module = fx.Options(
	fx.Provide(analyzerclient.New),
)
