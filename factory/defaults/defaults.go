package defaults

import (
	factoryconfig "github.com/cordialsys/xcmbridge/factory/config"
	"github.com/cordialsys/xcmbridge/factory/defaults/chains"
	"github.com/cordialsys/xcmbridge/factory/defaults/routes"
	"github.com/cordialsys/xcmbridge/factory/defaults/tokens"
)

// Config is the embedded polkadot and kusama federation.
var Config = factoryconfig.Config{
	Chains: chains.Chains,
	Tokens: tokens.Tokens,
	Routes: routes.Routes,
}
