package setup

import (
	"fmt"
	"os"
	"strings"

	"github.com/cordialsys/xcmbridge/config"
	"github.com/cordialsys/xcmbridge/factory"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

type ChainOverride struct {
	// The websocket RPC URL for the chain
	Rpc string `json:"rpc,omitempty" toml:"rpc,omitempty"`
	// A secret reference for the provider api key
	ApiKey config.Secret `json:"api_key,omitempty" toml:"api_key,omitempty"`

	Applied bool `json:"-" toml:"-"`
}

// LoadOverrides reads a toml file with one table per chain:
//
//	[polkadot]
//	rpc = "wss://polkadot.api.onfinality.io/ws"
//	api_key = "env:ONFINALITY_API_KEY"
func LoadOverrides(path string) (map[string]*ChainOverride, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	overrides := map[string]*ChainOverride{}
	if err := toml.Unmarshal(bz, &overrides); err != nil {
		return nil, fmt.Errorf("invalid overrides file %s: %w", path, err)
	}
	return overrides, nil
}

func OverwriteChainSettings(overrides map[string]*ChainOverride, xcmFactory *factory.Factory) {
	if overrides == nil {
		return
	}
	for _, chain := range xcmFactory.Config.GetChains() {
		chainKey := strings.ToLower(string(chain.ID))
		override, ok := overrides[chainKey]
		if !ok {
			continue
		}
		override.Applied = true
		if override.ApiKey != "" {
			logrus.WithField("chain", chain.ID).Info("overriding api-key")
			chain.Client.Auth = override.ApiKey
		}
		if override.Rpc != "" {
			logrus.WithField("chain", chain.ID).Info("overriding rpc")
			chain.Client.URL = override.Rpc
		}
	}
	for chain, cfg := range overrides {
		if !cfg.Applied {
			logrus.WithField("chain", chain).Warn("could not find chain to apply override to")
		}
	}
}
