package config

import (
	"fmt"
	"sort"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/config"
	"github.com/cordialsys/xcmbridge/routes"
)

// ClientConfig is how to reach a chain's node.
type ClientConfig struct {
	URL string `yaml:"url,omitempty"`
	// Requests per second, 0 to not pace requests
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	// Optional provider api key for the rpc endpoint
	Auth config.Secret `yaml:"auth,omitempty"`
}

type ChainConfig struct {
	xb.Chain `yaml:",inline"`
	Client   ClientConfig `yaml:"client"`
}

// Config is the whole federation: chains keyed by lowercase id, with their token tables and routes.
type Config struct {
	Chains map[string]*ChainConfig          `yaml:"chains"`
	Tokens map[string][]*xb.Token           `yaml:"tokens"`
	Routes map[string][]routes.RouteConfig `yaml:"routes"`
}

func Key(id xb.ChainID) string {
	return strings.ToLower(strings.TrimSpace(string(id)))
}

// GetChains lists the chains sorted by id.
func (cfg *Config) GetChains() []*ChainConfig {
	chains := make([]*ChainConfig, 0, len(cfg.Chains))
	for _, chain := range cfg.Chains {
		chains = append(chains, chain)
	}
	sort.Slice(chains, func(i, j int) bool {
		// need to be sorted deterministically
		return chains[i].ID.Normalize() < chains[j].ID.Normalize()
	})
	return chains
}

func (cfg *Config) GetChain(id xb.ChainID) (*ChainConfig, bool) {
	chain, ok := cfg.Chains[Key(id)]
	return chain, ok
}

// Validate checks every chain descriptor and that each chain has a token table with its native token.
func (cfg *Config) Validate() error {
	for key, chain := range cfg.Chains {
		if Key(chain.ID) != key {
			return fmt.Errorf("chain %s is listed under %q", chain.ID, key)
		}
		if err := chain.Chain.Validate(); err != nil {
			return err
		}
		if _, ok := cfg.Tokens[key]; !ok {
			return fmt.Errorf("%s: no tokens configured", chain.ID)
		}
	}
	for key := range cfg.Routes {
		if _, ok := cfg.Chains[key]; !ok {
			return fmt.Errorf("routes configured for unknown chain %s", key)
		}
	}
	return nil
}
