package factory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/adapter"
	substrate "github.com/cordialsys/xcmbridge/chain/substrate/client"
	"github.com/cordialsys/xcmbridge/client/errors"
	"github.com/cordialsys/xcmbridge/config"
	"github.com/cordialsys/xcmbridge/fee"
	factoryconfig "github.com/cordialsys/xcmbridge/factory/config"
	"github.com/cordialsys/xcmbridge/factory/defaults"
	"github.com/cordialsys/xcmbridge/metrics"
	"github.com/cordialsys/xcmbridge/routes"
	"github.com/sirupsen/logrus"
)

// Factory holds one adapter per chain. It is fixed once built.
type Factory struct {
	Config   *factoryconfig.Config
	adapters map[string]*adapter.ChainAdapter
	metrics  *metrics.Metrics
}

var _ adapter.Chains = &Factory{}

// NewFactory registers already built adapters. A chain listed twice is an error.
func NewFactory(adapters ...*adapter.ChainAdapter) (*Factory, error) {
	f := &Factory{
		Config:   &factoryconfig.Config{},
		adapters: map[string]*adapter.ChainAdapter{},
	}
	for _, a := range adapters {
		if err := f.add(a); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *Factory) add(a *adapter.ChainAdapter) error {
	key := factoryconfig.Key(a.Chain().ID)
	if _, ok := f.adapters[key]; ok {
		return fmt.Errorf("duplicate adapter for chain %s", a.Chain().ID)
	}
	f.adapters[key] = a
	return nil
}

// NewFactoryFromConfig builds an adapter for every configured chain. Destinations
// resolve against the factory's own chains.
func NewFactoryFromConfig(cfg *factoryconfig.Config, m *metrics.Metrics) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Factory{
		Config:   cfg,
		adapters: map[string]*adapter.ChainAdapter{},
		metrics:  m,
	}
	for _, chainCfg := range cfg.GetChains() {
		chain := chainCfg.Chain
		key := factoryconfig.Key(chain.ID)

		tokens, err := xb.NewTokenCatalog(chain.NativeToken, cfg.Tokens[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", chain.ID, err)
		}
		registry, err := routes.New(chain.ID, cfg.Routes[key])
		if err != nil {
			return nil, err
		}
		a, err := adapter.New(adapter.Config{
			Chain:   &chain,
			Tokens:  tokens,
			Routes:  registry,
			Chains:  f,
			Metrics: m,
		})
		if err != nil {
			return nil, err
		}
		if err := f.add(a); err != nil {
			return nil, err
		}
	}
	logrus.WithField("chains", len(f.adapters)).Debug("loaded adapters")
	return f, nil
}

// NewDefaultFactory loads the "xcmbridge" section of the config file, falling
// back to the embedded chain set.
func NewDefaultFactory() (*Factory, error) {
	cfg := factoryconfig.Config{}
	if err := config.RequireConfig(config.Section, &cfg, defaults.Config); err != nil {
		return nil, err
	}
	return NewFactoryFromConfig(&cfg, metrics.Default())
}

func (f *Factory) Get(id xb.ChainID) (*adapter.ChainAdapter, error) {
	a, ok := f.adapters[factoryconfig.Key(id)]
	if !ok {
		return nil, errors.AdapterNotFoundf("no adapter for chain %s", id)
	}
	return a, nil
}

// All lists the adapters sorted by chain id.
func (f *Factory) All() []*adapter.ChainAdapter {
	all := make([]*adapter.ChainAdapter, 0, len(f.adapters))
	for _, a := range f.adapters {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Chain().ID.Normalize() < all[j].Chain().ID.Normalize()
	})
	return all
}

func (f *Factory) Chain(id xb.ChainID) (*xb.Chain, bool) {
	a, ok := f.adapters[factoryconfig.Key(id)]
	if !ok {
		return nil, false
	}
	return a.Chain(), true
}

// MinInput is the smallest amount of token worth sending from one chain to another:
// the destination's existential deposit, plus the relay fee when it is paid in token.
func (f *Factory) MinInput(from xb.ChainID, to xb.ChainID, token string) (xb.AmountHumanReadable, error) {
	source, err := f.Get(from)
	if err != nil {
		return xb.AmountHumanReadable{}, err
	}
	destination, err := f.Get(to)
	if err != nil {
		return xb.AmountHumanReadable{}, err
	}
	sourceToken, err := source.GetToken(token)
	if err != nil {
		return xb.AmountHumanReadable{}, err
	}
	relayFee, err := source.GetRelayFee(destination.Chain().ID, sourceToken.Symbol)
	if err != nil {
		return xb.AmountHumanReadable{}, err
	}
	destinationToken, err := destination.GetToken(sourceToken.Symbol)
	if err != nil {
		return xb.AmountHumanReadable{}, err
	}
	sameToken := strings.EqualFold(relayFee.Token, sourceToken.Symbol)
	return fee.MinInput(destinationToken.EDHuman(), relayFee.Amount.ToHuman(sourceToken.Decimals), sameToken), nil
}

// NewConnection creates the rpc client of a configured chain. It does not dial.
func (f *Factory) NewConnection(id xb.ChainID) (*substrate.Client, error) {
	a, err := f.Get(id)
	if err != nil {
		return nil, err
	}
	chainCfg, ok := f.Config.GetChain(id)
	if !ok {
		return nil, fmt.Errorf("%s: no client configured", id)
	}
	apiKey := ""
	if chainCfg.Client.Auth != "" {
		apiKey, err = chainCfg.Client.Auth.Load()
		if err != nil {
			return nil, fmt.Errorf("%s: could not load rpc credential: %w", id, err)
		}
	}
	return substrate.NewClient(a.Chain(), substrate.Options{
		URL:       chainCfg.Client.URL,
		RateLimit: chainCfg.Client.RateLimit,
		ApiKey:    apiKey,
		Metrics:   f.metrics,
	})
}

// Connect dials the chain and initializes its adapter.
func (f *Factory) Connect(ctx context.Context, id xb.ChainID) (*adapter.ChainAdapter, error) {
	conn, err := f.NewConnection(id)
	if err != nil {
		return nil, err
	}
	a, err := f.Get(id)
	if err != nil {
		return nil, err
	}
	if err := a.Init(ctx, conn); err != nil {
		return nil, err
	}
	return a, nil
}
