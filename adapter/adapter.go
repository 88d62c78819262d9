package adapter

import (
	"context"
	"fmt"
	"sync"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/balance"
	"github.com/cordialsys/xcmbridge/chain/substrate/address"
	"github.com/cordialsys/xcmbridge/client"
	"github.com/cordialsys/xcmbridge/client/errors"
	"github.com/cordialsys/xcmbridge/fee"
	"github.com/cordialsys/xcmbridge/metrics"
	"github.com/cordialsys/xcmbridge/routes"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/cordialsys/xcmbridge/xcm"
	"github.com/sirupsen/logrus"
)

// Chains resolves the descriptors of destination chains.
type Chains interface {
	Chain(id xb.ChainID) (*xb.Chain, bool)
}

// ChainList is a Chains backed by a slice.
type ChainList []*xb.Chain

func (list ChainList) Chain(id xb.ChainID) (*xb.Chain, bool) {
	for _, chain := range list {
		if chain.ID.Equal(id) {
			return chain, true
		}
	}
	return nil, false
}

type Config struct {
	Chain  *xb.Chain
	Tokens *xb.TokenCatalog
	Routes *routes.Registry
	// Defaults to the strategy of the chain's family
	Strategy *Strategy
	Chains   Chains
	// Defaults to the substrate codec
	Codec   xb.AddressCodec
	Metrics *metrics.Metrics
}

// ChainAdapter answers balance, fee and transfer questions for one source chain.
// It is unusable until Init has observed a ready connection.
type ChainAdapter struct {
	cfg      Config
	strategy Strategy

	mu        sync.RWMutex
	conn      client.Connection
	tracker   *balance.StorageTracker
	estimator *fee.Estimator
}

func New(cfg Config) (*ChainAdapter, error) {
	if cfg.Chain == nil {
		return nil, fmt.Errorf("adapter requires a chain")
	}
	if err := cfg.Chain.Validate(); err != nil {
		return nil, err
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("%s: adapter requires a token catalog", cfg.Chain.ID)
	}
	if !cfg.Tokens.IsNative(cfg.Chain.NativeToken) {
		return nil, fmt.Errorf("%s: native token %s is not in the token catalog", cfg.Chain.ID, cfg.Chain.NativeToken)
	}
	if cfg.Routes == nil {
		registry, err := routes.New(cfg.Chain.ID, nil)
		if err != nil {
			return nil, err
		}
		cfg.Routes = registry
	}
	if !cfg.Routes.From().Equal(cfg.Chain.ID) {
		return nil, fmt.Errorf("%s: routes belong to %s", cfg.Chain.ID, cfg.Routes.From())
	}
	if cfg.Chains == nil {
		cfg.Chains = ChainList{cfg.Chain}
	}
	if cfg.Codec == nil {
		cfg.Codec = address.NewCodec()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Default()
	}
	var strategy Strategy
	if cfg.Strategy != nil {
		strategy = *cfg.Strategy
	} else {
		var err error
		strategy, err = StrategyFor(cfg.Chain.Family)
		if err != nil {
			return nil, err
		}
	}
	if strategy.Shapes == nil {
		return nil, fmt.Errorf("%s: strategy has no transfer shapes", cfg.Chain.ID)
	}
	return &ChainAdapter{cfg: cfg, strategy: strategy}, nil
}

// Init waits for the connection to be ready and binds the adapter to it.
func (a *ChainAdapter) Init(ctx context.Context, conn client.Connection) error {
	log := logrus.WithField("chain", a.cfg.Chain.ID)
	log.Debug("waiting for connection")
	if err := conn.Ready(ctx); err != nil {
		return fmt.Errorf("%s: connection not ready: %w", a.cfg.Chain.ID, err)
	}

	tracker := balance.NewTracker(balance.Config{
		Chain:   a.cfg.Chain,
		Tokens:  a.cfg.Tokens,
		Codec:   a.cfg.Codec,
		Layout:  a.strategy.Layout,
		Policy:  a.strategy.Policy,
		Metrics: a.cfg.Metrics,
	}, conn)

	a.mu.Lock()
	a.conn = conn
	a.tracker = tracker
	a.estimator = fee.NewEstimator(a.cfg.Chain, conn, a)
	a.mu.Unlock()

	log.WithFields(logrus.Fields{
		"shapes": a.strategy.Shapes.Name(),
		"policy": a.strategy.Policy.String(),
		"routes": a.cfg.Routes.Len(),
	}).Info("adapter ready")
	return nil
}

func (a *ChainAdapter) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn != nil
}

func (a *ChainAdapter) bound() (*balance.StorageTracker, *fee.Estimator, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.conn == nil {
		return nil, nil, errors.AdapterNotReadyf("adapter for %s is not initialized", a.cfg.Chain.ID)
	}
	return a.tracker, a.estimator, nil
}

func (a *ChainAdapter) Chain() *xb.Chain {
	return a.cfg.Chain
}

func (a *ChainAdapter) Tokens() *xb.TokenCatalog {
	return a.cfg.Tokens
}

func (a *ChainAdapter) Routes() *routes.Registry {
	return a.cfg.Routes
}

func (a *ChainAdapter) Strategy() Strategy {
	return a.strategy
}

func (a *ChainAdapter) GetToken(symbol string) (*xb.Token, error) {
	token, ok := a.cfg.Tokens.Get(symbol)
	if !ok {
		return nil, errors.TokenNotFoundf("%s is not a token of %s", symbol, a.cfg.Chain.ID)
	}
	return token, nil
}

func (a *ChainAdapter) GetRelayFee(to xb.ChainID, token string) (xb.RelayFee, error) {
	route, err := a.cfg.Routes.Lookup(to, token)
	if err != nil {
		return xb.RelayFee{}, err
	}
	return route.Fee, nil
}

func (a *ChainAdapter) GetWeightLimit(to xb.ChainID, token string) (xb.WeightLimit, error) {
	route, err := a.cfg.Routes.Lookup(to, token)
	if err != nil {
		return xb.WeightLimit{}, err
	}
	return route.WeightLimit, nil
}

func (a *ChainAdapter) destination(id xb.ChainID) (*xb.Chain, error) {
	chain, ok := a.cfg.Chains.Chain(id)
	if !ok {
		return nil, errors.RouteNotFoundf("unknown destination chain %s", id)
	}
	return chain, nil
}

func (a *ChainAdapter) SubscribeBalance(ctx context.Context, token string, addr xb.Address) (*balance.Subscription, error) {
	tracker, _, err := a.bound()
	if err != nil {
		return nil, err
	}
	return tracker.SubscribeBalance(ctx, token, addr)
}

// SubscribeMaxTransferable emits the largest amount of token addr can send to the destination,
// recomputed whenever its balance or the network fee changes.
func (a *ChainAdapter) SubscribeMaxTransferable(ctx context.Context, symbol string, addr xb.Address, to xb.ChainID) (*stream.Stream[xb.AmountHumanReadable], error) {
	tracker, estimator, err := a.bound()
	if err != nil {
		return nil, err
	}
	token, err := a.GetToken(symbol)
	if err != nil {
		return nil, err
	}
	if _, err := a.cfg.Routes.Lookup(to, symbol); err != nil {
		return nil, err
	}
	destination, err := a.destination(to)
	if err != nil {
		return nil, err
	}

	fees, err := estimator.EstimateDynamicFee(ctx, token.Symbol, destination, addr)
	if err != nil {
		return nil, err
	}
	// a zero balance would turn a read failure into a negative max, so errors always end the stream
	balances, err := tracker.WithPolicy(balance.PropagateError).SubscribeBalance(ctx, token.Symbol, addr)
	if err != nil {
		fees.Close()
		return nil, err
	}

	ed := token.EDHuman()
	joined := stream.Join(ctx, fees, balances.Stream)
	return stream.Map(ctx, joined, func(pair stream.Pair[xb.AmountBlockchain, xb.BalanceSnapshot]) (xb.AmountHumanReadable, error) {
		return fee.MaxTransferable(pair.Right.Available, pair.Left.ToHuman(token.Decimals), ed), nil
	}), nil
}

// BuildTransfer resolves the transfer against the catalog and route table and encodes its call.
// Nothing is submitted.
func (a *ChainAdapter) BuildTransfer(params xb.TransferParams) (*xcm.Message, error) {
	if _, _, err := a.bound(); err != nil {
		return nil, err
	}
	token, err := a.GetToken(params.Token)
	if err != nil {
		return nil, err
	}
	route, err := a.cfg.Routes.Lookup(params.To, token.Symbol)
	if err != nil {
		return nil, err
	}
	destination, err := a.destination(params.To)
	if err != nil {
		return nil, err
	}

	var beneficiary []byte
	if destination.Topology == xb.TopologyEVM {
		beneficiary, err = a.cfg.Codec.AccountKey20(xb.Address(params.Address))
	} else {
		beneficiary, err = a.cfg.Codec.AccountID32(xb.Address(params.Address))
	}
	if err != nil {
		return nil, err
	}

	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", params.Amount)
	}
	if !params.Amount.FitsPrecision(token.Decimals) {
		return nil, fmt.Errorf("amount %s exceeds the %d decimals of %s", params.Amount, token.Decimals, token.Symbol)
	}

	req := &xcm.Request{
		Source:      a.cfg.Chain,
		Destination: destination,
		Token:       token,
		Amount:      params.Amount.ToBlockchain(token.Decimals),
		Beneficiary: beneficiary,
		Route:       route,
	}
	if req.MultiLeg() {
		if feeToken, ok := a.cfg.Tokens.Get(route.Fee.Token); ok {
			req.FeeToken = feeToken
		}
	}
	msg, err := xcm.Build(a.strategy.Shapes, req)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"chain":  a.cfg.Chain.ID,
		"to":     destination.ID,
		"token":  token.Symbol,
		"amount": params.Amount.String(),
		"call":   msg.Name(),
	}).Debug("built transfer")
	return msg, nil
}

// EstimateFee is the network fee of a zero amount transfer, reported once.
func (a *ChainAdapter) EstimateFee(ctx context.Context, symbol string, to xb.ChainID, signer xb.Address) (*stream.Stream[xb.AmountBlockchain], error) {
	_, estimator, err := a.bound()
	if err != nil {
		return nil, err
	}
	token, err := a.GetToken(symbol)
	if err != nil {
		return nil, err
	}
	destination, err := a.destination(to)
	if err != nil {
		return nil, err
	}
	return estimator.EstimateDynamicFee(ctx, token.Symbol, destination, signer)
}
