package balance

import (
	"context"
	"fmt"
	"sync/atomic"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client"
	"github.com/cordialsys/xcmbridge/client/errors"
	"github.com/cordialsys/xcmbridge/metrics"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/sirupsen/logrus"
)

// FailurePolicy decides what a subscription does when a storage read fails after it is live.
type FailurePolicy int

const (
	// The subscription terminates with the error
	PropagateError FailurePolicy = iota
	// One zero snapshot is emitted and the subscription stays open until cancelled
	ZeroOnError
)

func (p FailurePolicy) String() string {
	if p == ZeroOnError {
		return "zero-on-error"
	}
	return "propagate-error"
}

type State int32

const (
	Uninitialized State = iota
	Subscribed
	Updating
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Subscribed:
		return "subscribed"
	case Updating:
		return "updating"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	}
	return "uninitialized"
}

// Subscription is a live balance stream for one (token, address).
type Subscription struct {
	*stream.Stream[xb.BalanceSnapshot]
	state atomic.Int32
}

func (s *Subscription) State() State {
	return State(s.state.Load())
}

func (s *Subscription) setState(state State) {
	s.state.Store(int32(state))
}

// Tracker maps a chain's storage records into balance snapshots.
type Tracker interface {
	SubscribeBalance(ctx context.Context, token string, addr xb.Address) (*Subscription, error)
}

// Layout decodes the storage of non-native tokens.
type Layout interface {
	Name() string
	Query(account []byte, id *xb.AssetID) (client.StorageQuery, error)
	Decode(record client.RawRecord, token *xb.Token) (xb.BalanceSnapshot, error)
}

type Config struct {
	Chain   *xb.Chain
	Tokens  *xb.TokenCatalog
	Codec   xb.AddressCodec
	Layout  Layout
	Policy  FailurePolicy
	Metrics *metrics.Metrics
}

// StorageTracker reads native balances from System.Account and other tokens through its Layout.
type StorageTracker struct {
	Config
	conn client.Connection
}

var _ Tracker = &StorageTracker{}

func NewTracker(cfg Config, conn client.Connection) *StorageTracker {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Default()
	}
	return &StorageTracker{Config: cfg, conn: conn}
}

// WithPolicy returns a tracker over the same connection that handles read errors with policy.
func (t *StorageTracker) WithPolicy(policy FailurePolicy) *StorageTracker {
	cfg := t.Config
	cfg.Policy = policy
	return &StorageTracker{Config: cfg, conn: t.conn}
}

func (t *StorageTracker) SubscribeBalance(ctx context.Context, symbol string, addr xb.Address) (*Subscription, error) {
	token, ok := t.Tokens.Get(symbol)
	if !ok {
		return nil, errors.TokenNotFoundf("%s is not a token of %s", symbol, t.Chain.ID)
	}
	account, err := t.Codec.StorageKey(t.Chain, addr)
	if err != nil {
		return nil, err
	}

	var query client.StorageQuery
	var decode func(client.RawRecord, *xb.Token) (xb.BalanceSnapshot, error)
	if t.Tokens.IsNative(symbol) {
		query = NativeQuery(account)
		decode = DecodeNative
	} else {
		id, ok := t.Tokens.AssetID(symbol)
		if !ok || t.Layout == nil {
			return nil, errors.TokenNotFoundf("%s has no asset id on %s", symbol, t.Chain.ID)
		}
		query, err = t.Layout.Query(account, id)
		if err != nil {
			return nil, err
		}
		decode = t.Layout.Decode
	}

	raw, err := t.conn.Subscribe(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not subscribe to %s: %w", query, err)
	}

	log := logrus.WithFields(logrus.Fields{
		"chain":   t.Chain.ID,
		"token":   token.Symbol,
		"address": addr,
		"query":   query.String(),
		"policy":  t.Policy.String(),
	})
	log.Debug("opened balance subscription")

	chainLabel := string(t.Chain.ID)
	sub := &Subscription{}
	sub.setState(Subscribed)
	t.Metrics.ActiveSubscriptions.WithLabelValues(chainLabel).Inc()

	sub.Stream = stream.New(ctx, func(ctx context.Context, emit stream.Emit[xb.BalanceSnapshot]) error {
		defer raw.Close()
		defer t.Metrics.ActiveSubscriptions.WithLabelValues(chainLabel).Dec()

		fail := func(err error) error {
			t.Metrics.BalanceFailures.WithLabelValues(chainLabel, token.Symbol, t.Policy.String()).Inc()
			if t.Policy == ZeroOnError {
				log.WithError(err).Warn("balance read failed, reporting zero balance")
				sub.setState(Updating)
				if emit(xb.ZeroBalanceSnapshot()) {
					<-ctx.Done()
				}
				sub.setState(Closed)
				return nil
			}
			log.WithError(err).Debug("balance read failed")
			sub.setState(Failed)
			return err
		}

		for {
			select {
			case <-ctx.Done():
				sub.setState(Closed)
				log.Debug("closed balance subscription")
				return nil
			case record, ok := <-raw.Updates():
				if !ok {
					if err := raw.Err(); err != nil {
						return fail(err)
					}
					sub.setState(Closed)
					return nil
				}
				snapshot, err := decode(record, token)
				if err != nil {
					return fail(fmt.Errorf("could not decode %s: %w", query, err))
				}
				sub.setState(Updating)
				t.Metrics.BalanceUpdates.WithLabelValues(chainLabel, token.Symbol).Inc()
				if !emit(snapshot) {
					sub.setState(Closed)
					return nil
				}
			}
		}
	})
	return sub, nil
}
