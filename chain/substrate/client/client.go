package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/chain/substrate/client/api"
	xbclient "github.com/cordialsys/xcmbridge/client"
	"github.com/cordialsys/xcmbridge/metrics"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/cordialsys/xcmbridge/xcm"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Options of a substrate connection
type Options struct {
	// Websocket endpoint, e.g. wss://rpc.polkadot.io
	URL string
	// Requests per second, unlimited when zero
	RateLimit float64
	// Optional provider key, sent as the apikey query parameter
	ApiKey  string
	Metrics *metrics.Metrics
}

// Client is a websocket session with a substrate chain.
type Client struct {
	chain   *xb.Chain
	url     string
	limiter *rate.Limiter
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending *dial
}

type dial struct {
	done    chan struct{}
	session *session
	err     error
}

type session struct {
	api     *gsrpc.SubstrateAPI
	meta    *types.Metadata
	signing *signingContext
}

var _ xbclient.Connection = &Client{}

// NewClient does not connect, the first Ready call does.
func NewClient(chain *xb.Chain, opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("%s: rpc url is not set", chain.ID)
	}
	endpoint, err := withApiKey(opts.URL, opts.ApiKey)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid rpc url: %w", chain.ID, err)
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Default()
	}
	return &Client{
		chain:   chain,
		url:     endpoint,
		limiter: rate.NewLimiter(limit, 1),
		metrics: opts.Metrics,
	}, nil
}

func withApiKey(rawUrl string, apiKey string) (string, error) {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return "", fmt.Errorf("subscriptions require a websocket url, got %q", parsed.Scheme)
	}
	if apiKey != "" {
		query := parsed.Query()
		query.Set("apikey", apiKey)
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

// Ready connects and loads the runtime metadata. A failed attempt is retried by the next call.
func (client *Client) Ready(ctx context.Context) error {
	d := client.dial()
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (client *Client) dial() *dial {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.pending != nil {
		select {
		case <-client.pending.done:
			if client.pending.err == nil {
				return client.pending
			}
		default:
			return client.pending
		}
	}
	d := &dial{done: make(chan struct{})}
	client.pending = d
	go func() {
		defer close(d.done)
		d.session, d.err = client.connect()
		if d.err != nil {
			logrus.WithFields(logrus.Fields{
				"chain": client.chain.ID,
				"error": d.err,
			}).Warn("could not connect")
		}
	}()
	return d
}

func (client *Client) connect() (*session, error) {
	log := logrus.WithField("chain", client.chain.ID)
	log.Debug("connecting")
	substrateApi, err := gsrpc.NewSubstrateAPI(client.url)
	if err != nil {
		return nil, err
	}
	rpc := substrateApi.RPC
	meta, err := rpc.State.GetMetadataLatest()
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	trimmed, err := TrimMeta(meta, xcm.UsedCalls)
	if err != nil {
		return nil, err
	}
	genesis, err := rpc.Chain.GetBlockHash(0)
	if err != nil {
		return nil, fmt.Errorf("genesis hash: %w", err)
	}
	runtime, err := rpc.State.GetRuntimeVersionLatest()
	if err != nil {
		return nil, fmt.Errorf("runtime version: %w", err)
	}
	log.WithFields(logrus.Fields{
		"spec_version": runtime.SpecVersion,
		"calls":        len(trimmed.Calls),
	}).Info("connected")
	return &session{
		api:  substrateApi,
		meta: meta,
		signing: &signingContext{
			meta:    &trimmed,
			genesis: genesis,
			runtime: *runtime,
		},
	}, nil
}

func (client *Client) session(ctx context.Context) (*session, error) {
	if err := client.Ready(ctx); err != nil {
		return nil, err
	}
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed waiting on limiter: %w", err)
	}
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.pending.session, nil
}

// Metadata is the trimmed call metadata of the connected runtime.
func (client *Client) Metadata(ctx context.Context) (*Metadata, error) {
	s, err := client.session(ctx)
	if err != nil {
		return nil, err
	}
	return s.signing.meta, nil
}

func (client *Client) Subscribe(ctx context.Context, query xbclient.StorageQuery) (*stream.Stream[xbclient.RawRecord], error) {
	s, err := client.session(ctx)
	if err != nil {
		return nil, err
	}
	key, err := types.CreateStorageKey(s.meta, query.Pallet, query.Item, query.Keys...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", query, err)
	}
	sub, err := s.api.RPC.State.SubscribeStorageRaw([]types.StorageKey{key})
	if err != nil {
		return nil, fmt.Errorf("%s: subscribe: %w", query, AsRpcErrorMaybe(err))
	}
	logrus.WithFields(logrus.Fields{
		"chain": client.chain.ID,
		"query": query.String(),
		"key":   key.Hex(),
	}).Debug("subscribed to storage")

	return stream.New(ctx, func(ctx context.Context, emit stream.Emit[xbclient.RawRecord]) error {
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-sub.Err():
				if !ok || err == nil {
					return fmt.Errorf("%s: subscription closed", query)
				}
				return AsRpcErrorMaybe(err)
			case set := <-sub.Chan():
				for _, change := range set.Changes {
					if !bytes.Equal(change.StorageKey, key) {
						continue
					}
					record := xbclient.RawRecord{Exists: change.HasStorageData}
					if change.HasStorageData {
						record.Data = change.StorageData
					}
					if !emit(record) {
						return nil
					}
				}
			}
		}
	}), nil
}

// QueryFee asks the runtime for the inclusion fee of msg sent by signer.
func (client *Client) QueryFee(ctx context.Context, msg *xcm.Message, signer xb.Address) (fee xb.AmountBlockchain, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		client.metrics.FeeQueries.WithLabelValues(string(client.chain.ID), status).Observe(time.Since(start).Seconds())
	}()

	s, err := client.session(ctx)
	if err != nil {
		return xb.AmountBlockchain{}, err
	}
	call, err := msg.Call(s.signing.meta)
	if err != nil {
		return xb.AmountBlockchain{}, err
	}
	encoded, err := encodeForFeeQuery(s.signing, call, signer)
	if err != nil {
		return xb.AmountBlockchain{}, err
	}

	var resp api.FeeDetailsResponse
	err = s.api.Client.Call(&resp, "payment_queryFeeDetails", codec.HexEncodeToString(encoded))
	if err != nil {
		return xb.AmountBlockchain{}, AsRpcErrorMaybe(err)
	}
	return inclusionFeeTotal(resp.InclusionFee)
}

type RpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// The rpc client omits the .data in its err.Error() method
func AsRpcErrorMaybe(inputError error) error {
	bz, err := json.Marshal(inputError)
	if err != nil {
		return inputError
	}
	var outputError RpcError
	err = json.Unmarshal(bz, &outputError)
	if err != nil {
		return inputError
	}
	if outputError.Code != 0 && len(outputError.Message) > 0 {
		if outputError.Data != nil {
			return fmt.Errorf("%s: %v (%d)", outputError.Message, outputError.Data, outputError.Code)
		}
		return fmt.Errorf("%s (%d)", outputError.Message, outputError.Code)
	}
	if strings.TrimSpace(inputError.Error()) == "" {
		return fmt.Errorf("unknown rpc error")
	}
	return inputError
}
