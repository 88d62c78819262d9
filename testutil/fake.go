package testutil

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/cordialsys/xcmbridge/xcm"
)

// FakeConnection is an in-memory chain. Tests push storage records and failures per query.
type FakeConnection struct {
	mu        sync.Mutex
	ready     chan struct{}
	readyOnce sync.Once
	feeds     map[string]*feed

	Fee      xb.AmountBlockchain
	FeeErr   error
	Messages []*xcm.Message
}

type feed struct {
	records chan client.RawRecord
	errs    chan error
	opened  int
}

var _ client.Connection = &FakeConnection{}

func NewFakeConnection() *FakeConnection {
	return &FakeConnection{
		ready: make(chan struct{}),
		feeds: map[string]*feed{},
	}
}

// SetReady releases every caller blocked in Ready.
func (c *FakeConnection) SetReady() *FakeConnection {
	c.readyOnce.Do(func() { close(c.ready) })
	return c
}

func (c *FakeConnection) Ready(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func QueryKey(query client.StorageQuery) string {
	parts := []string{query.Pallet, query.Item}
	for _, key := range query.Keys {
		parts = append(parts, hex.EncodeToString(key))
	}
	return strings.Join(parts, "/")
}

func (c *FakeConnection) feed(query client.StorageQuery) *feed {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := QueryKey(query)
	f, ok := c.feeds[key]
	if !ok {
		f = &feed{
			records: make(chan client.RawRecord, 16),
			errs:    make(chan error, 1),
		}
		c.feeds[key] = f
	}
	return f
}

// Push queues a record for the subscription of query.
func (c *FakeConnection) Push(query client.StorageQuery, record client.RawRecord) {
	c.feed(query).records <- record
}

// Fail terminates the subscription of query with err.
func (c *FakeConnection) Fail(query client.StorageQuery, err error) {
	c.feed(query).errs <- err
}

// Opened counts the subscriptions made for query.
func (c *FakeConnection) Opened(query client.StorageQuery) int {
	f := c.feed(query)
	c.mu.Lock()
	defer c.mu.Unlock()
	return f.opened
}

func (c *FakeConnection) Subscribe(ctx context.Context, query client.StorageQuery) (*stream.Stream[client.RawRecord], error) {
	f := c.feed(query)
	c.mu.Lock()
	f.opened++
	c.mu.Unlock()
	return stream.New(ctx, func(ctx context.Context, emit stream.Emit[client.RawRecord]) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case err := <-f.errs:
				return err
			case record := <-f.records:
				if !emit(record) {
					return nil
				}
			}
		}
	}), nil
}

func (c *FakeConnection) QueryFee(ctx context.Context, msg *xcm.Message, signer xb.Address) (xb.AmountBlockchain, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = append(c.Messages, msg)
	return c.Fee, c.FeeErr
}
