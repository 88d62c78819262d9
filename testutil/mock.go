package testutil

import (
	"context"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/cordialsys/xcmbridge/xcm"
	"github.com/stretchr/testify/mock"
)

// MockConnection returns a new mock for Connection
type MockConnection struct {
	mock.Mock
}

var _ client.Connection = &MockConnection{}

// Ready waits for the chain, mocked
func (m *MockConnection) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Subscribe opens a storage subscription, mocked
func (m *MockConnection) Subscribe(ctx context.Context, query client.StorageQuery) (*stream.Stream[client.RawRecord], error) {
	args := m.Called(ctx, query)
	s, _ := args.Get(0).(*stream.Stream[client.RawRecord])
	return s, args.Error(1)
}

// QueryFee estimates a fee, mocked
func (m *MockConnection) QueryFee(ctx context.Context, msg *xcm.Message, signer xb.Address) (xb.AmountBlockchain, error) {
	args := m.Called(ctx, msg, signer)
	return args.Get(0).(xb.AmountBlockchain), args.Error(1)
}
