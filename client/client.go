package client

import (
	"context"
	"fmt"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/cordialsys/xcmbridge/xcm"
)

// StorageQuery addresses a storage map entry, e.g. System.Account(account).
// Keys are hashed with the hasher the runtime declares for each map key.
type StorageQuery struct {
	Pallet string
	Item   string
	Keys   [][]byte
}

func (q StorageQuery) String() string {
	return fmt.Sprintf("%s.%s", q.Pallet, q.Item)
}

// RawRecord is one observed value of a storage entry. Exists is false once the entry is absent.
type RawRecord struct {
	Exists bool
	Data   []byte
}

// Connection is a live session with one chain.
type Connection interface {
	// Block until the chain is connected and its runtime metadata is loaded
	Ready(ctx context.Context) error

	// Stream the storage entry, starting with its current value
	Subscribe(ctx context.Context, query StorageQuery) (*stream.Stream[RawRecord], error)

	// Fee the chain would charge signer for submitting the message
	QueryFee(ctx context.Context, msg *xcm.Message, signer xb.Address) (xb.AmountBlockchain, error)
}
