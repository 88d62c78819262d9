package client

import (
	"context"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/chain/substrate/client/api"
	"github.com/cordialsys/xcmbridge/metrics"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var polkadot = &xb.Chain{ID: "polkadot", Topology: xb.TopologyRelay, NativeToken: "DOT", XcmVersion: xb.V3, Family: xb.FamilyRelay}

func TestNewClient(t *testing.T) {
	require := require.New(t)

	_, err := NewClient(polkadot, Options{})
	require.ErrorContains(err, "rpc url is not set")

	_, err = NewClient(polkadot, Options{URL: "https://rpc.polkadot.io"})
	require.ErrorContains(err, "websocket")

	cli, err := NewClient(polkadot, Options{URL: "wss://rpc.polkadot.io", Metrics: metrics.New(nil)})
	require.NoError(err)
	require.Equal("wss://rpc.polkadot.io", cli.url)

	cli, err = NewClient(polkadot, Options{URL: "wss://polkadot.api.example.io/ws?region=eu", ApiKey: "secret", Metrics: metrics.New(nil)})
	require.NoError(err)
	require.Equal("wss://polkadot.api.example.io/ws?apikey=secret&region=eu", cli.url)
}

func TestReadyRetriesFailedDial(t *testing.T) {
	require := require.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cli, err := NewClient(polkadot, Options{URL: "ws://127.0.0.1:1", Metrics: metrics.New(nil)})
	require.NoError(err)

	require.Error(cli.Ready(ctx))
	first := cli.pending
	require.Error(cli.Ready(ctx))
	require.NotSame(first, cli.pending)
}

func TestReadyHonorsContext(t *testing.T) {
	cli, err := NewClient(polkadot, Options{URL: "ws://127.0.0.1:1", Metrics: metrics.New(nil)})
	require.NoError(t, err)
	// a dial that never finishes
	cli.pending = &dial{done: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, cli.Ready(ctx), context.Canceled)
}

func TestFindCallIndex(t *testing.T) {
	meta := &Metadata{Calls: []*CallMeta{
		{Name: "XTokens.transfer", SectionIndex: 54, MethodIndex: 0},
	}}
	index, err := meta.FindCallIndex("XTokens.transfer")
	require.NoError(t, err)
	require.Equal(t, types.CallIndex{SectionIndex: 54, MethodIndex: 0}, index)

	_, err = meta.FindCallIndex("XcmPallet.limited_teleport_assets")
	require.ErrorContains(t, err, "unsupported substrate method")
}

func TestInclusionFeeTotal(t *testing.T) {
	total, err := inclusionFeeTotal(nil)
	require.NoError(t, err)
	require.True(t, total.IsZero())

	total, err = inclusionFeeTotal(&api.InclusionFee{
		BaseFee:           "0x3b9aca00",
		LenFee:            "0x0",
		AdjustedWeightFee: "100",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1_000_000_100, total.Uint64())

	_, err = inclusionFeeTotal(&api.InclusionFee{BaseFee: "ten"})
	require.ErrorContains(t, err, "invalid fee component")
}

func TestAsEthereumSigned(t *testing.T) {
	require := require.New(t)
	signer := common.HexToAddress("0x7369626cd0070000000000000000000000000000")

	call := []byte{0x6a, 0x00, 0x01, 0x02}
	body := []byte{0x84}
	body = append(body, make([]byte, multiAddressLen)...)
	body = append(body, 0x01)
	body = append(body, make([]byte, 64)...)
	body = append(body, call...)
	encoded, err := codec.Encode(types.NewBytes(body))
	require.NoError(err)

	patched, err := asEthereumSigned(encoded, signer)
	require.NoError(err)

	var decoded types.Bytes
	require.NoError(codec.Decode(patched, &decoded))
	require.Len(decoded, 1+20+ethereumSignatureLen+len(call))
	require.EqualValues(0x84, decoded[0])
	require.Equal(signer.Bytes(), []byte(decoded[1:21]))
	require.Equal(call, []byte(decoded[len(decoded)-len(call):]))

	_, err = asEthereumSigned([]byte{0x08, 0x84, 0x00}, signer)
	require.ErrorContains(err, "too short")
}
