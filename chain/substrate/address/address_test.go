package address_test

import (
	"encoding/hex"
	"testing"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/chain/substrate/address"
	"github.com/cordialsys/xcmbridge/client/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

const alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
const aliceHex = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

var polkadot = &xb.Chain{ID: "polkadot", Topology: xb.TopologyRelay, NativeToken: "DOT", SS58Prefix: 0}
var moonbeam = &xb.Chain{ID: "moonbeam", ParaID: xb.NewParaID(2004), Topology: xb.TopologyEVM, NativeToken: "GLMR", SS58Prefix: 1284}

func TestAccountID32(t *testing.T) {
	require := require.New(t)
	codec := address.NewCodec()

	id, err := codec.AccountID32(alice)
	require.NoError(err)
	require.Equal(aliceHex, hex.EncodeToString(id))

	bz, _ := hex.DecodeString("192c3c7e5789b461fbf1c7f614ba5eed0b22efc507cda60a5e7fda8e046bcdce")
	id, err = codec.AccountID32("1a1LcBX6hGPKg5aQ6DXZpAHCCzWjckhea4sz3P1PvL3oc4F")
	require.NoError(err)
	require.Equal(bz, id)
}

func TestEncode(t *testing.T) {
	require := require.New(t)
	codec := address.NewCodec()

	bz, _ := hex.DecodeString("192c3c7e5789b461fbf1c7f614ba5eed0b22efc507cda60a5e7fda8e046bcdce")
	addr, err := codec.Encode(polkadot, bz)
	require.NoError(err)
	require.Equal(xb.Address("1a1LcBX6hGPKg5aQ6DXZpAHCCzWjckhea4sz3P1PvL3oc4F"), addr)

	key, _ := hex.DecodeString("f24ff3a9cf04c71dbc94d0b566f7a27b94566cac")
	addr, err = codec.Encode(moonbeam, key)
	require.NoError(err)
	require.Equal(xb.Address("0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac"), addr)

	_, err = codec.Encode(polkadot, []byte{1, 2, 3})
	require.ErrorIs(err, errors.ErrInvalidAddress)
}

func TestInvalidAddress(t *testing.T) {
	codec := address.NewCodec()
	for _, addr := range []xb.Address{
		"",
		"not-an-address",
		"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ",
		"0x1234",
	} {
		_, err := codec.AccountID32(addr)
		require.ErrorIs(t, err, errors.ErrInvalidAddress, string(addr))
	}

	_, err := codec.AccountKey20(alice)
	require.ErrorIs(t, err, errors.ErrInvalidAddress)
}

func TestEvmAddressMapping(t *testing.T) {
	require := require.New(t)
	codec := address.NewCodec()
	evm := xb.Address("0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac")

	key, err := codec.AccountKey20(evm)
	require.NoError(err)
	require.Len(key, 20)

	id, err := codec.AccountID32(evm)
	require.NoError(err)
	expected := blake2b.Sum256(append([]byte("evm:"), key...))
	require.Equal(expected[:], id)

	// storage keys follow the chain's account width
	bz, err := codec.StorageKey(moonbeam, evm)
	require.NoError(err)
	require.Len(bz, 20)
	bz, err = codec.StorageKey(polkadot, evm)
	require.NoError(err)
	require.Len(bz, 32)
	_, err = codec.StorageKey(moonbeam, alice)
	require.ErrorIs(err, errors.ErrInvalidAddress)
}

func TestPrefix(t *testing.T) {
	prefix, err := address.Prefix(alice)
	require.NoError(t, err)
	require.EqualValues(t, 42, prefix)
}
