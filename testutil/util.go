package testutil

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/chain/substrate/client/api"
	"github.com/cordialsys/xcmbridge/client"
)

func FromHex(s string) []byte {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(err)
	}
	return bz
}

func HumanToBlockchain(amount string, decimals int) xb.AmountBlockchain {
	h, err := xb.NewAmountHumanReadableFromStr(amount)
	if err != nil {
		panic(err)
	}
	return h.ToBlockchain(int32(decimals))
}

func Human(amount string) xb.AmountHumanReadable {
	h, err := xb.NewAmountHumanReadableFromStr(amount)
	if err != nil {
		panic(err)
	}
	return h
}

func u128(v uint64) types.U128 {
	return types.NewU128(*new(big.Int).SetUint64(v))
}

func mustEncode(value interface{}) []byte {
	bz, err := codec.Encode(value)
	if err != nil {
		panic(err)
	}
	return bz
}

func accountInfoRecord(free, reserved, third, fourth *big.Int) client.RawRecord {
	info := types.AccountInfo{Nonce: 1, Providers: 1}
	info.Data.Free = types.NewU128(*free)
	info.Data.Reserved = types.NewU128(*reserved)
	info.Data.MiscFrozen = types.NewU128(*third)
	info.Data.Flags = types.NewU128(*fourth)
	return client.RawRecord{Exists: true, Data: mustEncode(info)}
}

// AccountInfoRecord encodes a System.Account record of a runtime before the frozen balance
// migration, where the last two fields are misc_frozen and fee_frozen.
func AccountInfoRecord(free, reserved, miscFrozen, feeFrozen uint64) client.RawRecord {
	return accountInfoRecord(
		new(big.Int).SetUint64(free),
		new(big.Int).SetUint64(reserved),
		new(big.Int).SetUint64(miscFrozen),
		new(big.Int).SetUint64(feeFrozen),
	)
}

// FrozenAccountInfoRecord encodes a current System.Account record: {free, reserved, frozen, flags}
// with the new logic flag set.
func FrozenAccountInfoRecord(free, reserved, frozen uint64) client.RawRecord {
	flags := new(big.Int).Lsh(big.NewInt(1), 127)
	return accountInfoRecord(
		new(big.Int).SetUint64(free),
		new(big.Int).SetUint64(reserved),
		new(big.Int).SetUint64(frozen),
		flags,
	)
}

// AssetAccountRecord encodes an Assets.Account record, followed by the status and reason fields.
func AssetAccountRecord(balance uint64) client.RawRecord {
	data := mustEncode(api.AssetAccount{Balance: u128(balance)})
	return client.RawRecord{Exists: true, Data: append(data, 0x00, 0x00)}
}

// TokenAccountRecord encodes an ORML Tokens.Accounts record.
func TokenAccountRecord(free, reserved, frozen uint64) client.RawRecord {
	return client.RawRecord{Exists: true, Data: mustEncode(api.TokenAccount{
		Free:     u128(free),
		Reserved: u128(reserved),
		Frozen:   u128(frozen),
	})}
}
