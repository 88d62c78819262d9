package balance

import (
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/chain/substrate/client/api"
	"github.com/cordialsys/xcmbridge/client"
)

func NativeQuery(account []byte) client.StorageQuery {
	return client.StorageQuery{Pallet: "System", Item: "Account", Keys: [][]byte{account}}
}

func human(value types.U128, decimals int32) xb.AmountHumanReadable {
	if value.Int == nil {
		return xb.ZeroHuman()
	}
	return xb.AmountBlockchain(*value.Int).ToHuman(decimals)
}

func maxU128(a, b types.U128) types.U128 {
	if a.Int == nil {
		return b
	}
	if b.Int == nil || a.Cmp(b.Int) >= 0 {
		return a
	}
	return b
}

// Bit 127 of AccountData.flags marks the frozen balance layout. Older runtimes keep
// misc_frozen and fee_frozen in the last two fields instead.
var newFrozenLogic = new(big.Int).Lsh(big.NewInt(1), 127)

func hasNewFrozenLogic(flags types.U128) bool {
	return flags.Int != nil && flags.Cmp(newFrozenLogic) >= 0
}

// DecodeNative maps a System.Account record. An absent account has a zero balance.
func DecodeNative(record client.RawRecord, token *xb.Token) (xb.BalanceSnapshot, error) {
	if !record.Exists {
		return xb.ZeroBalanceSnapshot(), nil
	}
	var info types.AccountInfo
	if err := codec.Decode(record.Data, &info); err != nil {
		return xb.BalanceSnapshot{}, err
	}
	free := human(info.Data.Free, token.Decimals)
	reserved := human(info.Data.Reserved, token.Decimals)
	if hasNewFrozenLogic(info.Data.Flags) {
		// frozen overlaps the reserved balance, only the rest holds back free
		frozen := human(info.Data.MiscFrozen, token.Decimals)
		held := frozen.Sub(reserved)
		if held.IsNegative() {
			held = xb.ZeroHuman()
		}
		return xb.NewBalanceSnapshot(free, frozen, reserved, free.Sub(held)), nil
	}
	// flags holds fee_frozen here
	locked := human(maxU128(info.Data.MiscFrozen, info.Data.Flags), token.Decimals)
	return xb.NewBalanceSnapshot(free, locked, reserved, free.Sub(locked)), nil
}

// AssetsLayout reads Assets.Account(index, account). Asset hub chains key assets by u32,
// EVM parachains by u128.
type AssetsLayout struct {
	WideIndex bool
}

var _ Layout = AssetsLayout{}

func (AssetsLayout) Name() string {
	return "assets"
}

func (l AssetsLayout) Query(account []byte, id *xb.AssetID) (client.StorageQuery, error) {
	if !id.HasIndex() {
		return client.StorageQuery{}, fmt.Errorf("asset has no index")
	}
	index, err := l.encodeIndex(id.Index)
	if err != nil {
		return client.StorageQuery{}, err
	}
	return client.StorageQuery{Pallet: "Assets", Item: "Account", Keys: [][]byte{index, account}}, nil
}

func (l AssetsLayout) encodeIndex(index *xb.AmountBlockchain) ([]byte, error) {
	if l.WideIndex {
		if index.Int().BitLen() > 128 {
			return nil, fmt.Errorf("asset index %s does not fit in u128", index)
		}
		return codec.Encode(types.NewU128(*index.Int()))
	}
	if !index.Int().IsUint64() || index.Uint64() > uint64(^uint32(0)) {
		return nil, fmt.Errorf("asset index %s does not fit in u32", index)
	}
	return codec.Encode(types.NewU32(uint32(index.Uint64())))
}

func (AssetsLayout) Decode(record client.RawRecord, token *xb.Token) (xb.BalanceSnapshot, error) {
	if !record.Exists {
		return xb.ZeroBalanceSnapshot(), nil
	}
	var account api.AssetAccount
	if err := codec.Decode(record.Data, &account); err != nil {
		return xb.BalanceSnapshot{}, err
	}
	balance := human(account.Balance, token.Decimals)
	return xb.NewBalanceSnapshot(balance, xb.ZeroHuman(), xb.ZeroHuman(), balance), nil
}

// OrmlLayout reads Tokens.Accounts(account, currency) on ORML chains.
type OrmlLayout struct{}

var _ Layout = OrmlLayout{}

func (OrmlLayout) Name() string {
	return "orml"
}

func (OrmlLayout) Query(account []byte, id *xb.AssetID) (client.StorageQuery, error) {
	if !id.HasCurrency() {
		return client.StorageQuery{}, fmt.Errorf("asset has no currency id")
	}
	return client.StorageQuery{Pallet: "Tokens", Item: "Accounts", Keys: [][]byte{account, id.Currency.Bytes()}}, nil
}

func (OrmlLayout) Decode(record client.RawRecord, token *xb.Token) (xb.BalanceSnapshot, error) {
	if !record.Exists {
		return xb.ZeroBalanceSnapshot(), nil
	}
	var account api.TokenAccount
	if err := codec.Decode(record.Data, &account); err != nil {
		return xb.BalanceSnapshot{}, err
	}
	free := human(account.Free, token.Decimals)
	frozen := human(account.Frozen, token.Decimals)
	reserved := human(account.Reserved, token.Decimals)
	return xb.NewBalanceSnapshot(free, frozen, reserved, free.Sub(frozen)), nil
}
