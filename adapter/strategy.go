package adapter

import (
	"fmt"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/balance"
	"github.com/cordialsys/xcmbridge/xcm"
)

// Strategy is everything that differs between chain families on the source side.
type Strategy struct {
	// Transfer pallet of the chain
	Shapes xcm.Shapes
	// Storage layout of non-native tokens, nil when the chain only holds its native token
	Layout balance.Layout
	Policy balance.FailurePolicy
}

var strategies = map[xb.Family]Strategy{
	xb.FamilyRelay: {
		Shapes: xcm.XcmPallet{},
		Policy: balance.PropagateError,
	},
	xb.FamilyAssetHub: {
		Shapes: xcm.PolkadotXcm{},
		Layout: balance.AssetsLayout{},
		Policy: balance.PropagateError,
	},
	// Acala reports an unreadable balance as zero
	xb.FamilyAcala: {
		Shapes: xcm.XTokens{},
		Layout: balance.OrmlLayout{},
		Policy: balance.ZeroOnError,
	},
	xb.FamilyOrml: {
		Shapes: xcm.XTokens{},
		Layout: balance.OrmlLayout{},
		Policy: balance.PropagateError,
	},
	xb.FamilyEVM: {
		Shapes: xcm.XTokens{},
		Layout: balance.AssetsLayout{WideIndex: true},
		Policy: balance.PropagateError,
	},
	// assets pallet balances, sent with xtokens under the same u32 id
	xb.FamilyParallel: {
		Shapes: xcm.XTokens{},
		Layout: balance.AssetsLayout{},
		Policy: balance.PropagateError,
	},
}

func StrategyFor(family xb.Family) (Strategy, error) {
	strategy, ok := strategies[family]
	if !ok {
		return Strategy{}, fmt.Errorf("no strategy for chain family %q", family)
	}
	return strategy, nil
}
