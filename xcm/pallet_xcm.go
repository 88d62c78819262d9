package xcm

import (
	"fmt"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client/errors"
)

// XcmPallet builds relay chain transfers down to parachains.
type XcmPallet struct{}

// PolkadotXcm builds asset hub transfers, up to the relay or across to siblings.
type PolkadotXcm struct{}

var _ Shapes = XcmPallet{}
var _ Shapes = PolkadotXcm{}

func (XcmPallet) Name() string {
	return "xcm-pallet"
}

func (s XcmPallet) ToAssetHub(req *Request) (*Message, error) {
	return s.down(req, XcmPalletLimitedTeleportAssets)
}

func (s XcmPallet) ToEVM(req *Request) (*Message, error) {
	return s.down(req, XcmPalletLimitedReserveTransferAssets)
}

func (s XcmPallet) ToSibling(req *Request) (*Message, error) {
	return s.down(req, XcmPalletLimitedReserveTransferAssets)
}

func (s XcmPallet) ToRelay(req *Request) (*Message, error) {
	return nil, errors.RouteNotFoundf("%s cannot transfer to relay chain %s", req.Source.ID, req.Destination.ID)
}

func (s XcmPallet) down(req *Request, call string) (*Message, error) {
	paraID, err := req.destinationParaID()
	if err != nil {
		return nil, err
	}
	if req.Version() == xb.V0 {
		// legacy destinations only accept the unlimited reserve transfer
		call = XcmPalletReserveTransferAssets
	}
	dest := Location{Interior: []Junction{NewParachain(paraID)}}
	return palletTransfer(req, call, dest, s.assetLocation)
}

// The relay only holds its own token.
func (XcmPallet) assetLocation(req *Request, token *xb.Token) (Location, error) {
	if !req.Source.IsNativeToken(token.Symbol) {
		return Location{}, errors.TokenNotFoundf("%s is not available on relay chain %s", token.Symbol, req.Source.ID)
	}
	return Here(0), nil
}

func (PolkadotXcm) Name() string {
	return "polkadot-xcm"
}

func (s PolkadotXcm) ToRelay(req *Request) (*Message, error) {
	return palletTransfer(req, PolkadotXcmLimitedTeleportAssets, Here(1), s.assetLocation)
}

func (s PolkadotXcm) ToAssetHub(req *Request) (*Message, error) {
	return s.across(req)
}

func (s PolkadotXcm) ToEVM(req *Request) (*Message, error) {
	return s.across(req)
}

func (s PolkadotXcm) ToSibling(req *Request) (*Message, error) {
	return s.across(req)
}

func (s PolkadotXcm) across(req *Request) (*Message, error) {
	paraID, err := req.destinationParaID()
	if err != nil {
		return nil, err
	}
	dest := Location{Parents: 1, Interior: []Junction{NewParachain(paraID)}}
	return palletTransfer(req, PolkadotXcmLimitedReserveTransferAssets, dest, s.assetLocation)
}

// The native token of an asset hub is the relay's token, other assets live in the assets pallet.
func (PolkadotXcm) assetLocation(req *Request, token *xb.Token) (Location, error) {
	if req.Source.IsNativeToken(token.Symbol) {
		return Here(1), nil
	}
	if !token.AssetID.HasIndex() {
		return Location{}, errors.TokenNotFoundf("%s has no asset index on %s", token.Symbol, req.Source.ID)
	}
	return Location{Interior: []Junction{
		NewPalletInstance(AssetsPalletInstance),
		NewGeneralIndex(token.AssetID.Index.Int()),
	}}, nil
}

type assetLocator func(req *Request, token *xb.Token) (Location, error)

// palletTransfer builds the (dest, beneficiary, assets, fee_asset_item, weight_limit) call
// shared by the xcm pallets. The fee leg, if any, is appended and pays the fee.
func palletTransfer(req *Request, call string, dest Location, locate assetLocator) (*Message, error) {
	version := req.Version()
	id, err := locate(req, req.Token)
	if err != nil {
		return nil, err
	}
	assets := []Asset{{ID: id, Amount: req.amount()}}
	feeItem := 0
	if req.MultiLeg() {
		feeID, err := locate(req, req.FeeToken)
		if err != nil {
			return nil, err
		}
		assets = append(assets, Asset{ID: feeID, Amount: req.feeAmount()})
		feeItem = 1
	}
	beneficiary := Location{Interior: []Junction{req.beneficiaryJunction()}}

	args := []Arg{
		{"dest", VersionedLocation{Version: version, Location: dest}},
		{"beneficiary", VersionedLocation{Version: version, Location: beneficiary}},
		{"assets", VersionedAssets{Version: version, Assets: assets}},
		{"fee_asset_item", U32(feeItem)},
	}
	switch call {
	case XcmPalletReserveTransferAssets, PolkadotXcmReserveTransferAssets:
	case XcmPalletLimitedReserveTransferAssets, XcmPalletLimitedTeleportAssets,
		PolkadotXcmLimitedReserveTransferAssets, PolkadotXcmLimitedTeleportAssets:
		args = append(args, Arg{"weight_limit", req.weight()})
	default:
		return nil, fmt.Errorf("unknown xcm pallet call %s", call)
	}
	return NewMessage(call, args...), nil
}
