package xcm

import (
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client/errors"
)

// ORML xTokens: the destination location carries the beneficiary.
type XTokens struct{}

var _ Shapes = XTokens{}

// index of the fee leg in transfer_multicurrencies
const multicurrencyFeeItem = 1

func (XTokens) Name() string {
	return "xtokens"
}

func (s XTokens) ToAssetHub(req *Request) (*Message, error) {
	return s.toParachain(req)
}

func (s XTokens) ToEVM(req *Request) (*Message, error) {
	return s.toParachain(req)
}

func (s XTokens) ToSibling(req *Request) (*Message, error) {
	return s.toParachain(req)
}

func (s XTokens) ToRelay(req *Request) (*Message, error) {
	dest := Location{Parents: 1, Interior: []Junction{NewAccountId32(req.Beneficiary)}}
	return s.transfer(req, dest)
}

func (s XTokens) toParachain(req *Request) (*Message, error) {
	paraID, err := req.destinationParaID()
	if err != nil {
		return nil, err
	}
	dest := Location{
		Parents:  1,
		Interior: []Junction{NewParachain(paraID), req.beneficiaryJunction()},
	}
	return s.transfer(req, dest)
}

func (s XTokens) transfer(req *Request, dest Location) (*Message, error) {
	currency, err := currencyOf(req.Source, req.Token)
	if err != nil {
		return nil, err
	}
	versionedDest := VersionedLocation{Version: req.Version(), Location: dest}
	if !req.MultiLeg() {
		return NewMessage(XTokensTransfer,
			Arg{"currency_id", currency},
			Arg{"amount", Balance{req.amount()}},
			Arg{"dest", versionedDest},
			Arg{"dest_weight_limit", req.weight()},
		), nil
	}
	feeCurrency, err := currencyOf(req.Source, req.FeeToken)
	if err != nil {
		return nil, err
	}
	return NewMessage(XTokensTransferMulticurrencies,
		Arg{"currencies", CurrencyAmounts{
			{Currency: currency, Amount: req.amount()},
			{Currency: feeCurrency, Amount: req.feeAmount()},
		}},
		Arg{"fee_item", U32(multicurrencyFeeItem)},
		Arg{"dest", versionedDest},
		Arg{"dest_weight_limit", req.weight()},
	), nil
}

func currencyOf(source *xb.Chain, token *xb.Token) (Currency, error) {
	if !token.AssetID.HasCurrency() {
		return nil, errors.TokenNotFoundf("%s has no currency id on %s", token.Symbol, source.ID)
	}
	return Currency(token.AssetID.Currency), nil
}
