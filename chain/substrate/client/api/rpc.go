package api

import "github.com/centrifuge/go-substrate-rpc-client/v4/types"

type InclusionFee struct {
	AdjustedWeightFee string `json:"adjustedWeightFee"`
	BaseFee           string `json:"baseFee"`
	LenFee            string `json:"lenFee"`
}

type FeeDetailsResponse struct {
	InclusionFee *InclusionFee `json:"inclusionFee"`
}

// AssetAccount is the Assets.Account record of asset hub chains. Fields after the balance are skipped.
type AssetAccount struct {
	Balance types.U128
}

// TokenAccount is the ORML Tokens.Accounts record.
type TokenAccount struct {
	Free     types.U128
	Reserved types.U128
	Frozen   types.U128
}
