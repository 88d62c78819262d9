package client

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic/extensions"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/chain/substrate/address"
	"github.com/cordialsys/xcmbridge/chain/substrate/client/api"
	"github.com/ethereum/go-ethereum/common"
)

// Signer and signature layout of an account id 32 signer
const (
	multiAddressLen   = 1 + 32
	multiSignatureLen = 1 + 64
	// frontier chains sign with an ecdsa signature and no variant byte
	ethereumSignatureLen = 65
)

// Chain state a signed extrinsic commits to
type signingContext struct {
	meta    *Metadata
	genesis types.Hash
	runtime types.RuntimeVersion
}

// encodeForFeeQuery encodes call as an extrinsic from signer carrying an empty signature.
// Fee queries do not verify the signature so nothing is signed.
func encodeForFeeQuery(sc *signingContext, call types.Call, signer xb.Address) ([]byte, error) {
	evm := address.IsEvmAddress(signer)
	var sender types.MultiAddress
	if evm {
		sender = types.MultiAddress{IsID: true}
	} else {
		var err error
		sender, err = address.DecodeMulti(signer)
		if err != nil {
			return nil, err
		}
	}

	ext := extrinsic.NewDynamicExtrinsic(&call)
	if ext.Type() != types.ExtrinsicVersion4 {
		return nil, fmt.Errorf("unsupported extrinsic version: %v", ext.Version)
	}
	encodedMethod, err := codec.Encode(ext.Method)
	if err != nil {
		return nil, fmt.Errorf("encode method: %w", err)
	}
	fieldValues := extrinsic.SignedFieldValues{}
	opts := []extrinsic.SigningOption{
		extrinsic.WithEra(types.ExtrinsicEra{IsImmortalEra: true}, sc.genesis),
		extrinsic.WithNonce(types.NewUCompactFromUInt(0)),
		extrinsic.WithTip(types.NewUCompactFromUInt(0)),
		extrinsic.WithSpecVersion(sc.runtime.SpecVersion),
		extrinsic.WithTransactionVersion(sc.runtime.TransactionVersion),
		extrinsic.WithGenesisHash(sc.genesis),
		extrinsic.WithMetadataMode(extensions.CheckMetadataModeDisabled, extensions.CheckMetadataHash{Hash: types.NewEmptyOption[types.H256]()}),
	}
	for _, opt := range opts {
		opt(fieldValues)
	}
	payload := createPayload(sc.meta, encodedMethod)
	if err := payload.MutateSignedFields(fieldValues); err != nil {
		return nil, fmt.Errorf("mutate signed fields: %w", err)
	}

	ext.Signature = &extrinsic.Signature{
		Signer:       sender,
		Signature:    types.MultiSignature{IsSr25519: true},
		SignedFields: payload.SignedFields,
	}
	ext.Version |= types.ExtrinsicBitSigned
	encoded, err := codec.Encode(ext)
	if err != nil {
		return nil, err
	}
	if !evm {
		return encoded, nil
	}
	return asEthereumSigned(encoded, common.HexToAddress(string(signer)))
}

// asEthereumSigned swaps the multi address signer and sr25519 signature of an encoded
// extrinsic for the AccountId20 and 65 byte signature frontier runtimes expect.
func asEthereumSigned(encoded []byte, signer common.Address) ([]byte, error) {
	decoder := scale.NewDecoder(bytes.NewReader(encoded))
	length, err := decoder.DecodeUintCompact()
	if err != nil {
		return nil, err
	}
	body := encoded[len(encoded)-int(length.Int64()):]
	if len(body) < 1+multiAddressLen+multiSignatureLen {
		return nil, fmt.Errorf("extrinsic too short: %d bytes", len(body))
	}

	patched := make([]byte, 0, len(body))
	patched = append(patched, body[0])
	patched = append(patched, signer.Bytes()...)
	patched = append(patched, make([]byte, ethereumSignatureLen)...)
	patched = append(patched, body[1+multiAddressLen+multiSignatureLen:]...)
	return codec.Encode(types.NewBytes(patched))
}

// total of the inclusion fee components, which are hex or decimal strings
func inclusionFeeTotal(fee *api.InclusionFee) (xb.AmountBlockchain, error) {
	if fee == nil {
		return xb.NewAmountBlockchainFromUint64(0), nil
	}
	total := new(big.Int)
	for _, part := range []string{fee.BaseFee, fee.LenFee, fee.AdjustedWeightFee} {
		if part == "" {
			continue
		}
		value, ok := new(big.Int).SetString(part, 0)
		if !ok {
			return xb.AmountBlockchain{}, fmt.Errorf("invalid fee component %q", part)
		}
		total.Add(total, value)
	}
	return xb.AmountBlockchain(*total), nil
}
