package xcm

import (
	"fmt"
	"math/big"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Asset is a fungible amount of the asset found at ID.
type Asset struct {
	ID     Location
	Amount *big.Int
}

func (a Asset) String() string {
	return fmt.Sprintf("%s:%s", a.ID, a.Amount)
}

const (
	v0ConcreteFungible = 10
	concreteAssetID    = 0
	fungible           = 0
)

func (a Asset) encode(encoder scale.Encoder, version xb.XcmVersion) error {
	if version == xb.V0 {
		if err := encoder.PushByte(v0ConcreteFungible); err != nil {
			return err
		}
		if err := a.ID.encode(encoder, version); err != nil {
			return err
		}
		return encoder.Encode(types.NewUCompact(a.Amount))
	}
	if err := encoder.PushByte(concreteAssetID); err != nil {
		return err
	}
	if err := a.ID.encode(encoder, version); err != nil {
		return err
	}
	if err := encoder.PushByte(fungible); err != nil {
		return err
	}
	return encoder.Encode(types.NewUCompact(a.Amount))
}

// VersionedAssets is the list of assets moved by a single message.
type VersionedAssets struct {
	Version xb.XcmVersion
	Assets  []Asset
}

var _ scale.Encodeable = VersionedAssets{}

func (v VersionedAssets) Encode(encoder scale.Encoder) error {
	if err := pushVersion(encoder, v.Version); err != nil {
		return err
	}
	if err := encoder.EncodeUintCompact(*big.NewInt(int64(len(v.Assets)))); err != nil {
		return err
	}
	for _, asset := range v.Assets {
		if err := asset.encode(encoder, v.Version); err != nil {
			return err
		}
	}
	return nil
}

func (v VersionedAssets) String() string {
	parts := make([]string, len(v.Assets))
	for i, asset := range v.Assets {
		parts[i] = asset.String()
	}
	return strings.ToUpper(string(v.Version)) + "[" + strings.Join(parts, ",") + "]"
}

// Currency is a pre-encoded ORML currency id, written verbatim.
type Currency []byte

var _ scale.Encodeable = Currency{}

func (c Currency) Encode(encoder scale.Encoder) error {
	if len(c) == 0 {
		return fmt.Errorf("empty currency id")
	}
	return encoder.Write(c)
}

func (c Currency) String() string {
	return fmt.Sprintf("Currency(0x%x)", []byte(c))
}

// Balance is a u128 call argument.
type Balance struct {
	*big.Int
}

var _ scale.Encodeable = Balance{}

func (b Balance) Encode(encoder scale.Encoder) error {
	return encoder.Encode(types.NewU128(*b.Int))
}

// Compact is a compact encoded integer argument.
type Compact struct {
	*big.Int
}

func (c Compact) Encode(encoder scale.Encoder) error {
	return encoder.Encode(types.NewUCompact(c.Int))
}

// U32 is a plain little endian u32 argument, used for fee item indices.
type U32 uint32

func (u U32) Encode(encoder scale.Encoder) error {
	return encoder.Encode(types.NewU32(uint32(u)))
}

func (u U32) String() string {
	return fmt.Sprintf("%d", uint32(u))
}

// CurrencyAmounts is the list of legs of an ORML multi-currency transfer.
type CurrencyAmounts []CurrencyAmount

type CurrencyAmount struct {
	Currency Currency
	Amount   *big.Int
}

func (c CurrencyAmounts) Encode(encoder scale.Encoder) error {
	if err := encoder.EncodeUintCompact(*big.NewInt(int64(len(c)))); err != nil {
		return err
	}
	for _, leg := range c {
		if err := leg.Currency.Encode(encoder); err != nil {
			return err
		}
		if err := (Balance{leg.Amount}).Encode(encoder); err != nil {
			return err
		}
	}
	return nil
}

func (c CurrencyAmounts) String() string {
	parts := make([]string, len(c))
	for i, leg := range c {
		parts[i] = fmt.Sprintf("(%s,%s)", leg.Currency, leg.Amount)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
