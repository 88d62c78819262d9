package xcm

import (
	"fmt"
	"math/big"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Pallet index of the assets pallet on asset hub chains.
const AssetsPalletInstance = 50

type JunctionKind int

const (
	Parachain JunctionKind = iota
	AccountId32
	AccountKey20
	PalletInstance
	GeneralIndex
)

// Junction is one step of an interior location.
type Junction struct {
	Kind   JunctionKind
	ParaID uint32
	// 32 byte id or 20 byte key
	Account  []byte
	Instance uint8
	Index    *big.Int
}

func NewParachain(id uint32) Junction {
	return Junction{Kind: Parachain, ParaID: id}
}

func NewAccountId32(id []byte) Junction {
	return Junction{Kind: AccountId32, Account: id}
}

func NewAccountKey20(key []byte) Junction {
	return Junction{Kind: AccountKey20, Account: key}
}

func NewPalletInstance(instance uint8) Junction {
	return Junction{Kind: PalletInstance, Instance: instance}
}

func NewGeneralIndex(index *big.Int) Junction {
	return Junction{Kind: GeneralIndex, Index: index}
}

func (j Junction) String() string {
	switch j.Kind {
	case Parachain:
		return fmt.Sprintf("Parachain(%d)", j.ParaID)
	case AccountId32:
		return fmt.Sprintf("AccountId32(0x%x)", j.Account)
	case AccountKey20:
		return fmt.Sprintf("AccountKey20(0x%x)", j.Account)
	case PalletInstance:
		return fmt.Sprintf("PalletInstance(%d)", j.Instance)
	case GeneralIndex:
		return fmt.Sprintf("GeneralIndex(%s)", j.Index)
	}
	return "Unknown"
}

// variant indices of each junction per format
var junctionIndex = map[xb.XcmVersion]map[JunctionKind]byte{
	xb.V0: {Parachain: 1, AccountId32: 2, AccountKey20: 4, PalletInstance: 5, GeneralIndex: 6},
	xb.V1: {Parachain: 0, AccountId32: 1, AccountKey20: 3, PalletInstance: 4, GeneralIndex: 5},
	xb.V3: {Parachain: 0, AccountId32: 1, AccountKey20: 3, PalletInstance: 4, GeneralIndex: 5},
}

const v0ParentJunction = 0

func (j Junction) encode(encoder scale.Encoder, version xb.XcmVersion) error {
	index, ok := junctionIndex[version][j.Kind]
	if !ok {
		return fmt.Errorf("junction %s is not supported in %s", j, version)
	}
	if err := encoder.PushByte(index); err != nil {
		return err
	}
	switch j.Kind {
	case Parachain:
		return encoder.Encode(types.NewUCompactFromUInt(uint64(j.ParaID)))
	case AccountId32, AccountKey20:
		width := 32
		if j.Kind == AccountKey20 {
			width = 20
		}
		if len(j.Account) != width {
			return fmt.Errorf("%s requires %d bytes, got %d", j, width, len(j.Account))
		}
		if err := encodeNetwork(encoder, version); err != nil {
			return err
		}
		return encoder.Write(j.Account)
	case PalletInstance:
		return encoder.PushByte(j.Instance)
	case GeneralIndex:
		return encoder.Encode(types.NewUCompact(j.Index))
	}
	return fmt.Errorf("unknown junction kind %d", j.Kind)
}

// The network is never pinned: Any in the legacy formats, None in V3.
func encodeNetwork(encoder scale.Encoder, version xb.XcmVersion) error {
	return encoder.PushByte(0)
}

// Location is a relative path to a chain, account or asset.
type Location struct {
	Parents  uint8
	Interior []Junction
}

func Here(parents uint8) Location {
	return Location{Parents: parents}
}

func (l Location) IsHere() bool {
	return len(l.Interior) == 0
}

// HasParachain reports whether any interior junction addresses a parachain.
func (l Location) HasParachain() bool {
	for _, j := range l.Interior {
		if j.Kind == Parachain {
			return true
		}
	}
	return false
}

func (l Location) String() string {
	if l.IsHere() {
		return fmt.Sprintf("{parents:%d,Here}", l.Parents)
	}
	parts := make([]string, len(l.Interior))
	for i, j := range l.Interior {
		parts[i] = j.String()
	}
	return fmt.Sprintf("{parents:%d,X%d(%s)}", l.Parents, len(l.Interior), strings.Join(parts, ","))
}

const maxJunctions = 8

func (l Location) encode(encoder scale.Encoder, version xb.XcmVersion) error {
	if version == xb.V0 {
		// legacy locations have no parents field, each parent is a junction
		total := int(l.Parents) + len(l.Interior)
		if total > maxJunctions {
			return fmt.Errorf("location %s is too long", l)
		}
		if err := encoder.PushByte(byte(total)); err != nil {
			return err
		}
		for i := 0; i < int(l.Parents); i++ {
			if err := encoder.PushByte(v0ParentJunction); err != nil {
				return err
			}
		}
	} else {
		if len(l.Interior) > maxJunctions {
			return fmt.Errorf("location %s is too long", l)
		}
		if err := encoder.PushByte(l.Parents); err != nil {
			return err
		}
		if err := encoder.PushByte(byte(len(l.Interior))); err != nil {
			return err
		}
	}
	for _, j := range l.Interior {
		if err := j.encode(encoder, version); err != nil {
			return err
		}
	}
	return nil
}

// VersionedLocation wraps a location in its version tag.
type VersionedLocation struct {
	Version  xb.XcmVersion
	Location Location
}

var _ scale.Encodeable = VersionedLocation{}

func (v VersionedLocation) Encode(encoder scale.Encoder) error {
	if err := pushVersion(encoder, v.Version); err != nil {
		return err
	}
	return v.Location.encode(encoder, v.Version)
}

func (v VersionedLocation) String() string {
	return strings.ToUpper(string(v.Version)) + v.Location.String()
}

func pushVersion(encoder scale.Encoder, version xb.XcmVersion) error {
	switch version {
	case xb.V0:
		return encoder.PushByte(0)
	case xb.V1:
		return encoder.PushByte(1)
	case xb.V3:
		return encoder.PushByte(3)
	}
	return fmt.Errorf("unsupported xcm version %q", version)
}
