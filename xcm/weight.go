package xcm

import (
	xb "github.com/cordialsys/xcmbridge"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Proof size paired with a configured ref-time ceiling on two-dimensional weights.
// Routes only configure ref time.
const DefaultProofSize = 65536

// Weight is a weight limit argument encoded for the destination's format.
type Weight struct {
	Version xb.XcmVersion
	Limit   xb.WeightLimit
}

var _ scale.Encodeable = Weight{}

func (w Weight) Encode(encoder scale.Encoder) error {
	value, limited := w.Limit.Value()
	if !limited {
		return encoder.PushByte(0)
	}
	if err := encoder.PushByte(1); err != nil {
		return err
	}
	if w.Version == xb.V3 {
		if err := encoder.Encode(types.NewUCompactFromUInt(value)); err != nil {
			return err
		}
		return encoder.Encode(types.NewUCompactFromUInt(DefaultProofSize))
	}
	return encoder.Encode(types.NewUCompactFromUInt(value))
}

func (w Weight) String() string {
	return w.Limit.String()
}
