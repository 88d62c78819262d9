package xcm

import (
	"fmt"
	"math/big"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client/errors"
)

// Request is a fully resolved transfer. Token and FeeToken come from the source chain's catalog.
type Request struct {
	Source      *xb.Chain
	Destination *xb.Chain
	Token       *xb.Token
	Amount      xb.AmountBlockchain
	// 32 byte account id, or 20 byte key for EVM destinations
	Beneficiary []byte
	Route       xb.RouteEntry
	// Token paying the relay fee; nil when it is the transferred token
	FeeToken *xb.Token
}

// MultiLeg reports whether the relay fee must travel as a second asset.
func (r *Request) MultiLeg() bool {
	return !r.Route.FeeInSameToken()
}

func (r *Request) Version() xb.XcmVersion {
	return r.Destination.XcmVersion
}

func (r *Request) amount() *big.Int {
	return r.Amount.Int()
}

func (r *Request) feeAmount() *big.Int {
	return r.Route.Fee.Amount.Int()
}

func (r *Request) weight() Weight {
	return Weight{Version: r.Version(), Limit: r.Route.WeightLimit}
}

func (r *Request) beneficiaryJunction() Junction {
	if r.Destination.Topology == xb.TopologyEVM {
		return NewAccountKey20(r.Beneficiary)
	}
	return NewAccountId32(r.Beneficiary)
}

func (r *Request) destinationParaID() (uint32, error) {
	if r.Destination.ParaID == nil {
		return 0, fmt.Errorf("destination %s has no parachain index", r.Destination.ID)
	}
	return *r.Destination.ParaID, nil
}

// Shapes builds the messages of one source pallet family, one method per destination topology.
type Shapes interface {
	Name() string
	ToAssetHub(req *Request) (*Message, error)
	ToEVM(req *Request) (*Message, error)
	ToRelay(req *Request) (*Message, error)
	ToSibling(req *Request) (*Message, error)
}

// Build picks the message shape for the destination. Topologies are matched in a fixed
// priority: asset hub, EVM, relay, then sibling.
func Build(shapes Shapes, req *Request) (*Message, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	switch req.Destination.Topology {
	case xb.TopologyAssetHub:
		return shapes.ToAssetHub(req)
	case xb.TopologyEVM:
		if len(req.Beneficiary) != 20 {
			return nil, errors.InvalidAddressf("%s expects a 20 byte account key, got %d bytes", req.Destination.ID, len(req.Beneficiary))
		}
		return shapes.ToEVM(req)
	case xb.TopologyRelay:
		if !req.Destination.IsNativeToken(req.Token.Symbol) {
			return nil, errors.TokenNotFoundf("%s cannot be sent to relay chain %s", req.Token.Symbol, req.Destination.ID)
		}
		return shapes.ToRelay(req)
	case xb.TopologySibling:
		return shapes.ToSibling(req)
	}
	return nil, fmt.Errorf("unsupported destination topology %q", req.Destination.Topology)
}

func validate(req *Request) error {
	if req.Source == nil || req.Destination == nil {
		return fmt.Errorf("source and destination chains are required")
	}
	if req.Token == nil {
		return errors.TokenNotFoundf("no token to transfer")
	}
	if err := req.Destination.Topology.Validate(); err != nil {
		return err
	}
	if err := req.Destination.XcmVersion.Validate(); err != nil {
		return err
	}
	if req.Amount.Sign() < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if req.Destination.Topology != xb.TopologyEVM && len(req.Beneficiary) != 32 {
		return errors.InvalidAddressf("%s expects a 32 byte account id, got %d bytes", req.Destination.ID, len(req.Beneficiary))
	}
	if req.MultiLeg() && req.FeeToken == nil {
		return errors.TokenNotFoundf("fee token %s is not available on %s", req.Route.Fee.Token, req.Source.ID)
	}
	return nil
}
