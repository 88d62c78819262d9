package fee

import (
	"context"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/cordialsys/xcmbridge/xcm"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SafetyMargin covers fee movement between estimation and submission.
var SafetyMargin = decimal.RequireFromString("1.2")

// Recipient of fee estimation transfers to EVM chains.
const ZeroEvmAddress = xb.Address("0x0000000000000000000000000000000000000000")

// MaxTransferable is available - fee * SafetyMargin - ed. The result may be zero or
// negative, meaning nothing can be sent.
func MaxTransferable(available, fee, ed xb.AmountHumanReadable) xb.AmountHumanReadable {
	return available.Sub(fee.Mul(SafetyMargin)).Sub(ed)
}

// MinInput is the smallest amount that arrives at the destination: its existential deposit,
// plus the relay fee when that fee is deducted from the transferred token.
func MinInput(destinationED xb.AmountHumanReadable, relayFee xb.AmountHumanReadable, feeInSameToken bool) xb.AmountHumanReadable {
	if feeInSameToken {
		return destinationED.Add(relayFee)
	}
	return destinationED
}

type TransferBuilder interface {
	BuildTransfer(params xb.TransferParams) (*xcm.Message, error)
}

// Estimator asks the chain what a transfer of a given shape costs.
type Estimator struct {
	Chain   *xb.Chain
	Conn    client.Connection
	Builder TransferBuilder
}

func NewEstimator(chain *xb.Chain, conn client.Connection, builder TransferBuilder) *Estimator {
	return &Estimator{Chain: chain, Conn: conn, Builder: builder}
}

// EstimateDynamicFee emits the fee of a zero amount transfer once. Tokens other than
// the chain's native token do not pay the network fee and always report zero.
func (e *Estimator) EstimateDynamicFee(ctx context.Context, token string, to *xb.Chain, signer xb.Address) (*stream.Stream[xb.AmountBlockchain], error) {
	if !e.Chain.IsNativeToken(token) {
		return stream.Just(ctx, xb.NewAmountBlockchainFromUint64(0)), nil
	}
	recipient := signer
	if to.Topology == xb.TopologyEVM {
		recipient = ZeroEvmAddress
	}
	msg, err := e.Builder.BuildTransfer(xb.TransferParams{
		To:      to.ID,
		Token:   token,
		Amount:  xb.ZeroHuman(),
		Address: string(recipient),
		Signer:  string(signer),
	})
	if err != nil {
		return nil, err
	}
	return stream.New(ctx, func(ctx context.Context, emit stream.Emit[xb.AmountBlockchain]) error {
		fee, err := e.Conn.QueryFee(ctx, msg, signer)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"chain": e.Chain.ID,
			"to":    to.ID,
			"call":  msg.Name(),
			"fee":   fee.String(),
		}).Debug("estimated transfer fee")
		emit(fee)
		return nil
	}), nil
}
