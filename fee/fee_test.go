package fee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/fee"
	"github.com/cordialsys/xcmbridge/testutil"
	"github.com/cordialsys/xcmbridge/xcm"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMaxTransferableScenario(t *testing.T) {
	result := fee.MaxTransferable(testutil.Human("1000"), testutil.Human("50"), testutil.Human("10"))
	require.Equal(t, "930", result.Decimal().String())
}

func TestMaxTransferableMayBeNegative(t *testing.T) {
	result := fee.MaxTransferable(testutil.Human("1"), testutil.Human("5"), testutil.Human("0"))
	require.True(t, result.IsNegative())
	require.Equal(t, "-5", result.String())

	result = fee.MaxTransferable(testutil.Human("16"), testutil.Human("5"), testutil.Human("10"))
	require.Equal(t, "0", result.Decimal().String())
}

func TestMaxTransferableMonotonic(t *testing.T) {
	values := []string{"0", "0.0000000001", "1", "2.5", "10", "1000", "123456789.123456789"}
	for _, a := range values {
		for _, b := range values {
			lo, hi := testutil.Human(a), testutil.Human(b)
			if lo.Cmp(hi) > 0 {
				lo, hi = hi, lo
			}
			for _, other := range values {
				x, y := testutil.Human(other), testutil.Human(other)
				// non-decreasing in available
				require.True(t, fee.MaxTransferable(lo, x, y).Cmp(fee.MaxTransferable(hi, x, y)) <= 0)
				// non-increasing in fee
				require.True(t, fee.MaxTransferable(x, lo, y).Cmp(fee.MaxTransferable(x, hi, y)) >= 0)
				// non-increasing in existential deposit
				require.True(t, fee.MaxTransferable(x, y, lo).Cmp(fee.MaxTransferable(x, y, hi)) >= 0)
			}
		}
	}
}

func TestMinInput(t *testing.T) {
	require.Equal(t, "1.5", fee.MinInput(testutil.Human("1"), testutil.Human("0.5"), true).String())
	require.Equal(t, "1", fee.MinInput(testutil.Human("1"), testutil.Human("0.5"), false).String())
}

type builderFunc func(params xb.TransferParams) (*xcm.Message, error)

func (f builderFunc) BuildTransfer(params xb.TransferParams) (*xcm.Message, error) {
	return f(params)
}

var polkadot = &xb.Chain{ID: "polkadot", Topology: xb.TopologyRelay, NativeToken: "DOT", XcmVersion: xb.V3, Family: xb.FamilyRelay}
var acala = &xb.Chain{ID: "acala", ParaID: xb.NewParaID(2000), Topology: xb.TopologySibling, NativeToken: "ACA", XcmVersion: xb.V3, Family: xb.FamilyAcala}
var moonbeam = &xb.Chain{ID: "moonbeam", ParaID: xb.NewParaID(2004), Topology: xb.TopologyEVM, NativeToken: "GLMR", XcmVersion: xb.V3, Family: xb.FamilyEVM}

const signer = xb.Address("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")

func first(t *testing.T, ctx context.Context, estimator *fee.Estimator, token string, to *xb.Chain) (xb.AmountBlockchain, error) {
	t.Helper()
	s, err := estimator.EstimateDynamicFee(ctx, token, to, signer)
	if err != nil {
		return xb.AmountBlockchain{}, err
	}
	defer s.Close()
	value, ok, err := s.Next(ctx)
	if err != nil {
		return value, err
	}
	require.True(t, ok)
	return value, nil
}

func TestEstimateNativeToken(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msg := xcm.NewMessage(xcm.XcmPalletLimitedReserveTransferAssets)

	var built []xb.TransferParams
	builder := builderFunc(func(params xb.TransferParams) (*xcm.Message, error) {
		built = append(built, params)
		return msg, nil
	})
	conn := &testutil.MockConnection{}
	conn.On("QueryFee", mock.Anything, msg, signer).Return(xb.NewAmountBlockchainFromUint64(50), nil)

	estimator := fee.NewEstimator(polkadot, conn, builder)
	value, err := first(t, ctx, estimator, "DOT", acala)
	require.NoError(t, err)
	require.EqualValues(t, 50, value.Uint64())
	require.Len(t, built, 1)
	require.True(t, built[0].Amount.IsZero())
	require.Equal(t, string(signer), built[0].Address)

	// EVM destinations are estimated against the zero key
	_, err = first(t, ctx, estimator, "DOT", moonbeam)
	require.NoError(t, err)
	require.Equal(t, string(fee.ZeroEvmAddress), built[1].Address)
	conn.AssertExpectations(t)
}

func TestEstimateNonNativeIsZero(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := &testutil.MockConnection{}
	builder := builderFunc(func(params xb.TransferParams) (*xcm.Message, error) {
		t.Fatal("no transfer should be built for a non-native token")
		return nil, nil
	})
	value, err := first(t, ctx, fee.NewEstimator(acala, conn, builder), "DOT", polkadot)
	require.NoError(t, err)
	require.True(t, value.IsZero())
	conn.AssertNotCalled(t, "QueryFee", mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimateErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	builder := builderFunc(func(params xb.TransferParams) (*xcm.Message, error) {
		return nil, errors.New("no route")
	})
	_, err := fee.NewEstimator(polkadot, &testutil.MockConnection{}, builder).EstimateDynamicFee(ctx, "DOT", acala, signer)
	require.EqualError(t, err, "no route")

	msg := xcm.NewMessage(xcm.XcmPalletLimitedReserveTransferAssets)
	conn := &testutil.MockConnection{}
	conn.On("QueryFee", mock.Anything, msg, signer).Return(xb.AmountBlockchain{}, errors.New("rpc down"))
	builder = builderFunc(func(params xb.TransferParams) (*xcm.Message, error) { return msg, nil })
	_, err = first(t, ctx, fee.NewEstimator(polkadot, conn, builder), "DOT", acala)
	require.EqualError(t, err, "rpc down")
}
