package xcmbridge_test

import (
	"encoding/json"

	. "github.com/cordialsys/xcmbridge"
	"gopkg.in/yaml.v3"
)

func (s *XcmBridgeTestSuite) TestWeightLimit() {
	require := s.Require()

	limit, err := ParseWeightLimit("Unlimited")
	require.NoError(err)
	require.True(limit.IsUnlimited())
	_, ok := limit.Value()
	require.False(ok)

	limit, err = ParseWeightLimit("5000000000")
	require.NoError(err)
	value, ok := limit.Value()
	require.True(ok)
	require.EqualValues(5_000_000_000, value)
	require.Equal("5000000000", limit.String())

	for _, invalid := range []string{"", "-1", "1.5", "limited", "18446744073709551616"} {
		_, err := ParseWeightLimit(invalid)
		require.Error(err, invalid)
	}

	var out struct {
		Limit WeightLimit `yaml:"limit" json:"limit"`
	}
	require.NoError(yaml.Unmarshal([]byte("limit: 1000\n"), &out))
	require.Equal(LimitedWeight(1000), out.Limit)
	require.NoError(json.Unmarshal([]byte(`{"limit":"unlimited"}`), &out))
	require.Equal(Unlimited(), out.Limit)

	bz, err := json.Marshal(out)
	require.NoError(err)
	require.JSONEq(`{"limit":"Unlimited"}`, string(bz))
}

func (s *XcmBridgeTestSuite) TestRelayFee() {
	require := s.Require()

	var fee RelayFee
	require.NoError(yaml.Unmarshal([]byte("token: KSM\namount: \"421434140.38\"\n"), &fee))
	require.Equal("KSM", fee.Token)
	require.Equal("421434141", fee.Amount.String())

	require.NoError(json.Unmarshal([]byte(`{"token":"DOT","amount":3549633}`), &fee))
	require.Equal("DOT", fee.Token)
	require.Equal("3549633", fee.Amount.String())

	require.Error(json.Unmarshal([]byte(`{"token":"DOT","amount":"-5"}`), &fee))

	route := RouteEntry{From: "karura", To: "statemine", Token: "RMRK", Fee: RelayFee{Token: "KSM"}}
	require.False(route.FeeInSameToken())
	route.Fee.Token = "rmrk"
	require.True(route.FeeInSameToken())
}

func (s *XcmBridgeTestSuite) TestBalanceSnapshot() {
	require := s.Require()
	human := func(value string) AmountHumanReadable {
		amount, err := NewAmountHumanReadableFromStr(value)
		require.NoError(err)
		return amount
	}

	snapshot := NewBalanceSnapshot(human("10"), human("2"), human("1"), human("8"))
	require.Equal("8", snapshot.Available.String())

	// available never exceeds free, nothing is negative
	snapshot = NewBalanceSnapshot(human("10"), human("-2"), human("-1"), human("12"))
	require.Equal("10", snapshot.Available.String())
	require.True(snapshot.Locked.IsZero())
	require.True(snapshot.Reserved.IsZero())

	snapshot = NewBalanceSnapshot(human("-1"), human("0"), human("0"), human("-3"))
	require.True(snapshot.Free.IsZero())
	require.True(snapshot.Available.IsZero())

	zero := ZeroBalanceSnapshot()
	require.True(zero.Free.IsZero() && zero.Available.IsZero())
}
