package xcmbridge_test

import (
	"encoding/json"

	. "github.com/cordialsys/xcmbridge"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func (s *XcmBridgeTestSuite) TestNewAmountBlockchainFromUint64() {
	require := s.Require()
	amount := NewAmountBlockchainFromUint64(123)
	require.NotNil(amount)
	require.Equal(amount.Uint64(), uint64(123))
	require.Equal(amount.String(), "123")
}

func (s *XcmBridgeTestSuite) TestAmountHumanReadable() {
	require := s.Require()
	amountDec, _ := decimal.NewFromString("10.3")
	amount := AmountHumanReadable(amountDec)
	require.NotNil(amount)
	require.Equal(amount.String(), "10.3")
}

func (s *XcmBridgeTestSuite) TestNewAmountHumanReadableFromStr() {
	require := s.Require()
	amount, err := NewAmountHumanReadableFromStr("10.3")
	require.NoError(err)
	require.Equal(amount.String(), "10.3")

	amount, err = NewAmountHumanReadableFromStr("0")
	require.NoError(err)
	require.Equal(amount.String(), "0")

	amount, err = NewAmountHumanReadableFromStr("")
	require.Error(err)
	require.Equal(amount.String(), "0")

	amount, err = NewAmountHumanReadableFromStr("invalid")
	require.Error(err)
	require.Equal(amount.String(), "0")
}

func (s *XcmBridgeTestSuite) TestNewBlockchainAmountStr() {
	require := s.Require()
	amount := NewAmountBlockchainFromStr("10")
	require.EqualValues(amount.Uint64(), 10)

	amount = NewAmountBlockchainFromStr("10.1")
	require.EqualValues(amount.Uint64(), 0)

	amount = NewAmountBlockchainFromStr("0x10")
	require.EqualValues(amount.Uint64(), 16)

	amount = NewAmountBlockchainFromStr("-10")
	require.EqualValues(amount.Uint64(), 0)
}

func (s *XcmBridgeTestSuite) TestParseAmountBlockchainCeil() {
	require := s.Require()
	amount, err := ParseAmountBlockchainCeil("421434140.38")
	require.NoError(err)
	require.Equal("421434141", amount.String())

	amount, err = ParseAmountBlockchainCeil("26455026")
	require.NoError(err)
	require.Equal("26455026", amount.String())

	_, err = ParseAmountBlockchainCeil("-1")
	require.Error(err)
	_, err = ParseAmountBlockchainCeil("abc")
	require.Error(err)
}

func (s *XcmBridgeTestSuite) TestScaling() {
	require := s.Require()
	// u128 amounts survive the round trip
	raw := NewAmountBlockchainFromStr("340282366920938463463374607431768211455")
	human := raw.ToHuman(18)
	require.Equal("340282366920938463463.374607431768211455", human.String())
	require.Equal(raw.String(), human.ToBlockchain(18).String())

	dot, _ := NewAmountHumanReadableFromStr("1.5")
	require.Equal("15000000000", dot.ToBlockchain(10).String())
	require.True(dot.FitsPrecision(10))

	tooPrecise, _ := NewAmountHumanReadableFromStr("0.0000000000001")
	require.False(tooPrecise.FitsPrecision(10))
	tooPreciseRaw := tooPrecise.ToBlockchain(10)
	require.True(tooPreciseRaw.IsZero())
}

func (s *XcmBridgeTestSuite) TestAmountArithmetic() {
	require := s.Require()
	a := NewAmountBlockchainFromUint64(100)
	b := NewAmountBlockchainFromUint64(30)
	sum := a.Add(&b)
	diff := a.Sub(&b)
	require.EqualValues(130, sum.Uint64())
	require.EqualValues(70, diff.Uint64())
	require.Equal(1, a.Cmp(&b))
	// operands are not modified
	require.EqualValues(100, a.Uint64())

	negative := b.Sub(&a)
	require.Equal(-1, negative.Sign())
}

func (s *XcmBridgeTestSuite) TestAmountSerialization() {
	require := s.Require()

	var out struct {
		Raw   AmountBlockchain    `json:"raw" yaml:"raw"`
		Human AmountHumanReadable `json:"human" yaml:"human"`
	}
	require.NoError(json.Unmarshal([]byte(`{"raw":"1000000000000","human":"1.25"}`), &out))
	require.Equal("1000000000000", out.Raw.String())
	require.Equal("1.25", out.Human.String())

	require.NoError(yaml.Unmarshal([]byte("raw: \"79999999\"\nhuman: 0.5\n"), &out))
	require.Equal("79999999", out.Raw.String())
	require.Equal("0.5", out.Human.String())

	require.Error(yaml.Unmarshal([]byte("raw: -1\n"), &out))
}
