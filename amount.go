package xcmbridge

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AmountBlockchain is a big integer amount as the chain stores it (the token's smallest unit).
type AmountBlockchain big.Int

// AmountHumanReadable is a fixed-point decimal amount scaled to the token's precision.
type AmountHumanReadable decimal.Decimal

func (amount AmountBlockchain) Bytes() []byte {
	bigInt := big.Int(amount)
	return bigInt.Bytes()
}

func (amount AmountBlockchain) String() string {
	bigInt := big.Int(amount)
	return bigInt.String()
}

// Int converts an AmountBlockchain into *big.Int
func (amount AmountBlockchain) Int() *big.Int {
	bigInt := big.Int(amount)
	return &bigInt
}

func (amount AmountBlockchain) Sign() int {
	bigInt := big.Int(amount)
	return bigInt.Sign()
}

// Uint64 converts an AmountBlockchain into uint64
func (amount AmountBlockchain) Uint64() uint64 {
	bigInt := big.Int(amount)
	return bigInt.Uint64()
}

// Use the underlying big.Int.Cmp()
func (amount *AmountBlockchain) Cmp(other *AmountBlockchain) int {
	return amount.Int().Cmp(other.Int())
}

// Use the underlying big.Int.Add()
func (amount *AmountBlockchain) Add(x *AmountBlockchain) AmountBlockchain {
	sum := new(big.Int)
	sum.Set((*big.Int)(amount))
	return AmountBlockchain(*sum.Add(sum, x.Int()))
}

// Use the underlying big.Int.Sub()
func (amount *AmountBlockchain) Sub(x *AmountBlockchain) AmountBlockchain {
	diff := new(big.Int)
	diff.Set((*big.Int)(amount))
	return AmountBlockchain(*diff.Sub(diff, x.Int()))
}

var zero = big.NewInt(0)

func (amount *AmountBlockchain) IsZero() bool {
	return amount.Int().Cmp(zero) == 0
}

// ToHuman scales the amount down by the token's decimals.
func (amount AmountBlockchain) ToHuman(decimals int32) AmountHumanReadable {
	dec := decimal.NewFromBigInt(amount.Int(), -decimals)
	return AmountHumanReadable(dec)
}

// NewAmountBlockchainFromUint64 creates a new AmountBlockchain from a uint64
func NewAmountBlockchainFromUint64(u64 uint64) AmountBlockchain {
	bigInt := new(big.Int).SetUint64(u64)
	return AmountBlockchain(*bigInt)
}

// NewAmountBlockchainFromStr creates a new AmountBlockchain from a string, returning 0 if it is not an integer.
func NewAmountBlockchainFromStr(str string) AmountBlockchain {
	amount, err := ParseAmountBlockchain(str)
	if err != nil {
		return NewAmountBlockchainFromUint64(0)
	}
	return amount
}

// ParseAmountBlockchain parses a non-negative integer amount.
func ParseAmountBlockchain(str string) (AmountBlockchain, error) {
	bigInt, ok := new(big.Int).SetString(strings.TrimSpace(str), 0)
	if !ok {
		return AmountBlockchain{}, fmt.Errorf("not a valid integer amount: %q", str)
	}
	if bigInt.Sign() < 0 {
		return AmountBlockchain{}, fmt.Errorf("amount must not be negative: %q", str)
	}
	return AmountBlockchain(*bigInt), nil
}

// ParseAmountBlockchainCeil accepts fractional chain units, as measured relay fees are
// sometimes recorded, and rounds them up.
func ParseAmountBlockchainCeil(str string) (AmountBlockchain, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(str))
	if err != nil {
		return AmountBlockchain{}, fmt.Errorf("not a valid amount: %q", str)
	}
	if value.IsNegative() {
		return AmountBlockchain{}, fmt.Errorf("amount must not be negative: %q", str)
	}
	return AmountBlockchain(*value.Ceil().BigInt()), nil
}

// NewAmountHumanReadableFromStr creates a new AmountHumanReadable from a string
func NewAmountHumanReadableFromStr(str string) (AmountHumanReadable, error) {
	decimal, err := decimal.NewFromString(str)
	return AmountHumanReadable(decimal), err
}

func NewAmountHumanReadableFromDecimal(dec decimal.Decimal) AmountHumanReadable {
	return AmountHumanReadable(dec)
}

func ZeroHuman() AmountHumanReadable {
	return AmountHumanReadable(decimal.Zero)
}

func (amount AmountHumanReadable) Decimal() decimal.Decimal {
	return decimal.Decimal(amount)
}

// ToBlockchain scales the amount up by the token's decimals. Any digits beyond the
// token's precision are truncated.
func (amount AmountHumanReadable) ToBlockchain(decimals int32) AmountBlockchain {
	factor := decimal.NewFromInt32(10).Pow(decimal.NewFromInt32(decimals))
	raised := ((decimal.Decimal)(amount)).Mul(factor)
	return AmountBlockchain(*raised.BigInt())
}

// FitsPrecision reports whether the amount can be expressed with the given decimals without loss.
func (amount AmountHumanReadable) FitsPrecision(decimals int32) bool {
	dec := decimal.Decimal(amount)
	return dec.Equal(dec.Truncate(decimals))
}

func (amount AmountHumanReadable) String() string {
	return decimal.Decimal(amount).String()
}

func (amount AmountHumanReadable) Sub(x AmountHumanReadable) AmountHumanReadable {
	return AmountHumanReadable(decimal.Decimal(amount).Sub(decimal.Decimal(x)))
}

func (amount AmountHumanReadable) Add(x AmountHumanReadable) AmountHumanReadable {
	return AmountHumanReadable(decimal.Decimal(amount).Add(decimal.Decimal(x)))
}

func (amount AmountHumanReadable) Mul(x decimal.Decimal) AmountHumanReadable {
	return AmountHumanReadable(decimal.Decimal(amount).Mul(x))
}

func (amount AmountHumanReadable) Cmp(x AmountHumanReadable) int {
	return decimal.Decimal(amount).Cmp(decimal.Decimal(x))
}

func (amount AmountHumanReadable) Equal(x AmountHumanReadable) bool {
	return decimal.Decimal(amount).Equal(decimal.Decimal(x))
}

func (amount AmountHumanReadable) IsPositive() bool {
	return decimal.Decimal(amount).IsPositive()
}

func (amount AmountHumanReadable) IsNegative() bool {
	return decimal.Decimal(amount).IsNegative()
}

var _ json.Marshaler = AmountHumanReadable{}
var _ json.Unmarshaler = &AmountHumanReadable{}
var _ yaml.Unmarshaler = &AmountHumanReadable{}
var _ yaml.Marshaler = AmountHumanReadable{}
var _ yaml.IsZeroer = AmountHumanReadable{}

func (b AmountHumanReadable) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

func (b AmountHumanReadable) IsZero() bool {
	return decimal.Decimal(b).IsZero()
}

func (b *AmountHumanReadable) UnmarshalYAML(node *yaml.Node) error {
	value := strings.Trim(strings.TrimSpace(node.Value), "\"")
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid decimal amount: %v", err)
	}
	*b = AmountHumanReadable(dec)
	return nil
}

func (b AmountHumanReadable) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

func (b *AmountHumanReadable) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	str := strings.Trim(string(p), "\"")
	decimal, err := decimal.NewFromString(str)
	if err != nil {
		return err
	}
	*b = AmountHumanReadable(decimal)
	return nil
}

var _ json.Marshaler = AmountBlockchain{}
var _ json.Unmarshaler = &AmountBlockchain{}
var _ yaml.Unmarshaler = &AmountBlockchain{}
var _ yaml.Marshaler = AmountBlockchain{}

func (b AmountBlockchain) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

func (b *AmountBlockchain) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	amount, err := ParseAmountBlockchain(strings.Trim(string(p), "\""))
	if err != nil {
		return err
	}
	*b = amount
	return nil
}

// Route and token tables store amounts as decimal strings so that u128 values survive yaml.
func (b AmountBlockchain) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

func (b *AmountBlockchain) UnmarshalYAML(node *yaml.Node) error {
	amount, err := ParseAmountBlockchain(strings.Trim(node.Value, "\""))
	if err != nil {
		return err
	}
	*b = amount
	return nil
}
