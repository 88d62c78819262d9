package xcmbridge

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

const UnlimitedWeight = "Unlimited"

// WeightLimit is the execution budget granted to the destination: unlimited, or a fixed ceiling.
type WeightLimit struct {
	limited bool
	value   uint64
}

func Unlimited() WeightLimit {
	return WeightLimit{}
}

func LimitedWeight(value uint64) WeightLimit {
	return WeightLimit{limited: true, value: value}
}

// ParseWeightLimit accepts "Unlimited" or a decimal string.
func ParseWeightLimit(s string) (WeightLimit, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, UnlimitedWeight) {
		return Unlimited(), nil
	}
	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 || !value.IsUint64() {
		return WeightLimit{}, fmt.Errorf("invalid weight limit %q", s)
	}
	return LimitedWeight(value.Uint64()), nil
}

func (w WeightLimit) IsUnlimited() bool {
	return !w.limited
}

// Value is the ceiling; ok is false when unlimited.
func (w WeightLimit) Value() (value uint64, ok bool) {
	return w.value, w.limited
}

func (w WeightLimit) String() string {
	if !w.limited {
		return UnlimitedWeight
	}
	return fmt.Sprintf("%d", w.value)
}

var _ yaml.Marshaler = WeightLimit{}
var _ yaml.Unmarshaler = &WeightLimit{}
var _ json.Marshaler = WeightLimit{}
var _ json.Unmarshaler = &WeightLimit{}

func (w WeightLimit) MarshalYAML() (interface{}, error) {
	return w.String(), nil
}

func (w *WeightLimit) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseWeightLimit(node.Value)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w WeightLimit) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *WeightLimit) UnmarshalJSON(data []byte) error {
	parsed, err := ParseWeightLimit(strings.Trim(string(data), "\""))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// RouteEntry is the configured destination fee and weight limit of one (source, destination, token) triple.
type RouteEntry struct {
	From        ChainID     `json:"from"`
	To          ChainID     `json:"to"`
	Token       string      `json:"token"`
	Fee         RelayFee    `json:"fee"`
	WeightLimit WeightLimit `json:"weight_limit"`
}

// FeeInSameToken reports whether the relay fee is paid in the transferred token.
func (r *RouteEntry) FeeInSameToken() bool {
	return strings.EqualFold(r.Fee.Token, r.Token)
}
