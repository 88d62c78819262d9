package hex

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// Hex holds raw SCALE bytes, such as an encoded currency id. It prints
// in the 0x form used by polkadot.js and the node rpc.
type Hex []byte

func (h Hex) String() string {
	return codec.HexEncodeToString(h)
}

func (h Hex) Bytes() []byte {
	return []byte(h)
}

func (h Hex) IsEmpty() bool {
	return len(h) == 0
}

// Parse accepts the value with or without a 0x prefix, and quoted.
func Parse(s string) (Hex, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if s == "" {
		return Hex{}, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	bz, err := codec.HexDecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return bz, nil
}

func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hex) UnmarshalJSON(data []byte) error {
	bz, err := Parse(string(data))
	if err != nil {
		return err
	}
	*h = bz
	return nil
}

func (h *Hex) UnmarshalText(data []byte) error {
	bz, err := Parse(string(data))
	if err != nil {
		return err
	}
	*h = bz
	return nil
}

func (h Hex) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}
