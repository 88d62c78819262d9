package xcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// Pallet calls produced by the builders.
const (
	XTokensTransfer                = "XTokens.transfer"
	XTokensTransferMulticurrencies = "XTokens.transfer_multicurrencies"

	XcmPalletReserveTransferAssets        = "XcmPallet.reserve_transfer_assets"
	XcmPalletLimitedReserveTransferAssets = "XcmPallet.limited_reserve_transfer_assets"
	XcmPalletLimitedTeleportAssets        = "XcmPallet.limited_teleport_assets"

	PolkadotXcmReserveTransferAssets        = "PolkadotXcm.reserve_transfer_assets"
	PolkadotXcmLimitedReserveTransferAssets = "PolkadotXcm.limited_reserve_transfer_assets"
	PolkadotXcmLimitedTeleportAssets        = "PolkadotXcm.limited_teleport_assets"
)

var UsedCalls = []string{
	XTokensTransfer,
	XTokensTransferMulticurrencies,
	XcmPalletReserveTransferAssets,
	XcmPalletLimitedReserveTransferAssets,
	XcmPalletLimitedTeleportAssets,
	PolkadotXcmReserveTransferAssets,
	PolkadotXcmLimitedReserveTransferAssets,
	PolkadotXcmLimitedTeleportAssets,
}

// Value is a call argument.
type Value interface {
	scale.Encodeable
	fmt.Stringer
}

type Arg struct {
	Name  string
	Value Value
}

// Message is an unsigned pallet call. It holds no reference to shared state.
type Message struct {
	Pallet string
	Method string
	Args   []Arg
}

func NewMessage(call string, args ...Arg) *Message {
	pallet, method, _ := strings.Cut(call, ".")
	return &Message{Pallet: pallet, Method: method, Args: args}
}

// Name is the metadata call name, e.g. "XTokens.transfer".
func (m *Message) Name() string {
	return m.Pallet + "." + m.Method
}

func (m *Message) Arg(name string) (Value, bool) {
	for _, arg := range m.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Encode returns the SCALE encoded arguments, without the call index.
func (m *Message) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := scale.NewEncoder(&buf)
	for _, arg := range m.Args {
		if err := arg.Value.Encode(*encoder); err != nil {
			return nil, fmt.Errorf("%s: encode %s: %w", m.Name(), arg.Name, err)
		}
	}
	return buf.Bytes(), nil
}

func (m *Message) Hex() (string, error) {
	bz, err := m.Encode()
	if err != nil {
		return "", err
	}
	return codec.HexEncodeToString(bz), nil
}

// CallIndexer resolves a call name to its index in the chain's runtime.
type CallIndexer interface {
	FindCallIndex(name string) (types.CallIndex, error)
}

// Call binds the message to the runtime's call index.
func (m *Message) Call(meta CallIndexer) (types.Call, error) {
	index, err := meta.FindCallIndex(m.Name())
	if err != nil {
		return types.Call{}, err
	}
	args, err := m.Encode()
	if err != nil {
		return types.Call{}, err
	}
	return types.Call{CallIndex: index, Args: args}, nil
}

type argJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type messageJSON struct {
	Call     string    `json:"call"`
	Args     []argJSON `json:"args"`
	CallData string    `json:"call_data"`
}

func (m *Message) MarshalJSON() ([]byte, error) {
	callData, err := m.Hex()
	if err != nil {
		return nil, err
	}
	out := messageJSON{Call: m.Name(), CallData: callData}
	for _, arg := range m.Args {
		out.Args = append(out.Args, argJSON{Name: arg.Name, Value: arg.Value.String()})
	}
	return json.Marshal(out)
}
