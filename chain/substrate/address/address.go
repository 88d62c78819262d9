package address

import (
	"bytes"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/vedhavyas/go-subkey/v2"
	"golang.org/x/crypto/blake2b"
)

var ss58Prefix = []byte("SS58PRE")

// Substrate chains with an EVM pallet own the account blake2b("evm:" ++ h160) for every H160.
var evmAccountPrefix = []byte("evm:")

// Codec converts SS58 and H160 address strings into raw account bytes.
type Codec struct{}

var _ xb.AddressCodec = Codec{}

func NewCodec() Codec {
	return Codec{}
}

// AccountID32 decodes an SS58 address, or maps an H160 onto its substrate account.
func (Codec) AccountID32(addr xb.Address) ([]byte, error) {
	if IsEvmAddress(addr) {
		return EvmToAccountID(common.HexToAddress(string(addr))), nil
	}
	id, err := Decode(addr)
	if err != nil {
		return nil, err
	}
	return id.ToBytes(), nil
}

func (Codec) AccountKey20(addr xb.Address) ([]byte, error) {
	if !IsEvmAddress(addr) {
		return nil, errors.InvalidAddressf("%s is not a 20 byte hex address", addr)
	}
	return common.HexToAddress(string(addr)).Bytes(), nil
}

// StorageKey returns the account bytes the chain keys its storage by.
func (c Codec) StorageKey(chain *xb.Chain, addr xb.Address) ([]byte, error) {
	if chain.Topology == xb.TopologyEVM {
		return c.AccountKey20(addr)
	}
	return c.AccountID32(addr)
}

func (Codec) Encode(chain *xb.Chain, account []byte) (xb.Address, error) {
	switch len(account) {
	case common.AddressLength:
		return xb.Address(common.BytesToAddress(account).Hex()), nil
	case 32:
		return xb.Address(subkey.SS58Encode(account, chain.SS58Prefix)), nil
	}
	return "", errors.InvalidAddressf("cannot encode a %d byte account", len(account))
}

func IsEvmAddress(addr xb.Address) bool {
	s := string(addr)
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

func EvmToAccountID(addr common.Address) []byte {
	hash := blake2b.Sum256(append(append([]byte{}, evmAccountPrefix...), addr.Bytes()...))
	return hash[:]
}

// Decode parses an SS58 address of any network prefix and verifies its checksum.
func Decode(addr xb.Address) (*types.AccountID, error) {
	decoded := base58.Decode(string(addr))
	if len(decoded) < 35 {
		return nil, errors.InvalidAddressf("address %s is too short", addr)
	}
	prefixLen := 1
	if decoded[0]&0b0100_0000 != 0 {
		prefixLen = 2
	}
	if len(decoded) != prefixLen+32+2 {
		return nil, errors.InvalidAddressf("address %s has an unexpected length", addr)
	}
	body := decoded[:prefixLen+32]
	checksum := decoded[prefixLen+32:]
	hash := blake2b.Sum512(append(append([]byte{}, ss58Prefix...), body...))
	if !bytes.Equal(hash[:2], checksum) {
		return nil, errors.InvalidAddressf("address %s has an invalid checksum", addr)
	}
	id, err := types.NewAccountID(last32DropChecksum(decoded))
	if err != nil {
		return nil, errors.InvalidAddressf("invalid address %s: %v", addr, err)
	}
	return id, nil
}

func DecodeMulti(addr xb.Address) (types.MultiAddress, error) {
	id, err := Decode(addr)
	if err != nil {
		return types.MultiAddress{}, err
	}
	return types.NewMultiAddressFromAccountID(id.ToBytes())
}

// Decoding address without checking the checksum
func last32DropChecksum(decoded []byte) []byte {
	// drop the 2 checksum bytes
	decoded = decoded[:len(decoded)-2]
	// take the last 32 bytes (ignores the 1-2 byte prefix)
	return decoded[len(decoded)-32:]
}

// Prefix returns the SS58 network prefix of an address.
func Prefix(addr xb.Address) (uint16, error) {
	format, _, err := subkey.SS58Decode(string(addr))
	if err != nil {
		return 0, errors.InvalidAddressf("%s: %v", addr, err)
	}
	return format, nil
}
