package xcmbridge

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cordialsys/xcmbridge/pkg/hex"
)

// AssetID identifies a non-native token in the chain's own storage.
type AssetID struct {
	// Numeric index into the assets pallet (asset hub chains)
	Index *AmountBlockchain `yaml:"index,omitempty"`
	// SCALE encoded currency id (ORML tokens pallet chains)
	Currency hex.Hex `yaml:"currency,omitempty"`
}

func (id *AssetID) HasIndex() bool {
	return id != nil && id.Index != nil
}

func (id *AssetID) HasCurrency() bool {
	return id != nil && !id.Currency.IsEmpty()
}

func copyAmount(amount *AmountBlockchain) *AmountBlockchain {
	if amount == nil {
		return nil
	}
	copied := AmountBlockchain(*new(big.Int).Set(amount.Int()))
	return &copied
}

// Clone returns a copy that shares no memory with id.
func (id *AssetID) Clone() *AssetID {
	if id == nil {
		return nil
	}
	copied := &AssetID{Index: copyAmount(id.Index)}
	if id.Currency != nil {
		copied.Currency = append(hex.Hex{}, id.Currency...)
	}
	return copied
}

type Token struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals int32  `yaml:"decimals"`
	// Existential deposit; unset when the token has no minimum balance
	ED      *AmountBlockchain `yaml:"ed,omitempty"`
	AssetID *AssetID          `yaml:"asset_id,omitempty"`
}

// Clone returns a copy that shares no memory with t.
func (t *Token) Clone() *Token {
	copied := *t
	copied.ED = copyAmount(t.ED)
	copied.AssetID = t.AssetID.Clone()
	return &copied
}

// EDHuman returns the existential deposit in token units, zero when unset.
func (t *Token) EDHuman() AmountHumanReadable {
	if t.ED == nil {
		return ZeroHuman()
	}
	return t.ED.ToHuman(t.Decimals)
}

// TokenCatalog is the immutable token table of a single chain.
type TokenCatalog struct {
	native string
	tokens map[string]*Token
}

// NewTokenCatalog copies the given tokens into a new catalog. The native token must be present.
func NewTokenCatalog(native string, tokens []*Token) (*TokenCatalog, error) {
	catalog := &TokenCatalog{
		native: strings.ToUpper(native),
		tokens: make(map[string]*Token, len(tokens)),
	}
	for _, token := range tokens {
		key := strings.ToUpper(token.Symbol)
		if key == "" {
			return nil, fmt.Errorf("token symbol is required")
		}
		if _, ok := catalog.tokens[key]; ok {
			return nil, fmt.Errorf("duplicate token %s", token.Symbol)
		}
		catalog.tokens[key] = token.Clone()
	}
	if _, ok := catalog.tokens[catalog.native]; !ok {
		return nil, fmt.Errorf("native token %s is missing from the catalog", native)
	}
	return catalog, nil
}

func (c *TokenCatalog) Get(symbol string) (*Token, bool) {
	token, ok := c.tokens[strings.ToUpper(symbol)]
	if !ok {
		return nil, false
	}
	return token.Clone(), true
}

func (c *TokenCatalog) Native() *Token {
	token, _ := c.Get(c.native)
	return token
}

func (c *TokenCatalog) IsNative(symbol string) bool {
	return strings.EqualFold(c.native, symbol)
}

// AssetID resolves the chain specific identifier of a non-native token.
func (c *TokenCatalog) AssetID(symbol string) (*AssetID, bool) {
	token, ok := c.tokens[strings.ToUpper(symbol)]
	if !ok || token.AssetID == nil {
		return nil, false
	}
	if !token.AssetID.HasIndex() && !token.AssetID.HasCurrency() {
		return nil, false
	}
	return token.AssetID.Clone(), true
}

// Symbols lists the catalog in a stable order.
func (c *TokenCatalog) Symbols() []string {
	symbols := make([]string, 0, len(c.tokens))
	for _, token := range c.tokens {
		symbols = append(symbols, token.Symbol)
	}
	sort.Strings(symbols)
	return symbols
}
