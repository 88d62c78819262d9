package tokens

import (
	_ "embed"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/factory/defaults/common"
)

//go:embed tokens.yaml
var tokensData []byte

// Tokens of each chain keyed by lowercase chain id.
var Tokens = common.Unmarshal[struct {
	Tokens map[string][]*xb.Token `yaml:"tokens"`
}]("tokens.yaml", tokensData).Tokens
