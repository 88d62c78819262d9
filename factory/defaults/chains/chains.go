package chains

import (
	_ "embed"
	"strings"

	factoryconfig "github.com/cordialsys/xcmbridge/factory/config"
	"github.com/cordialsys/xcmbridge/factory/defaults/common"
	"github.com/sirupsen/logrus"
)

//go:embed chains.yaml
var chainsData []byte

// Chains keyed by lowercase chain id.
var Chains map[string]*factoryconfig.ChainConfig

func init() {
	file := common.Unmarshal[struct {
		Chains []*factoryconfig.ChainConfig `yaml:"chains"`
	}]("chains.yaml", chainsData)

	// viper lowercases map keys, so do the same here
	Chains = map[string]*factoryconfig.ChainConfig{}
	for _, chain := range file.Chains {
		key := strings.ToLower(string(chain.ID))
		if _, ok := Chains[key]; ok {
			logrus.Warnf("multiple entries for %s", key)
		}
		Chains[key] = chain
	}
}
