package routes

import (
	"embed"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	factoryconfig "github.com/cordialsys/xcmbridge/factory/config"
	"github.com/cordialsys/xcmbridge/factory/defaults/common"
	xbroutes "github.com/cordialsys/xcmbridge/routes"
)

//go:embed *.yaml
var files embed.FS

// Routes of each source chain keyed by lowercase chain id, one file per source.
var Routes map[string][]xbroutes.RouteConfig

func init() {
	entries, err := files.ReadDir(".")
	if err != nil {
		panic(err)
	}
	Routes = map[string][]xbroutes.RouteConfig{}
	for _, entry := range entries {
		data, err := files.ReadFile(entry.Name())
		if err != nil {
			panic(err)
		}
		file := common.Unmarshal[struct {
			From   string                 `yaml:"from"`
			Routes []xbroutes.RouteConfig `yaml:"routes"`
		}](entry.Name(), data)
		if file.From == "" {
			file.From = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		Routes[factoryconfig.Key(xb.ChainID(file.From))] = file.Routes
	}
}
