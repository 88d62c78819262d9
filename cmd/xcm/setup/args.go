package setup

import (
	"context"
	"fmt"
	"os"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/config"
	"github.com/cordialsys/xcmbridge/factory"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type RpcContextKey string

const ContextXcm RpcContextKey = "xcm"
const ContextChain RpcContextKey = "chain"

func WrapFactory(ctx context.Context, xcmFactory *factory.Factory) context.Context {
	return context.WithValue(ctx, ContextXcm, xcmFactory)
}

func WrapChain(ctx context.Context, chain xb.ChainID) context.Context {
	return context.WithValue(ctx, ContextChain, chain)
}

func UnwrapFactory(ctx context.Context) *factory.Factory {
	return ctx.Value(ContextXcm).(*factory.Factory)
}

func UnwrapChain(ctx context.Context) xb.ChainID {
	chain, _ := ctx.Value(ContextChain).(xb.ChainID)
	return chain
}

func ConfigureLogger(args *RpcArgs) {
	config.ConfigureLogger()
	if args.VerbosityCount == 0 {
		logrus.SetLevel(logrus.WarnLevel)
	}
	if args.VerbosityCount == 1 {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if args.VerbosityCount == 2 {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if args.VerbosityCount >= 3 {
		logrus.SetLevel(logrus.TraceLevel)
	}
}

// LoadFactory loads the configured chains and applies the rpc overrides.
func LoadFactory(args *RpcArgs) (*factory.Factory, error) {
	xcmFactory, err := factory.NewDefaultFactory()
	if err != nil {
		return nil, err
	}
	if args.OverridesPath != "" {
		fromFile, err := LoadOverrides(args.OverridesPath)
		if err != nil {
			return nil, err
		}
		for chain, override := range fromFile {
			args.Overrides[strings.ToLower(chain)] = override
		}
	}

	if args.Chain != "" {
		key := strings.ToLower(args.Chain)
		override, ok := args.Overrides[key]
		if !ok {
			override = &ChainOverride{}
			args.Overrides[key] = override
		}
		if args.Rpc != "" {
			override.Rpc = args.Rpc
		}
		if args.ApiKey != "" {
			override.ApiKey = args.ApiKey
		}
	}
	OverwriteChainSettings(args.Overrides, xcmFactory)
	return xcmFactory, nil
}

func CreateContext(xcmFactory *factory.Factory, chain xb.ChainID) context.Context {
	ctx := context.Background()
	ctx = WrapFactory(ctx, xcmFactory)
	ctx = WrapChain(ctx, chain)
	return ctx
}

type RpcArgs struct {
	Rpc            string
	Chain          string
	VerbosityCount int
	ApiKey         config.Secret
	OverridesPath  string

	Overrides map[string]*ChainOverride
}

const ChainEnv = "XCM_CHAIN"

func AddRpcArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("rpc", "", "Websocket RPC url to use for the source chain. Optional.")
	cmd.PersistentFlags().String("chain", os.Getenv(ChainEnv), fmt.Sprintf("Source chain to use (may set %s env var).", ChainEnv))
	cmd.PersistentFlags().String("api-key", "", "Secret reference for the provider API key of the source chain, e.g. env:RPC_API_KEY.")
	cmd.PersistentFlags().String("overrides", "", "Path to a toml file of per chain rpc overrides.")
	cmd.PersistentFlags().CountP("verbose", "v", "Set verbosity.")
}

func RpcArgsFromCmd(cmd *cobra.Command) (*RpcArgs, error) {
	chain, _ := cmd.Flags().GetString("chain")
	rpc, _ := cmd.Flags().GetString("rpc")
	count, _ := cmd.Flags().GetCount("verbose")
	overrides, _ := cmd.Flags().GetString("overrides")
	apikey, _ := cmd.Flags().GetString("api-key")
	if apikey != "" && !config.HasTypePrefix(apikey) {
		return nil, fmt.Errorf("api-key must not be passed directly on command, instead you should use a reference like env:RPC_API_KEY")
	}

	return &RpcArgs{
		Chain:          chain,
		Rpc:            rpc,
		VerbosityCount: count,
		ApiKey:         config.Secret(apikey),
		OverridesPath:  overrides,
		Overrides:      map[string]*ChainOverride{},
	}, nil
}
