package commands

import (
	"context"
	"encoding/json"
	"fmt"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/adapter"
	"github.com/cordialsys/xcmbridge/cmd/xcm/setup"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func asJson(data any) string {
	bz, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(bz)
}

func printAs(format string, data any) error {
	switch format {
	case "json":
		fmt.Println(asJson(data))
	case "yaml":
		bz, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Println(string(bz))
	default:
		return fmt.Errorf("invalid format %q, may be json or yaml", format)
	}
	return nil
}

func sourceChain(cmd *cobra.Command) (xb.ChainID, error) {
	chain := setup.UnwrapChain(cmd.Context())
	if chain == "" {
		return "", fmt.Errorf("--chain required (may set %s)", setup.ChainEnv)
	}
	return chain, nil
}

// connect dials the source chain and returns its ready adapter.
func connect(cmd *cobra.Command) (*adapter.ChainAdapter, error) {
	chain, err := sourceChain(cmd)
	if err != nil {
		return nil, err
	}
	return setup.UnwrapFactory(cmd.Context()).Connect(cmd.Context(), chain)
}

// printUpdates prints the first value of s, or every value when watching.
func printUpdates[T any](ctx context.Context, s *stream.Stream[T], watch bool, print func(T)) error {
	defer s.Close()
	for {
		value, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		print(value)
		if !watch {
			return nil
		}
	}
}

func addTokenFlags(cmd *cobra.Command, withDestination bool) {
	cmd.Flags().String("token", "", "Token symbol, defaults to the native token of the chain.")
	if withDestination {
		cmd.Flags().String("to", "", "Destination chain. Required.")
	}
}

func tokenFlag(cmd *cobra.Command, a *adapter.ChainAdapter) string {
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		return a.Chain().NativeToken
	}
	return token
}

func destinationFlag(cmd *cobra.Command) (xb.ChainID, error) {
	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		return "", fmt.Errorf("--to required")
	}
	return xb.ChainID(to), nil
}
