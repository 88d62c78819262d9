package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/cmd/xcm/commands"
	"github.com/cordialsys/xcmbridge/cmd/xcm/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdXcm() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "xcm",
		Short:        "Inspect and build cross chain transfers between polkadot and kusama chains",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			args, err := setup.RpcArgsFromCmd(cmd)
			if err != nil {
				return err
			}
			setup.ConfigureLogger(args)

			xcmFactory, err := setup.LoadFactory(args)
			if err != nil {
				return err
			}
			chain := xb.ChainID(args.Chain)
			if chain != "" {
				if _, err := xcmFactory.Get(chain); err != nil {
					return err
				}
				logrus.WithField("chain", chain).Info("chain")
			}

			ctx := setup.CreateContext(xcmFactory, chain)
			ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			cobra.OnFinalize(cancel)
			cmd.SetContext(ctx)
			return nil
		},
	}
	setup.AddRpcArgs(cmd)

	cmd.AddCommand(commands.CmdChains())
	cmd.AddCommand(commands.CmdRoutes())
	cmd.AddCommand(commands.CmdMinInput())
	cmd.AddCommand(commands.CmdBalance())
	cmd.AddCommand(commands.CmdMaxTransferable())
	cmd.AddCommand(commands.CmdFee())
	cmd.AddCommand(commands.CmdTransfer())

	return cmd
}

func main() {
	rootCmd := CmdXcm()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
