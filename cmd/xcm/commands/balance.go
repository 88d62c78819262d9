package commands

import (
	"fmt"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/stream"
	"github.com/spf13/cobra"
)

func CmdBalance() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "balance <address>",
		Short: "Check the free, locked, reserved and available balance of a token, as decimals.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := connect(cmd)
			if err != nil {
				return err
			}
			sub, err := a.SubscribeBalance(cmd.Context(), tokenFlag(cmd, a), xb.Address(args[0]))
			if err != nil {
				return err
			}
			return printUpdates(cmd.Context(), sub.Stream, watch, func(snapshot xb.BalanceSnapshot) {
				fmt.Println(asJson(snapshot))
			})
		},
	}
	addTokenFlags(cmd, false)
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep printing balance changes.")
	return cmd
}

func CmdMaxTransferable() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "max <address>",
		Short: "Largest amount of a token the address can send to the destination.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := destinationFlag(cmd)
			if err != nil {
				return err
			}
			a, err := connect(cmd)
			if err != nil {
				return err
			}
			var s *stream.Stream[xb.AmountHumanReadable]
			s, err = a.SubscribeMaxTransferable(cmd.Context(), tokenFlag(cmd, a), xb.Address(args[0]), to)
			if err != nil {
				return err
			}
			return printUpdates(cmd.Context(), s, watch, func(amount xb.AmountHumanReadable) {
				fmt.Println(amount.String())
			})
		},
	}
	addTokenFlags(cmd, true)
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep printing as the balance or fee changes.")
	return cmd
}
