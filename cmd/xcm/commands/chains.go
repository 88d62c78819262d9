package commands

import (
	"fmt"

	"github.com/cordialsys/xcmbridge/cmd/xcm/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdChains() *cobra.Command {
	format := ""
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "List information on all supported chains.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			xcmFactory := setup.UnwrapFactory(cmd.Context())
			logrus.Info("listing from local configuration")
			return printAs(format, xcmFactory.Config.GetChains())
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Format may be json or yaml")
	return cmd
}

func CmdRoutes() *cobra.Command {
	format := ""
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the transfer routes of the source chain.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := sourceChain(cmd)
			if err != nil {
				return err
			}
			a, err := setup.UnwrapFactory(cmd.Context()).Get(chain)
			if err != nil {
				return err
			}
			token, _ := cmd.Flags().GetString("token")
			if token != "" {
				return printAs(format, a.Routes().Destinations(token))
			}
			return printAs(format, a.Routes().Routes())
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Format may be json or yaml")
	cmd.Flags().String("token", "", "Only list the destinations reachable with this token.")
	return cmd
}

func CmdMinInput() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "min-input",
		Short: "Smallest amount worth sending to the destination, in whole tokens.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := sourceChain(cmd)
			if err != nil {
				return err
			}
			to, err := destinationFlag(cmd)
			if err != nil {
				return err
			}
			xcmFactory := setup.UnwrapFactory(cmd.Context())
			a, err := xcmFactory.Get(chain)
			if err != nil {
				return err
			}
			min, err := xcmFactory.MinInput(chain, to, tokenFlag(cmd, a))
			if err != nil {
				return err
			}
			fmt.Println(min.String())
			return nil
		},
	}
	addTokenFlags(cmd, true)
	return cmd
}
