package commands

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/cmd/xcm/setup"
	"github.com/cordialsys/xcmbridge/fee"
	"github.com/spf13/cobra"
)

type builtTransfer struct {
	Call     string `json:"call"`
	Args     any    `json:"args"`
	CallData string `json:"call_data"`
	// Call data prefixed with the runtime's call index, ready to sign
	Extrinsic string `json:"extrinsic"`
}

func CmdTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer <to-address> <amount>",
		Short: "Build the cross chain transfer call, without signing or submitting it. Amount is a decimal.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := sourceChain(cmd)
			if err != nil {
				return err
			}
			to, err := destinationFlag(cmd)
			if err != nil {
				return err
			}
			amount, err := xb.NewAmountHumanReadableFromStr(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			xcmFactory := setup.UnwrapFactory(cmd.Context())
			conn, err := xcmFactory.NewConnection(chain)
			if err != nil {
				return err
			}
			a, err := xcmFactory.Get(chain)
			if err != nil {
				return err
			}
			if err := a.Init(cmd.Context(), conn); err != nil {
				return err
			}

			msg, err := a.BuildTransfer(xb.TransferParams{
				To:      to,
				Token:   tokenFlag(cmd, a),
				Amount:  amount,
				Address: args[0],
			})
			if err != nil {
				return err
			}
			meta, err := conn.Metadata(cmd.Context())
			if err != nil {
				return err
			}
			call, err := msg.Call(meta)
			if err != nil {
				return err
			}
			callBz, err := codec.Encode(call)
			if err != nil {
				return err
			}
			callData, err := msg.Hex()
			if err != nil {
				return err
			}
			out := builtTransfer{
				Call:      msg.Name(),
				CallData:  callData,
				Extrinsic: codec.HexEncodeToString(callBz),
			}
			argsOut := map[string]string{}
			for _, arg := range msg.Args {
				argsOut[arg.Name] = arg.Value.String()
			}
			out.Args = argsOut
			fmt.Println(asJson(out))
			return nil
		},
	}
	addTokenFlags(cmd, true)
	return cmd
}

func CmdFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee <signer>",
		Short: "Estimate the network fee the signer pays on the source chain for a transfer.",
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
			token, err := a.GetToken(tokenFlag(cmd, a))
			if err != nil {
				return err
			}
			s, err := a.EstimateFee(cmd.Context(), token.Symbol, to, xb.Address(args[0]))
			if err != nil {
				return err
			}
			native := a.Tokens().Native()
			return printUpdates(cmd.Context(), s, false, func(estimate xb.AmountBlockchain) {
				human := estimate.ToHuman(native.Decimals)
				fmt.Println(asJson(map[string]string{
					"fee":         human.String(),
					"fee_raw":     estimate.String(),
					"with_margin": human.Mul(fee.SafetyMargin).String(),
					"token":       native.Symbol,
				}))
			})
		},
	}
	addTokenFlags(cmd, true)
	return cmd
}
