package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
)

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote [input-reserve] [output-reserve] [amount-in] [fee-rate-bps]",
		Short: "Price a single constant-product trade without any pool state",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]uint64, len(args))
			for i, arg := range args {
				v, err := cast.ToUint64E(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				values[i] = v
			}

			quote, err := keeper.CalculateSwap(values[0], values[1], values[2], values[3])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quote)
		},
	}
}
