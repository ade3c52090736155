package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type MineConfig struct {
	Blocks int
	Txs    []string
}

var mineConfig MineConfig

var mineCmd = &cobra.Command{
	Use:   "mine [flags]",
	Short: "Mine blocks non-interactively",
	Long: `Starts a ledger, submits the given transactions and mines the requested number of blocks.
Transactions all go into the first mined block.

Examples:
  # Mine two blocks, the first carrying two transfers
  mine -b 2 -t alice:bob:5 -t bob:carol:1.5

  # Mine one block with the corrected leading-zero rule from config.ini and a deadline
  mine --config ./config/config.ini --timeout 30s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMine(cmd, mineConfig)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)

	mineCmd.Flags().IntVarP(&mineConfig.Blocks, "blocks", "b", 1, "number of blocks to mine after genesis")
	mineCmd.Flags().StringArrayVarP(&mineConfig.Txs, "tx", "t", nil, "transaction as sender:recipient:amount (repeatable)")
}

func runMine(cmd *cobra.Command, cfg MineConfig) error {
	specs := make([]txSpec, 0, len(cfg.Txs))
	for _, raw := range cfg.Txs {
		spec, err := parseTxSpec(raw)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	ld, err := buildLedger(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	p := printer{w: out}

	genesis, _ := ld.Block(0)
	renderBlock(out, 0, genesis)

	for _, spec := range specs {
		ld.SubmitTransaction(spec.Sender, spec.Recipient, spec.Amount)
	}
	for i := 0; i < cfg.Blocks; i++ {
		b, err := ld.MineBlock(ctx)
		if err != nil {
			return fmt.Errorf("mine block %d: %w", ld.Len(), err)
		}
		renderBlock(out, ld.Height(), b)
	}
	p.success("Chain height %d, total work %s", ld.Height(), ld.TotalWork().Dec())
	return nil
}
