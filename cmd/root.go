package cmd

import (
	"os"

	"github.com/mezonai/powchain/logx"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "powchain",
	Short: "Single-chain proof-of-work ledger",
	Long:  "Command line interface for submitting transfers to and mining blocks on a local proof-of-work ledger.",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ledgerFlags.ChainConfigPath, "chain-config", defaultChainConfigPath, "ledger settings (yaml)")
	flags.StringVar(&ledgerFlags.ConfigPath, "config", defaultConfigPath, "mining, merkle and metrics settings (ini)")
	flags.StringVar(&ledgerFlags.MinerAddress, "miner", "", "override the miner address")
	flags.Uint32Var(&ledgerFlags.Difficulty, "difficulty", 0, "override the initial difficulty")
	flags.Float64Var(&ledgerFlags.Reward, "reward", 0, "override the block reward")
	flags.DurationVar(&ledgerFlags.Timeout, "timeout", 0, "deadline for each mined block, 0 for none")
	flags.StringVar(&ledgerFlags.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
