package cmd

import (
	"github.com/mezonai/powchain/jsonx"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Mine the genesis block and print the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		ld, err := buildLedger(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if showJSON {
			return jsonx.NewEncoder(out).Encode(ld.Blocks())
		}
		return renderChain(out, ld.Blocks())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print blocks as JSON")
}
