// Package cli implements the settle command: the settlement engine over JSON
// input files, without a server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// options are the flags shared by every engine command.
type options struct {
	inputPath  string
	configPath string
	algorithm  string
	currency   string
	working    string
	jsonOutput bool
}

// NewRootCmd builds the settle command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "settle",
		Short: "Settle group debts with the fewest payments",
		Long: `settle computes settlement plans for a group's debts.

Input files are JSON:

  {
    "users": ["alice", "bob"],
    "debts": [{"from": "alice", "to": "bob", "amount": "12.50", "currency": "USD"}],
    "exchange_rates": {"EUR_USD": "1.08"},
    "friendships": {"alice_bob": "0.9"}
  }`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file")

	root.AddCommand(
		newPlanCmd(opts),
		newCompareCmd(opts),
		newSimplifyCmd(opts),
		newBalancesCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	root := NewRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// inputFlags registers the flags of commands that read an input file.
func inputFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.inputPath, "file", "f", "", "Input JSON file (- for stdin)")
	cmd.Flags().StringVar(&opts.working, "working", "", "Working currency (default: most frequent debt currency)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print JSON instead of text")
	_ = cmd.MarkFlagRequired("file")
}
