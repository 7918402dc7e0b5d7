// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings merges the embedded defaults, a user settings file and the flags
// bound in init.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "peptdeep",
	Short: "peptdeep - peptide candidate library builder",
	Long: `peptdeep digests protein databases in silico and enumerates peptide
candidates for spectral library prediction.

Supports:
- Protease rules with missed cleavages and N-terminal methionine loss
- Exhaustive (non-specific) digestion over a suffix array
- Fixed, variable and terminal modifications
- Decoys, labeling channels and charge states
- SQLite and TSV output`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(proteasesCmd)
	rootCmd.AddCommand(summarizeCmd)
}
