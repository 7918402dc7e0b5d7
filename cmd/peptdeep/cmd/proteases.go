package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MaxAlex/alphapeptdeep/pkg/config"
	"github.com/MaxAlex/alphapeptdeep/pkg/protease"
)

var proteasesCmd = &cobra.Command{
	Use:   "proteases",
	Short: "List the known proteases and their cleavage rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := config.Proteases()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATTERN")
		for _, name := range config.ProteaseNames(table) {
			// every table entry must compile
			rule, err := protease.CompileWith(table, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\n", rule.Name, rule.Pattern)
		}
		return w.Flush()
	},
}
