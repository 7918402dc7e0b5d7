// peptdeep - in-silico digestion and peptide candidate library builder
package main

import (
	"fmt"
	"os"

	"github.com/MaxAlex/alphapeptdeep/cmd/peptdeep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
