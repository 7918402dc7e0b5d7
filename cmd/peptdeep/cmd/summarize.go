package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
	"github.com/MaxAlex/alphapeptdeep/pkg/filter"
	"github.com/MaxAlex/alphapeptdeep/pkg/stats"
	"github.com/MaxAlex/alphapeptdeep/pkg/writer/sqlite"
	"github.com/MaxAlex/alphapeptdeep/pkg/writer/tsv"
)

var (
	// Flags for summarize command
	plotFile       string
	targetsOnly    bool
	channelNames   []string
	summaryMaxMods int
)

func init() {
	summarizeCmd.Flags().StringVar(&plotFile, "plot", "", "Write the peptide length histogram to this file (.png, .svg, .pdf)")
	summarizeCmd.Flags().BoolVar(&targetsOnly, "targets-only", false, "Ignore decoy precursors")
	summarizeCmd.Flags().StringSliceVar(&channelNames, "channel", nil, "Only count these label channels")
	summarizeCmd.Flags().IntVar(&summaryMaxMods, "max-mods", 0, "Only count precursors with at most this many modifications (0 = no limit)")
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a peptide candidate library",
	Long: `Print summary statistics about a library written by 'peptdeep digest':
precursor and peptide counts, length and m/z distributions, charge states and
label channels.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := detectFormat(path, "")
	if err != nil {
		return err
	}

	var rows []core.Precursor
	switch format {
	case "sqlite":
		h, proteins, precursors, err := sqlite.ReadLibrary(path)
		if err != nil {
			return fmt.Errorf("failed to read library: %w", err)
		}
		fmt.Printf("Library: %s (created %s)\n", path, h.CreationDate)
		if h.Description != "" {
			fmt.Printf("Settings: %s\n", h.Description)
		}
		fmt.Printf("Proteins: %d\n", len(proteins))
		rows = precursors
	case "tsv":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		rows, err = tsv.Read(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to read library: %w", err)
		}
		fmt.Printf("Library: %s\n", path)
	}

	if targetsOnly {
		rows = filter.RemoveDecoys(rows)
	}
	fc := &filter.Config{LabelChannels: channelNames, MaxMods: summaryMaxMods}
	rows = fc.Apply(rows)

	stats.Summarize(rows).Print(os.Stdout)

	if plotFile != "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(plotFile)), ".")
		if ext == "" {
			return fmt.Errorf("cannot detect plot format from '%s'", plotFile)
		}
		f, err := os.Create(plotFile)
		if err != nil {
			return fmt.Errorf("failed to create plot file: %w", err)
		}
		if err := stats.PlotLengths(f, rows, ext); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write plot file: %w", err)
		}
		fmt.Printf("Plot: %s\n", plotFile)
	}

	return nil
}
