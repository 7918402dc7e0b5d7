package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MaxAlex/alphapeptdeep/pkg/config"
	"github.com/MaxAlex/alphapeptdeep/pkg/core"
	"github.com/MaxAlex/alphapeptdeep/pkg/library"
	"github.com/MaxAlex/alphapeptdeep/pkg/writer/sqlite"
	"github.com/MaxAlex/alphapeptdeep/pkg/writer/tsv"
)

var (
	// Flags for digest command
	fastaFiles     []string
	peptideFile    string
	outputFile     string
	outputFormat   string
	settingsFile   string
	modsCSV        string
	labelChannels  []string
	regularMods    []string
	regularMaxMods int
)

// settingFlags maps digest flags to settings keys
var settingFlags = map[string]string{
	"protease":         "digest.protease",
	"missed-cleavages": "digest.max-missed-cleavages",
	"min-length":       "digest.peptide-length-min",
	"max-length":       "digest.peptide-length-max",
	"exhaustive":       "digest.exhaustive",
	"i-to-l":           "digest.i-to-l",
	"fix-mods":         "modifications.fix-mods",
	"var-mods":         "modifications.var-mods",
	"max-var-mods":     "modifications.max-var-mod-num",
	"max-mod-combs":    "modifications.max-mod-combinations",
	"charge-min":       "precursor.charge-min",
	"charge-max":       "precursor.charge-max",
	"mz-min":           "precursor.mz-min",
	"mz-max":           "precursor.mz-max",
	"decoy":            "decoy.method",
	"seed":             "decoy.seed",
}

func init() {
	f := digestCmd.Flags()
	f.StringSliceVar(&fastaFiles, "fasta", nil, "FASTA file(s) to digest")
	f.StringVar(&peptideFile, "peptides", "", "CSV of peptides (sequence[,protein]) to use instead of FASTA files")
	f.StringVarP(&outputFile, "out", "o", "", "Output file path (required)")
	f.StringVarP(&outputFormat, "format", "f", "", "Output format: sqlite or tsv (auto-detect if not specified)")
	f.StringVarP(&settingsFile, "settings", "s", "", "YAML settings file overriding the defaults")
	f.StringVar(&modsCSV, "mods-csv", "", "CSV of custom modification masses (name,mass)")
	f.StringArrayVar(&labelChannels, "label", nil, "Labeling channel as name=Mod@Site,Mod@Site (repeatable)")
	f.StringSliceVar(&regularMods, "regular-mods", nil, "Extra variable modifications applied to every precursor (e.g. Phospho@S)")
	f.IntVar(&regularMaxMods, "regular-max-mods", 1, "Maximum number of regular modifications per precursor")

	f.String("protease", "", "Protease name or cleavage regex")
	f.Int("missed-cleavages", 0, "Maximum missed cleavages")
	f.Int("min-length", 0, "Minimum peptide length")
	f.Int("max-length", 0, "Maximum peptide length")
	f.Bool("exhaustive", false, "Enumerate every substring instead of cleaving")
	f.Bool("i-to-l", false, "Digest isoleucine as leucine")
	f.StringSlice("fix-mods", nil, "Fixed modifications (e.g. Carbamidomethyl@C)")
	f.StringSlice("var-mods", nil, "Variable modifications (e.g. Oxidation@M)")
	f.Int("max-var-mods", 0, "Maximum variable modifications per peptide")
	f.Int("max-mod-combs", 0, "Maximum modification assignments per peptide")
	f.Int("charge-min", 0, "Minimum precursor charge")
	f.Int("charge-max", 0, "Maximum precursor charge")
	f.Float64("mz-min", 0, "Minimum precursor m/z")
	f.Float64("mz-max", 0, "Maximum precursor m/z")
	f.String("decoy", "", "Decoy method: pseudo_reverse, diann or shuffle")
	f.Uint64("seed", 0, "Seed for shuffled decoys")

	for flag, key := range settingFlags {
		settings.BindPFlag(key, f.Lookup(flag))
	}

	digestCmd.MarkFlagRequired("out")
	digestCmd.MarkFlagsMutuallyExclusive("fasta", "peptides")
	digestCmd.MarkFlagsOneRequired("fasta", "peptides")
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Digest proteins into a peptide candidate library",
	Long: `Digest FASTA files (or load a peptide list), add decoys, modifications,
labels and charge states, and write the candidate table.

Examples:
  # Tryptic digest with the default settings
  peptdeep digest --fasta human.fasta --out library.db

  # Exhaustive digest of short peptides with decoys, as TSV
  peptdeep digest --fasta hla.fasta --exhaustive --min-length 8 --max-length 12 --decoy pseudo_reverse --out hla.tsv

  # Dimethyl labeling
  peptdeep digest --fasta yeast.fasta --out yeast.db \
    --label "light=Dimethyl@Any N-term,Dimethyl@K" \
    --label "heavy=Dimethyl:2H(4)@Any N-term,Dimethyl:2H(4)@K"`,
	RunE: runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	format, err := detectFormat(outputFile, outputFormat)
	if err != nil {
		return err
	}

	channels, err := parseLabelChannels(labelChannels)
	if err != nil {
		return err
	}

	cfg, err := config.Load(settings, settingsFile)
	if err != nil {
		return err
	}

	lib, err := library.New(cfg)
	if err != nil {
		return err
	}

	if modsCSV != "" {
		f, err := os.Open(modsCSV)
		if err != nil {
			return fmt.Errorf("failed to open modification CSV: %w", err)
		}
		err = lib.Mods.LoadFromCSV(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to load modification CSV: %w", err)
		}
	}

	if peptideFile != "" {
		seqs, proteins, err := loadPeptideCSV(peptideFile)
		if err != nil {
			return fmt.Errorf("failed to load peptides: %w", err)
		}
		if err := lib.LoadPeptides(seqs, proteins); err != nil {
			return err
		}
		fmt.Printf("Loaded %d peptides from %s\n", len(seqs), peptideFile)
	} else {
		fmt.Printf("Loading %s...\n", strings.Join(fastaFiles, ", "))
		skipped, err := lib.LoadFASTA(fastaFiles)
		for _, rec := range skipped {
			fmt.Fprintf(os.Stderr, "Warning: skipped record: %v\n", rec)
		}
		if err != nil {
			return fmt.Errorf("failed to load proteins: %w", err)
		}
		fmt.Printf("Loaded %d proteins\n", len(lib.Proteins()))

		if cfg.Digest.Exhaustive {
			fmt.Printf("Digest: exhaustive, length %d-%d\n", cfg.Digest.MinLength, cfg.Digest.MaxLength)
		} else {
			fmt.Printf("Digest: %s, %d missed cleavages, length %d-%d\n",
				cfg.Digest.Protease, cfg.Digest.MaxMissedCleavages, cfg.Digest.MinLength, cfg.Digest.MaxLength)
		}
		if err := lib.Digest(); err != nil {
			return err
		}
		fmt.Printf("Digested %d peptides\n", len(lib.Peptides()))
	}

	n, err := lib.AppendDecoys()
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("Appended %d %s decoys\n", n, cfg.Decoy.Method)
	}

	if err := lib.AddModifications(); err != nil {
		return err
	}
	if err := lib.AddPeptideLabeling(channels); err != nil {
		return err
	}
	if len(regularMods) > 0 {
		err := lib.AppendRegularModifications(regularMods, regularMaxMods, cfg.Mods.MaxCombinations, true)
		if err != nil {
			return err
		}
	}
	fmt.Printf("Modified forms: %d\n", len(lib.Precursors()))

	dropped, err := lib.AddCharges()
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Printf("Dropped %d precursors outside m/z %.1f-%.1f\n", dropped, cfg.Precursor.MZMin, cfg.Precursor.MZMax)
	}

	if err := lib.AppendProteinNames(); err != nil {
		return err
	}

	rows := lib.Precursors()
	invalid := 0
	for i := range rows {
		if err := rows[i].Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid precursor %s: %v\n", rows[i].Name(), err)
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d invalid precursors", invalid)
	}

	switch format {
	case "sqlite":
		err = writeSQLite(outputFile, lib, describe(cfg))
	case "tsv":
		err = writeTSV(outputFile, rows)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nDigest complete!\n")
	fmt.Printf("Precursors: %d\n", len(rows))
	fmt.Printf("Output: %s\n", outputFile)

	return nil
}

func detectFormat(path, format string) (string, error) {
	if format == "" {
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".db", ".sqlite", ".sqlite3":
			format = "sqlite"
		case ".tsv", ".txt":
			format = "tsv"
		default:
			return "", fmt.Errorf("cannot auto-detect format from extension '%s', please specify --format", ext)
		}
	}

	format = strings.ToLower(format)
	if format != "sqlite" && format != "tsv" {
		return "", fmt.Errorf("invalid output format '%s', must be sqlite or tsv", format)
	}
	return format, nil
}

// parseLabelChannels parses "name=Mod@Site,Mod@Site" values. A channel with
// no labels ("reference=") keeps the peptides unlabeled.
func parseLabelChannels(values []string) ([]library.LabelChannel, error) {
	var channels []library.LabelChannel
	seen := make(map[string]bool)
	for _, v := range values {
		name, labels, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid label channel '%s', expected name=Mod@Site,...", v)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate label channel '%s'", name)
		}
		seen[name] = true

		ch := library.LabelChannel{Name: name}
		for _, l := range strings.Split(labels, ",") {
			if l = strings.TrimSpace(l); l != "" {
				ch.Labels = append(ch.Labels, l)
			}
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// loadPeptideCSV reads "sequence[,protein]" lines after a header line.
func loadPeptideCSV(path string) (seqs, proteins []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Skip header line
	scanner.Scan()

	lineNum := 1
	withProteins := false
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		seq := strings.ToUpper(strings.TrimSpace(parts[0]))
		if seq == "" {
			return nil, nil, fmt.Errorf("line %d: empty sequence", lineNum)
		}
		seqs = append(seqs, seq)

		protein := ""
		if len(parts) > 1 {
			protein = strings.TrimSpace(parts[1])
			withProteins = true
		}
		proteins = append(proteins, protein)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading CSV: %w", err)
	}

	if !withProteins {
		proteins = nil
	}
	return seqs, proteins, nil
}

func describe(cfg config.Config) string {
	d := cfg.Digest
	digest := fmt.Sprintf("protease=%s missed=%d", d.Protease, d.MaxMissedCleavages)
	if d.Exhaustive {
		digest = "exhaustive"
	}
	return fmt.Sprintf("%s length=%d-%d fix=%s var=%s charge=%d-%d decoy=%s",
		digest, d.MinLength, d.MaxLength,
		strings.Join(cfg.Mods.Fixed, ";"), strings.Join(cfg.Mods.Variable, ";"),
		cfg.Precursor.ChargeMin, cfg.Precursor.ChargeMax, cfg.Decoy.Method)
}

func writeSQLite(path string, lib *library.Library, description string) error {
	// Start from an empty database
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing output: %w", err)
	}

	w, err := sqlite.NewWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	defer w.Close()
	w.Description = description

	proteins := lib.Proteins()
	for i := range proteins {
		if err := w.WriteProtein(&proteins[i]); err != nil {
			return err
		}
	}

	rows := lib.Precursors()
	for i := range rows {
		if err := w.WritePrecursor(&rows[i]); err != nil {
			return fmt.Errorf("failed to write precursor %s: %w", rows[i].Name(), err)
		}
		if (i+1)%100000 == 0 {
			fmt.Printf("Written %d precursors...\n", i+1)
		}
	}

	if err := w.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}
	return nil
}

func writeTSV(path string, rows []core.Precursor) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := tsv.Write(bw, rows); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}
