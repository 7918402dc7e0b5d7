// Package library builds a peptide candidate table from a protein database:
// digestion, decoys, modifications, labeling and charge states.
//
// A Library moves through fixed stages and each operation checks that the
// stage it depends on has completed:
//
//	Empty -> ProteinsLoaded -> PeptidesDigested -> [DecoysAppended]
//	      -> ModificationsApplied -> ChargesAssigned
//
// Output is deterministic: the same proteins and settings always give the
// same rows in the same order.
package library

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MaxAlex/alphapeptdeep/pkg/config"
	"github.com/MaxAlex/alphapeptdeep/pkg/core"
	"github.com/MaxAlex/alphapeptdeep/pkg/digest"
	"github.com/MaxAlex/alphapeptdeep/pkg/filter"
	"github.com/MaxAlex/alphapeptdeep/pkg/lcp"
	"github.com/MaxAlex/alphapeptdeep/pkg/modsite"
	"github.com/MaxAlex/alphapeptdeep/pkg/reader/fasta"
)

// Stage is the build stage of a Library.
type Stage int

const (
	Empty Stage = iota
	ProteinsLoaded
	PeptidesDigested
	DecoysAppended
	ModificationsApplied
	ChargesAssigned
)

var stageNames = [...]string{
	Empty:                "empty",
	ProteinsLoaded:       "proteins loaded",
	PeptidesDigested:     "peptides digested",
	DecoysAppended:       "decoys appended",
	ModificationsApplied: "modifications applied",
	ChargesAssigned:      "charges assigned",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Library is a peptide candidate library under construction.
type Library struct {
	// Mods resolves modification names to masses when charges are assigned.
	// Custom modifications can be added before AddCharges.
	Mods *core.ModDatabase

	cfg      config.Config
	digester *digest.Digester // nil in exhaustive mode
	table    *modsite.Table
	mzFilter filter.Config

	stage    Stage
	proteins []core.Protein
	peptides []core.Peptide
	rows     []core.Precursor
}

// New validates the settings and prepares the protease and the modification
// table. Exhaustive and cleavage digestion are exclusive: the mode is fixed
// by cfg.Digest.Exhaustive for the life of the library.
func New(cfg config.Config) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Library{
		Mods: core.DefaultModDatabase(),
		cfg:  cfg,
		mzFilter: filter.Config{
			MZMin: cfg.Precursor.MZMin,
			MZMax: cfg.Precursor.MZMax,
		},
	}

	if !cfg.Digest.Exhaustive {
		d, err := digest.NewDigester(
			cfg.Digest.Protease,
			cfg.Digest.MaxMissedCleavages,
			cfg.Digest.MinLength,
			cfg.Digest.MaxLength,
		)
		if err != nil {
			return nil, err
		}
		l.digester = d
	}

	table, err := modsite.NewTable(cfg.Mods.Fixed, cfg.Mods.Variable)
	if err != nil {
		return nil, fmt.Errorf("invalid modification settings: %w", err)
	}
	l.table = table

	return l, nil
}

// Stage returns the current build stage.
func (l *Library) Stage() Stage { return l.stage }

// Config returns the settings the library was built with.
func (l *Library) Config() config.Config { return l.cfg }

// Proteins returns the loaded proteins with their concatenation offsets.
func (l *Library) Proteins() []core.Protein { return l.proteins }

// Peptides returns the digested peptides, decoys included.
func (l *Library) Peptides() []core.Peptide { return l.peptides }

// Precursors returns the candidate rows once modifications are applied.
func (l *Library) Precursors() []core.Precursor { return l.rows }

func (l *Library) require(op string, stages ...Stage) error {
	if slices.Contains(stages, l.stage) {
		return nil
	}
	want := make([]string, len(stages))
	for i, s := range stages {
		want[i] = s.String()
	}
	return &core.StateError{Op: op, Stage: l.stage.String(), Want: strings.Join(want, " or ")}
}

// LoadFASTA reads proteins from FASTA files. Malformed records are skipped and
// returned; the load fails only when a file cannot be read.
func (l *Library) LoadFASTA(paths []string) ([]*fasta.RecordError, error) {
	if err := l.require("LoadFASTA", Empty); err != nil {
		return nil, err
	}
	proteins, skipped, err := fasta.LoadProteins(paths)
	if err != nil {
		return skipped, err
	}
	return skipped, l.LoadProteins(proteins)
}

// LoadProteins takes ownership of proteins and assigns their concatenation
// offsets.
func (l *Library) LoadProteins(proteins []core.Protein) error {
	if err := l.require("LoadProteins", Empty); err != nil {
		return err
	}
	l.proteins = proteins
	core.ConcatProteins(l.proteins)
	l.stage = ProteinsLoaded
	return nil
}

// LoadPeptides starts the library from a peptide list instead of proteins.
// proteinNames is optional and parallel to seqs. The peptides are not
// protein-terminal and carry no protein indexes.
func (l *Library) LoadPeptides(seqs, proteinNames []string) error {
	if err := l.require("LoadPeptides", Empty); err != nil {
		return err
	}
	if proteinNames != nil && len(proteinNames) != len(seqs) {
		return fmt.Errorf("%d peptides but %d protein names", len(seqs), len(proteinNames))
	}

	l.peptides = make([]core.Peptide, len(seqs))
	for i, seq := range seqs {
		l.peptides[i].Sequence = seq
		if proteinNames != nil {
			l.peptides[i].ProteinName = proteinNames[i]
		}
	}
	l.stage = PeptidesDigested
	return nil
}

// Digest enumerates the peptides of the loaded proteins, by cleavage or
// exhaustively depending on the settings. Peptides with the same sequence are
// merged in first-seen order: protein indexes are united and terminal flags
// are OR-ed.
func (l *Library) Digest() error {
	if err := l.require("Digest", ProteinsLoaded); err != nil {
		return err
	}

	proteins := l.proteins
	if l.cfg.Digest.IToL {
		proteins = slices.Clone(l.proteins)
		for i := range proteins {
			proteins[i].Sequence = strings.ReplaceAll(proteins[i].Sequence, "I", "L")
		}
	}

	if l.digester == nil {
		l.peptides = digestExhaustive(proteins, l.cfg.Digest.MinLength, l.cfg.Digest.MaxLength)
	} else {
		l.peptides = digestCleavage(proteins, l.digester)
	}
	l.stage = PeptidesDigested
	return nil
}

func digestCleavage(proteins []core.Protein, d *digest.Digester) []core.Peptide {
	var peptides []core.Peptide
	seen := make(map[string]int)

	for i := range proteins {
		for _, f := range d.CleaveSequence(proteins[i].Sequence) {
			if j, ok := seen[f.Sequence]; ok {
				p := &peptides[j]
				p.AddProtein(i)
				p.IsProtNterm = p.IsProtNterm || f.IsNterm
				p.IsProtCterm = p.IsProtCterm || f.IsCterm
				continue
			}
			seen[f.Sequence] = len(peptides)
			peptides = append(peptides, core.Peptide{
				Sequence:     f.Sequence,
				MissCleavage: f.MissCleavage,
				IsProtNterm:  f.IsNterm,
				IsProtCterm:  f.IsCterm,
				ProteinIdxes: []int{i},
			})
		}
	}
	return peptides
}

// digestExhaustive emits every distinct substring of the protein database
// within the length window once, attributed to every protein containing it.
func digestExhaustive(proteins []core.Protein, minLen, maxLen int) []core.Peptide {
	text := core.ConcatProteins(proteins)
	idx := lcp.Build(text)
	starts, ends := lcp.Substrings(text, idx.LCP, minLen, maxLen, core.Delimiter)

	peptides := make([]core.Peptide, 0, len(starts))
	for k := range starts {
		start, end := int(starts[k]), int(ends[k])
		p := core.Peptide{Sequence: text[start:end]}
		for _, pos := range idx.Occurrences(start, end-start) {
			i := core.ProteinAt(proteins, int(pos))
			if i < 0 {
				continue
			}
			prot := &proteins[i]
			p.AddProtein(i)
			if int(pos) == prot.Offset {
				p.IsProtNterm = true
			}
			if int(pos)+end-start == prot.Offset+len(prot.Sequence) {
				p.IsProtCterm = true
			}
		}
		peptides = append(peptides, p)
	}
	return peptides
}
