package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Peptide is a digestion product before modifications are applied. Peptides
// with the same Sequence are merged during digestion.
type Peptide struct {
	Sequence     string
	MissCleavage int
	IsProtNterm  bool
	IsProtCterm  bool
	ProteinIdxes []int // indexes into the loaded protein list, first-seen order
	ProteinName  string
	Decoy        bool
}

// AddProtein records that the peptide also occurs in protein idx.
func (p *Peptide) AddProtein(idx int) {
	for _, i := range p.ProteinIdxes {
		if i == idx {
			return
		}
	}
	p.ProteinIdxes = append(p.ProteinIdxes, idx)
}

// Precursor is one row of the candidate table: a peptide with one modification
// assignment and one charge state.
type Precursor struct {
	// Required fields
	Sequence string
	Mods     string // semicolon-joined modification names
	ModSites string // semicolon-joined sites, parallel to Mods
	Charge   int
	NAA      int // peptide length

	// Digestion metadata
	MissCleavage int
	IsProtNterm  bool
	IsProtCterm  bool
	ProteinIdxes string // semicolon-joined protein indexes
	Proteins     string // semicolon-joined protein IDs, filled by AppendProteinNames
	Decoy        bool
	LabelChannel string

	// Computed
	PrecursorMZ float64

	// Values attached by a prediction collaborator, keyed by column name
	// (e.g. "rt_pred", "mobility_pred").
	Predictions map[string]float64
}

// ValidationError represents an error found during precursor validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a precursor row is structurally sound.
func (p *Precursor) Validate() error {
	var errs []string

	if p.Sequence == "" {
		errs = append(errs, "sequence is required")
	}
	if p.Charge <= 0 {
		errs = append(errs, "charge must be positive")
	}
	if p.NAA != len(p.Sequence) {
		errs = append(errs, fmt.Sprintf("nAA %d does not match sequence length %d", p.NAA, len(p.Sequence)))
	}
	if math.IsNaN(p.PrecursorMZ) || math.IsInf(p.PrecursorMZ, 0) {
		errs = append(errs, "precursor m/z is invalid")
	}

	mods := SplitField(p.Mods)
	sites := SplitField(p.ModSites)
	if len(mods) != len(sites) {
		errs = append(errs, fmt.Sprintf("%d mods but %d mod sites", len(mods), len(sites)))
	}
	for _, s := range sites {
		site, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, fmt.Sprintf("mod site %q is not an integer", s))
			continue
		}
		if site < -1 || site > len(p.Sequence) {
			errs = append(errs, fmt.Sprintf("mod site %d out of range", site))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Precursor",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// Name returns the precursor name in format "Sequence/Charge".
func (p *Precursor) Name() string {
	return fmt.Sprintf("%s/%d", p.Sequence, p.Charge)
}

// JoinInts joins integers with semicolons, e.g. protein indexes.
func JoinInts(xs []int) string {
	var b strings.Builder
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// JoinNonEmpty joins the non-empty parts with semicolons.
func JoinNonEmpty(parts ...string) string {
	var b strings.Builder
	for _, s := range parts {
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(s)
	}
	return b.String()
}

// SplitField splits a semicolon-joined field. An empty field has no items.
func SplitField(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}
