// Package digest enumerates peptides between cleavage sites
package digest

import (
	"strings"

	"github.com/MaxAlex/alphapeptdeep/pkg/protease"
)

// Fragment is one peptide produced by cleaving a protein sequence.
type Fragment struct {
	Sequence     string
	MissCleavage int
	IsNterm      bool // starts at the protein N-terminus
	IsCterm      bool // ends at the protein C-terminus
}

// Cleave enumerates the peptides between cut positions that skip at most
// maxMissed cuts and whose length is within [minLen, maxLen]. cuts must be
// strictly increasing, start at 0 and end at len(seq).
func Cleave(seq string, cuts []int, maxMissed, minLen, maxLen int) []Fragment {
	var out []Fragment
	for i, start := range cuts {
		last := i + 1 + maxMissed
		if last >= len(cuts) {
			last = len(cuts) - 1
		}
		for j := i + 1; j <= last; j++ {
			end := cuts[j]
			if end > start+maxLen {
				break // later ends are longer still
			}
			if end < start+minLen {
				continue
			}
			out = append(out, Fragment{
				Sequence:     seq[start:end],
				MissCleavage: j - i - 1,
				IsNterm:      start == 0,
				IsCterm:      end == len(seq),
			})
		}
	}
	return out
}

// AddMetLoss appends, for a protein starting with M, a copy of every fragment
// that is a prefix of seq and longer than minLen with the leading M removed.
// Copies are protein N-terminal.
func AddMetLoss(seq string, frags []Fragment, minLen int) []Fragment {
	if !strings.HasPrefix(seq, "M") {
		return frags
	}
	n := len(frags)
	for _, f := range frags[:n] {
		if len(f.Sequence) > minLen && strings.HasPrefix(seq, f.Sequence) {
			frags = append(frags, Fragment{
				Sequence:     f.Sequence[1:],
				MissCleavage: f.MissCleavage,
				IsNterm:      true,
				IsCterm:      f.IsCterm,
			})
		}
	}
	return frags
}

// Digester cleaves protein sequences with one protease and fixed limits.
type Digester struct {
	Rule               *protease.Rule
	MaxMissedCleavages int
	MinLength          int
	MaxLength          int
}

// NewDigester compiles the protease and returns a Digester.
func NewDigester(proteaseName string, maxMissed, minLen, maxLen int) (*Digester, error) {
	rule, err := protease.Compile(proteaseName)
	if err != nil {
		return nil, err
	}
	return &Digester{
		Rule:               rule,
		MaxMissedCleavages: maxMissed,
		MinLength:          minLen,
		MaxLength:          maxLen,
	}, nil
}

// CleaveSequence cuts seq and enumerates its peptides, including the
// N-terminal methionine loss variants.
func (d *Digester) CleaveSequence(seq string) []Fragment {
	cuts := d.Rule.CutPositions(seq)
	frags := Cleave(seq, cuts, d.MaxMissedCleavages, d.MinLength, d.MaxLength)
	return AddMetLoss(seq, frags, d.MinLength)
}
