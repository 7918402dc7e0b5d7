// Package modsite enumerates modification assignments for peptides.
//
// Modifications are written "Name@Site". Site is a residue ("Oxidation@M"), a
// terminus ("Acetyl@Protein N-term", "Amidated@Any C-term") or a terminus
// restricted to a residue ("Gln->pyro-Glu@Q^Any N-term"). Assignments are
// serialized as semicolon-joined names with parallel sites: 1-based residue
// positions, 0 for the peptide N-terminus and -1 for the C-terminus.
package modsite

import (
	"fmt"
	"strings"
)

// Kind is the kind of site a modification binds to.
type Kind int

const (
	Residue Kind = iota
	AnyNterm
	ProteinNterm
	AnyCterm
	ProteinCterm
)

var kindNames = map[string]Kind{
	"Any N-term":     AnyNterm,
	"Protein N-term": ProteinNterm,
	"Any C-term":     AnyCterm,
	"Protein C-term": ProteinCterm,
}

func (k Kind) String() string {
	for name, kk := range kindNames {
		if kk == k {
			return name
		}
	}
	return "Residue"
}

// Spec is a parsed modification.
type Spec struct {
	Name string // full name, e.g. "Oxidation@M"
	Kind Kind
	AA   byte // residue; 0 for a terminal modification on any residue
}

// ParseSpec parses a "Name@Site" modification.
func ParseSpec(mod string) (Spec, error) {
	at := strings.LastIndexByte(mod, '@')
	if at <= 0 || at == len(mod)-1 {
		return Spec{}, fmt.Errorf("invalid modification '%s', expected 'name@site'", mod)
	}
	site := mod[at+1:]

	if len(site) == 1 {
		if site[0] < 'A' || site[0] > 'Z' {
			return Spec{}, fmt.Errorf("invalid residue '%s' in modification '%s'", site, mod)
		}
		return Spec{Name: mod, Kind: Residue, AA: site[0]}, nil
	}

	var aa byte
	term := site
	if aaPart, rest, ok := strings.Cut(site, "^"); ok {
		if len(aaPart) != 1 {
			return Spec{}, fmt.Errorf("invalid residue '%s' in modification '%s'", aaPart, mod)
		}
		aa = aaPart[0]
		term = rest
	}

	kind, ok := kindNames[term]
	if !ok {
		return Spec{}, fmt.Errorf("unknown modification site '%s' in '%s'", term, mod)
	}
	return Spec{Name: mod, Kind: kind, AA: aa}, nil
}

// CandidateSites returns the 1-based positions of seq whose residue is in aas.
func CandidateSites(seq, aas string) []int {
	var sites []int
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(aas, seq[i]) >= 0 {
			sites = append(sites, i+1)
		}
	}
	return sites
}
