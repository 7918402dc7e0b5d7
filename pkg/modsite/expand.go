package modsite

import (
	"sort"
	"strings"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Expander turns a set of modified sites into modification strings.
type Expander interface {
	// Expand appends at most limit semicolon-joined modification strings
	// for the 1-based sites of seq to dst.
	Expand(seq string, sites []int, limit int, dst []string) []string

	// AAs returns the residues that can carry a variable modification.
	AAs() string
}

// NewExpander picks the expansion strategy for a residue to modification
// table: one name per residue when no residue has more than one variable
// modification, the Cartesian product of choices otherwise.
func NewExpander(mods map[byte][]string) Expander {
	multi := false
	for _, names := range mods {
		if len(names) > 1 {
			multi = true
			break
		}
	}

	if multi {
		m := make(multiModsPerResidue, len(mods))
		for aa, names := range mods {
			m[aa] = names
		}
		return m
	}

	s := make(singleModPerResidue, len(mods))
	for aa, names := range mods {
		if len(names) > 0 {
			s[aa] = names[0]
		}
	}
	return s
}

type singleModPerResidue map[byte]string

func (m singleModPerResidue) Expand(seq string, sites []int, limit int, dst []string) []string {
	if limit < 1 {
		return dst
	}
	var b strings.Builder
	for i, site := range sites {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(m[seq[site-1]])
	}
	return append(dst, b.String())
}

func (m singleModPerResidue) AAs() string { return residueKeys(m) }

type multiModsPerResidue map[byte][]string

// Expand walks the choices like an odometer, the last site turning fastest,
// and stops after limit strings.
func (m multiModsPerResidue) Expand(seq string, sites []int, limit int, dst []string) []string {
	choices := make([][]string, len(sites))
	for i, site := range sites {
		choices[i] = m[seq[site-1]]
		if len(choices[i]) == 0 {
			return dst
		}
	}

	pick := make([]int, len(sites))
	var b strings.Builder
	for n := 0; n < limit; n++ {
		b.Reset()
		for i, c := range pick {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(choices[i][c])
		}
		dst = append(dst, b.String())

		i := len(pick) - 1
		for ; i >= 0; i-- {
			pick[i]++
			if pick[i] < len(choices[i]) {
				break
			}
			pick[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return dst
}

func (m multiModsPerResidue) AAs() string { return residueKeys(m) }

func residueKeys[V any](m map[byte]V) string {
	aas := make([]byte, 0, len(m))
	for aa := range m {
		aas = append(aas, aa)
	}
	sort.Slice(aas, func(i, j int) bool { return aas[i] < aas[j] })
	return string(aas)
}

// VarMods enumerates the variable modification assignments of seq: every
// combination of 1..maxMods candidate sites, smallest combinations first,
// each expanded by e. At most maxCombs assignments are returned, plus an
// empty one when keepUnmodified is set. Truncation is silent.
func VarMods(seq string, e Expander, maxMods, maxCombs int, keepUnmodified bool) (mods, sites []string) {
	candidates := CandidateSites(seq, e.AAs())
	combs := NewCombinations(candidates, maxMods, maxCombs)
	for len(mods) < maxCombs && combs.Next() {
		set := combs.Sites()
		n := len(mods)
		mods = e.Expand(seq, set, maxCombs-len(mods), mods)
		siteStr := core.JoinInts(set)
		for range mods[n:] {
			sites = append(sites, siteStr)
		}
	}
	if keepUnmodified {
		mods = append(mods, "")
		sites = append(sites, "")
	}
	return mods, sites
}
