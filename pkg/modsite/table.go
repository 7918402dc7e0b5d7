package modsite

import (
	"fmt"
	"strings"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// termMods holds terminal modifications keyed by residue; key 0 applies to
// any residue.
type termMods struct {
	protein map[byte][]string
	peptide map[byte][]string
}

func newTermMods() termMods {
	return termMods{
		protein: make(map[byte][]string),
		peptide: make(map[byte][]string),
	}
}

// candidates lists the modifications for a terminus with residue aa, protein
// level first, each level any-residue first.
func (t termMods) candidates(aa byte, isProtein bool) []string {
	var out []string
	if isProtein {
		out = append(out, t.protein[0]...)
		out = append(out, t.protein[aa]...)
	}
	out = append(out, t.peptide[0]...)
	out = append(out, t.peptide[aa]...)
	return out
}

// Table is the modification configuration of a library: fixed residue and
// terminal modifications plus variable ones. The variable expansion
// strategy is chosen once, when the table is built.
type Table struct {
	fixAAs string
	fix    map[byte]string

	fixNterm termMods
	fixCterm termMods

	expander Expander
	varNterm termMods
	varCterm termMods
}

// NewTable parses fixed and variable modifications. A variable residue
// modification on a residue that already carries a fixed one is ignored.
func NewTable(fixed, variable []string) (*Table, error) {
	t := &Table{
		fix:      make(map[byte]string),
		fixNterm: newTermMods(),
		fixCterm: newTermMods(),
		varNterm: newTermMods(),
		varCterm: newTermMods(),
	}

	for _, mod := range fixed {
		spec, err := ParseSpec(mod)
		if err != nil {
			return nil, err
		}
		if spec.Kind == Residue {
			if prev, ok := t.fix[spec.AA]; ok {
				return nil, fmt.Errorf("fixed modifications '%s' and '%s' on the same residue", prev, mod)
			}
			t.fix[spec.AA] = mod
			t.fixAAs += string(spec.AA)
			continue
		}
		if err := t.addTerm(spec, t.fixNterm, t.fixCterm, false); err != nil {
			return nil, err
		}
	}

	varMods := make(map[byte][]string)
	for _, mod := range variable {
		spec, err := ParseSpec(mod)
		if err != nil {
			return nil, err
		}
		if spec.Kind == Residue {
			if _, ok := t.fix[spec.AA]; ok {
				continue
			}
			varMods[spec.AA] = append(varMods[spec.AA], mod)
			continue
		}
		if err := t.addTerm(spec, t.varNterm, t.varCterm, true); err != nil {
			return nil, err
		}
	}
	t.expander = NewExpander(varMods)

	return t, nil
}

func (t *Table) addTerm(spec Spec, nterm, cterm termMods, allowMany bool) error {
	var target map[byte][]string
	switch spec.Kind {
	case AnyNterm:
		target = nterm.peptide
	case ProteinNterm:
		target = nterm.protein
	case AnyCterm:
		target = cterm.peptide
	case ProteinCterm:
		target = cterm.protein
	}
	if !allowMany && len(target[spec.AA]) > 0 {
		return fmt.Errorf("fixed modifications '%s' and '%s' on the same terminus", target[spec.AA][0], spec.Name)
	}
	target[spec.AA] = append(target[spec.AA], spec.Name)
	return nil
}

// MultiModsPerResidue reports whether some residue has more than one
// variable modification.
func (t *Table) MultiModsPerResidue() bool {
	_, ok := t.expander.(multiModsPerResidue)
	return ok
}

// Expander returns the variable modification strategy of the table.
func (t *Table) Expander() Expander {
	return t.expander
}

// FixMods returns the fixed residue modifications of seq.
func (t *Table) FixMods(seq string) (mods, sites string) {
	return FixMods(seq, t.fixAAs, t.fix)
}

// FixMods places the modification of every residue of seq found in aas.
func FixMods(seq, aas string, table map[byte]string) (mods, sites string) {
	var m, s strings.Builder
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(aas, seq[i]) < 0 {
			continue
		}
		if m.Len() > 0 {
			m.WriteByte(';')
			s.WriteByte(';')
		}
		m.WriteString(table[seq[i]])
		fmt.Fprintf(&s, "%d", i+1)
	}
	return m.String(), s.String()
}

// VarMods enumerates the variable residue modifications of seq.
func (t *Table) VarMods(seq string, maxMods, maxCombs int, keepUnmodified bool) (mods, sites []string) {
	return VarMods(seq, t.expander, maxMods, maxCombs, keepUnmodified)
}

// ModsForPeptide returns every modification assignment of a peptide as the
// product fixed x N-term variable x C-term variable x residue variable, the
// last factor varying fastest. The unmodified residue form is always kept and
// counts against maxCombs.
func (t *Table) ModsForPeptide(seq string, isProtNterm, isProtCterm bool, maxMods, maxCombs int) (mods, sites []string) {
	if seq == "" {
		return []string{""}, []string{""}
	}
	first, last := seq[0], seq[len(seq)-1]

	fixMods, fixSites := t.FixMods(seq)
	ntermFix := firstOf(t.fixNterm.candidates(first, isProtNterm))
	ctermFix := firstOf(t.fixCterm.candidates(last, isProtCterm))
	if ntermFix != "" {
		fixMods = core.JoinNonEmpty(fixMods, ntermFix)
		fixSites = core.JoinNonEmpty(fixSites, "0")
	}
	if ctermFix != "" {
		fixMods = core.JoinNonEmpty(fixMods, ctermFix)
		fixSites = core.JoinNonEmpty(fixSites, "-1")
	}

	ntermMods := []string{""}
	if ntermFix == "" {
		ntermMods = append(ntermMods, t.varNterm.candidates(first, isProtNterm)...)
	}
	ctermMods := []string{""}
	if ctermFix == "" {
		ctermMods = append(ctermMods, t.varCterm.candidates(last, isProtCterm)...)
	}

	varMods, varSites := t.VarMods(seq, maxMods, maxCombs-1, true)

	n := len(ntermMods) * len(ctermMods) * len(varMods)
	mods = make([]string, 0, n)
	sites = make([]string, 0, n)
	for i, nm := range ntermMods {
		for j, cm := range ctermMods {
			for k, vm := range varMods {
				mods = append(mods, core.JoinNonEmpty(fixMods, nm, cm, vm))
				sites = append(sites, core.JoinNonEmpty(fixSites, termSite(i, "0"), termSite(j, "-1"), varSites[k]))
			}
		}
	}
	return mods, sites
}

func termSite(i int, site string) string {
	if i == 0 {
		return ""
	}
	return site
}

func firstOf(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}
