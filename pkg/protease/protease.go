// Package protease compiles cleavage rules and finds cut positions
package protease

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/MaxAlex/alphapeptdeep/pkg/config"
	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Rule is a compiled cleavage rule. A cut is placed after the first residue
// of every match, so lookaround decides the context, e.g. `[KR](?=[^P])`.
type Rule struct {
	Name    string
	Pattern string
	re      *regexp2.Regexp
}

// Compile resolves name against the built-in protease table and compiles
// the regex. Unknown names are compiled as regex patterns themselves.
func Compile(name string) (*Rule, error) {
	table, err := config.Proteases()
	if err != nil {
		return nil, err
	}
	return CompileWith(table, name)
}

// CompileWith is Compile with a caller supplied protease table.
func CompileWith(table map[string]string, name string) (*Rule, error) {
	pattern, ok := table[strings.ToLower(name)]
	if !ok {
		pattern = name
	}
	if pattern == "" {
		return nil, &core.CompilationError{Pattern: name, Err: fmt.Errorf("empty pattern")}
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, &core.CompilationError{Pattern: pattern, Err: err}
	}

	return &Rule{Name: name, Pattern: pattern, re: re}, nil
}

// CutPositions returns 0, the position after the first residue of every
// match, and len(seq), sorted and without duplicates.
func (r *Rule) CutPositions(seq string) []int {
	cuts := []int{0}

	m, err := r.re.FindStringMatch(seq)
	for err == nil && m != nil {
		// sequences are ASCII, so rune indexes are byte offsets
		if c := m.Index + 1; c <= len(seq) {
			cuts = append(cuts, c)
		}
		m, err = r.re.FindNextMatch(m)
	}
	cuts = append(cuts, len(seq))

	return dedupSorted(cuts)
}

func dedupSorted(cuts []int) []int {
	if !sort.IntsAreSorted(cuts) {
		sort.Ints(cuts)
	}
	out := cuts[:1]
	for _, c := range cuts[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}
