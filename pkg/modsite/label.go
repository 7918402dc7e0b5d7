package modsite

import (
	"slices"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Labels is one labeling channel, e.g. dimethyl light:
// ["Dimethyl@Any N-term", "Dimethyl@K"].
type Labels struct {
	aas   string
	aaMod map[byte]string
	nterm string
	cterm string
}

// ParseLabels parses the label modifications of a channel. Only residue,
// "Any N-term" and "Any C-term" labels are used.
func ParseLabels(labels []string) (Labels, error) {
	l := Labels{aaMod: make(map[byte]string)}
	for _, label := range labels {
		spec, err := ParseSpec(label)
		if err != nil {
			return l, err
		}
		switch {
		case spec.Kind == Residue:
			if _, ok := l.aaMod[spec.AA]; !ok {
				l.aas += string(spec.AA)
			}
			l.aaMod[spec.AA] = label
		case spec.Kind == AnyNterm && spec.AA == 0:
			l.nterm = label
		case spec.Kind == AnyCterm && spec.AA == 0:
			l.cterm = label
		}
	}
	return l, nil
}

// Apply adds the labels to one modification assignment. A terminal label is
// skipped when the terminus is already modified.
func (l Labels) Apply(seq, mods, modSites string) (string, string) {
	sites := core.SplitField(modSites)
	addN := l.nterm != "" && !slices.Contains(sites, "0")
	addC := l.cterm != "" && !slices.Contains(sites, "-1")

	outMods := []string{mods}
	outSites := []string{modSites}
	if addN {
		outMods = append(outMods, l.nterm)
		outSites = append(outSites, "0")
	}
	if addC {
		outMods = append(outMods, l.cterm)
		outSites = append(outSites, "-1")
	}
	aaMods, aaSites := FixMods(seq, l.aas, l.aaMod)
	outMods = append(outMods, aaMods)
	outSites = append(outSites, aaSites)

	return core.JoinNonEmpty(outMods...), core.JoinNonEmpty(outSites...)
}
