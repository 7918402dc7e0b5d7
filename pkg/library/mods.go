package library

import (
	"fmt"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
	"github.com/MaxAlex/alphapeptdeep/pkg/modsite"
)

// AddModifications expands every peptide into one row per modification
// assignment, the unmodified form included.
func (l *Library) AddModifications() error {
	if err := l.require("AddModifications", PeptidesDigested, DecoysAppended); err != nil {
		return err
	}

	maxMods := l.cfg.Mods.MaxVarMods
	maxCombs := l.cfg.Mods.MaxCombinations

	rows := make([]core.Precursor, 0, len(l.peptides))
	for i := range l.peptides {
		p := &l.peptides[i]
		mods, sites := l.table.ModsForPeptide(p.Sequence, p.IsProtNterm, p.IsProtCterm, maxMods, maxCombs)
		base := core.Precursor{
			Sequence:     p.Sequence,
			NAA:          len(p.Sequence),
			MissCleavage: p.MissCleavage,
			IsProtNterm:  p.IsProtNterm,
			IsProtCterm:  p.IsProtCterm,
			ProteinIdxes: core.JoinInts(p.ProteinIdxes),
			Proteins:     p.ProteinName,
			Decoy:        p.Decoy,
		}
		for k := range mods {
			row := base
			row.Mods = mods[k]
			row.ModSites = sites[k]
			rows = append(rows, row)
		}
	}

	l.rows = rows
	l.stage = ModificationsApplied
	return nil
}

// LabelChannel is a named set of label modifications, e.g.
// {"light", ["Dimethyl@Any N-term", "Dimethyl@K"]}. A channel without labels
// keeps the rows as they are.
type LabelChannel struct {
	Name   string
	Labels []string
}

// AddPeptideLabeling replaces the rows with one copy per channel, each copy
// carrying the channel's labels. Channels are emitted in the given order.
func (l *Library) AddPeptideLabeling(channels []LabelChannel) error {
	if err := l.require("AddPeptideLabeling", ModificationsApplied); err != nil {
		return err
	}
	if len(channels) == 0 {
		return nil
	}

	rows := make([]core.Precursor, 0, len(l.rows)*len(channels))
	for _, ch := range channels {
		labels, err := modsite.ParseLabels(ch.Labels)
		if err != nil {
			return fmt.Errorf("label channel %s: %w", ch.Name, err)
		}
		for _, r := range l.rows {
			r.Mods, r.ModSites = labels.Apply(r.Sequence, r.Mods, r.ModSites)
			r.LabelChannel = ch.Name
			rows = append(rows, r)
		}
	}

	l.rows = rows
	return nil
}

// AppendRegularModifications adds further variable residue modifications,
// e.g. phosphorylation, to every row. Without keepUnmodified, rows that
// cannot take any of the modifications are dropped.
func (l *Library) AppendRegularModifications(varMods []string, maxMods, maxCombs int, keepUnmodified bool) error {
	if err := l.require("AppendRegularModifications", ModificationsApplied); err != nil {
		return err
	}

	byAA := make(map[byte][]string)
	for _, mod := range varMods {
		spec, err := modsite.ParseSpec(mod)
		if err != nil {
			return err
		}
		if spec.Kind != modsite.Residue {
			return fmt.Errorf("'%s' is not a residue modification", mod)
		}
		byAA[spec.AA] = append(byAA[spec.AA], mod)
	}
	e := modsite.NewExpander(byAA)

	rows := make([]core.Precursor, 0, len(l.rows))
	for _, r := range l.rows {
		mods, sites := modsite.VarMods(r.Sequence, e, maxMods, maxCombs, keepUnmodified)
		for k := range mods {
			row := r
			row.Mods = core.JoinNonEmpty(r.Mods, mods[k])
			row.ModSites = core.JoinNonEmpty(r.ModSites, sites[k])
			rows = append(rows, row)
		}
	}

	l.rows = rows
	return nil
}
