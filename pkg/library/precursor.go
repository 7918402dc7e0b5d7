package library

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// AddCharges expands every row into one row per charge state and computes
// its precursor m/z. Rows outside the configured m/z window are dropped.
func (l *Library) AddCharges() (dropped int, err error) {
	if err := l.require("AddCharges", ModificationsApplied); err != nil {
		return 0, err
	}

	lo, hi := l.cfg.Precursor.ChargeMin, l.cfg.Precursor.ChargeMax
	rows := make([]core.Precursor, 0, len(l.rows)*(hi-lo+1))
	for _, r := range l.rows {
		mods, err := l.Mods.ParseMods(r.Mods, r.ModSites)
		if err != nil {
			return 0, fmt.Errorf("precursor %s: %w", r.Sequence, err)
		}
		for z := lo; z <= hi; z++ {
			row := r
			row.Charge = z
			row.PrecursorMZ = core.CalculatePrecursorMZ(r.Sequence, z, mods)
			if !l.mzFilter.Keep(&row) {
				dropped++
				continue
			}
			rows = append(rows, row)
		}
	}

	l.rows = rows
	l.stage = ChargesAssigned
	return dropped, nil
}

// AppendProteinNames resolves protein indexes into semicolon-joined protein
// IDs. Rows without protein indexes keep their names.
func (l *Library) AppendProteinNames() error {
	if err := l.require("AppendProteinNames", PeptidesDigested, DecoysAppended, ModificationsApplied, ChargesAssigned); err != nil {
		return err
	}

	for i := range l.peptides {
		p := &l.peptides[i]
		if len(p.ProteinIdxes) == 0 {
			continue
		}
		ids := make([]string, len(p.ProteinIdxes))
		for k, idx := range p.ProteinIdxes {
			ids[k] = l.proteins[idx].ID
		}
		p.ProteinName = strings.Join(ids, ";")
	}

	for i := range l.rows {
		r := &l.rows[i]
		if r.ProteinIdxes == "" {
			continue
		}
		names, err := l.proteinNames(r.ProteinIdxes)
		if err != nil {
			return fmt.Errorf("precursor %s: %w", r.Name(), err)
		}
		r.Proteins = names
	}
	return nil
}

func (l *Library) proteinNames(idxes string) (string, error) {
	fields := core.SplitField(idxes)
	ids := make([]string, len(fields))
	for k, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil || idx < 0 || idx >= len(l.proteins) {
			return "", fmt.Errorf("invalid protein index '%s'", f)
		}
		ids[k] = l.proteins[idx].ID
	}
	return strings.Join(ids, ";"), nil
}
