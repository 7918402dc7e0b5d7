// Package tsv writes and reads the precursor table as tab-separated text.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Columns is the fixed header of the table. Prediction columns follow in
// name order.
var Columns = []string{
	"sequence", "mods", "mod_sites", "charge", "nAA",
	"miss_cleavage", "is_prot_nterm", "is_prot_cterm",
	"protein_idxes", "proteins", "decoy", "label_channel", "precursor_mz",
}

// Write writes the header and one line per precursor.
func Write(w io.Writer, rows []core.Precursor) error {
	predCols := predictionColumns(rows)

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(append(append([]string(nil), Columns...), predCols...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(Columns)+len(predCols))
	for i := range rows {
		p := &rows[i]
		record = record[:0]
		record = append(record,
			p.Sequence,
			p.Mods,
			p.ModSites,
			strconv.Itoa(p.Charge),
			strconv.Itoa(p.NAA),
			strconv.Itoa(p.MissCleavage),
			strconv.FormatBool(p.IsProtNterm),
			strconv.FormatBool(p.IsProtCterm),
			p.ProteinIdxes,
			p.Proteins,
			strconv.FormatBool(p.Decoy),
			p.LabelChannel,
			strconv.FormatFloat(p.PrecursorMZ, 'f', -1, 64),
		)
		for _, name := range predCols {
			v, ok := p.Predictions[name]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write precursor %s: %w", p.Name(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func predictionColumns(rows []core.Precursor) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range rows {
		for name := range rows[i].Predictions {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Read parses a table written by Write. Columns after the fixed ones are read
// as predictions; empty prediction cells are skipped.
func Read(r io.Reader) ([]core.Precursor, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < len(Columns) {
		return nil, fmt.Errorf("header has %d columns, want at least %d", len(header), len(Columns))
	}
	for i, c := range Columns {
		if header[i] != c {
			return nil, fmt.Errorf("column %d is '%s', want '%s'", i+1, header[i], c)
		}
	}
	predCols := header[len(Columns):]

	var out []core.Precursor
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read table: %w", err)
		}

		line, _ := cr.FieldPos(0)
		p, err := parseRecord(record, predCols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseRecord(record, predCols []string) (core.Precursor, error) {
	var (
		p   core.Precursor
		err error
	)
	p.Sequence = record[0]
	p.Mods = record[1]
	p.ModSites = record[2]
	if p.Charge, err = strconv.Atoi(record[3]); err != nil {
		return p, fmt.Errorf("invalid charge: %w", err)
	}
	if p.NAA, err = strconv.Atoi(record[4]); err != nil {
		return p, fmt.Errorf("invalid nAA: %w", err)
	}
	if p.MissCleavage, err = strconv.Atoi(record[5]); err != nil {
		return p, fmt.Errorf("invalid miss_cleavage: %w", err)
	}
	if p.IsProtNterm, err = strconv.ParseBool(record[6]); err != nil {
		return p, fmt.Errorf("invalid is_prot_nterm: %w", err)
	}
	if p.IsProtCterm, err = strconv.ParseBool(record[7]); err != nil {
		return p, fmt.Errorf("invalid is_prot_cterm: %w", err)
	}
	p.ProteinIdxes = record[8]
	p.Proteins = record[9]
	if p.Decoy, err = strconv.ParseBool(record[10]); err != nil {
		return p, fmt.Errorf("invalid decoy: %w", err)
	}
	p.LabelChannel = record[11]
	if p.PrecursorMZ, err = strconv.ParseFloat(record[12], 64); err != nil {
		return p, fmt.Errorf("invalid precursor_mz: %w", err)
	}

	for k, name := range predCols {
		cell := record[len(Columns)+k]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return p, fmt.Errorf("invalid %s: %w", name, err)
		}
		if p.Predictions == nil {
			p.Predictions = make(map[string]float64)
		}
		p.Predictions[name] = v
	}
	return p, nil
}
