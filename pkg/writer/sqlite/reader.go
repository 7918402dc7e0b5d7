package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Header is the HeaderTable row of a library.
type Header struct {
	Version      int
	CreationDate string
	Description  string
}

// ReadLibrary reads the header, proteins and precursors of a library written
// by Writer. Precursors come back in write order with their predictions.
func ReadLibrary(path string) (Header, []core.Protein, []core.Precursor, error) {
	var h Header

	if _, err := os.Stat(path); err != nil {
		return h, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return h, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	err = db.QueryRow(`SELECT version, CreationDate, Description FROM HeaderTable LIMIT 1`).
		Scan(&h.Version, &h.CreationDate, &h.Description)
	if err != nil {
		return h, nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	proteins, err := readProteins(db)
	if err != nil {
		return h, nil, nil, err
	}

	precursors, err := readPrecursors(db)
	if err != nil {
		return h, nil, nil, err
	}

	return h, proteins, precursors, nil
}

func readProteins(db *sql.DB) ([]core.Protein, error) {
	rows, err := db.Query(`SELECT Accession, FullName, Description, Sequence FROM ProteinTable ORDER BY ProteinId`)
	if err != nil {
		return nil, fmt.Errorf("failed to query proteins: %w", err)
	}
	defer rows.Close()

	var out []core.Protein
	for rows.Next() {
		var p core.Protein
		if err := rows.Scan(&p.ID, &p.FullName, &p.Description, &p.Sequence); err != nil {
			return nil, fmt.Errorf("failed to scan protein: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read proteins: %w", err)
	}

	core.ConcatProteins(out)
	return out, nil
}

func readPrecursors(db *sql.DB) ([]core.Precursor, error) {
	rows, err := db.Query(`
		SELECT PrecursorId, Sequence, Mods, ModSites, Charge, nAA,
			MissCleavage, IsProtNterm, IsProtCterm, ProteinIdxes,
			Proteins, Decoy, LabelChannel, PrecursorMz
		FROM PrecursorTable ORDER BY PrecursorId
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query precursors: %w", err)
	}
	defer rows.Close()

	var out []core.Precursor
	byID := make(map[int64]int)
	for rows.Next() {
		var (
			id int64
			p  core.Precursor
		)
		err := rows.Scan(
			&id, &p.Sequence, &p.Mods, &p.ModSites, &p.Charge, &p.NAA,
			&p.MissCleavage, &p.IsProtNterm, &p.IsProtCterm, &p.ProteinIdxes,
			&p.Proteins, &p.Decoy, &p.LabelChannel, &p.PrecursorMZ,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan precursor: %w", err)
		}
		byID[id] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read precursors: %w", err)
	}

	preds, err := db.Query(`SELECT PrecursorId, Name, Value FROM PredictionTable`)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer preds.Close()

	for preds.Next() {
		var (
			id    int64
			name  string
			value float64
		)
		if err := preds.Scan(&id, &name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		i, ok := byID[id]
		if !ok {
			continue
		}
		if out[i].Predictions == nil {
			out[i].Predictions = make(map[string]float64)
		}
		out[i].Predictions[name] = value
	}
	if err := preds.Err(); err != nil {
		return nil, fmt.Errorf("failed to read predictions: %w", err)
	}

	return out, nil
}
