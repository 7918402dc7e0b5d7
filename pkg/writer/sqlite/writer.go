// Package sqlite provides SQLite database writing for peptide candidate libraries
package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
	// Date format for MaintenanceTable
	maintenanceDateFormat = "2006 01 02"

	schemaVersion = 1
)

// Writer handles writing proteins and precursors to SQLite database files.
// All rows go into one transaction that is committed by Finalize.
type Writer struct {
	// Description is stored in the HeaderTable, e.g. the digestion settings.
	Description string

	db             *sql.DB
	tx             *sql.Tx
	outputPath     string
	proteinStmt    *sql.Stmt
	precursorStmt  *sql.Stmt
	predictionStmt *sql.Stmt
	proteinID      int
	precursorID    int
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:          db,
		outputPath:  outputPath,
		proteinID:   0,
		precursorID: 1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	w.tx, err = db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := w.prepareStatements(); err != nil {
		w.tx.Rollback()
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ProteinTable (
		ProteinId INTEGER PRIMARY KEY,
		Accession TEXT,
		FullName TEXT,
		Description TEXT,
		Sequence TEXT
	);

	CREATE TABLE IF NOT EXISTS PrecursorTable (
		PrecursorId INTEGER PRIMARY KEY,
		Sequence TEXT NOT NULL,
		Mods TEXT,
		ModSites TEXT,
		Charge INTEGER,
		nAA INTEGER,
		MissCleavage INTEGER,
		IsProtNterm BOOL,
		IsProtCterm BOOL,
		ProteinIdxes TEXT,
		Proteins TEXT,
		Decoy BOOL,
		LabelChannel TEXT,
		PrecursorMz DOUBLE
	);

	CREATE TABLE IF NOT EXISTS PredictionTable (
		PrecursorId INTEGER REFERENCES PrecursorTable(PrecursorId),
		Name TEXT,
		Value DOUBLE
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		LastModifiedDate TEXT,
		Description TEXT
	);

	CREATE TABLE IF NOT EXISTS MaintenanceTable (
		CreationDate TEXT,
		NoofPrecursors INTEGER,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.proteinStmt, err = w.tx.Prepare(`
		INSERT INTO ProteinTable (
			ProteinId, Accession, FullName, Description, Sequence
		) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare protein statement: %w", err)
	}

	w.precursorStmt, err = w.tx.Prepare(`
		INSERT INTO PrecursorTable (
			PrecursorId, Sequence, Mods, ModSites, Charge, nAA,
			MissCleavage, IsProtNterm, IsProtCterm, ProteinIdxes,
			Proteins, Decoy, LabelChannel, PrecursorMz
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare precursor statement: %w", err)
	}

	w.predictionStmt, err = w.tx.Prepare(`
		INSERT INTO PredictionTable (PrecursorId, Name, Value) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare prediction statement: %w", err)
	}

	return nil
}

// WriteProtein writes a single protein. Proteins are numbered from 0 in write
// order, matching the protein indexes of the precursors.
func (w *Writer) WriteProtein(p *core.Protein) error {
	_, err := w.proteinStmt.Exec(
		w.proteinID,   // ProteinId
		p.ID,          // Accession
		p.FullName,    // FullName
		p.Description, // Description
		p.Sequence,    // Sequence
	)
	if err != nil {
		return fmt.Errorf("failed to insert protein %s: %w", p.ID, err)
	}

	w.proteinID++
	return nil
}

// WritePrecursor writes a single precursor and its predictions
func (w *Writer) WritePrecursor(p *core.Precursor) error {
	_, err := w.precursorStmt.Exec(
		w.precursorID,  // PrecursorId
		p.Sequence,     // Sequence
		p.Mods,         // Mods
		p.ModSites,     // ModSites
		p.Charge,       // Charge
		p.NAA,          // nAA
		p.MissCleavage, // MissCleavage
		p.IsProtNterm,  // IsProtNterm
		p.IsProtCterm,  // IsProtCterm
		p.ProteinIdxes, // ProteinIdxes
		p.Proteins,     // Proteins
		p.Decoy,        // Decoy
		p.LabelChannel, // LabelChannel
		p.PrecursorMZ,  // PrecursorMz
	)
	if err != nil {
		return fmt.Errorf("failed to insert precursor: %w", err)
	}

	// Sorted so that the table does not depend on map order
	names := make([]string, 0, len(p.Predictions))
	for name := range p.Predictions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := w.predictionStmt.Exec(w.precursorID, name, p.Predictions[name]); err != nil {
			return fmt.Errorf("failed to insert prediction %s: %w", name, err)
		}
	}

	w.precursorID++
	return nil
}

// Finalize writes the header and maintenance tables, commits and closes the
// database
func (w *Writer) Finalize() error {
	if w.db == nil {
		return nil
	}

	now := time.Now()

	// Write HeaderTable
	_, err := w.tx.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, LastModifiedDate, Description)
		VALUES (?, ?, ?, ?)
	`, schemaVersion, now.Format(headerDateFormat), now.Format(headerDateFormat), w.Description)
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Write MaintenanceTable
	_, err = w.tx.Exec(`
		INSERT INTO MaintenanceTable (CreationDate, NoofPrecursors, Description)
		VALUES (?, ?, ?)
	`, now.Format(maintenanceDateFormat), w.precursorID-1, "")
	if err != nil {
		return fmt.Errorf("failed to insert maintenance: %w", err)
	}

	// Close prepared statements
	for _, stmt := range []*sql.Stmt{w.proteinStmt, w.precursorStmt, w.predictionStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	// Close database
	err = w.db.Close()
	w.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close discards uncommitted rows and closes the database. It is a no-op
// after Finalize.
func (w *Writer) Close() error {
	if w.db == nil {
		return nil
	}
	w.tx.Rollback()
	err := w.db.Close()
	w.db = nil
	return err
}
