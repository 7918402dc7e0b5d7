package sqlite

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

func TestWriteAndReadLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	defer w.Close()
	w.Description = "protease=trypsin"

	proteins := []core.Protein{
		{ID: "P1", FullName: "sp|P1|A", Description: "sp|P1|A alpha", Sequence: "MKPEPTIDERPK"},
		{ID: "P2", FullName: "sp|P2|B", Description: "sp|P2|B beta", Sequence: "AAAKCCCR"},
	}
	core.ConcatProteins(proteins)
	for i := range proteins {
		if err := w.WriteProtein(&proteins[i]); err != nil {
			t.Fatalf("WriteProtein() error: %v", err)
		}
	}

	precursors := []core.Precursor{
		{
			Sequence: "MKPEPTIDERPK", Mods: "Acetyl@Protein N-term;Oxidation@M", ModSites: "0;1",
			Charge: 2, NAA: 12, IsProtNterm: true, IsProtCterm: true,
			ProteinIdxes: "0", Proteins: "P1", PrecursorMZ: 750.88,
			Predictions: map[string]float64{"rt_pred": 0.42, "mobility_pred": 0.9},
		},
		{
			Sequence: "CCCR", Charge: 3, NAA: 4, MissCleavage: 1, ProteinIdxes: "0;1",
			Decoy: true, LabelChannel: "light", PrecursorMZ: 200.5,
		},
	}
	for i := range precursors {
		if err := w.WritePrecursor(&precursors[i]); err != nil {
			t.Fatalf("WritePrecursor() error: %v", err)
		}
	}

	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	h, gotProteins, gotPrecursors, err := ReadLibrary(path)
	if err != nil {
		t.Fatalf("ReadLibrary() error: %v", err)
	}
	if h.Version != schemaVersion || h.Description != "protease=trypsin" {
		t.Errorf("header = %+v", h)
	}
	if !reflect.DeepEqual(gotProteins, proteins) {
		t.Errorf("proteins = %+v, want %+v", gotProteins, proteins)
	}
	if !reflect.DeepEqual(gotPrecursors, precursors) {
		t.Errorf("precursors = %+v, want %+v", gotPrecursors, precursors)
	}
}

func TestMaintenanceCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := w.WritePrecursor(&core.Precursor{Sequence: "PEPTIDEK", Charge: 2, NAA: 8}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() after Finalize: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT NoofPrecursors FROM MaintenanceTable`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("NoofPrecursors = %d, want 3", n)
	}
}

func TestCloseWithoutFinalizeDiscardsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WritePrecursor(&core.Precursor{Sequence: "PEPTIDEK", Charge: 2, NAA: 8}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	if _, _, _, err := ReadLibrary(path); err == nil {
		t.Error("expected error reading a library without header")
	}
}

func TestReadLibraryMissingFile(t *testing.T) {
	if _, _, _, err := ReadLibrary(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for a missing file")
	}
}
