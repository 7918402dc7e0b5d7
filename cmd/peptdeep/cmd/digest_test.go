package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MaxAlex/alphapeptdeep/pkg/library"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path, format string
		want         string
		wantErr      bool
	}{
		{"lib.db", "", "sqlite", false},
		{"lib.SQLITE", "", "sqlite", false},
		{"lib.tsv", "", "tsv", false},
		{"lib.out", "TSV", "tsv", false},
		{"lib.out", "", "", true},
		{"lib.db", "parquet", "", true},
	}

	for _, tt := range tests {
		got, err := detectFormat(tt.path, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("detectFormat(%s, %s) error = %v, wantErr %v", tt.path, tt.format, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("detectFormat(%s, %s) = %s, want %s", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestParseLabelChannels(t *testing.T) {
	got, err := parseLabelChannels([]string{
		"reference=",
		"light=Dimethyl@Any N-term, Dimethyl@K",
	})
	if err != nil {
		t.Fatalf("parseLabelChannels() error: %v", err)
	}
	want := []library.LabelChannel{
		{Name: "reference"},
		{Name: "light", Labels: []string{"Dimethyl@Any N-term", "Dimethyl@K"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseLabelChannels() = %+v, want %+v", got, want)
	}

	for _, bad := range [][]string{{"Dimethyl@K"}, {"=Dimethyl@K"}, {"a=", "a=Dimethyl@K"}} {
		if _, err := parseLabelChannels(bad); err == nil {
			t.Errorf("parseLabelChannels(%q) should fail", bad)
		}
	}
}

func TestLoadPeptideCSV(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "peptides.csv")
	if err := os.WriteFile(path, []byte("sequence,protein\npeptidek,P1\n\nAAAK,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	seqs, proteins, err := loadPeptideCSV(path)
	if err != nil {
		t.Fatalf("loadPeptideCSV() error: %v", err)
	}
	if !reflect.DeepEqual(seqs, []string{"PEPTIDEK", "AAAK"}) {
		t.Errorf("seqs = %v", seqs)
	}
	if !reflect.DeepEqual(proteins, []string{"P1", ""}) {
		t.Errorf("proteins = %v", proteins)
	}

	path = filepath.Join(dir, "plain.csv")
	if err := os.WriteFile(path, []byte("sequence\nPEPTIDEK\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, proteins, err := loadPeptideCSV(path); err != nil || proteins != nil {
		t.Errorf("loadPeptideCSV() = %v, %v; want no protein names", proteins, err)
	}
}
