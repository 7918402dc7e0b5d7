package core

import (
	"math"
	"strings"
	"testing"
)

func TestParseMods(t *testing.T) {
	db := DefaultModDatabase()

	mods, err := db.ParseMods("Carbamidomethyl@C;Oxidation@M;Acetyl@Protein N-term", "2;8;0")
	if err != nil {
		t.Fatalf("ParseMods() error: %v", err)
	}
	if len(mods) != 3 {
		t.Fatalf("Expected 3 modifications, got %d", len(mods))
	}

	want := []Modification{
		{Mass: 57.021464, Position: 2, Name: "Carbamidomethyl@C"},
		{Mass: 15.994915, Position: 8, Name: "Oxidation@M"},
		{Mass: 42.010565, Position: 0, Name: "Acetyl@Protein N-term"},
	}
	for i, m := range mods {
		if m.Name != want[i].Name || m.Position != want[i].Position || math.Abs(m.Mass-want[i].Mass) > 1e-6 {
			t.Errorf("mod %d = %+v, want %+v", i, m, want[i])
		}
	}
}

func TestParseModsErrors(t *testing.T) {
	db := DefaultModDatabase()

	tests := []struct {
		name  string
		mods  string
		sites string
	}{
		{"unknown mod", "Unknown@K", "1"},
		{"length mismatch", "Oxidation@M", "1;2"},
		{"bad site", "Oxidation@M", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.ParseMods(tt.mods, tt.sites); err == nil {
				t.Errorf("ParseMods(%q, %q) expected error", tt.mods, tt.sites)
			}
		})
	}
}

func TestParseModsEmpty(t *testing.T) {
	mods, err := DefaultModDatabase().ParseMods("", "")
	if err != nil || len(mods) != 0 {
		t.Errorf("ParseMods(\"\", \"\") = %v, %v; want no mods", mods, err)
	}
}

func TestModName(t *testing.T) {
	tests := map[string]string{
		"Oxidation@M":                "Oxidation",
		"Gln->pyro-Glu@Q^Any N-term": "Gln->pyro-Glu",
		"Dimethyl:2H(4)@Any N-term":  "Dimethyl:2H(4)",
		"Phospho":                    "Phospho",
	}
	for in, want := range tests {
		if got := ModName(in); got != want {
			t.Errorf("ModName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadFromCSV(t *testing.T) {
	db := NewModDatabase()
	csv := "mod,massshift,aa\nGlyGly,114.042927,K\n\nCustom,1.5,S\n"
	if err := db.LoadFromCSV(strings.NewReader(csv)); err != nil {
		t.Fatalf("LoadFromCSV() error: %v", err)
	}
	if m, ok := db.GetMass("GlyGly"); !ok || m != 114.042927 {
		t.Errorf("GlyGly mass = %v, %v", m, ok)
	}
	if err := db.LoadFromCSV(strings.NewReader("h\nBad,notanumber\n")); err == nil {
		t.Error("expected error for invalid mass")
	}
}
