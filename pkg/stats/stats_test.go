package stats

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

func rowsFixture() []core.Precursor {
	return []core.Precursor{
		{Sequence: "PEPTIDEK", NAA: 8, Charge: 2, PrecursorMZ: 400},
		{Sequence: "PEPTIDEK", NAA: 8, Charge: 3, PrecursorMZ: 300, Mods: "Oxidation@M", ModSites: "1"},
		{Sequence: "AAAKCCCRDDDK", NAA: 12, Charge: 2, PrecursorMZ: 600, Decoy: true, LabelChannel: "light"},
		{Sequence: "CCCR", NAA: 4, Charge: 2, PrecursorMZ: 300, LabelChannel: "light"},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(rowsFixture())

	if s.Precursors != 4 || s.Peptides != 3 || s.Targets != 3 || s.Decoys != 1 || s.Modified != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.LengthMean != 8 {
		t.Errorf("LengthMean = %v, want 8", s.LengthMean)
	}
	// sample standard deviation of 8, 8, 12, 4
	if want := math.Sqrt(32.0 / 3); math.Abs(s.LengthStdDev-want) > 1e-9 {
		t.Errorf("LengthStdDev = %v, want %v", s.LengthStdDev, want)
	}
	if s.MZMean != 400 || s.MZMin != 300 || s.MZMax != 600 {
		t.Errorf("m/z = %v (%v - %v)", s.MZMean, s.MZMin, s.MZMax)
	}
	if !reflect.DeepEqual(s.Charges, map[int]int{2: 3, 3: 1}) {
		t.Errorf("Charges = %v", s.Charges)
	}
	if !reflect.DeepEqual(s.Channels, map[string]int{"light": 2}) {
		t.Errorf("Channels = %v", s.Channels)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s.Precursors != 0 || s.Peptides != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
	s := Summarize(rowsFixture()[:1])
	if s.LengthStdDev != 0 || s.MZStdDev != 0 {
		t.Errorf("single row deviations = %v, %v", s.LengthStdDev, s.MZStdDev)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Summarize(rowsFixture()).Print(&buf)
	out := buf.String()
	for _, want := range []string{"Precursors: 4\n", "Decoys: 1\n", "Charge 2: 3\n", "Charge 3: 1\n", "Channel light: 2\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Charge 2") > strings.Index(out, "Charge 3") {
		t.Error("charges not in ascending order")
	}
}

func TestLengthHistogram(t *testing.T) {
	got := LengthHistogram(rowsFixture())
	if len(got) != 13 {
		t.Fatalf("Expected 13 bins, got %d", len(got))
	}
	for length, want := range map[int]float64{4: 1, 8: 1, 12: 1, 5: 0} {
		if got[length] != want {
			t.Errorf("bin %d = %v, want %v", length, got[length], want)
		}
	}
}

func TestPlotLengths(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotLengths(&buf, rowsFixture(), "svg"); err != nil {
		t.Fatalf("PlotLengths() error: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("output is not an SVG document")
	}

	if err := PlotLengths(&buf, nil, "svg"); err == nil {
		t.Error("expected error for an empty table")
	}
}
