package core

import "testing"

func TestConcatProteins(t *testing.T) {
	proteins := []Protein{
		{ID: "P1", Sequence: "ABCABCD"},
		{ID: "P2", Sequence: "ABCDE"},
		{ID: "P3", Sequence: "ABCE"},
		{ID: "P4", Sequence: "BCDEF"},
	}

	got := ConcatProteins(proteins)
	want := "$ABCABCD$ABCDE$ABCE$BCDEF$"
	if got != want {
		t.Fatalf("ConcatProteins() = %q, want %q", got, want)
	}

	for _, p := range proteins {
		if got[p.Offset:p.Offset+len(p.Sequence)] != p.Sequence {
			t.Errorf("protein %s: offset %d does not point at its sequence", p.ID, p.Offset)
		}
		if got[p.Offset-1] != Delimiter || got[p.Offset+len(p.Sequence)] != Delimiter {
			t.Errorf("protein %s is not delimiter bounded", p.ID)
		}
	}
}

func TestProteinAt(t *testing.T) {
	proteins := []Protein{
		{ID: "P1", Sequence: "ABC"},
		{ID: "P2", Sequence: "DE"},
	}
	cat := ConcatProteins(proteins) // $ABC$DE$

	tests := []struct {
		pos  int
		want int
	}{
		{0, -1},
		{1, 0},
		{3, 0},
		{4, -1},
		{5, 1},
		{6, 1},
		{7, -1},
	}

	for _, tt := range tests {
		if got := ProteinAt(proteins, tt.pos); got != tt.want {
			t.Errorf("ProteinAt(%d) in %q = %d, want %d", tt.pos, cat, got, tt.want)
		}
	}
}
