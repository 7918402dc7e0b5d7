package lcp

import (
	"reflect"
	"sort"
	"testing"
)

func TestBuildBanana(t *testing.T) {
	x := Build("banana")

	wantSA := []int32{5, 3, 1, 0, 4, 2}
	if !reflect.DeepEqual(x.SA, wantSA) {
		t.Errorf("SA = %v, want %v", x.SA, wantSA)
	}

	wantLCP := []int32{0, 3, 2, 1, 0, 0}
	if !reflect.DeepEqual(x.LCP, wantLCP) {
		t.Errorf("LCP = %v, want %v", x.LCP, wantLCP)
	}

	for r, p := range x.SA {
		if x.Rank[p] != int32(r) {
			t.Errorf("Rank[%d] = %d, want %d", p, x.Rank[p], r)
		}
	}
}

func TestSuffixArraySorted(t *testing.T) {
	texts := []string{
		"",
		"A",
		"AAAAAAA",
		"$ABCABCD$ABCDE$ABCE$BCDEF$",
		"$MKWVTFISLLFLFSSAYSR$MKWVTFISLL$GVFRRDAHKSEVAHRFK$",
	}

	for _, text := range texts {
		sa := SuffixArray(text)
		if len(sa) != len(text) {
			t.Fatalf("%q: SA has %d entries", text, len(sa))
		}
		for i := 1; i < len(sa); i++ {
			if text[sa[i-1]:] >= text[sa[i]:] {
				t.Errorf("%q: suffix %d not before suffix %d", text, sa[i-1], sa[i])
			}
		}
	}
}

func TestLCPMatchesNaive(t *testing.T) {
	text := "$MKWVTFISLLFLFSSAYSR$MKWVTFISLL$GVFRRDAHKSEVAHRFK$"
	x := Build(text)

	for r := 1; r < len(x.SA); r++ {
		a, b := text[x.SA[r-1]:], text[x.SA[r]:]
		h := 0
		for h < len(a) && h < len(b) && a[h] == b[h] {
			h++
		}
		if got := x.LCP[x.SA[r]]; int(got) != h {
			t.Errorf("LCP[%d] = %d, want %d", x.SA[r], got, h)
		}
	}
	if x.LCP[x.SA[0]] != 0 {
		t.Errorf("smallest suffix has LCP %d, want 0", x.LCP[x.SA[0]])
	}
}

func TestOccurrences(t *testing.T) {
	text := "$ABCABD$ABD$CAB$"
	x := Build(text)

	tests := []struct {
		pos, length int
		want        []int32
	}{
		{1, 2, []int32{1, 4, 8, 13}},  // AB
		{4, 3, []int32{4, 8}},         // ABD
		{2, 2, []int32{2}},            // BC
		{13, 2, []int32{1, 4, 8, 13}}, // AB from a later occurrence
	}

	for _, tt := range tests {
		got := x.Occurrences(tt.pos, tt.length)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Occurrences(%d, %d) of %q = %v, want %v",
				tt.pos, tt.length, text[tt.pos:tt.pos+tt.length], got, tt.want)
		}
		if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }) {
			t.Errorf("Occurrences(%d, %d) not sorted", tt.pos, tt.length)
		}
	}
}
