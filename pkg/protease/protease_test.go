package protease

import (
	"errors"
	"reflect"
	"testing"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

func TestCutPositions(t *testing.T) {
	tests := []struct {
		name     string
		protease string
		seq      string
		want     []int
	}{
		{
			name:     "trypsin suppressed before P and at the end",
			protease: "trypsin",
			seq:      "MKPEPTIDERPK",
			want:     []int{0, 12},
		},
		{
			name:     "trypsin cuts after K and R",
			protease: "trypsin",
			seq:      "AAKBBRCCK",
			want:     []int{0, 3, 6, 9},
		},
		{
			name:     "trypsin/P ignores proline",
			protease: "trypsin/P",
			seq:      "MKPEPTIDERPK",
			want:     []int{0, 2, 10, 12},
		},
		{
			name:     "no site",
			protease: "trypsin",
			seq:      "PEPTIDE",
			want:     []int{0, 7},
		},
		{
			name:     "asp-n cuts before D",
			protease: "asp-n",
			seq:      "AADAAD",
			want:     []int{0, 2, 5, 6},
		},
		{
			name:     "raw regex",
			protease: "E(?=P)",
			seq:      "PEPEPTIDE",
			want:     []int{0, 2, 4, 9},
		},
		{
			name:     "lookbehind",
			protease: "(?<=C)K",
			seq:      "AKCKAK",
			want:     []int{0, 4, 6},
		},
		{
			name:     "empty sequence",
			protease: "trypsin",
			seq:      "",
			want:     []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Compile(tt.protease)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.protease, err)
			}
			got := rule.CutPositions(tt.seq)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CutPositions(%q) = %v, want %v", tt.seq, got, tt.want)
			}
		})
	}
}

func TestCompileNamedPattern(t *testing.T) {
	rule, err := Compile("Trypsin")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if rule.Pattern != "([KR](?=[^P]))" {
		t.Errorf("Pattern = %q, want the trypsin regex", rule.Pattern)
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"([KR", "K(?=P", ""} {
		_, err := Compile(pattern)
		var ce *core.CompilationError
		if !errors.As(err, &ce) {
			t.Errorf("Compile(%q) error = %v, want *core.CompilationError", pattern, err)
		}
	}
}

func TestCutPositionsStrictlyIncreasing(t *testing.T) {
	rule, err := CompileWith(map[string]string{"any": "[A-Z]"}, "any")
	if err != nil {
		t.Fatal(err)
	}
	cuts := rule.CutPositions("ACDEFK")
	want := []int{0, 1, 2, 3, 4, 5, 6}
	if !reflect.DeepEqual(cuts, want) {
		t.Errorf("CutPositions() = %v, want %v", cuts, want)
	}
}
