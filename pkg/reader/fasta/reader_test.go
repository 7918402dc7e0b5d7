package fasta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const uniprot = `>sp|P02768|ALBU_HUMAN Albumin OS=Homo sapiens
MKWVTFISLLFLFSSAYSRGVFRRDAHKSEVAHRFKDLGEENFKALVLIAFAQYLQQCPF
EDHVKLVNEVTEFAKTCVADESAENCDKSLHTLFGDKLCTVATLRETYGEMADCCAKQEP

>tr|Q9XYZ1|TEST_YEAST test protein
PEPTIDEKPEPTIDER*
>plain_id some description
acdefghik
`

func TestReaderParsesRecords(t *testing.T) {
	r := NewReader(strings.NewReader(uniprot), "")

	var ids, names, seqs []string
	for r.Next() {
		p := r.Protein()
		ids = append(ids, p.ID)
		names = append(names, p.FullName)
		seqs = append(seqs, p.Sequence)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(r.Skipped()) != 0 {
		t.Fatalf("Skipped() = %v", r.Skipped())
	}

	wantIDs := []string{"P02768", "Q9XYZ1", "plain_id"}
	wantNames := []string{"sp|P02768|ALBU_HUMAN", "tr|Q9XYZ1|TEST_YEAST", "plain_id"}
	wantSeqs := []string{
		"MKWVTFISLLFLFSSAYSRGVFRRDAHKSEVAHRFKDLGEENFKALVLIAFAQYLQQCPFEDHVKLVNEVTEFAKTCVADESAENCDKSLHTLFGDKLCTVATLRETYGEMADCCAKQEP",
		"PEPTIDEKPEPTIDER",
		"ACDEFGHIK",
	}
	for i := range wantIDs {
		if i >= len(ids) {
			t.Fatalf("Expected %d records, got %d", len(wantIDs), len(ids))
		}
		if ids[i] != wantIDs[i] {
			t.Errorf("record %d: ID = %q, want %q", i, ids[i], wantIDs[i])
		}
		if names[i] != wantNames[i] {
			t.Errorf("record %d: FullName = %q, want %q", i, names[i], wantNames[i])
		}
		if seqs[i] != wantSeqs[i] {
			t.Errorf("record %d: Sequence = %q, want %q", i, seqs[i], wantSeqs[i])
		}
	}
}

func TestReaderDescription(t *testing.T) {
	r := NewReader(strings.NewReader(uniprot), "")
	if !r.Next() {
		t.Fatal("Expected a record")
	}
	want := "sp|P02768|ALBU_HUMAN Albumin OS=Homo sapiens"
	if got := r.Protein().Description; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
}

func TestReaderSkipsMalformedRecords(t *testing.T) {
	input := `ORPHANSEQ
>P1 good
PEPTIDEK
>
AAAA
>P2 bad residues
PEP$TIDE
>P3 good
ACDK
`
	r := NewReader(strings.NewReader(input), "db.fasta")

	var ids []string
	for r.Next() {
		ids = append(ids, r.Protein().ID)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if strings.Join(ids, ",") != "P1,P3" {
		t.Errorf("ids = %v, want [P1 P3]", ids)
	}

	skipped := r.Skipped()
	if len(skipped) != 3 {
		t.Fatalf("Expected 3 skipped records, got %d: %v", len(skipped), skipped)
	}
	wantLines := []int{1, 4, 6}
	for i, e := range skipped {
		if e.Line != wantLines[i] {
			t.Errorf("skipped %d at line %d, want %d", i, e.Line, wantLines[i])
		}
		if !strings.HasPrefix(e.Error(), "db.fasta:") {
			t.Errorf("error %q does not name the file", e.Error())
		}
	}
}

func TestLoadProteins(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fasta")
	b := filepath.Join(dir, "b.fasta")
	if err := os.WriteFile(a, []byte(">sp|P1|A\nAAAK\n>sp|P2|B\nCCCK\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(">sp|P3|C\nDDDK\n>sp|P1|A2\nEEEK\n>\nXX\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	proteins, skipped, err := LoadProteins([]string{a, b})
	if err != nil {
		t.Fatalf("LoadProteins() error: %v", err)
	}
	if len(skipped) != 1 {
		t.Errorf("Expected 1 skipped record, got %d", len(skipped))
	}

	var got []string
	for _, p := range proteins {
		got = append(got, p.ID+"="+p.Sequence)
	}
	want := "P1=EEEK,P2=CCCK,P3=DDDK"
	if strings.Join(got, ",") != want {
		t.Errorf("proteins = %v, want %s", got, want)
	}
}

func TestLoadProteinsMissingFile(t *testing.T) {
	if _, _, err := LoadProteins([]string{filepath.Join(t.TempDir(), "missing.fasta")}); err == nil {
		t.Error("expected error for a missing file")
	}
}
