// Package core provides the protein, peptide and precursor models shared by the
// digestion, modification and library packages.
package core

import "strings"

// Delimiter separates proteins in a concatenated sequence. It never occurs in
// an amino-acid sequence.
const Delimiter = '$'

// Protein is one entry of a sequence database.
type Protein struct {
	ID          string // accession, unique within a loaded database
	FullName    string // first token of the header
	Description string // full header line without the marker
	Sequence    string
	Offset      int // start of Sequence within the concatenated sequence
}

// ConcatProteins joins all protein sequences into "$p1$p2$...$" and stores the
// start of each sequence in its Offset field.
func ConcatProteins(proteins []Protein) string {
	n := 1
	for i := range proteins {
		n += len(proteins[i].Sequence) + 1
	}

	var b strings.Builder
	b.Grow(n)
	b.WriteByte(Delimiter)
	for i := range proteins {
		proteins[i].Offset = b.Len()
		b.WriteString(proteins[i].Sequence)
		b.WriteByte(Delimiter)
	}
	return b.String()
}

// ProteinAt returns the index of the protein whose sequence contains position
// pos of the concatenated sequence, or -1 for a delimiter position. Proteins
// must be in concatenation order.
func ProteinAt(proteins []Protein, pos int) int {
	lo, hi := 0, len(proteins)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if proteins[mid].Offset <= pos {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	i := lo - 1
	if i < 0 || pos >= proteins[i].Offset+len(proteins[i].Sequence) {
		return -1
	}
	return i
}
