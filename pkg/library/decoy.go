package library

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// DecoyFunc turns a target peptide sequence into a decoy sequence.
type DecoyFunc func(seq string) string

// PseudoReverse reverses all residues but the C-terminal one.
func PseudoReverse(seq string) string {
	if len(seq) < 2 {
		return seq
	}
	b := []byte(seq)
	for i, j := 0, len(b)-2; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

var diannFrom, diannTo = "GAVLIFMPWSCTYHKRQEND", "LLLVVLLLLTSSSSLLNDQE"

// DiaNN mutates the second and the second-to-last residue.
func DiaNN(seq string) string {
	if len(seq) < 3 {
		return seq
	}
	b := []byte(seq)
	for _, i := range []int{1, len(b) - 2} {
		if k := strings.IndexByte(diannFrom, seq[i]); k >= 0 {
			b[i] = diannTo[k]
		}
	}
	return string(b)
}

// Shuffler returns a DecoyFunc that shuffles all residues but the C-terminal
// one. Decoys depend only on the seed and the order of calls.
func Shuffler(seed uint64) DecoyFunc {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func(seq string) string {
		if len(seq) < 3 {
			return seq
		}
		b := []byte(seq)
		body := b[:len(b)-1]
		rng.Shuffle(len(body), func(i, j int) {
			body[i], body[j] = body[j], body[i]
		})
		return string(b)
	}
}

// DecoyMethod returns the decoy generator for a method name.
func DecoyMethod(method string, seed uint64) (DecoyFunc, error) {
	switch method {
	case "pseudo_reverse":
		return PseudoReverse, nil
	case "diann":
		return DiaNN, nil
	case "shuffle":
		return Shuffler(seed), nil
	default:
		return nil, fmt.Errorf("unknown decoy method '%s'", method)
	}
}

// AppendDecoys appends one decoy per target peptide using the configured
// method. Decoys equal to a target or to an earlier decoy are dropped. With
// no method configured the library moves on without decoys.
func (l *Library) AppendDecoys() (int, error) {
	if err := l.require("AppendDecoys", PeptidesDigested); err != nil {
		return 0, err
	}
	if l.cfg.Decoy.Method == "" {
		l.stage = DecoysAppended
		return 0, nil
	}

	decoy, err := DecoyMethod(l.cfg.Decoy.Method, l.cfg.Decoy.Seed)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, 2*len(l.peptides))
	for i := range l.peptides {
		seen[l.peptides[i].Sequence] = true
	}

	n := len(l.peptides)
	for i := 0; i < n; i++ {
		target := l.peptides[i]
		seq := decoy(target.Sequence)
		if seen[seq] {
			continue
		}
		seen[seq] = true

		d := target
		d.Sequence = seq
		d.ProteinIdxes = append([]int(nil), target.ProteinIdxes...)
		d.Decoy = true
		l.peptides = append(l.peptides, d)
	}

	l.stage = DecoysAppended
	return len(l.peptides) - n, nil
}
