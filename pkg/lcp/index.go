// Package lcp builds a suffix array with a longest-common-prefix array over a
// concatenated protein sequence and enumerates its distinct substrings.
//
// Positions are int32, which bounds the concatenated sequence to 2 GiB.
package lcp

import (
	"cmp"
	"slices"
)

// Index is a suffix array over Text together with its inverse and the LCP
// array aligned to text positions.
type Index struct {
	Text string

	// SA lists text positions in lexicographic order of their suffixes.
	SA []int32

	// Rank is the inverse of SA: SA[Rank[p]] == p.
	Rank []int32

	// LCP[p] is the length of the common prefix of the suffix at p and the
	// suffix preceding it in SA order; 0 for the smallest suffix.
	LCP []int32
}

// Build constructs the suffix array and the position-aligned LCP array.
func Build(text string) *Index {
	sa := SuffixArray(text)
	rank := make([]int32, len(sa))
	for r, p := range sa {
		rank[p] = int32(r)
	}
	return &Index{
		Text: text,
		SA:   sa,
		Rank: rank,
		LCP:  kasai(text, sa, rank),
	}
}

// SuffixArray sorts the suffixes of text by prefix doubling: each round
// orders positions by the rank pair (rank[i], rank[i+k]) until every rank is
// distinct.
func SuffixArray(text string) []int32 {
	n := len(text)
	sa := make([]int32, n)
	if n == 0 {
		return sa
	}

	rank := make([]int32, n)
	tmp := make([]int32, n)
	for i := 0; i < n; i++ {
		sa[i] = int32(i)
		rank[i] = int32(text[i])
	}

	for k := 1; ; k <<= 1 {
		second := func(i int32) int32 {
			if j := int(i) + k; j < n {
				return rank[j]
			}
			return -1
		}
		compare := func(a, b int32) int {
			if c := cmp.Compare(rank[a], rank[b]); c != 0 {
				return c
			}
			return cmp.Compare(second(a), second(b))
		}

		slices.SortFunc(sa, compare)

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if compare(sa[i-1], sa[i]) < 0 {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == int32(n-1) {
			break
		}
	}

	return sa
}

// kasai computes, for every text position, the common prefix length with its
// predecessor in SA order. Walking positions left to right lets h drop by at
// most one per step.
func kasai(text string, sa, rank []int32) []int32 {
	n := len(text)
	lcp := make([]int32, n)
	h := 0
	for i := 0; i < n; i++ {
		r := rank[i]
		if r == 0 {
			h = 0
			continue
		}
		j := int(sa[r-1])
		for i+h < n && j+h < n && text[i+h] == text[j+h] {
			h++
		}
		lcp[i] = int32(h)
		if h > 0 {
			h--
		}
	}
	return lcp
}

// Occurrences returns every start position of the substring
// Text[pos:pos+length], ascending.
func (x *Index) Occurrences(pos, length int) []int32 {
	out := []int32{int32(pos)}
	r := int(x.Rank[pos])
	for q := r; q > 0 && int(x.LCP[x.SA[q]]) >= length; q-- {
		out = append(out, x.SA[q-1])
	}
	for q := r + 1; q < len(x.SA) && int(x.LCP[x.SA[q]]) >= length; q++ {
		out = append(out, x.SA[q])
	}
	slices.Sort(out)
	return out
}
