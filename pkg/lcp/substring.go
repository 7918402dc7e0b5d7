package lcp

// NextStops returns, for every position, the index of the next delimiter at or
// after it, or len(text) when none follows.
func NextStops(text string, delim byte) []int32 {
	next := make([]int32, len(text))
	cur := int32(len(text))
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == delim {
			cur = int32(i)
		}
		next[i] = cur
	}
	return next
}

// Substrings enumerates the distinct substrings of text with length in
// [minLen, maxLen] that do not contain delim, as half-open [start, end)
// pairs ordered by start, then length.
//
// lcp must be aligned to text positions (see Index.LCP). A substring of
// length <= lcp[i] starting at i equals the prefix of the preceding suffix
// in SA order, so it has been emitted from that position; only longer
// lengths are new.
func Substrings(text string, lcp []int32, minLen, maxLen int, delim byte) (starts, ends []int32) {
	next := NextStops(text, delim)
	n := len(text)
	for i := 0; i < n; i++ {
		if text[i] == delim {
			continue
		}
		lo := max(int(lcp[i])+1, minLen)
		hi := min(n-i, maxLen)
		stop := int(next[i])
		for l := lo; l <= hi; l++ {
			end := i + l
			if end > stop {
				break
			}
			starts = append(starts, int32(i))
			ends = append(ends, int32(end))
		}
	}
	return starts, ends
}

// SubstringIndices builds the index over text and enumerates its substrings.
func SubstringIndices(text string, minLen, maxLen int, delim byte) (starts, ends []int32) {
	x := Build(text)
	return Substrings(text, x.LCP, minLen, maxLen, delim)
}
