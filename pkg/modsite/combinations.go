package modsite

// Combinations iterates over the size 1..MaxSize subsets of a site list in
// lexicographic order, all size-1 subsets first, and stops after Limit
// subsets in total.
type Combinations struct {
	sites   []int
	maxSize int
	limit   int

	size  int
	idx   []int
	buf   []int
	count int
}

// NewCombinations returns an iterator positioned before the first subset.
func NewCombinations(sites []int, maxSize, limit int) *Combinations {
	if maxSize > len(sites) {
		maxSize = len(sites)
	}
	return &Combinations{
		sites:   sites,
		maxSize: maxSize,
		limit:   limit,
	}
}

// Next advances to the next subset. It returns false when all subsets up to
// MaxSize have been visited or Limit is reached.
func (c *Combinations) Next() bool {
	if c.count >= c.limit || c.maxSize < 1 {
		return false
	}

	if c.size == 0 || !c.advance() {
		c.size++
		if c.size > c.maxSize {
			return false
		}
		c.idx = c.idx[:0]
		for i := 0; i < c.size; i++ {
			c.idx = append(c.idx, i)
		}
	}

	c.count++
	return true
}

// advance moves idx to the next subset of the current size.
func (c *Combinations) advance() bool {
	n, k := len(c.sites), c.size
	i := k - 1
	for i >= 0 && c.idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	c.idx[i]++
	for j := i + 1; j < k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
	return true
}

// Sites returns the current subset. The slice is reused by Next.
func (c *Combinations) Sites() []int {
	c.buf = c.buf[:0]
	for _, i := range c.idx {
		c.buf = append(c.buf, c.sites[i])
	}
	return c.buf
}

// Count returns the number of subsets visited so far.
func (c *Combinations) Count() int {
	return c.count
}

// Reset rewinds the iterator to before the first subset.
func (c *Combinations) Reset() {
	c.size = 0
	c.idx = c.idx[:0]
	c.count = 0
}
