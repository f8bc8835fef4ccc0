// Package bloom provides insertion-ordered URL sets backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is used by NewSet.
const DefaultFalsePositiveRate = 0.01

// Set is an insertion-ordered set of URLs. A negative Bloom test proves a
// URL is new and skips the index lookup; a positive one is confirmed
// against the exact index, so false positives never drop a URL.
type Set struct {
	filter *bloom.BloomFilter
	index  map[string]int
	items  []string
}

// NewSet creates a Set sized for n expected URLs.
func NewSet(n uint) *Set {
	if n == 0 {
		n = 1
	}
	return &Set{
		filter: bloom.NewWithEstimates(n, DefaultFalsePositiveRate),
		index:  make(map[string]int, n),
	}
}

// Add inserts url and returns its insertion position. The boolean is true
// when url was not present before.
func (s *Set) Add(url string) (int, bool) {
	if s.filter.TestString(url) {
		if i, ok := s.index[url]; ok {
			return i, false
		}
	}
	s.filter.AddString(url)
	s.index[url] = len(s.items)
	s.items = append(s.items, url)
	return len(s.items) - 1, true
}

// Items returns the URLs in insertion order.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
