package dataflow

import "math/bits"

// bitSet is a compact membership set over dense work-item indices, used to
// keep the worklist free of duplicates.
type bitSet struct {
	words []uint64
}

// newBitSet creates a set sized for indices up to max (inclusive).
func newBitSet(max int) *bitSet {
	return &bitSet{words: make([]uint64, (max+64)/64)}
}

// set adds idx to the set.
func (b *bitSet) set(idx int) {
	word := idx / 64
	if word >= len(b.words) {
		grown := make([]uint64, word+1)
		copy(grown, b.words)
		b.words = grown
	}
	b.words[word] |= 1 << (idx % 64)
}

// clear removes idx from the set.
func (b *bitSet) clear(idx int) {
	word := idx / 64
	if word < len(b.words) {
		b.words[word] &^= 1 << (idx % 64)
	}
}

// has reports whether idx is in the set.
func (b *bitSet) has(idx int) bool {
	word := idx / 64
	if word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<(idx%64)) != 0
}

// count returns the number of members.
func (b *bitSet) count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}
