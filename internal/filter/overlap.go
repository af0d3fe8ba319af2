package filter

import "iter"

// Overlap is the running overlap map of one probe row: candidate row id to
// the number of confirmed shared prefix tokens.
type Overlap struct {
	counts map[uint32]int
	order  []uint32
}

// NewOverlap creates an empty overlap map.
func NewOverlap() *Overlap {
	return &Overlap{counts: make(map[uint32]int)}
}

// Reset clears the map for the next probe row.
func (o *Overlap) Reset() {
	clear(o.counts)
	o.order = o.order[:0]
}

// Get returns the current count of candidate y.
func (o *Overlap) Get(y uint32) int {
	return o.counts[y]
}

// Set stores the count of candidate y.
func (o *Overlap) Set(y uint32, count int) {
	if _, ok := o.counts[y]; !ok {
		o.order = append(o.order, y)
	}
	o.counts[y] = count
}

// Len returns the number of candidates touched by the probe, pruned ones included.
func (o *Overlap) Len() int { return len(o.order) }

// Candidates yields every candidate with a nonzero count, in the order the
// probe first met them. The sequence is finite and is meant to be consumed
// once, before the next probe.
func (o *Overlap) Candidates() iter.Seq2[uint32, int] {
	return func(yield func(uint32, int) bool) {
		for _, y := range o.order {
			c := o.counts[y]
			if c < 1 {
				continue
			}
			if !yield(y, c) {
				return
			}
		}
	}
}
