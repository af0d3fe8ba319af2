package index

// Iterator walks a posting list once, in insertion order.
// It is not restartable.
type Iterator struct {
	postings []Posting
	idx      int
}

// Next returns the next posting. ok is false once the list is exhausted.
func (it *Iterator) Next() (p Posting, ok bool) {
	if it.idx >= len(it.postings) {
		return Posting{}, false
	}
	p = it.postings[it.idx]
	it.idx++
	return p, true
}

// Remaining returns the number of postings not yet visited.
func (it *Iterator) Remaining() int {
	return len(it.postings) - it.idx
}
