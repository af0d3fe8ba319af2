package index

// Posting is one occurrence of a token: the row that contains it and the
// token's position inside that row.
type Posting struct {
	Row uint32
	Pos uint32
}

// Index maps token ranks to their postings.
type Index struct {
	buckets [][]Posting
	size    int
}

// New creates an index for a vocabulary of the given size.
func New(vocabulary int) *Index {
	return &Index{
		buckets: make([][]Posting, vocabulary),
	}
}

// Add appends an occurrence of token to its bucket.
func (idx *Index) Add(token, row, pos uint32) {
	if int(token) >= len(idx.buckets) {
		grown := make([][]Posting, int(token)+1)
		copy(grown, idx.buckets)
		idx.buckets = grown
	}
	idx.buckets[token] = append(idx.buckets[token], Posting{Row: row, Pos: pos})
	idx.size++
}

// Postings returns an iterator over the occurrences of token that exist now.
// Postings added afterwards are not visited by the returned iterator.
func (idx *Index) Postings(token uint32) *Iterator {
	if int(token) >= len(idx.buckets) {
		return &Iterator{}
	}
	return &Iterator{postings: idx.buckets[token]}
}

// Len returns the total number of postings.
func (idx *Index) Len() int { return idx.size }

// Tokens returns the number of tokens with at least one posting.
func (idx *Index) Tokens() int {
	n := 0
	for _, b := range idx.buckets {
		if len(b) > 0 {
			n++
		}
	}
	return n
}
