package filter

import (
	"github.com/hupe1980/ppjoin/internal/index"
	"github.com/hupe1980/ppjoin/internal/rowset"
)

// Mode selects how prefix collisions are counted.
type Mode uint8

const (
	// Positional counts a collision only while the positional upper bound can
	// still reach Alpha, and resets the candidate otherwise.
	Positional Mode = iota
	// PrefixOnly counts every prefix collision.
	PrefixOnly
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Positional:
		return "positional"
	case PrefixOnly:
		return "prefix"
	default:
		return "unknown"
	}
}

// Stats counts the work done by the filter.
type Stats struct {
	// Postings is the number of index entries visited.
	Postings int
	// SizePruned counts postings skipped by the length filter.
	SizePruned int
	// PositionPruned counts candidate resets by the positional filter.
	PositionPruned int
}

// Filter is the incremental indexer and candidate generator.
// It owns the inverted index; nothing else writes to it.
type Filter struct {
	rows    []rowset.RowSet
	idx     *index.Index
	t       float64
	mode    Mode
	overlap *Overlap
	stats   Stats
}

// New creates a filter over length-sorted rows with a vocabulary of the given size.
func New(rows []rowset.RowSet, vocabulary int, t float64, mode Mode) *Filter {
	return &Filter{
		rows:    rows,
		idx:     index.New(vocabulary),
		t:       t,
		mode:    mode,
		overlap: NewOverlap(),
	}
}

// Probe processes row x. For each token in the prefix of x it updates the
// running overlap of every earlier row holding that token in its prefix, then
// appends the token occurrence of x to the index.
//
// Rows must be probed in ascending order of x. The returned Overlap is only
// valid until the next call to Probe.
func (f *Filter) Probe(x uint32) *Overlap {
	f.overlap.Reset()

	row := f.rows[x]
	lx := len(row)
	prefix := PrefixLen(lx, f.t)

	for i := 0; i < prefix; i++ {
		tok := row[i]
		it := f.idx.Postings(tok)
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			f.stats.Postings++

			ly := len(f.rows[p.Row])
			if TooShort(ly, lx, f.t) {
				f.stats.SizePruned++
				continue
			}

			prev := f.overlap.Get(p.Row)
			if f.mode == PrefixOnly {
				f.overlap.Set(p.Row, prev+1)
				continue
			}

			alpha := Alpha(lx, ly, f.t)
			ubound := UpperBound(lx, i, ly, int(p.Pos))
			if prev+ubound >= alpha {
				f.overlap.Set(p.Row, prev+1)
			} else {
				f.overlap.Set(p.Row, 0)
				f.stats.PositionPruned++
			}
		}
		f.idx.Add(tok, x, uint32(i))
	}

	return f.overlap
}

// Stats returns the counters accumulated so far.
func (f *Filter) Stats() Stats { return f.stats }

// Postings returns the number of postings in the index.
func (f *Filter) Postings() int { return f.idx.Len() }
