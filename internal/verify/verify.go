package verify

import (
	"github.com/hupe1980/ppjoin/internal/bitmap"
	"github.com/hupe1980/ppjoin/internal/filter"
	"github.com/hupe1980/ppjoin/internal/rowset"
)

// Stats counts the work done by the verifier.
type Stats struct {
	// Candidates is the number of pairs submitted to Verify.
	Candidates int
	// Scanned is the number of pairs that needed a suffix scan.
	Scanned int
	// Accepted is the number of pairs whose overlap reached alpha.
	Accepted int
}

// Verifier checks candidates against length-sorted rows.
type Verifier struct {
	rows  []rowset.RowSet
	t     float64
	sets  []*bitmap.Set
	stats Stats
}

// New creates a verifier for the given rows and threshold.
func New(rows []rowset.RowSet, t float64) *Verifier {
	return &Verifier{
		rows: rows,
		t:    t,
		sets: make([]*bitmap.Set, len(rows)),
	}
}

// Verify returns the overlap of rows x and y and whether it reaches alpha.
// count is the number of shared prefix tokens confirmed by the filter; it
// must be at least 1, which also means both rows are non-empty.
func (v *Verifier) Verify(x, y uint32, count int) (overlap int, ok bool) {
	v.stats.Candidates++

	rx, ry := v.rows[x], v.rows[y]
	px := filter.PrefixLen(len(rx), v.t)
	py := filter.PrefixLen(len(ry), v.t)
	alpha := filter.Alpha(len(rx), len(ry), v.t)

	overlap = count
	if rx.Last(px) < ry.Last(py) {
		if count+len(rx)-px >= alpha {
			v.stats.Scanned++
			overlap += IntersectCount(rx[px:], ry[count:])
		}
	} else {
		if count+len(ry)-py >= alpha {
			v.stats.Scanned++
			overlap += IntersectCount(rx[count:], ry[py:])
		}
	}

	if overlap >= alpha {
		v.stats.Accepted++
		return overlap, true
	}
	return overlap, false
}

// Similarity returns the exact Jaccard similarity of rows x and y.
func (v *Verifier) Similarity(x, y uint32) float64 {
	return v.set(x).Jaccard(v.set(y))
}

// Stats returns the counters accumulated so far.
func (v *Verifier) Stats() Stats { return v.stats }

func (v *Verifier) set(i uint32) *bitmap.Set {
	if s := v.sets[i]; s != nil {
		return s
	}
	s := bitmap.Of(v.rows[i]...)
	v.sets[i] = s
	return s
}

// IntersectCount returns the number of tokens shared by two ascending slices.
func IntersectCount(a, b []uint32) int {
	n := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n
}
