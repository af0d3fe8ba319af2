package rowset

import (
	"slices"
)

// RowSet is the canonical form of one record: strictly ascending token ranks.
type RowSet []uint32

// Len returns the cardinality of the row-set.
func (r RowSet) Len() int { return len(r) }

// Last returns the largest token of the first n tokens.
// n must be in [1, len(r)].
func (r RowSet) Last(n int) uint32 { return r[n-1] }

// Sorted holds row-sets ordered by ascending cardinality together with the
// permutation back to the original record positions.
type Sorted struct {
	// Rows are the row-sets in non-decreasing length order.
	Rows []RowSet
	// Origin maps a position in Rows to the originating record position.
	Origin []int
}

// SortByLength orders rows by ascending cardinality.
// Rows of equal length keep their input order, so the result is deterministic.
func SortByLength(rows []RowSet) *Sorted {
	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return len(rows[a]) - len(rows[b])
	})

	s := &Sorted{
		Rows:   make([]RowSet, len(rows)),
		Origin: perm,
	}
	for i, orig := range perm {
		s.Rows[i] = rows[orig]
	}
	return s
}

// Len returns the number of rows.
func (s *Sorted) Len() int { return len(s.Rows) }
