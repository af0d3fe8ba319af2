package model

import (
	"fmt"
)

// Value is a single field value of a record.
// The dynamic type must be comparable (usable as a map key).
type Value = any

// Record is an ordered sequence of field values.
type Record []Value

// Len returns the arity of the record.
func (r Record) Len() int { return len(r) }

// Without returns a copy of the record with the column at idx removed.
// If idx is out of range the copy is returned unchanged.
func (r Record) Without(idx int) Record {
	out := make(Record, 0, len(r))
	for i, v := range r {
		if i == idx {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Insert returns a copy of the record with v inserted before position idx.
// idx is clamped to [0, len(r)].
func (r Record) Insert(idx int, v Value) Record {
	if idx < 0 {
		idx = 0
	}
	if idx > len(r) {
		idx = len(r)
	}
	out := make(Record, 0, len(r)+1)
	out = append(out, r[:idx]...)
	out = append(out, v)
	out = append(out, r[idx:]...)
	return out
}

// Ref identifies a record by its dataset and its position in that dataset.
type Ref struct {
	// Dataset is the index of the source collection (0 for single-dataset joins).
	Dataset int
	// Index is the position of the record inside its dataset.
	Index int
	// Record is the caller's original record.
	Record Record
}

// String returns a string representation of the Ref.
func (r Ref) String() string {
	return fmt.Sprintf("Ref(%d:%d)", r.Dataset, r.Index)
}

// Less reports whether r sorts before o (dataset first, then index).
func (r Ref) Less(o Ref) bool {
	if r.Dataset != o.Dataset {
		return r.Dataset < o.Dataset
	}
	return r.Index < o.Index
}

// Match is an unordered pair of similar records.
//
// Left always sorts before Right (see Ref.Less), so a result set never holds
// both orderings of the same pair.
type Match struct {
	Left  Ref
	Right Ref
	// Similarity is the exact Jaccard similarity of the two records' value sets.
	Similarity float64
}

// String returns a string representation of the Match.
func (m Match) String() string {
	return fmt.Sprintf("Match(%s, %s, %.4f)", m.Left, m.Right, m.Similarity)
}

// Pair is a matched record pair without positional information.
type Pair [2]Record
