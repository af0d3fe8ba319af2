package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a 32-bit Roaring bitmap.
// It wraps the official roaring implementation.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Of creates a set holding the given ids.
func Of(ids ...uint32) *Set {
	return &Set{rb: roaring.BitmapOf(ids...)}
}

// Add adds an id to the set.
func (s *Set) Add(id uint32) {
	s.rb.Add(id)
}

// AddMany adds several ids to the set.
func (s *Set) AddMany(ids []uint32) {
	s.rb.AddMany(ids)
}

// Contains checks if an id is in the set.
func (s *Set) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// Cardinality returns the number of elements in the set.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// AndCardinality returns |s ∩ other|.
func (s *Set) AndCardinality(other *Set) uint64 {
	return s.rb.AndCardinality(other.rb)
}

// OrCardinality returns |s ∪ other|.
func (s *Set) OrCardinality(other *Set) uint64 {
	return s.rb.OrCardinality(other.rb)
}

// Jaccard returns |s ∩ other| / |s ∪ other|. Two empty sets have similarity 0.
func (s *Set) Jaccard(other *Set) float64 {
	union := s.OrCardinality(other)
	if union == 0 {
		return 0
	}
	return float64(s.AndCardinality(other)) / float64(union)
}

// Iterator returns an iterator over the set in ascending order.
func (s *Set) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}
