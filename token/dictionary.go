package token

import (
	"slices"

	"github.com/hupe1980/ppjoin/model"
)

// Dictionary interns token values into dense ids.
//
// Ids are handed out in first-seen order while records are ingested. Freeze
// then ranks every id by the token order, so that afterwards comparing two
// ranks is the same as comparing the two values with the Order.
type Dictionary struct {
	ids    map[model.Value]uint32
	values []model.Value

	rank   []uint32      // id -> rank
	byRank []model.Value // rank -> value
	frozen bool
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		ids: make(map[model.Value]uint32),
	}
}

// Intern returns the id of v, assigning a new one if v is unseen.
// Intern panics after Freeze.
func (d *Dictionary) Intern(v model.Value) uint32 {
	if d.frozen {
		panic("token: intern on frozen dictionary")
	}
	if id, ok := d.ids[v]; ok {
		return id
	}
	id := uint32(len(d.values))
	d.ids[v] = id
	d.values = append(d.values, v)
	return id
}

// Len returns the number of distinct tokens.
func (d *Dictionary) Len() int { return len(d.values) }

// Freeze ranks all interned tokens by order. Equal values keep their
// first-seen order, which makes the ranking total and deterministic.
func (d *Dictionary) Freeze(order Order) {
	n := len(d.values)
	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}

	if ko, ok := order.(keyed); ok {
		keys := make([]string, n)
		for i, v := range d.values {
			keys[i] = ko.Key(v)
		}
		slices.SortStableFunc(perm, func(a, b uint32) int {
			return compareKeyed(keys[a], keys[b], d.values[a], d.values[b])
		})
	} else {
		slices.SortStableFunc(perm, func(a, b uint32) int {
			return order.Compare(d.values[a], d.values[b])
		})
	}

	d.rank = make([]uint32, n)
	d.byRank = make([]model.Value, n)
	for r, id := range perm {
		d.rank[id] = uint32(r)
		d.byRank[r] = d.values[id]
	}
	d.frozen = true
}

// Rank returns the rank of the token with the given id.
func (d *Dictionary) Rank(id uint32) uint32 { return d.rank[id] }

// Value returns the token value with the given rank.
func (d *Dictionary) Value(rank uint32) model.Value { return d.byRank[rank] }

// Frozen reports whether Freeze has been called.
func (d *Dictionary) Frozen() bool { return d.frozen }
