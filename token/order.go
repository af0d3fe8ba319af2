package token

import (
	"fmt"
	"strings"

	"github.com/hupe1980/ppjoin/model"
)

// Order defines a strict total order over token values.
//
// Compare returns a negative number when a sorts before b, a positive number
// when it sorts after, and zero only for values that are interchangeable for
// similarity purposes. The dictionary breaks remaining ties by first
// appearance, so a run always sees one consistent order.
type Order interface {
	Compare(a, b model.Value) int
}

// keyed is implemented by the built-in orders that compare values by a derived
// string key and then by dynamic type name. The dictionary computes each key
// once instead of on every comparison.
type keyed interface {
	Order
	Key(v model.Value) string
	textKeyed()
}

// OrderFunc adapts a comparison function to the Order interface.
type OrderFunc func(a, b model.Value) int

// Compare implements Order.
func (f OrderFunc) Compare(a, b model.Value) int { return f(a, b) }

// TextOrder orders values by their textual rendering (fmt.Sprint).
// Values rendering to the same text are ordered by their dynamic type name,
// so the integer 1 and the string "1" remain distinct, ordered tokens.
type TextOrder struct{}

// Key returns the textual rendering of v.
func (TextOrder) Key(v model.Value) string { return fmt.Sprint(v) }

func (TextOrder) textKeyed() {}

// Compare implements Order.
func (o TextOrder) Compare(a, b model.Value) int {
	return compareKeyed(o.Key(a), o.Key(b), a, b)
}

// KeyOrder orders values by a caller-supplied sort key.
// Ties on the key fall back to the dynamic type name.
type KeyOrder func(model.Value) string

// Key returns the sort key of v.
func (f KeyOrder) Key(v model.Value) string { return f(v) }

func (KeyOrder) textKeyed() {}

// Compare implements Order.
func (f KeyOrder) Compare(a, b model.Value) int {
	return compareKeyed(f(a), f(b), a, b)
}

func compareKeyed(ka, kb string, a, b model.Value) int {
	if c := strings.Compare(ka, kb); c != 0 {
		return c
	}
	return strings.Compare(typeName(a), typeName(b))
}

func typeName(v model.Value) string {
	return fmt.Sprintf("%T", v)
}

var (
	_ keyed = TextOrder{}
	_ keyed = KeyOrder(nil)
	_ Order = OrderFunc(nil)
)
