// Package token canonicalizes records into row-sets.
//
// A row-set is the sorted, duplicate-free sequence of tokens extracted from the
// non-excluded fields of a record. Tokens are interned in a Dictionary and
// ranked by an Order, so row-sets are plain ascending uint32 slices and every
// later comparison between tokens is an integer comparison.
//
// # Orders
//
//   - TextOrder: textual rendering, ties broken by dynamic type name (default)
//   - KeyOrder: caller-supplied string key
//   - OrderFunc: arbitrary comparison function
//
// The order must be total: the dictionary only breaks ties for values that
// compare equal, and does so by first appearance.
package token
