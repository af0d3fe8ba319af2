// Package model defines the core types shared by the join engine and its callers.
//
// # Data Types
//
//   - Value: an opaque, comparable field value
//   - Record: an ordered, fixed-arity tuple of values, identified by its input position
//   - Ref: a record together with its dataset and position
//   - Match: an unordered pair of records plus their exact Jaccard similarity
//
// Records are treated as immutable once they are handed to the join.
package model
