// Package engine implements the set-similarity join.
//
// The engine orchestrates, strictly in this order:
//   - canonicalization of records into ranked row-sets (token)
//   - the ascending length sort with its row-index mapping (rowset)
//   - the incremental indexer and candidate filter (filter)
//   - verification and exact Jaccard scoring (verify)
//
// The pass is single-threaded: every row reads the inverted index before
// appending its own prefix, and rows are visited in non-decreasing length
// order. Only canonicalization may fan out across goroutines.
package engine
