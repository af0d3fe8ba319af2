// Package index provides the incremental inverted index used by the join.
//
// The index is an arena of posting buckets addressed by token rank. Each
// bucket is an append-only list of (row, position) occurrences. Buckets only
// grow during the indexer pass; existing postings are never rewritten.
//
// # Thread Safety
//
// Index is owned by a single join and is not safe for concurrent use.
package index
