// Package rowset defines the canonical row representation used by the join and
// the length sorter that orders rows for the indexer pass.
//
// The indexer relies on rows arriving in non-decreasing length order: a row
// only ever meets rows that are at most as long as itself, which is what
// licenses the cheap size filter. SortByLength is therefore part of the
// algorithm, not a presentation step.
package rowset
