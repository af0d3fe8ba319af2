// Package filter implements prefix and positional filtering for the join.
//
// For a row-set x of length n and threshold t:
//
//	PrefixLen(x) = n - ceil(t*n) + 1
//	Alpha(x, y)  = ceil(t/(1+t) * (|x|+|y|))
//
// Two rows reaching Jaccard >= t share at least one token inside both
// prefixes, and share at least Alpha tokens overall. Rows are probed in
// non-decreasing length order; each probe reads the inverted index first and
// then appends its own prefix, so a row only meets rows processed before it.
package filter
