// Package verify confirms candidate pairs produced by the filter.
//
// The prefix pass has already counted the shared tokens up to the smaller of
// the two last prefix tokens. Verification therefore only scans the suffix of
// the row whose prefix ends first, against the tail of the other row past the
// confirmed overlap, so no token is counted twice.
//
// Reported similarity is always the exact Jaccard similarity of the two
// row-sets, independent of the bounds used for pruning.
package verify
