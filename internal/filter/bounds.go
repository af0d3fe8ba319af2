package filter

import "math"

// Epsilon absorbs floating point error in the bounds. It only ever lengthens
// prefixes and lowers overlap requirements, so it cannot drop a true match.
const Epsilon = 1e-9

// ceil rounds v up, ignoring float noise just above an integer.
func ceil(v float64) int {
	return int(math.Ceil(v - Epsilon))
}

// PrefixLen returns the number of leading tokens of a row of length n that
// must be indexed and probed. It is 0 for empty rows and never exceeds n
// (at t = 0 the formula yields n+1).
func PrefixLen(n int, t float64) int {
	if n <= 0 {
		return 0
	}
	return min(n-ceil(t*float64(n))+1, n)
}

// Alpha returns the minimum number of shared tokens two rows of lengths lx
// and ly need for a Jaccard similarity of at least t.
func Alpha(lx, ly int, t float64) int {
	return ceil(t / (1 + t) * float64(lx+ly))
}

// TooShort reports whether a candidate of length ly can be skipped for a
// probe row of length lx. Candidates were indexed earlier and are therefore
// never longer than the probe.
func TooShort(ly, lx int, t float64) bool {
	return float64(ly) < t*float64(lx)-Epsilon
}

// UpperBound returns the largest overlap still reachable when the probe token
// at position i matches the candidate token at position j: the current token
// plus the shorter of the two remaining suffixes.
func UpperBound(lx, i, ly, j int) int {
	return 1 + min(lx-i, ly-j)
}
