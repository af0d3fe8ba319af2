package testutil

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/ppjoin/model"
)

// Pair is a join result by record position (X < Y).
type Pair struct {
	X          int
	Y          int
	Similarity float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Zipf returns a Zipfian-distributed value in [0, n).
// s=1.0 gives standard Zipf, larger s gives a heavier head.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Token returns the string token for vocabulary index i.
func Token(i int) string {
	return fmt.Sprintf("t%04d", i)
}

// Records generates num records with between minLen and maxLen fields each.
// Field values are Zipf-distributed tokens drawn from a vocabulary of the given
// size, so some tokens are frequent and most are rare. Records may repeat a
// value in several fields.
func (r *RNG) Records(num, minLen, maxLen, vocabulary int) []model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]model.Record, num)
	for i := range num {
		n := minLen
		if maxLen > minLen {
			n += r.rand.Intn(maxLen - minLen + 1)
		}
		rec := make(model.Record, n)
		for j := range rec {
			rec[j] = Token(r.zipfLocked(vocabulary, 1.1))
		}
		records[i] = rec
	}
	return records
}

// WithNearDuplicates appends count mutated copies of randomly chosen records.
// Each field of a copy is replaced with a fresh token with probability noise.
func (r *RNG) WithNearDuplicates(records []model.Record, count int, noise float64) []model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(records) == 0 {
		return records
	}

	out := slices.Clone(records)
	for i := range count {
		src := records[r.rand.Intn(len(records))]
		dup := slices.Clone(src)
		for j := range dup {
			if r.rand.Float64() < noise {
				dup[j] = fmt.Sprintf("noise-%d-%d", i, j)
			}
		}
		out = append(out, dup)
	}
	return out
}

// BruteForceJoin compares every pair of records and returns those whose
// distinct value sets have Jaccard similarity of at least t. Records with no
// values never match.
func BruteForceJoin(records []model.Record, t float64) []Pair {
	sets := make([]map[model.Value]struct{}, len(records))
	for i, rec := range records {
		s := make(map[model.Value]struct{}, len(rec))
		for _, v := range rec {
			s[v] = struct{}{}
		}
		sets[i] = s
	}

	var pairs []Pair
	for x := range sets {
		if len(sets[x]) == 0 {
			continue
		}
		for y := x + 1; y < len(sets); y++ {
			if len(sets[y]) == 0 {
				continue
			}
			sim := Jaccard(sets[x], sets[y])
			if sim+1e-9 >= t {
				pairs = append(pairs, Pair{X: x, Y: y, Similarity: sim})
			}
		}
	}
	return pairs
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both are empty.
func Jaccard[K comparable](a, b map[K]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// SortPairs orders pairs by (X, Y).
func SortPairs(pairs []Pair) {
	slices.SortFunc(pairs, func(p, q Pair) int {
		if c := cmp.Compare(p.X, q.X); c != 0 {
			return c
		}
		return cmp.Compare(p.Y, q.Y)
	})
}

// ComputeRecall returns the fraction of groundTruth pairs found in approximate.
func ComputeRecall(groundTruth, approximate []Pair) float64 {
	if len(groundTruth) == 0 {
		return 1.0
	}

	found := make(map[[2]int]struct{}, len(approximate))
	for _, p := range approximate {
		found[[2]int{p.X, p.Y}] = struct{}{}
	}

	hits := 0
	for _, p := range groundTruth {
		if _, ok := found[[2]int{p.X, p.Y}]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(groundTruth))
}
