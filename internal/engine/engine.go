package engine

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/hupe1980/ppjoin/internal/conv"
	"github.com/hupe1980/ppjoin/internal/filter"
	"github.com/hupe1980/ppjoin/internal/rowset"
	"github.com/hupe1980/ppjoin/internal/verify"
	"github.com/hupe1980/ppjoin/model"
	"github.com/hupe1980/ppjoin/token"
)

// cancelCheckInterval is the number of rows processed between context checks.
const cancelCheckInterval = 1024

// Pair is a verified match between two records, by original position (X < Y).
type Pair struct {
	X          int
	Y          int
	Similarity float64
}

// Stats describes one join run.
type Stats struct {
	Rows       int
	EmptyRows  int
	Vocabulary int
	Postings   int
	Filter     filter.Stats
	Verify     verify.Stats
	Matches    int
	Duration   time.Duration
}

// Engine runs set-similarity joins.
type Engine struct {
	canon  *token.Canonicalizer
	mode   filter.Mode
	logger *slog.Logger
}

// Option defines a configuration option for the Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCanonicalizer sets the canonicalizer used to build row-sets.
func WithCanonicalizer(c *token.Canonicalizer) Option {
	return func(e *Engine) {
		if c != nil {
			e.canon = c
		}
	}
}

// WithFilterMode selects positional or plain prefix filtering.
func WithFilterMode(m filter.Mode) Option {
	return func(e *Engine) {
		e.mode = m
	}
}

// New creates an engine. Without options it uses the text order, no excluded
// columns and positional filtering.
func New(opts ...Option) *Engine {
	e := &Engine{
		canon: token.New(nil),
		mode:  filter.Positional,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// ValidateThreshold checks 0 <= t < 1.
func ValidateThreshold(t float64) error {
	if !(t >= 0 && t < 1) {
		return fmt.Errorf("%w: similarity threshold %v must be in [0, 1)", ErrInvalidArgument, t)
	}
	return nil
}

// Join returns every pair of records whose row-sets reach Jaccard similarity t.
// Pairs are ordered by (X, Y) and each unordered pair appears once.
func (e *Engine) Join(ctx context.Context, records []model.Record, t float64) ([]Pair, Stats, error) {
	start := time.Now()
	var stats Stats

	if err := ValidateThreshold(t); err != nil {
		return nil, stats, err
	}
	if err := conv.CheckLen(len(records)); err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrTooManyRecords, err)
	}

	if e.logger != nil {
		e.logger.Info("Join started", "rowCount", len(records), "threshold", t, "mode", e.mode.String())
	}

	canonical, err := e.canon.CanonicalizeAll(ctx, records)
	if err != nil {
		return nil, stats, err
	}
	sorted := rowset.SortByLength(canonical.Rows)

	f := filter.New(sorted.Rows, canonical.Dict.Len(), t, e.mode)
	v := verify.New(sorted.Rows, t)

	seen := make(map[[2]int]struct{})
	var pairs []Pair

	for i, row := range sorted.Rows {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
		if row.Len() == 0 {
			// Empty rows have no prefix: nothing to index, nothing to probe.
			stats.EmptyRows++
			continue
		}

		x := uint32(i)
		for y, count := range f.Probe(x).Candidates() {
			if _, ok := v.Verify(x, y, count); !ok {
				continue
			}

			a, b := sorted.Origin[x], sorted.Origin[y]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if _, dup := seen[key]; dup {
				continue
			}

			sim := v.Similarity(x, y)
			if sim+filter.Epsilon < t {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, Pair{X: a, Y: b, Similarity: sim})
		}
	}

	slices.SortFunc(pairs, func(p, q Pair) int {
		if c := cmp.Compare(p.X, q.X); c != 0 {
			return c
		}
		return cmp.Compare(p.Y, q.Y)
	})

	stats.Rows = len(records)
	stats.Vocabulary = canonical.Dict.Len()
	stats.Postings = f.Postings()
	stats.Filter = f.Stats()
	stats.Verify = v.Stats()
	stats.Matches = len(pairs)
	stats.Duration = time.Since(start)

	if e.logger != nil {
		e.logger.Info("Join completed",
			"duration", stats.Duration,
			"rowCount", stats.Rows,
			"emptyRows", stats.EmptyRows,
			"vocabulary", stats.Vocabulary,
			"postings", stats.Postings,
			"candidates", stats.Verify.Candidates,
			"matches", stats.Matches,
		)
	}

	return pairs, stats, nil
}
