package ppjoin

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/ppjoin/internal/engine"
	"github.com/hupe1980/ppjoin/internal/filter"
	"github.com/hupe1980/ppjoin/model"
	"github.com/hupe1980/ppjoin/token"
)

// Stats describes the most recent join pass of a Joiner.
type Stats struct {
	// Rows is the number of records joined (all datasets for cross-dataset joins).
	Rows int
	// EmptyRows counts records without any token; they never match.
	EmptyRows int
	// Vocabulary is the number of distinct tokens.
	Vocabulary int
	// Postings is the size of the inverted index after the pass.
	Postings int
	// SizePruned counts postings skipped by the length filter.
	SizePruned int
	// PositionPruned counts postings that ruled a candidate out by position.
	PositionPruned int
	// Candidates is the number of pairs submitted to verification.
	Candidates int
	// Scanned is the number of candidates that needed a suffix scan.
	Scanned int
	// Matches is the number of verified pairs (before cross-dataset filtering).
	Matches int
	// Duration is the wall time of the pass.
	Duration time.Duration
}

func statsFrom(s engine.Stats) Stats {
	return Stats{
		Rows:           s.Rows,
		EmptyRows:      s.EmptyRows,
		Vocabulary:     s.Vocabulary,
		Postings:       s.Postings,
		SizePruned:     s.Filter.SizePruned,
		PositionPruned: s.Filter.PositionPruned,
		Candidates:     s.Verify.Candidates,
		Scanned:        s.Verify.Scanned,
		Matches:        s.Matches,
		Duration:       s.Duration,
	}
}

// Joiner runs set-similarity joins with a fixed configuration.
// It is safe for concurrent use; LastStats reports whichever join finished last.
type Joiner struct {
	opts options

	mu   sync.Mutex
	last Stats
}

// New creates a Joiner.
func New(opts ...Option) *Joiner {
	return &Joiner{
		opts: applyOptions(opts),
	}
}

// LastStats returns the counters of the most recent join pass.
func (j *Joiner) LastStats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}

// FindDuplicates returns every pair of records whose Jaccard similarity is at
// least threshold. Each unordered pair is reported once, Left before Right.
func (j *Joiner) FindDuplicates(ctx context.Context, records []model.Record, threshold float64) ([]model.Match, error) {
	if err := j.validate(threshold); err != nil {
		return nil, err
	}

	pairs, err := j.join(ctx, records, threshold, j.opts.exclude)
	if err != nil {
		return nil, translateError(err, threshold)
	}

	matches := make([]model.Match, len(pairs))
	for i, p := range pairs {
		matches[i] = model.Match{
			Left:       model.Ref{Index: p.X, Record: records[p.X]},
			Right:      model.Ref{Index: p.Y, Record: records[p.Y]},
			Similarity: p.Similarity,
		}
	}
	return matches, nil
}

func (j *Joiner) validate(threshold float64) error {
	if err := engine.ValidateThreshold(threshold); err != nil {
		return translateError(err, threshold)
	}
	return j.opts.validate()
}

func (j *Joiner) engine(exclude []int) *engine.Engine {
	mode := filter.Positional
	if !j.opts.positional {
		mode = filter.PrefixOnly
	}

	canon := token.New(j.opts.order,
		token.WithNormalizer(j.opts.normalizer),
		token.WithExclude(exclude...),
		token.WithConcurrency(j.opts.concurrency),
	)

	return engine.New(
		engine.WithCanonicalizer(canon),
		engine.WithFilterMode(mode),
		engine.WithLogger(j.opts.logger.Logger),
	)
}

// join runs one engine pass and records its stats, metrics and log line.
func (j *Joiner) join(ctx context.Context, records []model.Record, threshold float64, exclude []int) ([]engine.Pair, error) {
	start := time.Now()

	pairs, es, err := j.engine(exclude).Join(ctx, records, threshold)
	stats := statsFrom(es)

	j.opts.metricsCollector.RecordJoin(stats, time.Since(start), err)
	j.opts.logger.LogJoin(ctx, len(records), stats, err)
	if err != nil {
		return nil, err
	}

	j.mu.Lock()
	j.last = stats
	j.mu.Unlock()

	return pairs, nil
}

// FindDuplicates returns every pair of records whose Jaccard similarity is at
// least threshold, which must be in [0, 1).
//
// It is a shortcut for New(opts...).FindDuplicates(context.Background(), records, threshold).
func FindDuplicates(records []model.Record, threshold float64, opts ...Option) ([]model.Match, error) {
	return New(opts...).FindDuplicates(context.Background(), records, threshold)
}
