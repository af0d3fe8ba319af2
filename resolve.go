package ppjoin

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/ppjoin/model"
)

// Resolution is the outcome of an entity-resolution run.
type Resolution struct {
	// Matches holds every matched pair with positions and similarity.
	Matches []model.Match
	// Pairs holds the distinct matched record pairs by content, in first-seen order.
	Pairs []model.Pair
	// Merged holds one record per entry of Pairs, folded with the merge function.
	Merged []model.Record
}

// Resolve matches records and groups the result for entity resolution.
//
// A single dataset is deduplicated with FindDuplicates; several datasets are
// linked with FindDuplicatesAcross. Records with identical content that match
// several times make one entry in Pairs and Merged.
func (j *Joiner) Resolve(ctx context.Context, datasets [][]model.Record, threshold float64) (*Resolution, error) {
	var (
		matches []model.Match
		err     error
	)
	if len(datasets) == 1 {
		matches, err = j.FindDuplicates(ctx, datasets[0], threshold)
	} else {
		matches, err = j.FindDuplicatesAcross(ctx, datasets, threshold)
	}
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Resolution{Matches: matches}

	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		key := fmt.Sprintf("%#v\x00%#v", m.Left.Record, m.Right.Record)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		res.Pairs = append(res.Pairs, model.Pair{m.Left.Record, m.Right.Record})
		res.Merged = append(res.Merged, j.opts.merge(m.Left.Record, m.Right.Record))
	}

	d := time.Since(start)
	j.opts.metricsCollector.RecordMerge(len(res.Merged), d)
	j.opts.logger.LogMerge(ctx, len(matches), len(res.Merged), d)

	return res, nil
}

// Resolve matches records and groups the result for entity resolution.
//
// It is a shortcut for New(opts...).Resolve(context.Background(), datasets, threshold).
func Resolve(datasets [][]model.Record, threshold float64, opts ...Option) (*Resolution, error) {
	return New(opts...).Resolve(context.Background(), datasets, threshold)
}
