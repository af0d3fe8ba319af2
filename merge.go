package ppjoin

import (
	"context"
	"math"
	"reflect"
	"time"

	"github.com/hupe1980/ppjoin/model"
)

// MergeFunc folds two matched records into one.
type MergeFunc func(a, b model.Record) model.Record

func mergePair(a, b model.Record) model.Record {
	return MergeDuplicates([]model.Record{a, b})
}

// MergeDuplicates folds a chain of matched records into one record.
//
// The fields of all records are read in order. Every distinct value appears
// once in the result, at the position of its last occurrence; values seen only
// once keep their relative order. Merging (a,e,f), (e,c) and (d,f) yields
// (a,e,c,d,f).
//
// Values that cannot be told equal to themselves (uncomparable types such as
// slices, or NaN) are kept at every occurrence.
func MergeDuplicates(chain []model.Record) model.Record {
	last := make(map[model.Value]int)
	n := 0
	for _, r := range chain {
		for _, v := range r {
			if mergeable(v) {
				last[v] = n
			}
			n++
		}
	}

	out := make(model.Record, 0, n)
	n = 0
	for _, r := range chain {
		for _, v := range r {
			if !mergeable(v) || last[v] == n {
				out = append(out, v)
			}
			n++
		}
	}
	return out
}

// mergeable reports whether v can key the fold map and find itself again.
func mergeable(v model.Value) bool {
	if v == nil {
		return true
	}
	switch f := v.(type) {
	case float64:
		return !math.IsNaN(f)
	case float32:
		return !math.IsNaN(float64(f))
	}
	return reflect.ValueOf(v).Comparable()
}

// MergeDuplicatesAcross finds the cross-dataset matches and merges each pair
// with MergeDuplicates. The synthetic dataset id is not part of the merged
// records. Records are returned in match order.
func (j *Joiner) MergeDuplicatesAcross(ctx context.Context, datasets [][]model.Record, threshold float64) ([]model.Record, error) {
	matches, err := j.FindDuplicatesAcross(ctx, datasets, threshold)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	merged := make([]model.Record, len(matches))
	for i, m := range matches {
		merged[i] = MergeDuplicates([]model.Record{m.Left.Record, m.Right.Record})
	}

	d := time.Since(start)
	j.opts.metricsCollector.RecordMerge(len(merged), d)
	j.opts.logger.LogMerge(ctx, len(matches), len(merged), d)

	return merged, nil
}

// MergeDuplicatesAcross finds the cross-dataset matches and merges each pair.
//
// It is a shortcut for New(opts...).MergeDuplicatesAcross(context.Background(), datasets, threshold).
func MergeDuplicatesAcross(datasets [][]model.Record, threshold float64, opts ...Option) ([]model.Record, error) {
	return New(opts...).MergeDuplicatesAcross(context.Background(), datasets, threshold)
}
