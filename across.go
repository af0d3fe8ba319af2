package ppjoin

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/ppjoin/model"
	"github.com/hupe1980/ppjoin/token"
)

// tagged is the union of several datasets with a dataset id inserted into
// every record at the same column.
type tagged struct {
	records []model.Record
	refs    []model.Ref
	column  int
}

func tagDatasets(datasets [][]model.Record, column int) *tagged {
	n := 0
	for _, ds := range datasets {
		n += len(ds)
		for _, r := range ds {
			column = min(column, r.Len())
		}
	}

	t := &tagged{
		records: make([]model.Record, 0, n),
		refs:    make([]model.Ref, 0, n),
		column:  column,
	}
	for d, ds := range datasets {
		for i, r := range ds {
			t.records = append(t.records, r.Insert(column, d))
			t.refs = append(t.refs, model.Ref{Dataset: d, Index: i, Record: r})
		}
	}
	return t
}

// exclude maps caller column positions onto tagged records and adds the id column.
func (t *tagged) exclude(cols []int) []int {
	out := make([]int, 0, len(cols)+1)
	for _, c := range cols {
		if c >= t.column {
			c++
		}
		out = append(out, c)
	}
	return append(out, t.column)
}

// valueError rewrites an uncomparable-value error to dataset coordinates.
func (t *tagged) valueError(err error) error {
	var ve *token.ValueError
	if !errors.As(err, &ve) {
		return nil
	}
	ref := t.refs[ve.Record]
	col := ve.Column
	if col > t.column {
		col--
	}
	return &ValueError{Dataset: ref.Dataset, Record: ref.Index, Column: col, Type: ve.Type, cause: err}
}

// FindDuplicatesAcross joins the union of several datasets and returns the
// pairs whose records come from different datasets. Ref.Dataset identifies
// the source dataset and Ref.Record is the caller's record; the synthetic
// dataset id never contributes to similarity.
func (j *Joiner) FindDuplicatesAcross(ctx context.Context, datasets [][]model.Record, threshold float64) ([]model.Match, error) {
	start := time.Now()

	matches, err := j.findAcross(ctx, datasets, threshold)

	j.opts.metricsCollector.RecordCrossJoin(len(datasets), len(matches), time.Since(start), err)
	j.opts.logger.LogCrossJoin(ctx, len(datasets), len(matches), err)

	return matches, err
}

func (j *Joiner) findAcross(ctx context.Context, datasets [][]model.Record, threshold float64) ([]model.Match, error) {
	if err := j.validate(threshold); err != nil {
		return nil, err
	}

	tg := tagDatasets(datasets, j.opts.datasetColumn)

	pairs, err := j.join(ctx, tg.records, threshold, tg.exclude(j.opts.exclude))
	if err != nil {
		if verr := tg.valueError(err); verr != nil {
			return nil, verr
		}
		return nil, translateError(err, threshold)
	}

	var matches []model.Match
	for _, p := range pairs {
		left, right := tg.refs[p.X], tg.refs[p.Y]
		if left.Dataset == right.Dataset {
			continue
		}
		matches = append(matches, model.Match{
			Left:       left,
			Right:      right,
			Similarity: p.Similarity,
		})
	}
	return matches, nil
}

// FindDuplicatesAcross returns every pair of records from different datasets
// whose Jaccard similarity is at least threshold.
//
// It is a shortcut for New(opts...).FindDuplicatesAcross(context.Background(), datasets, threshold).
func FindDuplicatesAcross(datasets [][]model.Record, threshold float64, opts ...Option) ([]model.Match, error) {
	return New(opts...).FindDuplicatesAcross(context.Background(), datasets, threshold)
}
