package token

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ppjoin/internal/rowset"
	"github.com/hupe1980/ppjoin/model"
)

// ErrUncomparable is returned for field values that cannot be used as tokens.
var ErrUncomparable = errors.New("value is not comparable")

// ValueError reports a field value that cannot be interned.
//
// The original underlying error can be accessed via errors.Unwrap.
type ValueError struct {
	Record int
	Column int
	Type   string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("record %d column %d: %s value is not comparable", e.Record, e.Column, e.Type)
}

func (e *ValueError) Unwrap() error { return ErrUncomparable }

// chunkSize is the number of records one worker canonicalizes per task.
const chunkSize = 256

// Canonicalizer turns records into row-sets.
type Canonicalizer struct {
	order       Order
	normalize   Normalizer
	exclude     map[int]struct{}
	concurrency int
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithNormalizer sets the value normalizer. nil means Identity.
func WithNormalizer(n Normalizer) Option {
	return func(c *Canonicalizer) {
		if n == nil {
			n = Identity
		}
		c.normalize = n
	}
}

// WithExclude omits the given column positions from token extraction.
func WithExclude(cols ...int) Option {
	return func(c *Canonicalizer) {
		for _, col := range cols {
			c.exclude[col] = struct{}{}
		}
	}
}

// WithConcurrency sets the number of goroutines used by CanonicalizeAll.
// Values below 2 keep canonicalization on the calling goroutine.
func WithConcurrency(n int) Option {
	return func(c *Canonicalizer) {
		c.concurrency = n
	}
}

// New creates a Canonicalizer. A nil order selects TextOrder.
func New(order Order, opts ...Option) *Canonicalizer {
	if order == nil {
		order = TextOrder{}
	}
	c := &Canonicalizer{
		order:       order,
		normalize:   Identity,
		exclude:     make(map[int]struct{}),
		concurrency: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Order returns the token order.
func (c *Canonicalizer) Order() Order { return c.order }

// Excluded reports whether column col is excluded from token extraction.
func (c *Canonicalizer) Excluded(col int) bool {
	_, ok := c.exclude[col]
	return ok
}

// Canonicalize returns the row-set of a single record as values: normalized,
// duplicate-free, without excluded columns, sorted by the token order.
// Repeated values collapse into one token.
func (c *Canonicalizer) Canonicalize(r model.Record) ([]model.Value, error) {
	vals, err := c.distinct(0, r)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(vals, c.order.Compare)
	return vals, nil
}

// Result is the canonical form of a record collection.
type Result struct {
	// Rows holds one row-set per input record, in input order.
	Rows []rowset.RowSet
	// Dict maps ranks back to token values.
	Dict *Dictionary
}

// CanonicalizeAll canonicalizes every record and ranks the shared vocabulary.
//
// Normalization and validation are pure per record and may run on several
// goroutines. Interning and ranking are sequential so token ids do not depend
// on scheduling.
func (c *Canonicalizer) CanonicalizeAll(ctx context.Context, records []model.Record) (*Result, error) {
	distinct := make([][]model.Value, len(records))

	if c.concurrency > 1 && len(records) > chunkSize {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)
		for start := 0; start < len(records); start += chunkSize {
			end := min(start+chunkSize, len(records))
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return c.fill(distinct, records, start, end)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.fill(distinct, records, 0, len(records)); err != nil {
			return nil, err
		}
	}

	dict := NewDictionary()
	ids := make([][]uint32, len(records))
	for i, vals := range distinct {
		row := make([]uint32, len(vals))
		for j, v := range vals {
			row[j] = dict.Intern(v)
		}
		ids[i] = row
	}
	dict.Freeze(c.order)

	rows := make([]rowset.RowSet, len(records))
	for i, row := range ids {
		for j, id := range row {
			row[j] = dict.Rank(id)
		}
		slices.Sort(row)
		rows[i] = rowset.RowSet(row)
	}

	return &Result{Rows: rows, Dict: dict}, nil
}

func (c *Canonicalizer) fill(dst [][]model.Value, records []model.Record, start, end int) error {
	for i := start; i < end; i++ {
		vals, err := c.distinct(i, records[i])
		if err != nil {
			return err
		}
		dst[i] = vals
	}
	return nil
}

// distinct returns the normalized, non-excluded values of r in first-seen order.
func (c *Canonicalizer) distinct(recordIdx int, r model.Record) ([]model.Value, error) {
	out := make([]model.Value, 0, len(r))
	var seen map[model.Value]struct{}
	if len(r) > 16 {
		seen = make(map[model.Value]struct{}, len(r))
	}

	for col, raw := range r {
		if c.Excluded(col) {
			continue
		}
		v := c.normalize(raw)
		if !isComparable(v) {
			return nil, &ValueError{Record: recordIdx, Column: col, Type: typeName(v)}
		}
		if seen != nil {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		} else if slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func isComparable(v model.Value) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
