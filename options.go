package ppjoin

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/ppjoin/model"
	"github.com/hupe1980/ppjoin/token"
)

type options struct {
	order            token.Order
	normalizer       token.Normalizer
	exclude          []int
	datasetColumn    int
	positional       bool
	merge            MergeFunc
	concurrency      int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Joiner or a one-shot join call.
type Option func(*options)

// WithOrder sets the total order used to rank tokens inside each record.
// If nil is passed, token.TextOrder is used.
//
// Any strict total order gives the same matches; the order only changes how
// much work the filters save. Orders that put rare values first prune best.
func WithOrder(order token.Order) Option {
	return func(o *options) {
		if order == nil {
			order = token.TextOrder{}
		}
		o.order = order
	}
}

// WithSortKey orders tokens by a derived string key. Values with equal keys
// are ordered by dynamic type name, then by first appearance.
func WithSortKey(key func(model.Value) string) Option {
	return func(o *options) {
		if key == nil {
			o.order = token.TextOrder{}
			return
		}
		o.order = token.KeyOrder(key)
	}
}

// WithExcludeColumns removes field positions from similarity computation,
// e.g. primary keys. Positions refer to the caller's records.
func WithExcludeColumns(cols ...int) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, cols...)
	}
}

// WithDatasetColumn sets where cross-dataset joins insert the synthetic
// dataset id into each record. The default is 0 (prepended). Positions past
// the shortest record are clamped to its arity.
func WithDatasetColumn(pos int) Option {
	return func(o *options) {
		o.datasetColumn = pos
	}
}

// WithNormalizer maps every field value before it becomes a token.
// Values that normalize to the same value are the same token.
//
// Example, case-insensitive text matching:
//
//	matches, _ := ppjoin.FindDuplicates(records, 0.8, ppjoin.WithNormalizer(token.LowercaseText))
func WithNormalizer(n token.Normalizer) Option {
	return func(o *options) {
		o.normalizer = n
	}
}

// WithPositionalFilter toggles the positional filter. When disabled every
// shared prefix token makes a candidate; results are the same, only the
// number of verified candidates grows.
func WithPositionalFilter(enabled bool) Option {
	return func(o *options) {
		o.positional = enabled
	}
}

// WithMergeFunc sets the pairwise merge used by Resolve.
// If nil is passed, the default folds the pair with MergeDuplicates.
func WithMergeFunc(fn MergeFunc) Option {
	return func(o *options) {
		if fn == nil {
			fn = mergePair
		}
		o.merge = fn
	}
}

// WithConcurrency sets how many goroutines canonicalize records.
// The join pass itself is always sequential.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ppjoin.BasicMetricsCollector{}
//	j := ppjoin.New(ppjoin.WithMetricsCollector(metrics))
//	// ... use j ...
//	stats := metrics.GetStats()
//	fmt.Printf("Joins: %d, Avg latency: %dns\n", stats.JoinCount, stats.JoinAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ppjoin.NewJSONLogger(slog.LevelInfo)
//	j := ppjoin.New(ppjoin.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		order:            token.TextOrder{},
		normalizer:       token.Identity,
		positional:       true,
		merge:            mergePair,
		concurrency:      1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) validate() error {
	for _, col := range o.exclude {
		if col < 0 {
			return fmt.Errorf("%w: excluded column %d", ErrInvalidColumn, col)
		}
	}
	if o.datasetColumn < 0 {
		return fmt.Errorf("%w: dataset column %d", ErrInvalidColumn, o.datasetColumn)
	}
	return nil
}
