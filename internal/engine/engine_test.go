package engine

import (
	"context"
	"testing"

	"github.com/hupe1980/ppjoin/internal/filter"
	"github.com/hupe1980/ppjoin/model"
	"github.com/hupe1980/ppjoin/testutil"
	"github.com/hupe1980/ppjoin/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func people() []model.Record {
	return []model.Record{
		{"john", "smith", "nyc", "1980"},
		{"jon", "smith", "nyc", "1980"},
		{"alice", "brown", "la", "1990"},
		{"bob", "green", "sf", "2001"},
	}
}

func TestEngine_Join(t *testing.T) {
	e := New()

	pairs, stats, err := e.Join(context.Background(), people(), 0.5)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Equal(t, 0, pairs[0].X)
	assert.Equal(t, 1, pairs[0].Y)
	assert.InDelta(t, 0.6, pairs[0].Similarity, 1e-9)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 1, stats.Matches)
	assert.Equal(t, 13, stats.Vocabulary)
	assert.Positive(t, stats.Postings)

	pairs, _, err = e.Join(context.Background(), people(), 0.9)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestEngine_InvalidThreshold(t *testing.T) {
	e := New()
	for _, th := range []float64{-0.1, 1, 1.5} {
		_, _, err := e.Join(context.Background(), people(), th)
		assert.ErrorIs(t, err, ErrInvalidArgument, "threshold %v", th)
	}
}

func TestEngine_EmptyRows(t *testing.T) {
	recs := []model.Record{{}, {}, {"a"}, {"a"}}

	pairs, stats, err := New().Join(context.Background(), recs, 0.5)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{X: 2, Y: 3, Similarity: 1}, pairs[0])
	assert.Equal(t, 2, stats.EmptyRows)
}

func TestEngine_NoInput(t *testing.T) {
	pairs, stats, err := New().Join(context.Background(), nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Equal(t, 0, stats.Rows)
}

func TestEngine_RepeatedValues(t *testing.T) {
	recs := []model.Record{
		{"a", "a", "b"},
		{"b", "a"},
	}

	pairs, _, err := New().Join(context.Background(), recs, 0.9)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.InDelta(t, 1.0, pairs[0].Similarity, 1e-9)
}

func TestEngine_ThresholdZero(t *testing.T) {
	recs := []model.Record{{"a", "b"}, {"b", "c"}, {"x"}}

	pairs, _, err := New().Join(context.Background(), recs, 0)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, 0, pairs[0].X)
	assert.Equal(t, 1, pairs[0].Y)
}

func TestEngine_ExcludedColumn(t *testing.T) {
	recs := []model.Record{
		{1, "a", "b"},
		{2, "a", "b"},
		{1, "x", "y"},
	}
	e := New(WithCanonicalizer(token.New(nil, token.WithExclude(0))))

	pairs, _, err := e.Join(context.Background(), recs, 0.5)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{X: 0, Y: 1, Similarity: 1}, pairs[0])
}

func TestEngine_UncomparableValue(t *testing.T) {
	recs := []model.Record{{"a"}, {[]int{1}}}

	_, _, err := New().Join(context.Background(), recs, 0.5)
	require.ErrorIs(t, err, token.ErrUncomparable)

	var ve *token.ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Record)
	assert.Equal(t, 0, ve.Column)
}

func TestEngine_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New().Join(ctx, people(), 0.5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_MatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)
	recs := rng.WithNearDuplicates(rng.Records(300, 1, 10, 150), 60, 0.25)

	for _, mode := range []filter.Mode{filter.Positional, filter.PrefixOnly} {
		for _, th := range []float64{0.2, 0.5, 0.7, 0.9} {
			e := New(WithFilterMode(mode))

			got, _, err := e.Join(context.Background(), recs, th)
			require.NoError(t, err)

			want := testutil.BruteForceJoin(recs, th)
			require.Len(t, got, len(want), "mode=%s t=%v", mode, th)
			for i := range want {
				assert.Equal(t, want[i].X, got[i].X)
				assert.Equal(t, want[i].Y, got[i].Y)
				assert.InDelta(t, want[i].Similarity, got[i].Similarity, 1e-9)
			}
		}
	}
}

func TestEngine_ParallelCanonicalization(t *testing.T) {
	rng := testutil.NewRNG(99)
	recs := rng.WithNearDuplicates(rng.Records(1500, 2, 8, 400), 200, 0.2)

	seq, _, err := New().Join(context.Background(), recs, 0.6)
	require.NoError(t, err)

	par, _, err := New(WithCanonicalizer(token.New(nil, token.WithConcurrency(4)))).Join(context.Background(), recs, 0.6)
	require.NoError(t, err)

	assert.Equal(t, seq, par)
	assert.NotEmpty(t, seq)
}

func TestEngine_PositionalPrunesMore(t *testing.T) {
	rng := testutil.NewRNG(5)
	recs := rng.WithNearDuplicates(rng.Records(400, 4, 12, 200), 50, 0.2)

	_, pos, err := New().Join(context.Background(), recs, 0.7)
	require.NoError(t, err)
	_, plain, err := New(WithFilterMode(filter.PrefixOnly)).Join(context.Background(), recs, 0.7)
	require.NoError(t, err)

	assert.Equal(t, plain.Matches, pos.Matches)
	assert.LessOrEqual(t, pos.Verify.Candidates, plain.Verify.Candidates)
}
