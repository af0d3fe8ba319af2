package ppjoin

import (
	"testing"

	"github.com/hupe1980/ppjoin/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companies() [][]model.Record {
	return [][]model.Record{
		{
			{"acme", "corp", "berlin", "1999"},
			{"globex", "inc", "paris", "2005"},
		},
		{
			{"acme", "gmbh", "berlin", "1999"},
			{"initech", "llc", "austin", "2010"},
			{"initech", "llc", "austin", "2011"},
		},
	}
}

func TestFindDuplicatesAcross(t *testing.T) {
	t.Run("CrossDataset", func(t *testing.T) {
		matches, err := FindDuplicatesAcross(companies(), 0.25)
		require.NoError(t, err)
		require.Len(t, matches, 1)

		m := matches[0]
		assert.NotEqual(t, m.Left.Dataset, m.Right.Dataset)
		assert.Equal(t, model.Ref{Dataset: 0, Index: 0, Record: companies()[0][0]}, m.Left)
		assert.Equal(t, model.Ref{Dataset: 1, Index: 0, Record: companies()[1][0]}, m.Right)
		assert.InDelta(t, 0.6, m.Similarity, 1e-9)
	})

	t.Run("SameDatasetPairsDropped", func(t *testing.T) {
		matches, err := FindDuplicatesAcross(companies(), 0.5)
		require.NoError(t, err)
		for _, m := range matches {
			assert.NotEqual(t, m.Left.Dataset, m.Right.Dataset)
		}

		single, err := FindDuplicates(companies()[1], 0.5)
		require.NoError(t, err)
		assert.Len(t, single, 1)
	})

	t.Run("DatasetColumn", func(t *testing.T) {
		matches, err := FindDuplicatesAcross(companies(), 0.25, WithDatasetColumn(2), WithExcludeColumns(3))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.InDelta(t, 0.5, matches[0].Similarity, 1e-9)
		assert.Equal(t, companies()[0][0], matches[0].Left.Record)

		clamped, err := FindDuplicatesAcross(companies(), 0.25, WithDatasetColumn(100))
		require.NoError(t, err)
		require.Len(t, clamped, 1)
		assert.InDelta(t, 0.6, clamped[0].Similarity, 1e-9)
	})

	t.Run("IdenticalAcrossDatasets", func(t *testing.T) {
		datasets := [][]model.Record{
			{{"x", "y"}},
			{{"x", "y"}},
			{{"x", "y"}},
		}

		matches, err := FindDuplicatesAcross(datasets, 0.9)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		for _, m := range matches {
			assert.True(t, m.Left.Less(m.Right))
			assert.InDelta(t, 1.0, m.Similarity, 1e-9)
		}
		assert.Equal(t, 0, matches[0].Left.Dataset)
		assert.Equal(t, 1, matches[0].Right.Dataset)
		assert.Equal(t, 2, matches[2].Right.Dataset)
	})

	t.Run("ValueError", func(t *testing.T) {
		datasets := companies()
		datasets[1][1] = model.Record{"initech", "llc", []string{"austin"}}

		_, err := FindDuplicatesAcross(datasets, 0.25)
		require.ErrorIs(t, err, ErrUncomparableValue)

		var ve *ValueError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, 1, ve.Dataset)
		assert.Equal(t, 1, ve.Record)
		assert.Equal(t, 2, ve.Column)
	})

	t.Run("InvalidThreshold", func(t *testing.T) {
		_, err := FindDuplicatesAcross(companies(), 1)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("NoDatasets", func(t *testing.T) {
		matches, err := FindDuplicatesAcross(nil, 0.5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestTagDatasets(t *testing.T) {
	tg := tagDatasets([][]model.Record{
		{{"a", "b", "c"}},
		{{"d", "e"}},
	}, 5)

	assert.Equal(t, 2, tg.column)
	assert.Equal(t, model.Record{"a", "b", 0, "c"}, tg.records[0])
	assert.Equal(t, model.Record{"d", "e", 1}, tg.records[1])
	assert.Equal(t, []int{0, 3, 2}, tg.exclude([]int{0, 2}))
	assert.Equal(t, 1, tg.refs[1].Dataset)
	assert.Equal(t, 0, tg.refs[1].Index)
}
