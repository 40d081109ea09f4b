package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/store"
)

func TestSumField(t *testing.T) {
	records := []store.Record{
		{"goals": 3},
		{"goals": 5},
		{"assists": 2}, // missing field counts as zero
	}

	assert.Equal(t, 8.0, engine.SumField(records, "goals"))
	assert.Equal(t, 0.0, engine.SumField(nil, "goals"))
}

func TestRateGuardsZeroDenominator(t *testing.T) {
	value, ok := engine.Rate(3, 4)
	require.True(t, ok)
	assert.InDelta(t, 0.75, value, 1e-9)

	_, ok = engine.Rate(3, 0)
	assert.False(t, ok)
}

func TestRankOrdersDescending(t *testing.T) {
	records := []store.Record{
		{"name": "Sam Whittaker", "goals": 2},
		{"name": "Luke Bangs", "goals": 29},
		{"name": "Danny Cross", "goals": 11},
	}

	ranked := engine.Rank(records, "goals", "name")

	require.Len(t, ranked, 3)
	assert.Equal(t, "Luke Bangs", ranked[0].Str("name"))
	assert.Equal(t, "Danny Cross", ranked[1].Str("name"))
	assert.Equal(t, "Sam Whittaker", ranked[2].Str("name"))
}

func TestRankBreaksTiesAlphabetically(t *testing.T) {
	records := []store.Record{
		{"name": "Zoe Hart", "goals": 10},
		{"name": "Amy Field", "goals": 10},
	}

	ranked := engine.Rank(records, "goals", "name")
	assert.Equal(t, "Amy Field", ranked[0].Str("name"))
	assert.Equal(t, "Zoe Hart", ranked[1].Str("name"))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := []store.Record{
		{"name": "Sam Whittaker", "goals": 2},
		{"name": "Luke Bangs", "goals": 29},
	}

	_ = engine.Rank(records, "goals", "name")
	assert.Equal(t, "Sam Whittaker", records[0].Str("name"))
}
