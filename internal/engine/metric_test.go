package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakford/clubstats/internal/engine"
)

func TestMetricResolveLongestPhraseFirst(t *testing.T) {
	registry := engine.NewMetricRegistry()
	matches := registry.Resolve(engine.Normalize("What is Luke Bangs' penalty conversion rate?"))

	require.Len(t, matches, 1)
	assert.Equal(t, "PenConv", matches[0].Spec.Code)
	assert.Empty(t, matches[0].Alternatives)
}

func TestMetricResolvePenaltiesScored(t *testing.T) {
	registry := engine.NewMetricRegistry()
	matches := registry.Resolve(engine.Normalize("How many penalties has he scored?"))

	require.NotEmpty(t, matches)
	assert.Equal(t, "PenSC", matches[0].Spec.Code)
}

func TestMetricResolveAmbiguousPoints(t *testing.T) {
	registry := engine.NewMetricRegistry()
	matches := registry.Resolve(engine.Normalize("How many points does Luke Bangs have?"))

	require.Len(t, matches, 1)
	assert.Equal(t, "FanPTS", matches[0].Spec.Code)
	require.Len(t, matches[0].Alternatives, 1)
	assert.Equal(t, "MatchPTS", matches[0].Alternatives[0].Code)
}

func TestMetricResolveExplicitPointsUnambiguous(t *testing.T) {
	registry := engine.NewMetricRegistry()

	matches := registry.Resolve(engine.Normalize("How many fantasy points does he have?"))
	require.Len(t, matches, 1)
	assert.Equal(t, "FanPTS", matches[0].Spec.Code)
	assert.Empty(t, matches[0].Alternatives)

	matches = registry.Resolve(engine.Normalize("How many match points does he have?"))
	require.Len(t, matches, 1)
	assert.Equal(t, "MatchPTS", matches[0].Spec.Code)
	assert.Empty(t, matches[0].Alternatives)
}

func TestMetricResolveRanked(t *testing.T) {
	registry := engine.NewMetricRegistry()
	matches := registry.Resolve(engine.Normalize("Who is the top scorer?"))

	require.NotEmpty(t, matches)
	assert.Equal(t, "TopAllGSC", matches[0].Spec.Code)
	assert.Equal(t, engine.MetricRanked, matches[0].Spec.Kind)
}

func TestMetricResolveAbbreviatedApps(t *testing.T) {
	registry := engine.NewMetricRegistry()
	matches := registry.Resolve(engine.Normalize("How many apps does Sam have?"))

	require.NotEmpty(t, matches)
	assert.Equal(t, "AllAPP", matches[0].Spec.Code)
}

func TestMetricSpecLookup(t *testing.T) {
	registry := engine.NewMetricRegistry()

	spec, ok := registry.Spec("AllGSC")
	require.True(t, ok)
	assert.Equal(t, "goals", spec.Label)

	_, ok = registry.Spec("NOPE")
	assert.False(t, ok)
}
