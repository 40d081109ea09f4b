package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakford/clubstats/internal/engine"
)

func TestNormalizeStripsPunctuationAndCase(t *testing.T) {
	got := engine.Normalize("How many goals has Luke Bangs scored?!")
	assert.Equal(t, "how many goals has luke bangs scored", got)
}

func TestNormalizePossessives(t *testing.T) {
	assert.Equal(t, "luke bangs goals", engine.Normalize("Luke Bangs's goals"))
	assert.Equal(t, "luke bangs goals", engine.Normalize("Luke Bangs’ goals"))
}

func TestNormalizeExpandsAbbreviations(t *testing.T) {
	assert.Equal(t, "how many points", engine.Normalize("how many pts"))
	assert.Equal(t, "man of the match awards", engine.Normalize("motm awards"))
	assert.Equal(t, "luke bangs penalties", engine.Normalize("Luke Bangs pens"))
}

func TestNormalizeKeepsSeasonSeparators(t *testing.T) {
	assert.Equal(t, "goals in 2024/25", engine.Normalize("Goals in 2024/25?"))
	assert.Equal(t, "goals in 2024-25", engine.Normalize("Goals in 2024-25"))
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "top scorer this season", engine.Normalize("  Top   scorer,   this season  "))
}
