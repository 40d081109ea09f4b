package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakford/clubstats/internal/engine"
)

const testSeason = "2025-26"

func TestExtractModifiersDefaults(t *testing.T) {
	mods := engine.ExtractModifiers(engine.Normalize("How many goals has Luke Bangs scored?"), testSeason)

	assert.Equal(t, testSeason, mods.SeasonYear)
	assert.Empty(t, mods.Teams)
	assert.Empty(t, mods.Location)
	assert.Empty(t, mods.CompetitionTypes)
}

func TestExtractModifiersExplicitSeason(t *testing.T) {
	mods := engine.ExtractModifiers(engine.Normalize("Goals in the 2023/24 season"), testSeason)
	assert.Equal(t, "2023-24", mods.SeasonYear)

	mods = engine.ExtractModifiers(engine.Normalize("Goals in 2024-25"), testSeason)
	assert.Equal(t, "2024-25", mods.SeasonYear)
}

func TestExtractModifiersLastSeason(t *testing.T) {
	mods := engine.ExtractModifiers(engine.Normalize("How many goals did he score last season?"), testSeason)
	assert.Equal(t, "2024-25", mods.SeasonYear)
}

func TestExtractModifiersTeam(t *testing.T) {
	mods := engine.ExtractModifiers(engine.Normalize("Goals for the first team this season"), testSeason)
	assert.Equal(t, []string{"1st XI"}, mods.Teams)
}

func TestExtractModifiersVenue(t *testing.T) {
	mods := engine.ExtractModifiers(engine.Normalize("How many goals at home?"), testSeason)
	assert.Equal(t, "home", mods.Location)

	mods = engine.ExtractModifiers(engine.Normalize("How many goals away from home?"), testSeason)
	assert.Equal(t, "home", mods.Location) // "home" keyword wins when both appear

	mods = engine.ExtractModifiers(engine.Normalize("Goals in away games"), testSeason)
	assert.Equal(t, "away", mods.Location)
}

func TestExtractModifiersCompetition(t *testing.T) {
	mods := engine.ExtractModifiers(engine.Normalize("Cup goals this season"), testSeason)
	assert.Equal(t, []string{"cup"}, mods.CompetitionTypes)

	mods = engine.ExtractModifiers(engine.Normalize("Goals in all competitions"), testSeason)
	assert.Empty(t, mods.CompetitionTypes)
}

func TestHasExplicitSeason(t *testing.T) {
	assert.True(t, engine.HasExplicitSeason(engine.Normalize("Goals this season")))
	assert.True(t, engine.HasExplicitSeason(engine.Normalize("Goals last season")))
	assert.True(t, engine.HasExplicitSeason(engine.Normalize("Goals in 2023/24")))
	assert.False(t, engine.HasExplicitSeason(engine.Normalize("Goals for Luke Bangs")))
}
