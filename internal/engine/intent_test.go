package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakford/clubstats/internal/engine"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		question string
		want     engine.IntentKind
	}{
		{"How many goals has Luke Bangs scored this season?", engine.IntentPlayer},
		{"Who is our top scorer this season?", engine.IntentRanking},
		{"Who has the most fantasy points?", engine.IntentRanking},
		{"What is the club record for goals in a season?", engine.IntentRecord},
		{"Goals for the whole squad overall", engine.IntentClub},
		{"How many goals did the first team score this season?", engine.IntentTeam},
		{"banana wizard trampoline", engine.IntentUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got := engine.ClassifyIntent(engine.Normalize(tt.question))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyIntentRankingBeatsTeam(t *testing.T) {
	// "most" forbids the team rule so ranking questions about a team
	// still classify as ranking
	got := engine.ClassifyIntent(engine.Normalize("Which team player has the most goals?"))
	assert.Equal(t, engine.IntentRanking, got)
}

func TestClassifyIntentDeterministic(t *testing.T) {
	normalized := engine.Normalize("How many assists does Danny Cross have?")
	first := engine.ClassifyIntent(normalized)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, engine.ClassifyIntent(normalized))
	}
}
