package engine_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/store"
)

type staticRoster struct {
	roster engine.Roster
}

func (s *staticRoster) Roster(ctx context.Context) (*engine.Roster, error) {
	r := s.roster
	return &r, nil
}

// fakeRunner serves canned player records. A non-nil err fails every call,
// simulating an unreachable store.
type fakeRunner struct {
	players map[string]store.Record
	err     error
	calls   int64
}

func (f *fakeRunner) RunQuery(ctx context.Context, q engine.QueryDescriptor) ([]store.Record, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}

	switch q.Kind {
	case engine.QueryPlayerSeason:
		if rec, ok := f.players[q.Entity]; ok {
			return []store.Record{rec}, nil
		}
		return nil, nil
	case engine.QueryCohort, engine.QueryClubTotals:
		names := make([]string, 0, len(f.players))
		for name := range f.players {
			names = append(names, name)
		}
		sort.Strings(names)

		records := make([]store.Record, 0, len(names))
		for _, name := range names {
			records = append(records, f.players[name])
		}
		return records, nil
	}
	return nil, nil
}

func testRecords() map[string]store.Record {
	return map[string]store.Record{
		"Luke Bangs": {
			"name": "Luke Bangs", "appearances": 31, "goals": 29, "assists": 7,
			"penalties_scored": 3, "penalties_missed": 1, "motm_awards": 5,
			"fantasy_points": 142, "match_points": 58,
		},
		"Danny Cross": {
			"name": "Danny Cross", "appearances": 28, "goals": 11, "assists": 14,
			"penalties_scored": 0, "penalties_missed": 0, "motm_awards": 3,
			"fantasy_points": 104, "match_points": 51,
		},
		"Sam Whittaker": {
			"name": "Sam Whittaker", "appearances": 25, "goals": 2, "assists": 3,
			"penalties_scored": 0, "penalties_missed": 0, "motm_awards": 2,
			"fantasy_points": 77, "match_points": 45,
		},
	}
}

func newTestEngine(runner engine.QueryRunner) *engine.Engine {
	roster := &staticRoster{roster: engine.Roster{
		Players: []string{"Luke Bangs", "Danny Cross", "Sam Whittaker", "Mark Taylor"},
		Teams:   []string{"Saturday 1st XI", "Saturday 2nd XI"},
	}}

	return engine.New(runner, roster, engine.Options{
		CurrentSeason: "2025-26",
		StoreTimeout:  time.Second,
		RetryDelay:    time.Millisecond,
	})
}

func ask(t *testing.T, eng *engine.Engine, question string) *engine.AnswerResult {
	t.Helper()
	result := eng.ProcessQuestion(context.Background(), engine.QuestionContext{Question: question})
	require.NotNil(t, result)
	require.Contains(t, []engine.Confidence{
		engine.ConfidenceHigh, engine.ConfidenceMedium, engine.ConfidenceLow,
	}, result.Confidence)
	return result
}

func TestDirectMetricQuestion(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "How many goals has Luke Bangs scored this season?")

	assert.Equal(t, "Luke Bangs has scored 29 goals this season.", result.Answer)
	assert.Equal(t, engine.ConfidenceHigh, result.Confidence)
}

func TestPenaltyConversionRate(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "What is Luke Bangs' penalty conversion rate?")

	assert.Contains(t, result.Answer, "75%")
	assert.Contains(t, result.Answer, "scoring 3 of 4 penalties")
	assert.Equal(t, engine.ConfidenceHigh, result.Confidence)
}

func TestZeroDenominatorUsesGuardWording(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "What is Danny Cross' penalty conversion rate?")

	assert.Contains(t, result.Answer, "no penalties recorded")
	assert.NotContains(t, result.Answer, "NaN")
	assert.NotContains(t, result.Answer, "Inf")
}

func TestAmbiguousPointsNamesInterpretation(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "How many points does Luke Bangs have?")

	assert.Contains(t, result.Answer, "fantasy points")
	assert.Contains(t, result.Answer, "match points")
	assert.Contains(t, result.Answer, "142")
	assert.Equal(t, engine.ConfidenceMedium, result.Confidence)
}

func TestUnknownPlayerAnsweredInClubVocabulary(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "How many goals has John Terry scored this season?")

	assert.Contains(t, result.Answer, "John Terry")
	assert.Contains(t, result.Answer, "registered players")
	assert.Equal(t, engine.ConfidenceLow, result.Confidence)
}

func TestRankingQuestion(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "Who is our top scorer this season?")

	assert.Contains(t, result.Answer, "Luke Bangs")
	assert.Contains(t, result.Answer, "29")
	assert.Contains(t, result.Answer, "ahead of Danny Cross on 11")
	assert.Equal(t, engine.ConfidenceHigh, result.Confidence)

	require.NotNil(t, result.Visualization)
	assert.Equal(t, "table", result.Visualization.Kind)
	assert.LessOrEqual(t, len(result.Visualization.Data), 5)
}

func TestStoreDownFallsBackToFixtures(t *testing.T) {
	eng := newTestEngine(&fakeRunner{err: errors.New("connection refused")})

	result := ask(t, eng, "How many goals has Luke Bangs scored this season?")

	// The fixture dataset covers Luke Bangs, so the answer still carries a
	// figure, capped at medium confidence
	assert.Contains(t, result.Answer, "29")
	assert.Equal(t, engine.ConfidenceMedium, result.Confidence)
}

func TestStoreDownWithoutFixtureCoverage(t *testing.T) {
	eng := newTestEngine(&fakeRunner{err: errors.New("connection refused")})

	result := ask(t, eng, "How many goals has Mark Taylor scored this season?")

	assert.Contains(t, result.Answer, "unable to retrieve")
	assert.Equal(t, engine.ConfidenceLow, result.Confidence)
}

func TestStoreCallRetriesOnce(t *testing.T) {
	runner := &fakeRunner{err: errors.New("connection refused")}
	eng := newTestEngine(runner)

	ask(t, eng, "How many goals has Luke Bangs scored this season?")

	assert.Equal(t, int64(2), atomic.LoadInt64(&runner.calls))
}

func TestDeterministicAnswers(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	question := "Who is our top scorer this season?"
	first := ask(t, eng, question)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Answer, ask(t, eng, question).Answer)
	}
}

func TestAnswersNeverLeakStorageVocabulary(t *testing.T) {
	questions := []string{
		"How many goals has Luke Bangs scored this season?",
		"What is Danny Cross' penalty conversion rate?",
		"How many points does Luke Bangs have?",
		"Who is our top scorer?",
		"How many goals has John Terry scored?",
		"complete gibberish input here",
	}

	eng := newTestEngine(&fakeRunner{players: testRecords()})

	for _, q := range questions {
		result := ask(t, eng, q)
		lower := strings.ToLower(result.Answer)
		for _, forbidden := range []string{"database", "sql", "nan", "infinity", "player_match_stats", "null"} {
			assert.NotContains(t, lower, forbidden, "question %q leaked %q", q, forbidden)
		}
	}
}

func TestComparisonQuestion(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "Who has more assists, Luke Bangs or Danny Cross?")

	assert.Contains(t, result.Answer, "Luke Bangs")
	assert.Contains(t, result.Answer, "Danny Cross")
	require.NotNil(t, result.Visualization)
	assert.Equal(t, "chart", result.Visualization.Kind)
}

func TestComparisonWithAmbiguousPoints(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "Who has more points, Luke Bangs or Danny Cross?")

	assert.Contains(t, result.Answer, "fantasy points")
	assert.Contains(t, result.Answer, "match points")
	assert.Contains(t, result.Answer, "142")
	assert.Contains(t, result.Answer, "104")
	assert.Equal(t, engine.ConfidenceMedium, result.Confidence)
}

func TestRankingWithDirectMetric(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "Who has the most assists this season?")

	assert.Contains(t, result.Answer, "Danny Cross")
	assert.Contains(t, result.Answer, "14")
	assert.Contains(t, result.Answer, "ahead of Luke Bangs on 7")
	assert.Equal(t, engine.ConfidenceHigh, result.Confidence)
}

func TestRankingWithAmbiguousPoints(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "Who has the most points this season?")

	assert.Contains(t, result.Answer, "Luke Bangs")
	assert.Contains(t, result.Answer, "142")
	assert.Contains(t, result.Answer, "match points")
	assert.Equal(t, engine.ConfidenceMedium, result.Confidence)
}

func TestLastProcessingDetails(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	assert.Nil(t, eng.LastProcessingDetails())

	result := ask(t, eng, "How many goals has Luke Bangs scored this season?")

	details := eng.LastProcessingDetails()
	require.NotNil(t, details)
	assert.Equal(t, engine.IntentPlayer, details.QuestionAnalysis.Type)
	assert.Equal(t, []string{"Luke Bangs"}, details.QuestionAnalysis.Entities)
	assert.Equal(t, string(result.Confidence), details.Confidence)
	assert.NotEmpty(t, details.TimingsMs)
}

func TestModifiersAttachToAnswerScope(t *testing.T) {
	eng := newTestEngine(&fakeRunner{players: testRecords()})

	result := ask(t, eng, "How many goals did Luke Bangs score in the 2024/25 season?")

	assert.Contains(t, result.Answer, "in the 2024-25 season")
}
