package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakford/clubstats/internal/api/rest"
	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/store"
)

type staticRoster struct{}

func (staticRoster) Roster(ctx context.Context) (*engine.Roster, error) {
	return &engine.Roster{Players: []string{"Luke Bangs", "Danny Cross"}}, nil
}

type fakeRunner struct{}

func (fakeRunner) RunQuery(ctx context.Context, q engine.QueryDescriptor) ([]store.Record, error) {
	if q.Kind == engine.QueryPlayerSeason && q.Entity == "Luke Bangs" {
		return []store.Record{{
			"name": "Luke Bangs", "appearances": 31, "goals": 29,
			"penalties_scored": 3, "penalties_missed": 1,
		}}, nil
	}
	return nil, nil
}

func newTestHandler() *rest.Handler {
	eng := engine.New(fakeRunner{}, staticRoster{}, engine.Options{
		CurrentSeason: "2025-26",
		StoreTimeout:  time.Second,
		RetryDelay:    time.Millisecond,
	})
	return rest.NewHandler(nil, eng, nil)
}

func TestHealthCheck(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "clubstats", body["service"])
}

func TestAskQuestion(t *testing.T) {
	handler := newTestHandler()

	payload := `{"question": "How many goals has Luke Bangs scored this season?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result engine.AnswerResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Contains(t, result.Answer, "29 goals")
	assert.Equal(t, engine.ConfidenceHigh, result.Confidence)
}

func TestAskQuestionRejectsEmptyBody(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskQuestionRejectsMalformedJSON(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader(`{"question":`))
	rec := httptest.NewRecorder()
	handler.AskQuestion(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLastQuestionDetails(t *testing.T) {
	handler := newTestHandler()

	// Nothing processed yet
	req := httptest.NewRequest(http.MethodGet, "/api/v1/questions/last", nil)
	rec := httptest.NewRecorder()
	handler.LastQuestionDetails(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Ask, then fetch diagnostics
	payload := `{"question": "How many goals has Luke Bangs scored this season?"}`
	askReq := httptest.NewRequest(http.MethodPost, "/api/v1/questions", strings.NewReader(payload))
	askRec := httptest.NewRecorder()
	handler.AskQuestion(askRec, askReq)
	require.Equal(t, http.StatusOK, askRec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/questions/last", nil)
	rec = httptest.NewRecorder()
	handler.LastQuestionDetails(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var details engine.ProcessingDetails
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&details))
	assert.Equal(t, engine.IntentPlayer, details.QuestionAnalysis.Type)
	assert.Equal(t, "high", details.Confidence)
}
