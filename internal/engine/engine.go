package engine

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/oakford/clubstats/internal/store"
)

// RosterProvider returns the current list of canonical player and team
// names. It is refreshed independently of question processing.
type RosterProvider interface {
	Roster(ctx context.Context) (*Roster, error)
}

// Options configures an Engine
type Options struct {
	// CurrentSeason is the season year questions default to, e.g. "2025-26"
	CurrentSeason string
	// StoreTimeout bounds each individual store call
	StoreTimeout time.Duration
	// RetryDelay is the backoff before the single store retry
	RetryDelay time.Duration
}

// Engine answers free-text questions about the club's statistics. Each
// ProcessQuestion call is independent and re-entrant; the only shared state
// is the last-processed diagnostics slot.
type Engine struct {
	planner       *planner
	roster        RosterProvider
	metrics       *MetricRegistry
	fallback      *FallbackDataset
	currentSeason string

	mu   sync.Mutex
	last *ProcessingDetails
}

// New creates a question engine over the given store runner and roster
// provider
func New(runner QueryRunner, roster RosterProvider, opts Options) *Engine {
	if opts.CurrentSeason == "" {
		opts.CurrentSeason = "2025-26"
	}
	if opts.StoreTimeout == 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}

	return &Engine{
		planner: &planner{
			runner:     runner,
			timeout:    opts.StoreTimeout,
			retryDelay: opts.RetryDelay,
		},
		roster:        roster,
		metrics:       NewMetricRegistry(),
		fallback:      NewFallbackDataset(),
		currentSeason: opts.CurrentSeason,
	}
}

// ProcessQuestion runs the full pipeline and always produces an
// AnswerResult. Expected failure modes (ambiguity, unknown names, store
// unavailability) become low- or medium-confidence answers, never errors.
func (e *Engine) ProcessQuestion(ctx context.Context, qc QuestionContext) *AnswerResult {
	timings := make(map[string]float64, 6)
	stage := func(name string, start time.Time) {
		timings[name] = float64(time.Since(start).Microseconds()) / 1000
	}

	start := time.Now()
	normalized := Normalize(qc.Question)
	stage("normalize", start)

	start = time.Now()
	intent := ClassifyIntent(normalized)
	stage("classify", start)

	roster, rosterErr := e.roster.Roster(ctx)
	if rosterErr != nil || roster == nil {
		// Entity resolution degrades to the fixture names rather than failing
		roster = &Roster{Players: e.fallback.PlayerNames()}
	}

	start = time.Now()
	entities := ResolveEntities(normalized, roster, qc.UserContext)
	stage("entities", start)

	start = time.Now()
	metrics := e.metrics.Resolve(normalized)
	stage("metrics", start)

	modifiers := ExtractModifiers(normalized, e.currentSeason)
	if intent == IntentRecord && !HasExplicitSeason(normalized) {
		// Historical-record questions span all seasons by default
		modifiers.SeasonYear = ""
	}

	analysis := QuestionAnalysis{
		Type:      intent,
		Entities:  canonicalNames(entities),
		Metrics:   metricCodes(metrics),
		Modifiers: modifiers,
	}

	start = time.Now()
	results := map[string][]store.Record{}
	storeDown := false
	fromFallback := false

	if descriptors := e.planner.plan(analysis, entities, metrics); len(descriptors) > 0 {
		fetched, err := e.planner.execute(ctx, descriptors)
		if err != nil {
			storeDown = true
			results, fromFallback = e.fallbackResults(descriptors)
		} else {
			results = fetched
		}
	}
	stage("retrieve", start)

	unresolvedTerm := ""
	if len(entities) == 0 {
		unresolvedTerm = guessNameSpan(qc.Question)
	}

	start = time.Now()
	answer := synthesize(synthesisInput{
		analysis:       analysis,
		entities:       entities,
		metrics:        metrics,
		results:        results,
		fromFallback:   fromFallback,
		storeDown:      storeDown,
		unresolvedTerm: unresolvedTerm,
		currentSeason:  e.currentSeason,
	})
	stage("synthesize", start)

	details := &ProcessingDetails{
		QuestionAnalysis: analysis,
		ResolvedEntities: entities,
		Confidence:       string(answer.Confidence),
		TimingsMs:        timings,
	}

	e.mu.Lock()
	e.last = details
	e.mu.Unlock()

	return answer
}

// LastProcessingDetails returns the diagnostics captured for the most recent
// call, or nil before the first question. The slot is shared across calls
// and best-effort only: concurrent callers race on it, so it must not be
// relied on for anything beyond diagnostics.
func (e *Engine) LastProcessingDetails() *ProcessingDetails {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// fallbackResults rebuilds the result set from the fixture dataset for the
// entities the fixtures cover. Modifier filters do not apply to fixtures.
func (e *Engine) fallbackResults(descriptors []QueryDescriptor) (map[string][]store.Record, bool) {
	results := make(map[string][]store.Record)
	covered := false

	for _, d := range descriptors {
		switch d.Kind {
		case QueryPlayerSeason:
			if rec, ok := e.fallback.PlayerRecord(d.Entity); ok {
				results[d.Entity] = []store.Record{rec}
				covered = true
			}
		case QueryCohort, QueryClubTotals:
			results[cohortKey] = e.fallback.Cohort()
			covered = true
		}
	}

	return results, covered
}

// canonicalNames projects resolved entities onto their canonical names
func canonicalNames(entities []ResolvedEntity) []string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.CanonicalName)
	}
	return names
}

// metricCodes projects metric matches onto their canonical codes
func metricCodes(metrics []MetricMatch) []string {
	codes := make([]string, 0, len(metrics))
	for _, m := range metrics {
		codes = append(codes, m.Spec.Code)
	}
	return codes
}

// guessNameSpan pulls the most likely name span out of the original question
// so unresolved-name answers can echo the term back. It looks for the
// longest run of capitalised words away from the sentence start.
func guessNameSpan(original string) string {
	words := strings.Fields(original)

	var best, current []string
	for i, w := range words {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if i > 0 && trimmed != "" && unicode.IsUpper([]rune(trimmed)[0]) {
			current = append(current, trimmed)
			if len(current) > len(best) {
				best = current
			}
			continue
		}
		current = nil
	}

	return strings.Join(best, " ")
}
