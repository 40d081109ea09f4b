package engine

import (
	"context"
	"sync"
	"time"

	"github.com/oakford/clubstats/internal/store"
)

// QueryKind selects the retrieval shape of a query descriptor
type QueryKind string

const (
	QueryPlayerSeason QueryKind = "player_season"
	QueryTeamSeason   QueryKind = "team_season"
	QueryClubTotals   QueryKind = "club_totals"
	QueryCohort       QueryKind = "cohort"
)

// QueryDescriptor is one retrieval request for the external data store
type QueryDescriptor struct {
	Kind      QueryKind
	Entity    string // canonical name; empty for cohort and club totals
	Fields    []string
	Modifiers ModifierSet
}

// QueryRunner is the narrow interface the planner delegates execution to.
// Connectivity and session lifecycle belong entirely to the implementation.
type QueryRunner interface {
	RunQuery(ctx context.Context, q QueryDescriptor) ([]store.Record, error)
}

// cohortKey is the result-map key for cohort-wide fetches
const cohortKey = "__cohort__"

// planner assembles retrieval requests and executes them against the store.
// Per-entity requests run concurrently; all results are joined before the
// synthesizer proceeds.
type planner struct {
	runner     QueryRunner
	timeout    time.Duration
	retryDelay time.Duration
}

// plan builds one descriptor per (entity, metric set, modifier) combination.
// A ranked metric collapses the plan into a single cohort-wide fetch.
func (p *planner) plan(analysis QuestionAnalysis, entities []ResolvedEntity, metrics []MetricMatch) []QueryDescriptor {
	fields := fieldsFor(metrics)

	for _, m := range metrics {
		if m.Spec.Kind == MetricRanked {
			return []QueryDescriptor{{
				Kind:      QueryCohort,
				Fields:    fields,
				Modifiers: analysis.Modifiers,
			}}
		}
	}

	var descriptors []QueryDescriptor
	for _, ent := range entities {
		kind := QueryPlayerSeason
		if ent.EntityType == "team" {
			kind = QueryTeamSeason
		}
		descriptors = append(descriptors, QueryDescriptor{
			Kind:      kind,
			Entity:    ent.CanonicalName,
			Fields:    fields,
			Modifiers: analysis.Modifiers,
		})
	}

	if len(descriptors) == 0 && (analysis.Type == IntentClub || analysis.Type == IntentTeam) {
		descriptors = append(descriptors, QueryDescriptor{
			Kind:      QueryClubTotals,
			Fields:    fields,
			Modifiers: analysis.Modifiers,
		})
	}

	// A who-question with a direct metric and no names still needs the whole
	// cohort ("who has the most assists")
	if len(descriptors) == 0 && analysis.Type == IntentRanking && len(metrics) > 0 {
		descriptors = append(descriptors, QueryDescriptor{
			Kind:      QueryCohort,
			Fields:    fields,
			Modifiers: analysis.Modifiers,
		})
	}

	return descriptors
}

// execute runs every descriptor, entity-specific ones concurrently, and
// joins all results before returning. Each store call gets one retry with
// bounded backoff; after final failure the whole fetch is reported as a
// typed StoreUnavailableError.
func (p *planner) execute(ctx context.Context, descriptors []QueryDescriptor) (map[string][]store.Record, error) {
	results := make(map[string][]store.Record, len(descriptors))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		fetchErr error
	)

	for _, d := range descriptors {
		wg.Add(1)
		go func(q QueryDescriptor) {
			defer wg.Done()

			records, err := p.runWithRetry(ctx, q)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if fetchErr == nil {
					fetchErr = err
				}
				return
			}

			key := q.Entity
			if q.Kind == QueryCohort || q.Kind == QueryClubTotals {
				key = cohortKey
			}
			results[key] = records
		}(d)
	}

	wg.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return results, nil
}

// runWithRetry executes one store call with a per-attempt timeout and a
// single bounded-backoff retry. Timeouts are treated as store unavailability,
// never left pending.
func (p *planner) runWithRetry(ctx context.Context, q QueryDescriptor) ([]store.Record, error) {
	records, err := p.runOnce(ctx, q)
	if err == nil {
		return records, nil
	}

	select {
	case <-ctx.Done():
		return nil, &StoreUnavailableError{Cause: ctx.Err()}
	case <-time.After(p.retryDelay):
	}

	records, err = p.runOnce(ctx, q)
	if err != nil {
		return nil, &StoreUnavailableError{Cause: err}
	}
	return records, nil
}

func (p *planner) runOnce(ctx context.Context, q QueryDescriptor) ([]store.Record, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.runner.RunQuery(attemptCtx, q)
}

// fieldsFor collects the union of stored fields the resolved metrics need
func fieldsFor(metrics []MetricMatch) []string {
	var fields []string
	for _, m := range metrics {
		for _, f := range m.Spec.Fields {
			fields = appendUnique(fields, f)
		}
		for _, alt := range m.Alternatives {
			for _, f := range alt.Fields {
				fields = appendUnique(fields, f)
			}
		}
	}
	return fields
}
