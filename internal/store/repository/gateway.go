package repository

import (
	"context"
	"fmt"

	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/store"
)

// StatsGateway adapts the repositories to the engine's narrow query
// interface. It is the only place engine query descriptors meet SQL.
type StatsGateway struct {
	stats *StatsRepository
	teams *TeamRepository
}

// NewStatsGateway creates a gateway over the club database
func NewStatsGateway(db *store.Database) *StatsGateway {
	return &StatsGateway{
		stats: NewStatsRepository(db),
		teams: NewTeamRepository(db),
	}
}

// RunQuery executes one engine query descriptor and returns records with
// explicit field coercion at the boundary
func (g *StatsGateway) RunQuery(ctx context.Context, q engine.QueryDescriptor) ([]store.Record, error) {
	filter := StatFilter{
		SeasonYear:   q.Modifiers.SeasonYear,
		Teams:        q.Modifiers.Teams,
		Venue:        q.Modifiers.Location,
		Competitions: q.Modifiers.CompetitionTypes,
	}

	switch q.Kind {
	case engine.QueryPlayerSeason:
		summary, err := g.stats.GetPlayerSummaryByName(ctx, q.Entity, filter)
		if err != nil {
			return nil, err
		}
		if summary.Appearances == 0 {
			return nil, nil
		}
		return []store.Record{summaryRecord(summary)}, nil

	case engine.QueryTeamSeason:
		team, err := g.teams.GetByName(ctx, q.Entity)
		if err != nil {
			return nil, err
		}
		filter.Teams = []string{team.ShortName}
		summary, err := g.stats.GetClubTotals(ctx, filter)
		if err != nil {
			return nil, err
		}
		summary.FullName = team.Name
		return []store.Record{summaryRecord(summary)}, nil

	case engine.QueryClubTotals:
		summary, err := g.stats.GetClubTotals(ctx, filter)
		if err != nil {
			return nil, err
		}
		return []store.Record{summaryRecord(summary)}, nil

	case engine.QueryCohort:
		summaries, err := g.stats.GetCohortSummaries(ctx, filter)
		if err != nil {
			return nil, err
		}
		records := make([]store.Record, 0, len(summaries))
		for _, summary := range summaries {
			records = append(records, summaryRecord(summary))
		}
		return records, nil
	}

	return nil, fmt.Errorf("unsupported query kind: %s", q.Kind)
}

// summaryRecord converts a typed summary into the engine's record shape
func summaryRecord(s *store.PlayerSeasonSummary) store.Record {
	return store.Record{
		"name":             s.FullName,
		"appearances":      s.Appearances,
		"goals":            s.Goals,
		"assists":          s.Assists,
		"yellow_cards":     s.YellowCards,
		"red_cards":        s.RedCards,
		"penalties_scored": s.PenaltiesScored,
		"penalties_missed": s.PenaltiesMissed,
		"motm_awards":      s.MotmAwards,
		"fantasy_points":   s.FantasyPoints,
		"match_points":     s.MatchPoints,
		"minutes_played":   s.MinutesPlayed,
	}
}
