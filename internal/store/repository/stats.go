package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/oakford/clubstats/internal/store"
)

// StatFilter narrows stat aggregation to a season, team, venue or
// competition slice. Zero values mean unfiltered.
type StatFilter struct {
	SeasonYear   string
	Teams        []string // team short names
	Venue        string   // "home" or "away"
	Competitions []string
}

// StatsRepository aggregates player match stats into season summaries
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// summaryColumns is the aggregation every summary query shares. Match points
// follow the usual three-one-nil scoring of the fixtures a player appeared in.
const summaryColumns = `
	COUNT(pms.stat_id) AS appearances,
	COALESCE(SUM(pms.goals), 0) AS goals,
	COALESCE(SUM(pms.assists), 0) AS assists,
	COALESCE(SUM(pms.yellow_cards), 0) AS yellow_cards,
	COALESCE(SUM(pms.red_cards), 0) AS red_cards,
	COALESCE(SUM(pms.penalties_scored), 0) AS penalties_scored,
	COALESCE(SUM(pms.penalties_missed), 0) AS penalties_missed,
	COALESCE(SUM(CASE WHEN pms.man_of_the_match THEN 1 ELSE 0 END), 0) AS motm_awards,
	COALESCE(SUM(pms.fantasy_points), 0) AS fantasy_points,
	COALESCE(SUM(CASE
		WHEN m.club_score > m.opponent_score THEN 3
		WHEN m.club_score = m.opponent_score THEN 1
		ELSE 0
	END), 0) AS match_points,
	COALESCE(SUM(pms.minutes_played), 0) AS minutes_played
`

// GetPlayerSummaryByName aggregates one player's stats across the matches
// that survive the filter
func (r *StatsRepository) GetPlayerSummaryByName(ctx context.Context, fullName string, filter StatFilter) (*store.PlayerSeasonSummary, error) {
	where, args := r.filterClauses(filter, 2)
	query := fmt.Sprintf(`
		SELECT p.player_id, p.full_name, %s
		FROM players p
		LEFT JOIN player_match_stats pms ON pms.player_id = p.player_id
		LEFT JOIN matches m ON m.match_id = pms.match_id %s
		WHERE p.full_name = $1
		GROUP BY p.player_id, p.full_name
	`, summaryColumns, where)

	args = append([]interface{}{fullName}, args...)

	summary := &store.PlayerSeasonSummary{}
	err := r.db.DB().QueryRowContext(ctx, query, args...).Scan(
		&summary.PlayerID, &summary.FullName, &summary.Appearances, &summary.Goals,
		&summary.Assists, &summary.YellowCards, &summary.RedCards,
		&summary.PenaltiesScored, &summary.PenaltiesMissed, &summary.MotmAwards,
		&summary.FantasyPoints, &summary.MatchPoints, &summary.MinutesPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("querying player summary: %w", err)
	}

	return summary, nil
}

// GetCohortSummaries aggregates every registered player's stats, one summary
// per player, for ranked questions
func (r *StatsRepository) GetCohortSummaries(ctx context.Context, filter StatFilter) ([]*store.PlayerSeasonSummary, error) {
	where, args := r.filterClauses(filter, 1)
	query := fmt.Sprintf(`
		SELECT p.player_id, p.full_name, %s
		FROM players p
		LEFT JOIN player_match_stats pms ON pms.player_id = p.player_id
		LEFT JOIN matches m ON m.match_id = pms.match_id %s
		WHERE p.is_active = true
		GROUP BY p.player_id, p.full_name
		ORDER BY p.full_name
	`, summaryColumns, where)

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cohort summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*store.PlayerSeasonSummary
	for rows.Next() {
		summary := &store.PlayerSeasonSummary{}
		err := rows.Scan(
			&summary.PlayerID, &summary.FullName, &summary.Appearances, &summary.Goals,
			&summary.Assists, &summary.YellowCards, &summary.RedCards,
			&summary.PenaltiesScored, &summary.PenaltiesMissed, &summary.MotmAwards,
			&summary.FantasyPoints, &summary.MatchPoints, &summary.MinutesPlayed,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning cohort summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// GetClubTotals aggregates across the whole club in one summary
func (r *StatsRepository) GetClubTotals(ctx context.Context, filter StatFilter) (*store.PlayerSeasonSummary, error) {
	where, args := r.filterClauses(filter, 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM player_match_stats pms
		JOIN matches m ON m.match_id = pms.match_id %s
	`, summaryColumns, where)

	summary := &store.PlayerSeasonSummary{FullName: "the club"}
	err := r.db.DB().QueryRowContext(ctx, query, args...).Scan(
		&summary.Appearances, &summary.Goals, &summary.Assists,
		&summary.YellowCards, &summary.RedCards, &summary.PenaltiesScored,
		&summary.PenaltiesMissed, &summary.MotmAwards, &summary.FantasyPoints,
		&summary.MatchPoints, &summary.MinutesPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("querying club totals: %w", err)
	}

	return summary, nil
}

// filterClauses builds the AND clauses shared by every summary query.
// Clauses attach to the matches join so unfiltered players still aggregate
// to zero rather than vanishing.
func (r *StatsRepository) filterClauses(filter StatFilter, firstArg int) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	arg := firstArg

	if filter.SeasonYear != "" {
		clauses = append(clauses, fmt.Sprintf(
			"AND m.season_id IN (SELECT season_id FROM seasons WHERE season_year = $%d)", arg))
		args = append(args, filter.SeasonYear)
		arg++
	}

	if len(filter.Teams) > 0 {
		placeholders := make([]string, 0, len(filter.Teams))
		for _, team := range filter.Teams {
			placeholders = append(placeholders, fmt.Sprintf("$%d", arg))
			args = append(args, team)
			arg++
		}
		clauses = append(clauses, fmt.Sprintf(
			"AND m.team_id IN (SELECT team_id FROM teams WHERE short_name IN (%s))",
			strings.Join(placeholders, ", ")))
	}

	if filter.Venue != "" {
		clauses = append(clauses, fmt.Sprintf("AND m.venue = $%d", arg))
		args = append(args, filter.Venue)
		arg++
	}

	if len(filter.Competitions) > 0 {
		placeholders := make([]string, 0, len(filter.Competitions))
		for _, comp := range filter.Competitions {
			placeholders = append(placeholders, fmt.Sprintf("$%d", arg))
			args = append(args, comp)
			arg++
		}
		clauses = append(clauses, fmt.Sprintf("AND m.competition IN (%s)",
			strings.Join(placeholders, ", ")))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return strings.Join(clauses, " "), args
}
