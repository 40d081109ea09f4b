package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oakford/clubstats/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll returns all of the club's active sides
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, name, short_name, league, is_active, created_at, updated_at
		FROM teams
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Name, &team.ShortName, &team.League,
			&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetByID finds a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	query := `
		SELECT team_id, name, short_name, league, is_active, created_at, updated_at
		FROM teams
		WHERE team_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&team.TeamID, &team.Name, &team.ShortName, &team.League,
		&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetByName finds a team by its full or short name
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*store.Team, error) {
	query := `
		SELECT team_id, name, short_name, league, is_active, created_at, updated_at
		FROM teams
		WHERE name ILIKE $1 OR short_name ILIKE $1
		LIMIT 1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, name).Scan(
		&team.TeamID, &team.Name, &team.ShortName, &team.League,
		&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}
