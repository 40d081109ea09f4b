package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oakford/clubstats/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByID finds a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, full_name, position,
			squad_number, joined_season, is_active, created_at, updated_at
		FROM players
		WHERE player_id = $1
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&player.PlayerID, &player.FirstName, &player.LastName, &player.FullName,
		&player.Position, &player.SquadNumber, &player.JoinedSeason,
		&player.IsActive, &player.CreatedAt, &player.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// GetByName searches for players by name (case-insensitive partial match)
func (r *PlayerRepository) GetByName(ctx context.Context, name string) ([]*store.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, full_name, position,
			squad_number, joined_season, is_active, created_at, updated_at
		FROM players
		WHERE full_name ILIKE $1
		ORDER BY full_name
		LIMIT 50
	`

	rows, err := r.db.DB().QueryContext(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// GetAllActive returns every registered player still on the books
func (r *PlayerRepository) GetAllActive(ctx context.Context) ([]*store.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, full_name, position,
			squad_number, joined_season, is_active, created_at, updated_at
		FROM players
		WHERE is_active = true
		ORDER BY full_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// GetByTeam returns all players currently assigned to a team's squad
func (r *PlayerRepository) GetByTeam(ctx context.Context, teamID int) ([]*store.Player, error) {
	query := `
		SELECT DISTINCT p.player_id, p.first_name, p.last_name, p.full_name, p.position,
			p.squad_number, p.joined_season, p.is_active, p.created_at, p.updated_at
		FROM players p
		INNER JOIN squad_assignments sa ON p.player_id = sa.player_id
		WHERE sa.team_id = $1
		  AND (sa.end_date IS NULL OR sa.end_date > NOW())
		ORDER BY p.full_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying players by team: %w", err)
	}
	defer rows.Close()

	return r.scanPlayers(rows)
}

// Upsert inserts or updates a player
func (r *PlayerRepository) Upsert(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, full_name, position,
			squad_number, joined_season, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (full_name) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			position = EXCLUDED.position,
			squad_number = EXCLUDED.squad_number,
			joined_season = EXCLUDED.joined_season,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING player_id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		player.FirstName, player.LastName, player.FullName, player.Position,
		player.SquadNumber, player.JoinedSeason, player.IsActive,
	).Scan(&player.PlayerID)

	if err != nil {
		return fmt.Errorf("upserting player: %w", err)
	}

	return nil
}

// scanPlayers is a helper to scan multiple player rows
func (r *PlayerRepository) scanPlayers(rows *sql.Rows) ([]*store.Player, error) {
	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		err := rows.Scan(
			&player.PlayerID, &player.FirstName, &player.LastName, &player.FullName,
			&player.Position, &player.SquadNumber, &player.JoinedSeason,
			&player.IsActive, &player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}
