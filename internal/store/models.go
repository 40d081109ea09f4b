package store

import (
	"database/sql"
	"time"
)

// Season represents a club season (e.g. "2025-26")
type Season struct {
	SeasonID   int       `json:"season_id" db:"season_id"`
	SeasonYear string    `json:"season_year" db:"season_year"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Team represents one of the club's sides (e.g. "Saturday 1st XI")
type Team struct {
	TeamID    int            `json:"team_id" db:"team_id"`
	Name      string         `json:"name" db:"name"`
	ShortName string         `json:"short_name" db:"short_name"`
	League    sql.NullString `json:"league,omitempty" db:"league"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Player represents a registered club player
type Player struct {
	PlayerID     int            `json:"player_id" db:"player_id"`
	FirstName    string         `json:"first_name" db:"first_name"`
	LastName     string         `json:"last_name" db:"last_name"`
	FullName     string         `json:"full_name" db:"full_name"`
	Position     sql.NullString `json:"position,omitempty" db:"position"`
	SquadNumber  sql.NullInt32  `json:"squad_number,omitempty" db:"squad_number"`
	JoinedSeason sql.NullString `json:"joined_season,omitempty" db:"joined_season"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	// Not in the players table - populated from squad assignments for API responses
	CurrentTeamID int `json:"current_team_id,omitempty" db:"-"`
}

// Match represents a single fixture played by one of the club's teams
type Match struct {
	MatchID       int            `json:"match_id" db:"match_id"`
	SeasonID      int            `json:"season_id" db:"season_id"`
	TeamID        int            `json:"team_id" db:"team_id"`
	MatchDate     time.Time      `json:"match_date" db:"match_date"`
	Opponent      string         `json:"opponent" db:"opponent"`
	Venue         string         `json:"venue" db:"venue"` // "home" or "away"
	Competition   string         `json:"competition" db:"competition"`
	ClubScore     sql.NullInt32  `json:"club_score,omitempty" db:"club_score"`
	OpponentScore sql.NullInt32  `json:"opponent_score,omitempty" db:"opponent_score"`
	Notes         sql.NullString `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// PlayerMatchStats represents a player's contribution in a single match
type PlayerMatchStats struct {
	StatID          int             `json:"stat_id" db:"stat_id"`
	MatchID         int             `json:"match_id" db:"match_id"`
	PlayerID        int             `json:"player_id" db:"player_id"`
	Goals           int             `json:"goals" db:"goals"`
	Assists         int             `json:"assists" db:"assists"`
	YellowCards     int             `json:"yellow_cards" db:"yellow_cards"`
	RedCards        int             `json:"red_cards" db:"red_cards"`
	PenaltiesScored int             `json:"penalties_scored" db:"penalties_scored"`
	PenaltiesMissed int             `json:"penalties_missed" db:"penalties_missed"`
	ManOfTheMatch   bool            `json:"man_of_the_match" db:"man_of_the_match"`
	FantasyPoints   int             `json:"fantasy_points" db:"fantasy_points"`
	MinutesPlayed   sql.NullFloat64 `json:"minutes_played,omitempty" db:"minutes_played"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// PlayerSeasonSummary aggregates a player's stats across the matches that
// survive a season/competition/venue filter. It is computed, never stored.
type PlayerSeasonSummary struct {
	PlayerID        int     `json:"player_id"`
	FullName        string  `json:"full_name"`
	Appearances     int     `json:"appearances"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
	YellowCards     int     `json:"yellow_cards"`
	RedCards        int     `json:"red_cards"`
	PenaltiesScored int     `json:"penalties_scored"`
	PenaltiesMissed int     `json:"penalties_missed"`
	MotmAwards      int     `json:"motm_awards"`
	FantasyPoints   int     `json:"fantasy_points"`
	MatchPoints     int     `json:"match_points"`
	MinutesPlayed   float64 `json:"minutes_played"`
}
