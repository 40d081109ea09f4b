package rest

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/publisher"
	"github.com/oakford/clubstats/internal/store"
	"github.com/oakford/clubstats/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db        *store.Database
	engine    *engine.Engine
	publisher *publisher.QuestionPublisher
	players   *repository.PlayerRepository
	teams     *repository.TeamRepository
	stats     *repository.StatsRepository
}

// NewHandler creates a new handler. publisher may be nil; answered
// questions are then not published.
func NewHandler(db *store.Database, eng *engine.Engine, pub *publisher.QuestionPublisher) *Handler {
	h := &Handler{
		db:        db,
		engine:    eng,
		publisher: pub,
	}
	if db != nil {
		h.players = repository.NewPlayerRepository(db)
		h.teams = repository.NewTeamRepository(db)
		h.stats = repository.NewStatsRepository(db)
	}
	return h
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "clubstats",
		"version": "1.0.0",
	})
}

// AskQuestion answers a free-text question about the club's stats
func (h *Handler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var qc engine.QuestionContext
	if err := json.NewDecoder(r.Body).Decode(&qc); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if qc.Question == "" {
		respondError(w, http.StatusBadRequest, "Missing 'question' field", nil)
		return
	}

	result := h.engine.ProcessQuestion(r.Context(), qc)

	// Best effort: losing the event never fails the request
	if h.publisher != nil {
		event := publisher.AnsweredEvent{
			Question:   qc.Question,
			Answer:     result.Answer,
			Confidence: string(result.Confidence),
			AskedAt:    time.Now().Unix(),
		}
		if err := h.publisher.PublishAnswered(r.Context(), event); err != nil {
			log.Printf("  ⚠️  Failed to publish answered question: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// LastQuestionDetails returns diagnostics for the most recent question
func (h *Handler) LastQuestionDetails(w http.ResponseWriter, r *http.Request) {
	details := h.engine.LastProcessingDetails()
	if details == nil {
		respondError(w, http.StatusNotFound, "No questions processed yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// SearchPlayers searches for players by name
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	players, err := h.players.GetByName(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

// GetPlayer returns a player by ID
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerIDStr := vars["playerID"]

	playerID, err := strconv.Atoi(playerIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	player, err := h.players.GetByID(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// GetPlayerSummary returns a player's aggregated stats for a season
func (h *Handler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerIDStr := vars["playerID"]

	playerID, err := strconv.Atoi(playerIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	player, err := h.players.GetByID(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	filter := repository.StatFilter{
		SeasonYear: r.URL.Query().Get("season"),
		Venue:      r.URL.Query().Get("venue"),
	}

	summary, err := h.stats.GetPlayerSummaryByName(r.Context(), player.FullName, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// upsertPlayerRequest is the write shape for player registration. Optional
// fields stay plain strings here and convert to sql.Null* at the model.
type upsertPlayerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"position,omitempty"`
	SquadNumber  int    `json:"squad_number,omitempty"`
	JoinedSeason string `json:"joined_season,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// UpsertPlayer registers a new player or updates an existing one by full name
func (h *Handler) UpsertPlayer(w http.ResponseWriter, r *http.Request) {
	var req upsertPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		respondError(w, http.StatusBadRequest, "Missing 'first_name' or 'last_name'", nil)
		return
	}

	player := store.Player{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		FullName:  req.FirstName + " " + req.LastName,
		IsActive:  true,
	}
	if req.Position != "" {
		player.Position = sql.NullString{String: req.Position, Valid: true}
	}
	if req.SquadNumber != 0 {
		player.SquadNumber = sql.NullInt32{Int32: int32(req.SquadNumber), Valid: true}
	}
	if req.JoinedSeason != "" {
		player.JoinedSeason = sql.NullString{String: req.JoinedSeason, Valid: true}
	}
	if req.IsActive != nil {
		player.IsActive = *req.IsActive
	}

	if err := h.players.Upsert(r.Context(), &player); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save player", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// GetTeams returns all active teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeamRoster returns the players assigned to a team
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamIDStr := vars["teamID"]

	teamID, err := strconv.Atoi(teamIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	players, err := h.players.GetByTeam(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team roster", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team_id": teamID,
		"players": players,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
