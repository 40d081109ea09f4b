package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oakford/clubstats/internal/engine"
	"github.com/oakford/clubstats/internal/publisher"
	"github.com/oakford/clubstats/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, eng *engine.Engine, pub *publisher.QuestionPublisher) *Server {
	handler := NewHandler(db, eng, pub)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Questions
	api.HandleFunc("/questions", handler.AskQuestion).Methods("POST")
	api.HandleFunc("/questions/last", handler.LastQuestionDetails).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.UpsertPlayer).Methods("POST")
	api.HandleFunc("/players/search", handler.SearchPlayers).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/players/{playerID}/summary", handler.GetPlayerSummary).Methods("GET")

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
