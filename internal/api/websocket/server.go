package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/oakford/clubstats/internal/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server answers questions over a WebSocket connection. Each client
// holds its own conversation; there is no broadcast fan-out, so no hub.
type Server struct {
	port   string
	server *http.Server
	engine *engine.Engine
}

// NewServer creates a new WebSocket server
func NewServer(eng *engine.Engine) *Server {
	return &Server{
		engine: eng,
	}
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/ask", s.handleAsk)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleAsk runs a question-and-answer loop over one connection. Each
// inbound frame is a question context; each outbound frame an answer.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	for {
		var qc engine.QuestionContext
		if err := conn.ReadJSON(&qc); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		result := s.engine.ProcessQuestion(r.Context(), qc)

		if err := conn.WriteJSON(result); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status": "healthy"}`)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
