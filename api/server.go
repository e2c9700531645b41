package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NovadaGames/squared-socketio/game/lobby"
	"github.com/NovadaGames/squared-socketio/transport/websocket"
)

// Server exposes the REST inspection surface and the WebSocket endpoint.
type Server struct {
	lobby  *lobby.Lobby
	hub    *websocket.Hub
	router *mux.Router
}

// NewServer creates the HTTP server around a lobby and its hub.
func NewServer(l *lobby.Lobby, hub *websocket.Hub) *Server {
	s := &Server{
		lobby:  l,
		hub:    hub,
		router: mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)

	// OPTIONS is routed so preflight requests reach the CORS middleware
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET", "OPTIONS")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", s.handleStats).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET", "OPTIONS")
	api.HandleFunc("/rooms/{code}", s.handleGetRoom).Methods("GET", "OPTIONS")

	s.router.HandleFunc("/ws", s.hub.ServeWS)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// corsMiddleware opens the surface to any origin, matching the open policy
// of the socket upgrade.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.lobby.Stats())
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.lobby.Rooms()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rooms),
		"rooms": rooms,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]

	info, ok := s.lobby.Room(code)
	if !ok {
		respondError(w, http.StatusNotFound, "no such room")
		return
	}

	respondJSON(w, http.StatusOK, info)
}
