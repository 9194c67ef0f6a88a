package server

import (
	"net/http"

	"white-elephant/internal/config"
	"white-elephant/internal/stream"

	"gorm.io/gorm"
)

type Server struct {
	db  *gorm.DB
	hub *stream.Hub
	cfg config.Config
}

// New wires the server to its collaborators. The hub is owned by the
// composition root and shared with the change notifier.
func New(conn *gorm.DB, cfg config.Config, hub *stream.Hub) *Server {
	return &Server{
		db:  conn,
		hub: hub,
		cfg: cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /games/", s.handleGameView)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("DELETE /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /ws/events", s.handleEvents)
	return mux
}
