package server

import (
	"net/http"

	"white-elephant/internal/db"

	"github.com/google/uuid"
)

type createPlayerRequest struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		s.handleListPlayers(w, r, gameID)
	case len(rest) == 0 && r.Method == http.MethodPost:
		s.handleCreatePlayer(w, r, gameID)
	case len(rest) == 1:
		playerID, ok := parseID(rest[0])
		if !ok {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			s.handleGetPlayer(w, r, gameID, playerID)
		case http.MethodDelete:
			s.handleDeletePlayer(w, r, gameID, playerID)
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionView); !ok {
		return
	}
	players, err := db.ListPlayers(s.db, gameID)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionPlay); !ok {
		return
	}
	var req createPlayerRequest
	if err := readJSON(r.Body, &req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	player := &db.Player{
		GameID: gameID,
		Name:   req.Name,
		Images: req.Images,
	}
	if err := db.CreatePlayer(s.db, player); err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, playerID int64) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionView); !ok {
		return
	}
	player, err := db.GetPlayer(s.db, gameID, playerID)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, playerID int64) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionOwn); !ok {
		return
	}
	if err := db.DeletePlayer(s.db, gameID, playerID); err != nil {
		writeDBError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
