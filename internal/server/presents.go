package server

import (
	"net/http"

	"white-elephant/internal/db"

	"github.com/google/uuid"
)

type createPresentRequest struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

func (s *Server) handlePresents(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		s.handleListPresents(w, r, gameID)
	case len(rest) == 0 && r.Method == http.MethodPost:
		s.handleCreatePresent(w, r, gameID)
	case len(rest) == 1:
		presentID, ok := parseID(rest[0])
		if !ok {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			s.handleGetPresent(w, r, gameID, presentID)
		case http.MethodDelete:
			s.handleDeletePresent(w, r, gameID, presentID)
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleListPresents(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionView); !ok {
		return
	}
	presents, err := db.ListPresents(s.db, gameID)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presents)
}

func (s *Server) handleCreatePresent(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionPlay); !ok {
		return
	}
	var req createPresentRequest
	if err := readJSON(r.Body, &req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	present := &db.Present{
		GameID: gameID,
		Name:   req.Name,
		Images: req.Images,
	}
	if err := db.CreatePresent(s.db, present); err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, present)
}

func (s *Server) handleGetPresent(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, presentID int64) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionView); !ok {
		return
	}
	present, err := db.GetPresent(s.db, gameID, presentID)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, present)
}

func (s *Server) handleDeletePresent(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, presentID int64) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionOwn); !ok {
		return
	}
	if err := db.DeletePresent(s.db, gameID, presentID); err != nil {
		writeDBError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
