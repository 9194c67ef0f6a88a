package server

import (
	"net/http"

	"white-elephant/internal/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type createGameRequest struct {
	Name   string           `json:"name"`
	Images []string         `json:"images"`
	Users  map[string]int64 `json:"users"`
}

type playRequest struct {
	PresentID int64 `json:"present_id"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	user := callerID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	users := req.Users
	if users == nil {
		users = make(map[string]int64)
	}
	users[user] = db.PermissionOwn

	game := &db.Game{
		Name:   req.Name,
		Images: req.Images,
		Users:  datatypes.NewJSONType(users),
	}
	if err := db.CreateGame(s.db, game); err != nil {
		writeDBError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{"game_id": game.ID, "user": user}).Info("game created")
	writeJSON(w, http.StatusCreated, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	user := callerID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}
	games, err := db.ListGames(s.db, user)
	if err != nil {
		writeDBError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// handleGameSubroutes dispatches /api/games/{id} and everything below it.
func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	gameID, rest, ok := splitGamePath(r.URL.Path, "/api/games/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetGame(w, r, gameID)
		case http.MethodDelete:
			s.handleDeleteGame(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
		return
	}
	switch rest[0] {
	case "play":
		if r.Method == http.MethodPost && len(rest) == 1 {
			s.handlePlay(w, r, gameID)
			return
		}
	case "players":
		s.handlePlayers(w, r, gameID, rest[1:])
		return
	case "presents":
		s.handlePresents(w, r, gameID, rest[1:])
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	game, ok := s.requireGame(w, r, gameID, db.PermissionView)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionOwn); !ok {
		return
	}
	if err := db.DeleteGame(s.db, gameID); err != nil {
		writeDBError(w, err)
		return
	}
	logrus.WithField("game_id", gameID).Info("game deleted")
	w.WriteHeader(http.StatusAccepted)
}

// handlePlay runs one turn-engine action. The six actions share the endpoint,
// selected by the action query parameter; pick and steal carry a present id.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if _, ok := s.requireGame(w, r, gameID, db.PermissionPlay); !ok {
		return
	}
	action := r.URL.Query().Get("action")

	var (
		state *db.StateUpdate
		err   error
	)
	switch action {
	case "start":
		state, err = db.Start(s.db, gameID)
	case "reset":
		state, err = db.Reset(s.db, gameID)
	case "roll":
		state, err = db.Roll(s.db, gameID)
	case "keep":
		state, err = db.Keep(s.db, gameID)
	case "pick", "steal":
		var req playRequest
		if readJSON(r.Body, &req) != nil || req.PresentID <= 0 {
			writeError(w, http.StatusBadRequest, "present_id is required")
			return
		}
		if action == "pick" {
			state, err = db.Pick(s.db, gameID, req.PresentID)
		} else {
			state, err = db.Steal(s.db, gameID, req.PresentID)
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}
	if err != nil {
		writeDBError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{"game_id": gameID, "action": action}).Info("play action")
	writeJSON(w, http.StatusOK, state)
}
