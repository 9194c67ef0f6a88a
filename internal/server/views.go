package server

import (
	"net/http"

	"white-elephant/internal/db"
	"white-elephant/internal/web"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = web.Home().Render(r.Context(), w)
}

// handleGameView serves the viewer board shell; live state arrives over the
// event stream once the page connects.
func (s *Server) handleGameView(w http.ResponseWriter, r *http.Request) {
	gameID, rest, ok := splitGamePath(r.URL.Path, "/games/")
	if !ok || len(rest) != 0 {
		http.NotFound(w, r)
		return
	}
	game, err := db.GetGame(s.db, gameID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = web.GameBoard(game.ID.String(), game.Name).Render(r.Context(), w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := db.Health(s.db); err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
