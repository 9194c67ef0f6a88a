package server

import (
	"net/http"

	"white-elephant/internal/db"

	"github.com/google/uuid"
)

// userIDHeader carries the already-verified caller identity. Token
// verification is the upstream proxy's job; only the permission-level check
// against the game's users map happens here.
const userIDHeader = "X-User-Id"

func callerID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

// requireGame loads the game and checks the caller holds at least the given
// permission level before any handler touches it.
func (s *Server) requireGame(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, level int64) (*db.Game, bool) {
	user := callerID(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return nil, false
	}
	game, err := db.GetGame(s.db, gameID)
	if err != nil {
		writeDBError(w, err)
		return nil, false
	}
	if game.Permission(user) < level {
		writeError(w, http.StatusForbidden, "insufficient permission")
		return nil, false
	}
	return game, true
}
