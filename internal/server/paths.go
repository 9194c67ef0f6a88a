package server

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// splitGamePath extracts the game id and trailing segments from a path under
// the given prefix, e.g. /api/games/{id}/players/{pid}.
func splitGamePath(path, prefix string) (uuid.UUID, []string, bool) {
	trimmed := strings.TrimPrefix(path, prefix)
	if trimmed == path {
		return uuid.Nil, nil, false
	}
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return uuid.Nil, nil, false
	}
	gameID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, nil, false
	}
	return gameID, parts[1:], true
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
