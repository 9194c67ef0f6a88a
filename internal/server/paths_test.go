package server

import (
	"testing"

	"github.com/google/uuid"
)

func TestSplitGamePath(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name     string
		path     string
		wantOK   bool
		wantRest int
	}{
		{"game root", "/api/games/" + id.String(), true, 0},
		{"trailing slash", "/api/games/" + id.String() + "/", true, 0},
		{"play action", "/api/games/" + id.String() + "/play", true, 1},
		{"nested player", "/api/games/" + id.String() + "/players/4", true, 2},
		{"bad uuid", "/api/games/not-a-uuid", false, 0},
		{"missing id", "/api/games/", false, 0},
		{"wrong prefix", "/api/presents/" + id.String(), false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gameID, rest, ok := splitGamePath(tc.path, "/api/games/")
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if gameID != id {
				t.Fatalf("gameID = %s, want %s", gameID, id)
			}
			if len(rest) != tc.wantRest {
				t.Fatalf("rest = %v, want %d segments", rest, tc.wantRest)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, ok := parseID("42"); !ok || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, ok)
	}
	for _, raw := range []string{"", "0", "-3", "abc", "4.2"} {
		if _, ok := parseID(raw); ok {
			t.Fatalf("parseID(%q) unexpectedly succeeded", raw)
		}
	}
}
