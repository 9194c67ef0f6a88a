package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"white-elephant/internal/db"

	"github.com/sirupsen/logrus"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeDBError maps store errors onto the client-facing taxonomy: guard
// failures are 409, missing rows 404, anything else an opaque 500.
func writeDBError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, db.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case db.IsUniqueViolation(err):
		writeError(w, http.StatusConflict, "already exists")
	default:
		logrus.WithError(err).Error("storage failure")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
