package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a missing game, player or present, or a roll with no
	// eligible player left.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a guard failure: another action already changed the
	// state this one depended on. Callers should re-fetch and decide.
	ErrConflict = errors.New("conflict")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// IsUniqueViolation reports whether err is a Postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
