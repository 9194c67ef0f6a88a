package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayEvent is the append-only audit row written alongside every committed
// turn transition. Rows are never updated; reset and game deletion are the
// only ways they disappear. The play_events insert trigger (db/migrations)
// notifies listening processes with the row as JSON after commit.
type PlayEvent struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	GameID        uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	PlayerID      int64     `gorm:"not null" json:"player_id"`
	PresentID     *int64    `json:"present_id,omitempty"`
	FromPlayerID  *int64    `json:"from_player_id,omitempty"`
	FromPresentID *int64    `json:"from_present_id,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

// appendEvent writes the audit row inside the caller's transaction so the
// state change and its event commit or roll back together.
func appendEvent(tx *gorm.DB, event *PlayEvent) error {
	return tx.Create(event).Error
}

// CountEvents reports how many play events a game has accumulated.
func CountEvents(conn *gorm.DB, gameID uuid.UUID) (int64, error) {
	var n int64
	err := conn.Model(&PlayEvent{}).Where("game_id = ?", gameID).Count(&n).Error
	return n, err
}
