package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Permission levels stored in a game's users map. The map itself is owned by
// the authorization collaborator; this service only reads it.
const (
	PermissionView int64 = 0x1
	PermissionPlay int64 = 0x2
	PermissionOwn  int64 = 0xff
)

type Game struct {
	ID        uuid.UUID                            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string                               `gorm:"size:128;not null" json:"name"`
	Images    datatypes.JSONSlice[string]          `json:"images"`
	Users     datatypes.JSONType[map[string]int64] `gorm:"type:jsonb;not null" json:"users"`
	PlayerID  *int64                               `json:"player_id,omitempty"`
	PresentID *int64                               `json:"present_id,omitempty"`
	StartedAt *time.Time                           `json:"started_at,omitempty"`
	CreatedAt time.Time                            `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                            `gorm:"not null" json:"updated_at"`
	Players   []Player                             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Presents  []Present                            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Events    []PlayEvent                          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Permission returns the level granted to userID, zero when absent.
func (g *Game) Permission(userID string) int64 {
	return g.Users.Data()[userID]
}

func CreateGame(conn *gorm.DB, game *Game) error {
	return conn.Create(game).Error
}

// ListGames returns the games whose users map contains userID.
func ListGames(conn *gorm.DB, userID string) ([]Game, error) {
	var games []Game
	err := conn.
		Where(datatypes.JSONQuery("users").HasKey(userID)).
		Order("created_at").
		Find(&games).Error
	return games, err
}

func GetGame(conn *gorm.DB, id uuid.UUID) (*Game, error) {
	return loadGame(conn, id)
}

// DeleteGame removes the game; players, presents and play events go with it
// via the store's cascading foreign keys.
func DeleteGame(conn *gorm.DB, id uuid.UUID) error {
	res := conn.Delete(&Game{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func loadGame(tx *gorm.DB, id uuid.UUID) (*Game, error) {
	var game Game
	if err := tx.First(&game, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &game, nil
}
