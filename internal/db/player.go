package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Player struct {
	ID        int64                       `gorm:"primaryKey" json:"id"`
	GameID    uuid.UUID                   `gorm:"type:uuid;index;not null" json:"game_id"`
	Name      string                      `gorm:"size:128;not null" json:"name"`
	Images    datatypes.JSONSlice[string] `json:"images"`
	CreatedAt time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null" json:"updated_at"`
}

func CreatePlayer(conn *gorm.DB, player *Player) error {
	return conn.Create(player).Error
}

func ListPlayers(conn *gorm.DB, gameID uuid.UUID) ([]Player, error) {
	var players []Player
	err := conn.Where("game_id = ?", gameID).Order("id").Find(&players).Error
	return players, err
}

func GetPlayer(conn *gorm.DB, gameID uuid.UUID, id int64) (*Player, error) {
	var player Player
	if err := conn.First(&player, "id = ? AND game_id = ?", id, gameID).Error; err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func DeletePlayer(conn *gorm.DB, gameID uuid.UUID, id int64) error {
	res := conn.Delete(&Player{}, "id = ? AND game_id = ?", id, gameID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
