package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Present struct {
	ID        int64                       `gorm:"primaryKey" json:"id"`
	GameID    uuid.UUID                   `gorm:"type:uuid;index;not null" json:"game_id"`
	Name      string                      `gorm:"size:128;not null" json:"name"`
	Images    datatypes.JSONSlice[string] `json:"images"`
	PlayerID  *int64                      `gorm:"index" json:"player_id,omitempty"`
	CreatedAt time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null" json:"updated_at"`
}

func CreatePresent(conn *gorm.DB, present *Present) error {
	return conn.Create(present).Error
}

func ListPresents(conn *gorm.DB, gameID uuid.UUID) ([]Present, error) {
	var presents []Present
	err := conn.Where("game_id = ?", gameID).Order("id").Find(&presents).Error
	return presents, err
}

func GetPresent(conn *gorm.DB, gameID uuid.UUID, id int64) (*Present, error) {
	var present Present
	if err := conn.First(&present, "id = ? AND game_id = ?", id, gameID).Error; err != nil {
		return nil, translate(err)
	}
	return &present, nil
}

func DeletePresent(conn *gorm.DB, gameID uuid.UUID, id int64) error {
	res := conn.Delete(&Present{}, "id = ? AND game_id = ?", id, gameID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
