package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StateUpdate is the snapshot returned by every play action: the fields of
// the game row that the action may have changed.
type StateUpdate struct {
	PlayerID  *int64     `json:"player_id,omitempty"`
	PresentID *int64     `json:"present_id,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// setIfEmpty applies the assignments to the game row only while the guard
// column is still NULL. The rows-affected result is the sole arbiter between
// concurrent actions on the same game; no application-level lock exists.
func setIfEmpty(tx *gorm.DB, gameID uuid.UUID, column string, assign map[string]any) (bool, error) {
	res := tx.Model(&Game{}).
		Where("id = ? AND "+column+" IS NULL", gameID).
		Updates(assign)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// conflictOrMissing distinguishes a failed guard from a missing game after a
// conditional update touched zero rows.
func conflictOrMissing(tx *gorm.DB, gameID uuid.UUID) error {
	var n int64
	if err := tx.Model(&Game{}).Where("id = ?", gameID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func clearTurn(tx *gorm.DB, gameID uuid.UUID) error {
	return tx.Model(&Game{}).Where("id = ?", gameID).Updates(map[string]any{
		"player_id":  nil,
		"present_id": nil,
	}).Error
}

// Start marks the game as started. Conflict once started_at is set.
func Start(conn *gorm.DB, gameID uuid.UUID) (*StateUpdate, error) {
	var state *StateUpdate
	err := conn.Transaction(func(tx *gorm.DB) error {
		ok, err := setIfEmpty(tx, gameID, "started_at", map[string]any{
			"started_at": gorm.Expr("NOW()"),
		})
		if err != nil {
			return err
		}
		if !ok {
			return conflictOrMissing(tx, gameID)
		}
		game, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		state = &StateUpdate{StartedAt: game.StartedAt, UpdatedAt: game.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Reset returns the game to its pre-start state: every present unclaimed, the
// turn fields and started_at cleared, the play event history deleted. All in
// one transaction, idempotent for an existing game.
func Reset(conn *gorm.DB, gameID uuid.UUID) (*StateUpdate, error) {
	var state *StateUpdate
	err := conn.Transaction(func(tx *gorm.DB) error {
		if _, err := loadGame(tx, gameID); err != nil {
			return err
		}
		if err := tx.Model(&Present{}).Where("game_id = ?", gameID).
			Updates(map[string]any{"player_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Game{}).Where("id = ?", gameID).Updates(map[string]any{
			"player_id":  nil,
			"present_id": nil,
			"started_at": nil,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&PlayEvent{}).Error; err != nil {
			return err
		}
		game, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		state = &StateUpdate{UpdatedAt: game.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// eligiblePlayerExpr selects one uniformly-random player of the game who does
// not currently own a present. Running inside the guarded UPDATE keeps the
// selection and the claim a single statement.
const eligiblePlayerExpr = `(
SELECT players.id FROM players
WHERE players.game_id = ?
AND players.id NOT IN (
	SELECT presents.player_id FROM presents
	WHERE presents.game_id = ? AND presents.player_id IS NOT NULL)
ORDER BY random()
LIMIT 1)`

// Roll designates a random player who has not completed a turn yet. Conflict
// when a turn is already in progress; NotFound when every player owns a
// present already.
func Roll(conn *gorm.DB, gameID uuid.UUID) (*StateUpdate, error) {
	var state *StateUpdate
	err := conn.Transaction(func(tx *gorm.DB) error {
		ok, err := setIfEmpty(tx, gameID, "player_id", map[string]any{
			"player_id": gorm.Expr(eligiblePlayerExpr, gameID, gameID),
		})
		if err != nil {
			return err
		}
		if !ok {
			return conflictOrMissing(tx, gameID)
		}
		game, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.PlayerID == nil {
			// No eligible player left; roll back the no-op claim.
			return ErrNotFound
		}
		if err := appendEvent(tx, &PlayEvent{
			GameID:   gameID,
			PlayerID: *game.PlayerID,
		}); err != nil {
			return err
		}
		state = &StateUpdate{PlayerID: game.PlayerID, UpdatedAt: game.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Pick puts a present up for the keep/steal decision. NotFound when the
// present does not belong to the game; Conflict when another present is
// already contested or no player holds the turn.
func Pick(conn *gorm.DB, gameID uuid.UUID, presentID int64) (*StateUpdate, error) {
	var state *StateUpdate
	err := conn.Transaction(func(tx *gorm.DB) error {
		if _, err := GetPresent(tx, gameID, presentID); err != nil {
			return err
		}
		ok, err := setIfEmpty(tx, gameID, "present_id", map[string]any{
			"present_id": presentID,
		})
		if err != nil {
			return err
		}
		if !ok {
			return conflictOrMissing(tx, gameID)
		}
		game, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.PlayerID == nil {
			return ErrConflict
		}
		if err := appendEvent(tx, &PlayEvent{
			GameID:    gameID,
			PlayerID:  *game.PlayerID,
			PresentID: &presentID,
		}); err != nil {
			return err
		}
		state = &StateUpdate{PresentID: &presentID, UpdatedAt: game.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Keep resolves the turn with the active player retaining the contested
// present. The event's from_* fields mirror the to fields, marking that no
// prior owner was displaced.
func Keep(conn *gorm.DB, gameID uuid.UUID) (*StateUpdate, error) {
	var state *StateUpdate
	err := conn.Transaction(func(tx *gorm.DB) error {
		game, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.PlayerID == nil || game.PresentID == nil {
			return ErrConflict
		}
		res := tx.Model(&Present{}).
			Where("id = ? AND game_id = ?", *game.PresentID, gameID).
			Updates(map[string]any{"player_id": *game.PlayerID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := clearTurn(tx, gameID); err != nil {
			return err
		}
		if err := appendEvent(tx, &PlayEvent{
			GameID:        gameID,
			PlayerID:      *game.PlayerID,
			PresentID:     game.PresentID,
			FromPlayerID:  game.PlayerID,
			FromPresentID: game.PresentID,
		}); err != nil {
			return err
		}
		after, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		state = &StateUpdate{UpdatedAt: after.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Steal resolves the turn with a swap: the active player takes the target
// present and its previous owner receives the contested one in exchange.
func Steal(conn *gorm.DB, gameID uuid.UUID, targetID int64) (*StateUpdate, error) {
	var state *StateUpdate
	err := conn.Transaction(func(tx *gorm.DB) error {
		game, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		if game.PlayerID == nil || game.PresentID == nil {
			return ErrConflict
		}
		target, err := GetPresent(tx, gameID, targetID)
		if err != nil {
			return err
		}
		if err := tx.Model(&Present{}).
			Where("id = ? AND game_id = ?", targetID, gameID).
			Updates(map[string]any{"player_id": *game.PlayerID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Present{}).
			Where("id = ? AND game_id = ?", *game.PresentID, gameID).
			Updates(map[string]any{"player_id": target.PlayerID}).Error; err != nil {
			return err
		}
		if err := clearTurn(tx, gameID); err != nil {
			return err
		}
		if err := appendEvent(tx, &PlayEvent{
			GameID:        gameID,
			PlayerID:      *game.PlayerID,
			PresentID:     &targetID,
			FromPlayerID:  target.PlayerID,
			FromPresentID: &targetID,
		}); err != nil {
			return err
		}
		after, err := loadGame(tx, gameID)
		if err != nil {
			return err
		}
		state = &StateUpdate{UpdatedAt: after.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}
