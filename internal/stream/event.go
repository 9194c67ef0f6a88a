package stream

import "time"

// Event is the payload broadcast to live viewers, one per committed play
// action. It mirrors the play_events row carried by the store notification.
// The from_* fields are set on keep/steal resolutions; on keep they equal
// player_id/present_id, signalling that no prior owner was displaced.
type Event struct {
	ID            int64     `json:"id"`
	PlayerID      int64     `json:"player_id"`
	PresentID     *int64    `json:"present_id,omitempty"`
	FromPlayerID  *int64    `json:"from_player_id,omitempty"`
	FromPresentID *int64    `json:"from_present_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
