package domain

import "time"

// PlayerStatus is a player's readiness state in the lobby.
type PlayerStatus string

const (
	StatusUnknown  PlayerStatus = "unknown"
	StatusReady    PlayerStatus = "ready"
	StatusNotReady PlayerStatus = "not-ready"
)

// Player holds server-side state for a participant in the session. The hand is
// the only card collection a player owns; the central pile belongs to the Game.
type Player struct {
	UserID   string
	Nickname string

	Status     PlayerStatus
	Alive      bool
	LastActive time.Time

	Hand Hand
}

// NewPlayer creates a connected player with an unknown readiness status.
func NewPlayer(userID, nickname string) *Player {
	return &Player{
		UserID:     userID,
		Nickname:   nickname,
		Status:     StatusUnknown,
		Alive:      true,
		LastActive: time.Now().UTC(),
	}
}

// Touch records activity on the player's connection.
func (p *Player) Touch() {
	p.LastActive = time.Now().UTC()
}
