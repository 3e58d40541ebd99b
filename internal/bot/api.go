package bot

import "ratscrew/internal/domain"

// Move represents the decision made by a bot for the current state.
type Move struct {
	Play bool
	Slap bool
}

// Brain is the interface bot strategies implement. NextMove must be pure over
// the given state.
type Brain interface {
	NextMove(g *domain.Game, p *domain.Player) Move
}
