package bot

import "ratscrew/internal/domain"

// Agent represents an autonomous bot player seated in a session.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent constructs an agent with the default reaction strategy.
func NewAgent(id, name string) *Agent {
	return &Agent{ID: id, Name: name, Strategy: reactionBrain{}}
}

// NextMove asks the agent's strategy for its decision. An agent that is not
// part of the game does nothing.
func (a *Agent) NextMove(g *domain.Game) Move {
	pl := g.PlayerByID(a.ID)
	if pl == nil {
		return Move{}
	}
	return a.Strategy.NextMove(g, pl)
}
