package bot

import "ratscrew/internal/domain"

// reactionBrain is the default strategy: slap whenever the configured rules
// match the pile, otherwise play when it is the bot's turn.
type reactionBrain struct{}

func (reactionBrain) NextMove(g *domain.Game, p *domain.Player) Move {
	if g.Phase != domain.PhasePlaying {
		return Move{}
	}

	if rule := domain.CheckSlap(g.Pile, p, g.Settings.Rules); rule != nil && rule.Action == domain.ActionTakePile {
		return Move{Slap: true}
	}

	if cur := g.CurrentPlayer(); cur != nil && cur.UserID == p.UserID && p.Hand.Len() > 0 {
		return Move{Play: true}
	}
	return Move{}
}
