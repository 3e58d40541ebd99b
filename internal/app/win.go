package app

import "ratscrew/internal/domain"

// checkForWinner scans all players and declares a winner once exactly one
// player holds a non-empty hand. With zero or multiple non-empty hands the
// game continues. Invoked after every pile transfer (slap award and challenge
// award).
func (s *Service) checkForWinner(g *domain.Game) []Event {
	if g.Phase != domain.PhasePlaying {
		return nil
	}

	var holder *domain.Player
	holders := 0
	for _, pl := range g.Players {
		if pl.Hand.Len() > 0 {
			holder = pl
			holders++
		}
	}
	if holders != 1 {
		return nil
	}

	g.Phase = domain.PhaseEnded
	g.WinnerID = holder.UserID
	g.Challenge = nil
	for _, pl := range g.Players {
		pl.Status = domain.StatusNotReady
	}
	g.Log.Append("", domain.EventTypeEndGame, map[string]any{"winner": holder.UserID})

	return []Event{{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{WinnerID: holder.UserID},
	}}
}
