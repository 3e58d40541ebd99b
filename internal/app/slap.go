package app

import "ratscrew/internal/domain"

// Slap handles a slap-pile attempt. The outcome is computed synchronously
// against the pile at the instant of processing: whichever of two near
// simultaneous slaps is processed first sees the full pile and wins; the
// second sees an empty pile and burns.
func (s *Service) Slap(g *domain.Game, userID string) ([]Event, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl := g.PlayerByID(userID)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	pl.Touch()

	rule := domain.CheckSlap(g.Pile, pl, g.Settings.Rules)
	if rule == nil {
		return s.burnForInvalidSlap(g, pl), nil
	}

	g.Log.Append(userID, domain.EventTypeValidSlap, map[string]any{
		"rule":   rule.Name,
		"action": string(rule.Action),
	})

	if rule.Action != domain.ActionTakePile {
		// Drink rules are notification-only: the pile and any open challenge
		// are untouched.
		return []Event{{
			Kind: EventSlapResult,
			Payload: SlapResultPayload{
				UserID:   userID,
				Valid:    true,
				RuleName: rule.Name,
				Action:   string(rule.Action),
				PileSize: len(g.Pile),
			},
		}}, nil
	}

	taken := len(g.Pile)
	for _, c := range g.Pile {
		pl.Hand.PushBack(c)
	}
	g.Pile = nil
	// A successful slap supersedes any open challenge unconditionally.
	g.Challenge = nil

	events := []Event{{
		Kind: EventSlapResult,
		Payload: SlapResultPayload{
			UserID:   userID,
			Valid:    true,
			RuleName: rule.Name,
			Action:   string(rule.Action),
			PileSize: 0,
		},
	}, {
		Kind:    EventPileAwarded,
		Payload: PileAwardedPayload{UserID: userID, Cards: taken, Reason: "slap"},
	}}

	events = append(events, s.checkForWinner(g)...)
	if g.Phase == domain.PhasePlaying {
		g.SetTurn(userID)
	}
	return events, nil
}

// burnForInvalidSlap applies the penalty for an incorrect slap: one card from
// the slapper's hand onto the pile. An empty-handed slapper has nothing to
// burn and receives no penalty.
func (s *Service) burnForInvalidSlap(g *domain.Game, pl *domain.Player) []Event {
	payload := SlapResultPayload{UserID: pl.UserID, Valid: false}
	if burned, ok := pl.Hand.PopFront(); ok {
		g.Pile = append(g.Pile, burned)
		payload.BurnedCard = &burned
		g.Log.Append(pl.UserID, domain.EventTypeInvalidSlap, map[string]any{"burned": burned.Code()})
	} else {
		g.Log.Append(pl.UserID, domain.EventTypeInvalidSlap, nil)
	}
	payload.PileSize = len(g.Pile)
	return []Event{{Kind: EventSlapResult, Payload: payload}}
}
