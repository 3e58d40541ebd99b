package app

import "ratscrew/internal/domain"

// PlayCard handles a play-card action: the acting player's front card moves to
// the central pile, the face-card challenge sub-state is consulted, and the
// turn advances. Validation failures return sentinel errors and leave state
// untouched.
func (s *Service) PlayCard(g *domain.Game, userID string) ([]Event, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl := g.PlayerByID(userID)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	cur := g.CurrentPlayer()
	if cur == nil || cur.UserID != userID {
		return nil, ErrNotYourTurn
	}
	if pl.Hand.Len() == 0 {
		return nil, ErrEmptyHand
	}

	card, _ := pl.Hand.PopFront()
	g.Pile = append(g.Pile, card)
	pl.Touch()
	g.Log.Append(userID, domain.EventTypePlayCard, map[string]any{"card": card.Code()})

	events := make([]Event, 0, 3)
	challengeEvents := s.applyChallenge(g, pl, card)

	next := ""
	if c := g.CurrentPlayer(); c != nil {
		next = c.UserID
	}
	events = append(events, Event{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			UserID:         userID,
			Card:           card,
			Code:           card.Code(),
			PileSize:       len(g.Pile),
			NextTurnUserID: next,
		},
	})
	events = append(events, challengeEvents...)
	return events, nil
}

// applyChallenge advances the face-card challenge state machine for a play and
// moves the turn pointer accordingly.
func (s *Service) applyChallenge(g *domain.Game, pl *domain.Player, card domain.Card) []Event {
	count := domain.FaceCardChallengeCount(card)
	ch := g.Challenge

	switch {
	case count > 0:
		// Open, or counter: the challenge is replaced wholesale. A counter
		// resets the allowance to the new card's count; it never stacks.
		responder := g.NextAfter(pl.UserID)
		g.Challenge = domain.NewFaceCardChallenge(pl.UserID, count, responder)
		if responder != "" {
			g.SetTurn(responder)
		}
		return []Event{{
			Kind: EventChallengeUpdated,
			Payload: ChallengeUpdatedPayload{
				ChallengerID: pl.UserID,
				Total:        g.Challenge.Total,
				Remaining:    g.Challenge.Remaining,
				ResponderID:  responder,
			},
		}}

	case ch != nil:
		ch.Remaining--
		if ch.Remaining <= 0 {
			return s.awardChallenge(g, ch)
		}
		if pl.Hand.Len() == 0 {
			// The responder ran out of cards mid-challenge; the obligation
			// passes to the next player in turn order.
			ch.ResponderID = g.NextAfter(pl.UserID)
			if ch.ResponderID != "" {
				g.SetTurn(ch.ResponderID)
			}
		}
		return []Event{{
			Kind: EventChallengeUpdated,
			Payload: ChallengeUpdatedPayload{
				ChallengerID: ch.ChallengerID,
				Total:        ch.Total,
				Remaining:    ch.Remaining,
				ResponderID:  ch.ResponderID,
			},
		}}

	default:
		g.AdvanceTurn()
		return nil
	}
}

// awardChallenge closes an exhausted challenge: the entire pile goes to the
// challenger, who leads next. Emptying the loser's hand can end the game, so
// the win condition is re-checked here.
func (s *Service) awardChallenge(g *domain.Game, ch *domain.FaceCardChallenge) []Event {
	winner := g.PlayerByID(ch.ChallengerID)
	awarded := len(g.Pile)
	if winner != nil {
		for _, c := range g.Pile {
			winner.Hand.PushBack(c)
		}
	}
	g.Pile = nil
	g.Challenge = nil
	g.Log.Append(ch.ChallengerID, domain.EventTypeChallengeWon, map[string]any{"cards": awarded})

	events := []Event{{
		Kind:    EventPileAwarded,
		Payload: PileAwardedPayload{UserID: ch.ChallengerID, Cards: awarded, Reason: "challenge"},
	}}
	events = append(events, s.checkForWinner(g)...)
	if g.Phase == domain.PhasePlaying && winner != nil {
		g.SetTurn(winner.UserID)
		if !winner.Alive {
			// The challenger disconnected mid-challenge; the lead passes to
			// the next connected player instead of parking on an offline seat.
			g.AdvanceTurn()
		}
	}
	return events
}
