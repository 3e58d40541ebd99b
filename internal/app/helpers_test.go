package app

import (
	"math/rand"
	"testing"

	"ratscrew/internal/domain"
)

func newTestService() *Service {
	return NewService(rand.New(rand.NewSource(1)))
}

func newLobby(ids ...string) *domain.Game {
	g := domain.NewGame(domain.GameSettings{MaxPlayers: DefaultMaxPlayers, Rules: domain.DefaultSlapRules()})
	for _, id := range ids {
		g.AddPlayer(domain.NewPlayer(id, "nick-"+id))
	}
	return g
}

// startPlaying puts the game directly into the playing phase with fixed hands,
// front card first. The turn goes to the first seat holding cards.
func startPlaying(g *domain.Game, hands map[string][]domain.Card) {
	g.Phase = domain.PhasePlaying
	for _, pl := range g.Players {
		pl.Hand = domain.Hand{}
		for _, c := range hands[pl.UserID] {
			pl.Hand.PushBack(c)
		}
	}
	g.CurrentIdx = 0
	if cur := g.CurrentPlayer(); cur == nil || cur.Hand.Len() == 0 {
		g.AdvanceTurn()
	}
}

func card(rank int, suit string) domain.Card {
	return domain.Card{Rank: rank, Suit: suit}
}

func eventsOfKind(events []Event, kind EventKind) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func requireEvent(t *testing.T, events []Event, kind EventKind) Event {
	t.Helper()
	matched := eventsOfKind(events, kind)
	if len(matched) != 1 {
		t.Fatalf("Expected exactly one %s event, got %d in %v", kind, len(matched), events)
	}
	return matched[0]
}
