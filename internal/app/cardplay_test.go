package app

import (
	"errors"
	"testing"

	"ratscrew/internal/domain"
)

func TestPlayCardOutOfTurn(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(5, "S"), card(6, "H")},
		"p2": {card(9, "C"), card(8, "D")},
	})

	_, err := svc.PlayCard(g, "p2")
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("Expected ErrNotYourTurn, got %v", err)
	}
	if len(g.Pile) != 0 {
		t.Fatalf("Pile changed on rejected play: %d cards", len(g.Pile))
	}
	if g.PlayerByID("p2").Hand.Len() != 2 {
		t.Fatal("Hand changed on rejected play")
	}
}

func TestPlayCardMovesFrontCardAndAdvancesTurn(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(5, "S"), card(6, "H")},
		"p2": {card(9, "C")},
	})

	events, err := svc.PlayCard(g, "p1")
	if err != nil {
		t.Fatalf("PlayCard returned error: %v", err)
	}

	if len(g.Pile) != 1 || g.Pile[0] != card(5, "S") {
		t.Fatalf("Pile = %v, want the played 5S", g.Pile)
	}
	if g.PlayerByID("p1").Hand.Len() != 1 {
		t.Fatal("Played card not removed from hand")
	}
	if g.CurrentPlayer().UserID != "p2" {
		t.Fatalf("Turn = %s, want p2", g.CurrentPlayer().UserID)
	}

	payload := requireEvent(t, events, EventCardPlayed).Payload.(CardPlayedPayload)
	if payload.Code != "5S" || payload.NextTurnUserID != "p2" || payload.PileSize != 1 {
		t.Fatalf("Unexpected card-played payload: %+v", payload)
	}
}

func TestPlayCardEmptyHand(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2")
	startPlaying(g, map[string][]domain.Card{
		"p2": {card(9, "C")},
	})
	g.CurrentIdx = 0 // force the empty-handed seat to be current

	_, err := svc.PlayCard(g, "p1")
	if !errors.Is(err, ErrEmptyHand) {
		t.Fatalf("Expected ErrEmptyHand, got %v", err)
	}
}

func TestFaceCardOpensChallenge(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2", "p3")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(domain.RankKing, "S"), card(2, "H")},
		"p2": {card(9, "C"), card(4, "D"), card(3, "S")},
		"p3": {card(6, "H")},
	})

	events, err := svc.PlayCard(g, "p1")
	if err != nil {
		t.Fatalf("PlayCard returned error: %v", err)
	}

	ch := g.Challenge
	if ch == nil {
		t.Fatal("Playing a king must open a challenge")
	}
	if ch.ChallengerID != "p1" || ch.Total != 3 || ch.Remaining != 3 || ch.ResponderID != "p2" {
		t.Fatalf("Unexpected challenge state: %+v", ch)
	}
	if g.CurrentPlayer().UserID != "p2" {
		t.Fatalf("Turn = %s, want responder p2", g.CurrentPlayer().UserID)
	}

	payload := requireEvent(t, events, EventChallengeUpdated).Payload.(ChallengeUpdatedPayload)
	if payload.ChallengerID != "p1" || payload.Remaining != 3 {
		t.Fatalf("Unexpected challenge payload: %+v", payload)
	}
}

func TestChallengeExhaustionAwardsPile(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(domain.RankKing, "S"), card(2, "H")},
		"p2": {card(9, "C"), card(4, "D"), card(3, "S"), card(6, "H")},
	})

	if _, err := svc.PlayCard(g, "p1"); err != nil {
		t.Fatalf("Challenger play failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		events, err := svc.PlayCard(g, "p2")
		if err != nil {
			t.Fatalf("Responder play %d failed: %v", i+1, err)
		}
		if len(eventsOfKind(events, EventPileAwarded)) != 0 {
			t.Fatalf("Pile awarded before the allowance ran out (play %d)", i+1)
		}
	}

	events, err := svc.PlayCard(g, "p2")
	if err != nil {
		t.Fatalf("Final responder play failed: %v", err)
	}

	payload := requireEvent(t, events, EventPileAwarded).Payload.(PileAwardedPayload)
	if payload.UserID != "p1" || payload.Cards != 4 || payload.Reason != "challenge" {
		t.Fatalf("Unexpected pile award: %+v", payload)
	}
	if len(g.Pile) != 0 || g.Challenge != nil {
		t.Fatal("Pile and challenge must clear after the award")
	}
	// King + 3 responses on top of the challenger's remaining card.
	if got := g.PlayerByID("p1").Hand.Len(); got != 5 {
		t.Fatalf("Challenger holds %d cards, want 5", got)
	}
	if g.CurrentPlayer().UserID != "p1" {
		t.Fatalf("Turn = %s, want challenge winner p1", g.CurrentPlayer().UserID)
	}
}

func TestCounterFaceCardReplacesChallenge(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(domain.RankKing, "S"), card(2, "H")},
		"p2": {card(9, "C"), card(domain.RankJack, "D"), card(3, "S")},
	})

	if _, err := svc.PlayCard(g, "p1"); err != nil {
		t.Fatalf("Challenger play failed: %v", err)
	}
	if _, err := svc.PlayCard(g, "p2"); err != nil {
		t.Fatalf("First response failed: %v", err)
	}
	if g.Challenge.Remaining != 2 {
		t.Fatalf("Remaining = %d, want 2", g.Challenge.Remaining)
	}

	// The jack counter replaces the challenge; the old allowance never stacks.
	if _, err := svc.PlayCard(g, "p2"); err != nil {
		t.Fatalf("Counter play failed: %v", err)
	}

	ch := g.Challenge
	if ch == nil || ch.ChallengerID != "p2" || ch.Total != 1 || ch.Remaining != 1 || ch.ResponderID != "p1" {
		t.Fatalf("Counter did not replace challenge: %+v", ch)
	}
	if g.CurrentPlayer().UserID != "p1" {
		t.Fatalf("Turn = %s, want new responder p1", g.CurrentPlayer().UserID)
	}
}

func TestChallengeAwardToOfflineChallengerAdvancesTurn(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(domain.RankJack, "S"), card(2, "H")},
		"p2": {card(9, "C"), card(4, "D")},
	})

	if _, err := svc.PlayCard(g, "p1"); err != nil {
		t.Fatalf("Challenger play failed: %v", err)
	}
	// The challenger disconnects while the challenge is open.
	svc.Leave(g, "p1")

	if _, err := svc.PlayCard(g, "p2"); err != nil {
		t.Fatalf("Responder play failed: %v", err)
	}

	// The pile is still awarded to the offline challenger, but the lead must
	// move on to a connected player or the session stalls.
	if got := g.PlayerByID("p1").Hand.Len(); got != 3 {
		t.Fatalf("Offline challenger holds %d cards, want 3", got)
	}
	if g.CurrentPlayer().UserID != "p2" {
		t.Fatalf("Turn = %s, want connected p2", g.CurrentPlayer().UserID)
	}
	if _, err := svc.PlayCard(g, "p2"); err != nil {
		t.Fatalf("Connected player rejected after award: %v", err)
	}
}

func TestChallengeResponderRunsOutMidChallenge(t *testing.T) {
	svc := newTestService()
	g := newLobby("p1", "p2", "p3")
	startPlaying(g, map[string][]domain.Card{
		"p1": {card(domain.RankKing, "S"), card(2, "H")},
		"p2": {card(9, "C")},
		"p3": {card(4, "D"), card(6, "H")},
	})

	if _, err := svc.PlayCard(g, "p1"); err != nil {
		t.Fatalf("Challenger play failed: %v", err)
	}
	if _, err := svc.PlayCard(g, "p2"); err != nil {
		t.Fatalf("Responder play failed: %v", err)
	}

	ch := g.Challenge
	if ch == nil || ch.Remaining != 2 {
		t.Fatalf("Unexpected challenge state: %+v", ch)
	}
	if ch.ResponderID != "p3" {
		t.Fatalf("Obligation should pass to p3, got %q", ch.ResponderID)
	}
	if g.CurrentPlayer().UserID != "p3" {
		t.Fatalf("Turn = %s, want p3", g.CurrentPlayer().UserID)
	}
}
