package domain

import (
	"math/rand"
	"testing"
)

func TestNewStandardDeckSize(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "SingleDeck", count: 1, want: 52},
		{name: "DoubleDeck", count: 2, want: 104},
		{name: "ZeroCountClampedToOne", count: 0, want: 52},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := NewStandardDeck(test.count).Size(); got != test.want {
				t.Fatalf("Size() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestDeckMultiplicity(t *testing.T) {
	d := NewStandardDeck(2)
	seen := make(map[Card]int)
	for _, c := range d.Cards() {
		seen[c]++
	}
	if len(seen) != 52 {
		t.Fatalf("Distinct cards = %d, want 52", len(seen))
	}
	for c, n := range seen {
		if n != 2 {
			t.Fatalf("Card %s appears %d times, want 2", c.Code(), n)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	d := NewStandardDeck(1)
	before := make(map[Card]int)
	for _, c := range d.Cards() {
		before[c]++
	}

	d.Shuffle(rand.New(rand.NewSource(42)))

	after := make(map[Card]int)
	for _, c := range d.Cards() {
		after[c]++
	}
	if d.Size() != 52 {
		t.Fatalf("Size after shuffle = %d, want 52", d.Size())
	}
	for c, n := range before {
		if after[c] != n {
			t.Fatalf("Card %s count changed by shuffle: %d -> %d", c.Code(), n, after[c])
		}
	}
}

func TestDealRoundRobin(t *testing.T) {
	players := []*Player{
		NewPlayer("p1", "one"),
		NewPlayer("p2", "two"),
		NewPlayer("p3", "three"),
	}
	d := NewStandardDeck(1)
	d.Deal(players, 0)

	if d.Size() != 0 {
		t.Fatalf("Deck should be exhausted, %d cards remain", d.Size())
	}
	total := 0
	for _, pl := range players {
		total += pl.Hand.Len()
	}
	if total != 52 {
		t.Fatalf("Dealt cards total %d, want 52", total)
	}
	// 52 cards over 3 players: the earlier seats receive the extra card.
	if got := players[0].Hand.Len(); got != 18 {
		t.Fatalf("Player 1 holds %d cards, want 18", got)
	}
	if got := players[1].Hand.Len(); got != 17 {
		t.Fatalf("Player 2 holds %d cards, want 17", got)
	}
	if got := players[2].Hand.Len(); got != 17 {
		t.Fatalf("Player 3 holds %d cards, want 17", got)
	}
}

func TestDealRespectsCap(t *testing.T) {
	players := []*Player{
		NewPlayer("p1", "one"),
		NewPlayer("p2", "two"),
	}
	d := NewStandardDeck(1)
	d.Deal(players, 5)

	for _, pl := range players {
		if pl.Hand.Len() != 5 {
			t.Fatalf("Player %s holds %d cards, want 5", pl.UserID, pl.Hand.Len())
		}
	}
	if d.Size() != 42 {
		t.Fatalf("Deck retains %d cards, want 42", d.Size())
	}
}

func TestDealNoPlayers(t *testing.T) {
	d := NewStandardDeck(1)
	d.Deal(nil, 0)
	if d.Size() != 52 {
		t.Fatalf("Deck changed with no players: %d cards", d.Size())
	}
}
