package domain

import "testing"

func TestHandFIFOOrder(t *testing.T) {
	var h Hand
	for r := 2; r <= RankAce; r++ {
		h.PushBack(Card{Rank: r, Suit: SuitSpades})
	}
	if h.Len() != 13 {
		t.Fatalf("Len() = %d, want 13", h.Len())
	}
	for r := 2; r <= RankAce; r++ {
		c, ok := h.PopFront()
		if !ok {
			t.Fatalf("PopFront failed at rank %d", r)
		}
		if c.Rank != r {
			t.Fatalf("PopFront rank = %d, want %d", c.Rank, r)
		}
	}
	if _, ok := h.PopFront(); ok {
		t.Fatal("PopFront on empty hand should report false")
	}
}

func TestHandWrapAround(t *testing.T) {
	// Interleave pushes and pops so the ring buffer head wraps past the
	// underlying slice boundary.
	var h Hand
	next := 2
	for i := 0; i < 6; i++ {
		h.PushBack(Card{Rank: next + i, Suit: SuitHearts})
	}
	for i := 0; i < 4; i++ {
		h.PopFront()
	}
	for i := 0; i < 10; i++ {
		h.PushBack(Card{Rank: 2 + (i % 13), Suit: SuitClubs})
	}
	if h.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", h.Len())
	}

	cards := h.Cards()
	if len(cards) != 12 {
		t.Fatalf("Cards() length = %d, want 12", len(cards))
	}
	for i, want := range cards {
		got, ok := h.PopFront()
		if !ok || got != want {
			t.Fatalf("PopFront #%d = %v, want %v", i, got, want)
		}
	}
}

func TestHandGrowPreservesOrder(t *testing.T) {
	var h Hand
	for i := 0; i < 40; i++ {
		h.PushBack(Card{Rank: 2 + (i % 13), Suit: SuitDiamonds})
	}
	for i := 0; i < 40; i++ {
		c, ok := h.PopFront()
		if !ok {
			t.Fatalf("PopFront failed at %d", i)
		}
		if want := 2 + (i % 13); c.Rank != want {
			t.Fatalf("PopFront #%d rank = %d, want %d", i, c.Rank, want)
		}
	}
}
