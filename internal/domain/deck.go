package domain

import "math/rand"

// Deck is an ordered sequence of cards parameterized by suit set, rank set and
// the number of combined 52-card decks.
type Deck struct {
	Suits []string
	Ranks []int
	Count int

	cards []Card
}

// NewDeck builds a deck from the given parameters. A Count below 1 is treated
// as 1.
func NewDeck(suits []string, ranks []int, count int) *Deck {
	if count < 1 {
		count = 1
	}
	d := &Deck{Suits: suits, Ranks: ranks, Count: count}
	d.Reset()
	return d
}

// NewStandardDeck builds count combined copies of the standard 52-card deck.
func NewStandardDeck(count int) *Deck {
	return NewDeck(StandardSuits(), StandardRanks(), count)
}

// Reset rebuilds the deck from its parameters in build order, discarding any
// previous contents.
func (d *Deck) Reset() {
	d.cards = make([]Card, 0, len(d.Suits)*len(d.Ranks)*d.Count)
	for i := 0; i < d.Count; i++ {
		for _, s := range d.Suits {
			for _, r := range d.Ranks {
				d.cards = append(d.cards, Card{Rank: r, Suit: s})
			}
		}
	}
}

// Shuffle permutes the deck in place using the provided rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
}

// Size returns the number of cards remaining in the deck.
func (d *Deck) Size() int { return len(d.cards) }

// Cards returns a copy of the remaining cards in order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Deal distributes the deck round-robin into the players' hands until the deck
// is exhausted or every player holds perPlayerCap cards. A cap of 0 or less
// means no cap.
func (d *Deck) Deal(players []*Player, perPlayerCap int) {
	if len(players) == 0 {
		return
	}
	for len(d.cards) > 0 {
		dealt := false
		for _, pl := range players {
			if len(d.cards) == 0 {
				break
			}
			if perPlayerCap > 0 && pl.Hand.Len() >= perPlayerCap {
				continue
			}
			pl.Hand.PushBack(d.cards[0])
			d.cards = d.cards[1:]
			dealt = true
		}
		if !dealt {
			break
		}
	}
}
