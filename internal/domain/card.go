package domain

import "strconv"

// Suit letters as used on the wire.
const (
	SuitSpades   = "S"
	SuitHearts   = "H"
	SuitDiamonds = "D"
	SuitClubs    = "C"
)

// Named ranks. Number cards use their face value directly (2..10).
const (
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Card is a single playing card. Identity is (Rank, Suit); cards move freely
// between the deck, hands and the central pile by value.
type Card struct {
	Rank int    `json:"rank"` // 2..14 (J=11, Q=12, K=13, A=14)
	Suit string `json:"suit"` // "S","H","D","C"
}

// Code returns the short display code, e.g. "QS" or "10H".
func (c Card) Code() string {
	return c.rankLabel() + c.Suit
}

func (c Card) rankLabel() string {
	switch c.Rank {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	default:
		return strconv.Itoa(c.Rank)
	}
}

// StandardSuits returns the four suits in deck-build order.
func StandardSuits() []string {
	return []string{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}
}

// StandardRanks returns ranks 2 through ace in deck-build order.
func StandardRanks() []int {
	ranks := make([]int, 0, 13)
	for r := 2; r <= RankAce; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}
