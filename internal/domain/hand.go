package domain

// Hand is a FIFO queue of cards: dealt and collected cards are appended at the
// back, played cards are removed from the front. Implemented as a ring buffer
// so both ends are O(1).
type Hand struct {
	buf  []Card
	head int
	n    int
}

// Len returns the number of cards held.
func (h *Hand) Len() int { return h.n }

// PushBack appends a card at the back of the hand.
func (h *Hand) PushBack(c Card) {
	if h.n == len(h.buf) {
		h.grow()
	}
	h.buf[(h.head+h.n)%len(h.buf)] = c
	h.n++
}

// PopFront removes and returns the front card. The second return is false when
// the hand is empty.
func (h *Hand) PopFront() (Card, bool) {
	if h.n == 0 {
		return Card{}, false
	}
	c := h.buf[h.head]
	h.head = (h.head + 1) % len(h.buf)
	h.n--
	return c, true
}

// Cards returns the hand contents front to back as a copy.
func (h *Hand) Cards() []Card {
	out := make([]Card, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	return out
}

func (h *Hand) grow() {
	size := len(h.buf) * 2
	if size == 0 {
		size = 8
	}
	buf := make([]Card, size)
	for i := 0; i < h.n; i++ {
		buf[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	h.buf = buf
	h.head = 0
}
