package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when dealing from a deck with no cards left.
// This should never happen at supported table sizes; callers must treat
// it as fatal rather than retry.
var ErrExhausted = errors.New("deck: no cards remaining")

// Size is the number of cards in a standard deck
const Size = 52

// Deck is a 52-card deck with a deal cursor. A deck is owned by exactly
// one hand's game state and must never be shared across hands.
type Deck struct {
	cards  [Size]Card
	cursor int
	rng    *rand.Rand
}

// New creates a full deck in canonical order using the provided RNG for
// shuffling. The RNG must not be nil; tests pass a seeded source.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset restores all 52 cards in canonical suit-major order and rewinds
// the cursor.
func (d *Deck) Reset() {
	i := 0
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.cursor = 0
}

// Shuffle performs a Fisher-Yates shuffle over the full deck and rewinds
// the cursor.
func (d *Deck) Shuffle() {
	for i := Size - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.cursor = 0
}

// Deal returns the next card and advances the cursor
func (d *Deck) Deal() (Card, error) {
	if d.cursor >= Size {
		return Card{}, ErrExhausted
	}
	c := d.cards[d.cursor]
	d.cursor++
	return c, nil
}

// DealN deals n cards via repeated Deal
func (d *Deck) DealN(n int) ([]Card, error) {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.Deal()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return Size - d.cursor
}
