package deck

// HoleCards holds a player's two private cards
type HoleCards struct {
	First  Card
	Second Card
}

// NewHoleCards creates hole cards from two dealt cards
func NewHoleCards(first, second Card) HoleCards {
	return HoleCards{First: first, Second: second}
}

// High returns the higher-ranked of the two cards
func (h HoleCards) High() Rank {
	if h.First.Rank >= h.Second.Rank {
		return h.First.Rank
	}
	return h.Second.Rank
}

// Low returns the lower-ranked of the two cards
func (h HoleCards) Low() Rank {
	if h.First.Rank < h.Second.Rank {
		return h.First.Rank
	}
	return h.Second.Rank
}

// IsPair returns true when both cards share a rank
func (h HoleCards) IsPair() bool {
	return h.First.Rank == h.Second.Rank
}

// IsSuited returns true when both cards share a suit
func (h HoleCards) IsSuited() bool {
	return h.First.Suit == h.Second.Suit
}

// Notation returns the canonical starting-hand notation: "AA" for pairs,
// "AKs" for suited, "AKo" for offsuit, high card first.
func (h HoleCards) Notation() string {
	if h.IsPair() {
		return h.High().String() + h.Low().String()
	}
	suffix := "o"
	if h.IsSuited() {
		suffix = "s"
	}
	return h.High().String() + h.Low().String() + suffix
}

// Cards returns the hole cards as a slice
func (h HoleCards) Cards() []Card {
	return []Card{h.First, h.Second}
}

// String returns the concrete card notation, e.g. "AhKs"
func (h HoleCards) String() string {
	return h.First.String() + h.Second.String()
}
