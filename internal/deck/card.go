package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the single-letter suit symbol used in card notation
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Glyph returns the unicode suit symbol for display
func (s Suit) Glyph() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank symbol
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Name returns the full rank name, used in hand descriptions
func (r Rank) Name() string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return "?"
	}
}

// Card is an immutable playing card. Cards compare by rank only.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two-character notation for the card (e.g. "As", "Th")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the numeric rank value for comparison (2-14)
func (c Card) Value() int {
	return int(c.Rank)
}

// ParseCard parses two-character card notation like "As" or "7d"
func ParseCard(notation string) (Card, error) {
	if len(notation) != 2 {
		return Card{}, fmt.Errorf("card notation must be 2 characters: %q", notation)
	}

	var rank Rank
	switch notation[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(notation[0] - '0')
	case 'T':
		rank = Ten
	case 'J':
		rank = Jack
	case 'Q':
		rank = Queen
	case 'K':
		rank = King
	case 'A':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("unknown rank symbol %q in %q", notation[0], notation)
	}

	var suit Suit
	switch notation[1] {
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	case 's':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("unknown suit symbol %q in %q", notation[1], notation)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCard parses card notation and panics on error. For tests and
// static tables only.
func MustParseCard(notation string) Card {
	c, err := ParseCard(notation)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a space-separated list of card notations
func ParseCards(notations ...string) ([]Card, error) {
	cards := make([]Card, 0, len(notations))
	for _, n := range notations {
		c, err := ParseCard(n)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
