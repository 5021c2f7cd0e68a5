// Package evaluator ranks 5-7 card poker hands into their best five-card
// category with full kicker ordering for tie-breaks.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-ai/internal/deck"
)

// HandRank is the category of a five-card hand, in ascending strength
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the hand rank
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Evaluation is the result of ranking a five-card hand. Kickers encode
// the full tie-break order for the category, e.g. a full house carries
// [trips rank, pair rank] and a flush carries all five ranks descending.
type Evaluation struct {
	Rank        HandRank
	Kickers     []int
	Description string
}

// Compare returns >0 if e beats other, <0 if other beats e, 0 for a tie.
// Categories compare first, then kickers lexicographically; a missing
// kicker loses.
func (e Evaluation) Compare(other Evaluation) int {
	if e.Rank != other.Rank {
		return int(e.Rank) - int(other.Rank)
	}
	for i := range e.Kickers {
		if i >= len(other.Kickers) {
			return 1
		}
		if e.Kickers[i] != other.Kickers[i] {
			return e.Kickers[i] - other.Kickers[i]
		}
	}
	if len(other.Kickers) > len(e.Kickers) {
		return -1
	}
	return 0
}

// Evaluate5 ranks exactly five cards
func Evaluate5(cards []deck.Card) (Evaluation, error) {
	if len(cards) != 5 {
		return Evaluation{}, fmt.Errorf("evaluator: need exactly 5 cards, got %d", len(cards))
	}

	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straight := isStraight(values)
	wheel := isWheel(values)

	groups := groupByRank(values)
	counts := make([]int, len(groups))
	groupValues := make([]int, len(groups))
	for i, g := range groups {
		counts[i] = g.count
		groupValues[i] = g.value
	}

	switch {
	case flush && straight && values[0] == int(deck.Ace):
		return Evaluation{RoyalFlush, []int{14}, "Royal Flush"}, nil

	case flush && (straight || wheel):
		high := values[0]
		if wheel {
			high = 5
		}
		return Evaluation{StraightFlush, []int{high},
			fmt.Sprintf("Straight Flush, %s high", rankName(high))}, nil

	case counts[0] == 4:
		return Evaluation{FourOfAKind, []int{groupValues[0], groupValues[1]},
			fmt.Sprintf("Four of a Kind, %ss", rankName(groupValues[0]))}, nil

	case counts[0] == 3 && counts[1] == 2:
		return Evaluation{FullHouse, []int{groupValues[0], groupValues[1]},
			fmt.Sprintf("Full House, %ss full of %ss", rankName(groupValues[0]), rankName(groupValues[1]))}, nil

	case flush:
		return Evaluation{Flush, values,
			fmt.Sprintf("Flush, %s high", rankName(values[0]))}, nil

	case straight || wheel:
		high := values[0]
		if wheel {
			high = 5
		}
		return Evaluation{Straight, []int{high},
			fmt.Sprintf("Straight, %s high", rankName(high))}, nil

	case counts[0] == 3:
		return Evaluation{ThreeOfAKind, groupValues,
			fmt.Sprintf("Three of a Kind, %ss", rankName(groupValues[0]))}, nil

	case counts[0] == 2 && counts[1] == 2:
		return Evaluation{TwoPair, groupValues,
			fmt.Sprintf("Two Pair, %ss and %ss", rankName(groupValues[0]), rankName(groupValues[1]))}, nil

	case counts[0] == 2:
		return Evaluation{OnePair, groupValues,
			fmt.Sprintf("Pair of %ss", rankName(groupValues[0]))}, nil

	default:
		return Evaluation{HighCard, values,
			fmt.Sprintf("%s high", rankName(values[0]))}, nil
	}
}

// EvaluateBest ranks the best five-card hand from 5-7 cards by
// enumerating every C(n,5) combination.
func EvaluateBest(cards []deck.Card) (Evaluation, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return Evaluation{}, fmt.Errorf("evaluator: need 5-7 cards, got %d", n)
	}
	if n == 5 {
		return Evaluate5(cards)
	}

	var best Evaluation
	first := true
	combo := make([]deck.Card, 5)
	idx := []int{0, 1, 2, 3, 4}
	for {
		for i, j := range idx {
			combo[i] = cards[j]
		}
		eval, err := Evaluate5(combo)
		if err != nil {
			return Evaluation{}, err
		}
		if first || eval.Compare(best) > 0 {
			best = eval
			first = false
		}
		if !nextCombination(idx, n) {
			break
		}
	}
	return best, nil
}

// nextCombination advances idx to the next 5-element combination of [0,n)
// in lexicographic order, returning false when exhausted.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	for i := k - 1; i >= 0; i-- {
		if idx[i] < n-k+i {
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
			return true
		}
	}
	return false
}

type rankGroup struct {
	count int
	value int
}

// groupByRank groups sorted-descending values by rank, ordered by
// (count desc, value desc). The resulting value order doubles as the
// kicker list for pair-type hands.
func groupByRank(values []int) []rankGroup {
	byValue := make(map[int]int)
	for _, v := range values {
		byValue[v]++
	}
	groups := make([]rankGroup, 0, len(byValue))
	for v, c := range byValue {
		groups = append(groups, rankGroup{count: c, value: v})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})
	return groups
}

// isStraight reports whether five descending values are consecutive
func isStraight(sorted []int) bool {
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i]-sorted[i+1] != 1 {
			return false
		}
	}
	return true
}

// isWheel detects A-5-4-3-2, where the ace plays low and the hand ranks
// as a five-high straight.
func isWheel(sorted []int) bool {
	return len(sorted) == 5 &&
		sorted[0] == 14 && sorted[1] == 5 && sorted[2] == 4 && sorted[3] == 3 && sorted[4] == 2
}

func rankName(value int) string {
	return deck.Rank(value).Name()
}
