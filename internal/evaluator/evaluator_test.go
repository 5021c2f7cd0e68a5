package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-ai/internal/deck"
)

func cards(t *testing.T, notations ...string) []deck.Card {
	t.Helper()
	cs, err := deck.ParseCards(notations...)
	require.NoError(t, err)
	return cs
}

func eval5(t *testing.T, notations ...string) Evaluation {
	t.Helper()
	e, err := Evaluate5(cards(t, notations...))
	require.NoError(t, err)
	return e
}

func TestEvaluate5Categories(t *testing.T) {
	tests := []struct {
		name    string
		cards   []string
		rank    HandRank
		kickers []int
	}{
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "Ts"}, RoyalFlush, []int{14}},
		{"straight flush", []string{"9h", "8h", "7h", "6h", "5h"}, StraightFlush, []int{9}},
		{"steel wheel", []string{"Ah", "2h", "3h", "4h", "5h"}, StraightFlush, []int{5}},
		{"four of a kind", []string{"Qs", "Qh", "Qd", "Qc", "7s"}, FourOfAKind, []int{12, 7}},
		{"full house", []string{"Ts", "Th", "Td", "4c", "4s"}, FullHouse, []int{10, 4}},
		{"flush", []string{"Kd", "Jd", "8d", "6d", "3d"}, Flush, []int{13, 11, 8, 6, 3}},
		{"straight", []string{"9s", "8h", "7d", "6c", "5s"}, Straight, []int{9}},
		{"broadway straight", []string{"As", "Kh", "Qd", "Jc", "Ts"}, Straight, []int{14}},
		{"wheel straight", []string{"Ah", "2s", "3d", "4c", "5h"}, Straight, []int{5}},
		{"three of a kind", []string{"8s", "8h", "8d", "Kc", "2s"}, ThreeOfAKind, []int{8, 13, 2}},
		{"two pair", []string{"Js", "Jh", "4d", "4c", "9s"}, TwoPair, []int{11, 4, 9}},
		{"one pair", []string{"6s", "6h", "Ad", "Tc", "3s"}, OnePair, []int{6, 14, 10, 3}},
		{"high card", []string{"As", "Jh", "8d", "5c", "2s"}, HighCard, []int{14, 11, 8, 5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := eval5(t, tt.cards...)
			assert.Equal(t, tt.rank, e.Rank)
			assert.Equal(t, tt.kickers, e.Kickers)
		})
	}
}

func TestWheelIsNotAceHigh(t *testing.T) {
	wheel := eval5(t, "Ah", "2s", "3d", "4c", "5h")
	sixHigh := eval5(t, "2h", "3s", "4d", "5c", "6h")

	require.Equal(t, Straight, wheel.Rank)
	assert.Equal(t, []int{5}, wheel.Kickers)
	assert.Greater(t, sixHigh.Compare(wheel), 0, "six-high straight must beat the wheel")
}

func TestCategoryOrdering(t *testing.T) {
	// One representative hand per category, ascending
	ladder := []Evaluation{
		eval5(t, "As", "Jh", "8d", "5c", "2s"), // high card
		eval5(t, "6s", "6h", "Ad", "Tc", "3s"), // one pair
		eval5(t, "Js", "Jh", "4d", "4c", "9s"), // two pair
		eval5(t, "8s", "8h", "8d", "Kc", "2s"), // trips
		eval5(t, "9s", "8h", "7d", "6c", "5s"), // straight
		eval5(t, "Kd", "Jd", "8d", "6d", "3d"), // flush
		eval5(t, "Ts", "Th", "Td", "4c", "4s"), // full house
		eval5(t, "Qs", "Qh", "Qd", "Qc", "7s"), // quads
		eval5(t, "9h", "8h", "7h", "6h", "5h"), // straight flush
		eval5(t, "As", "Ks", "Qs", "Js", "Ts"), // royal flush
	}

	for i := 0; i < len(ladder); i++ {
		for j := 0; j < len(ladder); j++ {
			cmp := ladder[i].Compare(ladder[j])
			switch {
			case i < j:
				assert.Negative(t, cmp, "%s should lose to %s", ladder[i].Rank, ladder[j].Rank)
			case i > j:
				assert.Positive(t, cmp, "%s should beat %s", ladder[i].Rank, ladder[j].Rank)
			default:
				assert.Zero(t, cmp)
			}
		}
	}
}

func TestKickerTieBreaks(t *testing.T) {
	tests := []struct {
		name   string
		better []string
		worse  []string
	}{
		{"higher pair", []string{"7s", "7h", "Ad", "Tc", "3s"}, []string{"6s", "6h", "Ad", "Tc", "3s"}},
		{"same pair better kicker", []string{"6s", "6h", "Ad", "Tc", "3s"}, []string{"6d", "6c", "Kd", "Tc", "3s"}},
		{"higher second pair", []string{"Js", "Jh", "5d", "5c", "9s"}, []string{"Jd", "Jc", "4d", "4h", "9h"}},
		{"fuller full house", []string{"Ts", "Th", "Td", "5c", "5s"}, []string{"Tc", "Th", "Td", "4c", "4s"}},
		{"flush second card", []string{"Kd", "Qd", "8d", "6d", "3d"}, []string{"Kh", "Jh", "8h", "6h", "3h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			better := eval5(t, tt.better...)
			worse := eval5(t, tt.worse...)
			assert.Positive(t, better.Compare(worse))
			assert.Negative(t, worse.Compare(better))
		})
	}
}

func TestExactTie(t *testing.T) {
	a := eval5(t, "As", "Kh", "Qd", "Jc", "Ts")
	b := eval5(t, "Ad", "Kc", "Qs", "Jh", "Td")
	assert.Zero(t, a.Compare(b))
}

func TestEvaluateBestBeatsAllSubsets(t *testing.T) {
	seven := cards(t, "As", "Ah", "Kd", "Kc", "7s", "7h", "2d")

	best, err := EvaluateBest(seven)
	require.NoError(t, err)

	// Best hand here is aces full of kings
	assert.Equal(t, FullHouse, best.Rank)
	assert.Equal(t, []int{14, 13}, best.Kickers)

	// Enumerate all 21 subsets and confirm none is better
	idx := []int{0, 1, 2, 3, 4}
	for {
		combo := make([]deck.Card, 5)
		for i, j := range idx {
			combo[i] = seven[j]
		}
		e, err := Evaluate5(combo)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, best.Compare(e), 0)
		if !nextCombination(idx, 7) {
			break
		}
	}
}

func TestEvaluateBestFindsBackdoorStraightFlush(t *testing.T) {
	seven := cards(t, "9h", "8h", "7h", "6h", "5h", "Ad", "As")
	best, err := EvaluateBest(seven)
	require.NoError(t, err)
	assert.Equal(t, StraightFlush, best.Rank)
	assert.Equal(t, []int{9}, best.Kickers)
}

func TestEvaluateBestCardCountBounds(t *testing.T) {
	_, err := EvaluateBest(cards(t, "As", "Ks", "Qs", "Js"))
	assert.Error(t, err)

	_, err = EvaluateBest(cards(t, "As", "Ks", "Qs", "Js", "Ts", "9s", "8s", "7s"))
	assert.Error(t, err)

	_, err = Evaluate5(cards(t, "As", "Ks", "Qs"))
	assert.Error(t, err)
}
