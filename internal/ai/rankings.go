package ai

import "fmt"

// RankedHands orders all 169 canonical starting hands strongest to
// weakest by widely accepted multiway preflop equity. Pairs rank above
// suited above offsuit at equivalent strength. A cutoff N selects the
// top N hands as a playable range.
var RankedHands = []string{
	"AA", "KK", "QQ", "JJ", "AKs",
	"AQs", "TT", "AKo", "AJs", "KQs",
	"99", "ATs", "AQo", "KJs", "QJs",
	"JTs", "88", "KTs", "AJo", "QTs",
	"A9s", "KQo", "77", "T9s", "A8s",
	"K9s", "98s", "A5s", "KJo", "A7s",
	"A4s", "Q9s", "66", "J9s", "A6s",
	"A3s", "QJo", "87s", "KTo", "A2s",
	"55", "T8s", "K8s", "76s", "JTo",
	"97s", "ATo", "Q8s", "K7s", "J8s",
	"65s", "44", "86s", "K6s", "54s",
	"QTo", "T7s", "K5s", "75s", "96s",
	"33", "K4s", "64s", "J7s", "Q7s",
	"K3s", "85s", "53s", "K2s", "A9o",
	"43s", "Q6s", "T6s", "22", "74s",
	"J6s", "Q5s", "95s", "94s", "63s", "K9o",
	"52s", "Q4s", "84s", "83s", "42s", "Q3s",
	"J5s", "T5s", "Q2s", "A8o", "73s",
	"J4s", "93s", "T4s", "62s", "J3s",
	"32s", "J2s", "A5o", "T3s", "A7o",
	"T2s", "82s", "92s", "A4o", "98o",
	"A6o", "A3o", "J9o", "87o", "72s",
	"Q9o", "A2o", "T9o", "76o", "K8o",
	"65o", "97o", "J8o", "54o", "86o",
	"Q8o", "T8o", "K7o", "75o", "96o",
	"K6o", "J7o", "64o", "Q7o", "53o",
	"K5o", "85o", "43o", "K4o", "T7o",
	"Q6o", "74o", "K3o", "Q5o", "K2o",
	"95o", "94o", "63o", "Q4o", "84o", "83o", "42o",
	"Q3o", "J6o", "T6o", "Q2o", "52o",
	"J5o", "73o", "J4o", "93o", "T5o",
	"32o", "J3o", "62o", "T4o", "82o",
	"J2o", "T3o", "92o", "T2o", "72o",
}

// HeadsUpRankedHands orders the 169 starting hands by heads-up equity
// against a random hand. Ace-x and king-x offsuit climb sharply because
// ace high wins unimproved; suited connectors and small pairs drop.
var HeadsUpRankedHands = []string{
	"AA", "KK", "QQ", "JJ", "AKs",
	"AQs", "TT", "AKo", "AJs", "KQs",
	"ATs", "AQo", "99", "KJs", "A9s",
	"KTs", "AJo", "A8s", "KQo", "A7s",
	"88", "ATo", "A6s", "A5s", "A4s",
	"A3s", "A2s", "QJs", "QTs", "A9o",
	"A8o", "A7o", "KJo", "K9s", "77",
	"K8s", "K7s", "A6o", "A5o", "JTs",
	"QJo", "K6s", "KTo", "A4o", "K5s",
	"66", "A3o", "K4s", "A2o", "K3s",
	"K2s", "T9s", "Q9s", "J9s", "98s",
	"Q8s", "J8s", "QTo", "K9o",
	"JTo", "T8s", "87s", "55", "K8o",
	"97s", "76s", "Q7s", "K7o", "Q6s",
	"44", "K6o", "J7s", "Q5s", "65s",
	"86s", "K5o", "T7s", "Q4s", "K4o",
	"96s", "Q3s", "Q9o", "J9o", "33",
	"K3o", "54s", "Q2s", "75s", "K2o",
	"T9o", "J6s", "85s", "Q8o", "64s",
	"J5s", "22", "98o", "87o", "J4s",
	"T6s", "53s", "J3s", "Q7o", "43s",
	"95s", "93s", "74s", "J2s", "76o",
	"Q6o", "T5s", "94s", "63s", "84s",
	"Q5o", "52s",
	"65o", "T4s", "86o", "Q4o", "42s",
	"T3s", "73s", "97o", "Q3o", "54o",
	"83s", "J8o", "T2s", "Q2o", "75o",
	"92s", "32s", "82s", "96o", "J7o",
	"T8o", "62s", "72s", "64o", "85o",
	"53o", "J6o", "43o", "T7o", "74o",
	"J5o", "95o", "63o", "84o", "J4o",
	"52o", "94o", "42o", "T6o", "J3o",
	"32o", "73o", "83o", "J2o", "T5o",
	"62o", "T4o", "93o", "72o", "82o",
	"92o", "T3o", "T2o",
}

var (
	handIndex        = buildIndex(RankedHands)
	headsUpHandIndex = buildIndex(HeadsUpRankedHands)
)

func buildIndex(hands []string) map[string]int {
	idx := make(map[string]int, len(hands))
	for i, h := range hands {
		idx[h] = i
	}
	return idx
}

// IndexOf returns a hand's rank in the multiway ordering, 0 strongest.
func IndexOf(hand string) (int, error) {
	i, ok := handIndex[hand]
	if !ok {
		return 0, fmt.Errorf("unknown hand notation %q", hand)
	}
	return i, nil
}

// HeadsUpIndexOf returns a hand's rank in the heads-up ordering
func HeadsUpIndexOf(hand string) (int, error) {
	i, ok := headsUpHandIndex[hand]
	if !ok {
		return 0, fmt.Errorf("unknown hand notation %q", hand)
	}
	return i, nil
}

// InRange reports whether a hand sits inside the top-cutoff slice of
// the multiway ordering. Unknown notations are never in range.
func InRange(hand string, cutoff int) bool {
	i, ok := handIndex[hand]
	return ok && i < cutoff
}

// InRangeHeadsUp is InRange against the heads-up ordering
func InRangeHeadsUp(hand string, cutoff int) bool {
	i, ok := headsUpHandIndex[hand]
	return ok && i < cutoff
}

// TopN returns the strongest n hands of the multiway ordering
func TopN(n int) []string {
	n = clampCutoff(n)
	out := make([]string, n)
	copy(out, RankedHands[:n])
	return out
}

// clampCutoff keeps an adjusted cutoff inside the valid range
func clampCutoff(n int) int {
	if n < 1 {
		return 1
	}
	if n > len(RankedHands) {
		return len(RankedHands)
	}
	return n
}
