package game

import (
	"math"
	"sort"

	"github.com/lox/holdem-ai/internal/evaluator"
)

// Pot management. Chips are banked into the pot as each action is
// applied, so "collecting" at street end reduces to clearing the
// per-street counters; side pots are layered from the distinct all-in
// contribution levels only when a showdown needs them.

// CollectBets closes out the street's betting: the chips are already in
// the pot, so this clears every player's per-street bet counter.
func (s *GameState) CollectBets() {
	for _, p := range s.Players {
		p.Bet = 0
	}
}

// DeductRake removes rake from the pot: min(round(pot*rate), rakeCap),
// rounding half up. Returns the amount taken.
func (s *GameState) DeductRake(rate float64, rakeCap int) int {
	rake := min(int(math.Floor(float64(s.Pot)*rate+0.5)), rakeCap)
	s.Pot -= rake
	return rake
}

// CalculateSidePots layers the pot by the distinct all-in contribution
// levels. With no all-in player the whole pot is a single pot open to
// everyone still in the hand. Contribution above the highest all-in
// level forms one more pot when two or more players reach it, or is
// refunded when only one does.
func (s *GameState) CalculateSidePots() []SidePot {
	inHand := s.ActivePlayers()

	anyAllIn := false
	for _, p := range inHand {
		if p.AllIn {
			anyAllIn = true
			break
		}
	}
	if !anyAllIn {
		return []SidePot{{Amount: s.Pot, Eligible: playerIndices(inHand)}}
	}

	levelSet := make(map[int]bool)
	for _, p := range inHand {
		if p.AllIn {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var pots []SidePot
	previous := 0
	for _, level := range levels {
		layer := level - previous

		var eligible []int
		for _, p := range inHand {
			if p.TotalBet >= level {
				eligible = append(eligible, p.Index)
			}
		}

		amount := 0
		for _, p := range s.Players {
			if p.SittingOut || p.TotalBet <= previous {
				continue
			}
			amount += min(p.TotalBet-previous, layer)
		}

		if amount > 0 {
			pots = append(pots, SidePot{Amount: amount, Eligible: eligible})
		}
		previous = level
	}

	maxAllIn := levels[len(levels)-1]
	var over []*Player
	for _, p := range inHand {
		if p.TotalBet > maxAllIn {
			over = append(over, p)
		}
	}
	deadExcess := 0
	for _, p := range s.Players {
		if p.SittingOut || !p.Folded || p.TotalBet <= maxAllIn {
			continue
		}
		deadExcess += p.TotalBet - maxAllIn
	}
	switch {
	case len(over) > 1:
		amount := deadExcess
		for _, p := range over {
			amount += p.TotalBet - maxAllIn
		}
		pots = append(pots, SidePot{Amount: amount, Eligible: playerIndices(over)})
	case len(over) == 1:
		// Nobody can contest the lone player's own excess; return it.
		excess := over[0].TotalBet - maxAllIn
		if excess > 0 {
			over[0].Chips += excess
			s.Pot -= excess
		}
		if deadExcess > 0 {
			pots = append(pots, SidePot{Amount: deadExcess, Eligible: []int{over[0].Index}})
		}
	default:
		// Only folded chips reach above the top level; they are
		// contested at that level.
		if deadExcess > 0 && len(pots) > 0 {
			pots[len(pots)-1].Amount += deadExcess
		}
	}

	return pots
}

// AwardPot distributes every side pot to the best eligible hand(s). Ties
// split equally; the integer remainder goes to the first winner in
// eligibility order so payouts stay exact. With no evaluations (everyone
// else folded) the lone contender takes the whole pot without showing.
func (s *GameState) AwardPot(evals map[int]evaluator.Evaluation) []Result {
	var results []Result

	if len(evals) == 0 {
		var winner *Player
		for _, p := range s.Players {
			if !p.Folded && !p.SittingOut {
				winner = p
				break
			}
		}
		if winner == nil {
			return nil
		}
		winner.Chips += s.Pot
		results = append(results, Result{PlayerIndex: winner.Index, Amount: s.Pot})
		s.Pot = 0
		return results
	}

	sidePots := s.CalculateSidePots()
	s.SidePots = sidePots

	for _, pot := range sidePots {
		// Collect the best evaluation among eligible players, in
		// eligibility order for deterministic remainder allocation.
		var winners []int
		var best evaluator.Evaluation
		found := false
		for _, idx := range pot.Eligible {
			eval, ok := evals[idx]
			if !ok {
				continue
			}
			if !found || eval.Compare(best) > 0 {
				best = eval
				winners = winners[:0]
				winners = append(winners, idx)
				found = true
			} else if eval.Compare(best) == 0 {
				winners = append(winners, idx)
			}
		}
		if !found {
			continue
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, idx := range winners {
			amount := share
			if i == 0 {
				amount += remainder
			}
			s.Players[idx].Chips += amount
			results = append(results, Result{PlayerIndex: idx, Amount: amount, HandDesc: best.Description})
		}
	}

	s.Pot = 0
	return results
}

func playerIndices(players []*Player) []int {
	out := make([]int, 0, len(players))
	for _, p := range players {
		out = append(out, p.Index)
	}
	return out
}
