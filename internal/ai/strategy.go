package ai

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-ai/internal/game"
)

// Scenario classifies the preflop action a player faces
type Scenario int

const (
	Open Scenario = iota
	FacingRaise
	Facing3Bet
)

func (s Scenario) String() string {
	switch s {
	case Open:
		return "open"
	case FacingRaise:
		return "facing_raise"
	case Facing3Bet:
		return "facing_3bet"
	default:
		return "unknown"
	}
}

// RoundBet rounds a bet to a clean chip amount: nearest 5 below 50,
// nearest 25 up to 200, nearest 50 above.
func RoundBet(amount int) int {
	if amount <= 0 {
		return amount
	}
	var increment int
	switch {
	case amount < 50:
		increment = 5
	case amount <= 200:
		increment = 25
	default:
		increment = 50
	}
	return (amount + increment/2) / increment * increment
}

// PreFlopStrategy decides preflop actions from static hand rankings,
// persona range cutoffs, and context adjustments. One instance serves a
// whole table; it looks up each seat's profile by index.
type PreFlopStrategy struct {
	Profiles map[int]*Profile
	rng      *rand.Rand
}

// NewPreFlopStrategy builds a strategy over the table's bot profiles
func NewPreFlopStrategy(profiles map[int]*Profile, rng *rand.Rand) *PreFlopStrategy {
	return &PreFlopStrategy{Profiles: profiles, rng: rng}
}

// Decide picks a preflop action for the seat. The returned action still
// goes through Sanitize before it reaches the engine.
func (ps *PreFlopStrategy) Decide(player *game.Player, profile *Profile, state *game.GameState, ctx GameContext) game.Action {
	hand := player.HoleCards.Notation()
	scenario := ps.classifyScenario(state)

	effectiveBBs := float64(player.Chips+player.Bet) / float64(state.BigBlind)

	var baseCutoff int
	switch scenario {
	case Open:
		baseCutoff = profile.Archetype.OpenCutoff(player.Position)
	case FacingRaise:
		baseCutoff = profile.Archetype.FacingRaiseCutoff(player.Position)
	case Facing3Bet:
		baseCutoff = profile.Archetype.Facing3BetCutoff()
	}
	cutoff := clampCutoff(baseCutoff + ps.rangeAdjustment(player, profile, state, ctx, scenario))

	// Two-handed pots use the heads-up equity ordering, where offsuit
	// aces and kings rank far above their multiway positions.
	inRangeFn := InRange
	if state.PlayerCount() == 2 {
		inRangeFn = InRangeHeadsUp
	}

	// Push/fold at ten big blinds and under
	if effectiveBBs <= 10 {
		if inRangeFn(hand, cutoff) || ps.rng.Float64() < profile.RangeFuzzProb {
			return game.NewAllIn(player.Chips)
		}
		return game.NewFold()
	}

	// Range fuzz: occasionally play outside the range or fold inside it
	inRange := inRangeFn(hand, cutoff)
	if inRange {
		inRange = ps.rng.Float64() >= profile.RangeFuzzProb
	} else {
		inRange = ps.rng.Float64() < profile.RangeFuzzProb
	}
	if !inRange {
		return game.NewFold()
	}

	// At 10-20 big blinds a 3-bet has no fold equity left behind it, so
	// it becomes a shove.
	if effectiveBBs <= 20 && scenario == FacingRaise {
		if ps.rng.Float64() < profile.ThreeBetProb {
			return game.NewAllIn(player.Chips)
		}
		return ps.callOrAllIn(player, state)
	}

	switch scenario {
	case FacingRaise:
		if ps.rng.Float64() < profile.ThreeBetProb {
			size := ps.reRaiseSize(state, profile.ThreeBetSizeMin, profile.ThreeBetSizeMax)
			return ps.raiseOrAllIn(player, size)
		}
		return ps.callOrAllIn(player, state)

	case Facing3Bet:
		if ps.rng.Float64() < profile.FourBetProb {
			size := ps.reRaiseSize(state, profile.FourBetSizeMin, profile.FourBetSizeMax)
			return ps.raiseOrAllIn(player, size)
		}
		return ps.callOrAllIn(player, state)

	default:
		if ps.rng.Float64() < profile.OpenRaiseProb {
			size := ps.openRaiseSize(player, profile, state, effectiveBBs)
			return ps.raiseOrAllIn(player, size)
		}
		return ps.callOrAllIn(player, state)
	}
}

func (ps *PreFlopStrategy) classifyScenario(state *game.GameState) Scenario {
	raises := 0
	for _, rec := range state.History {
		if rec.Phase == game.PreFlop && rec.Action.Type == game.Raise {
			raises++
		}
	}
	switch {
	case raises >= 2:
		return Facing3Bet
	case raises == 1:
		return FacingRaise
	default:
		return Open
	}
}

// rangeAdjustment sums the cutoff deltas. The four raiser-derived
// deltas apply only when defending; the context delta applies in every
// scenario, so personas always read table conditions even when opening.
func (ps *PreFlopStrategy) rangeAdjustment(player *game.Player, profile *Profile, state *game.GameState, ctx GameContext, scenario Scenario) int {
	adj := profile.Archetype.ContextAdjustment(ctx)
	if scenario == Open {
		return adj
	}
	adj += ps.raiserArchetypeAdjustment(state)
	adj += ps.raiserPositionAdjustment(state)
	adj += ps.raiseSizingAdjustment(state)
	adj += ps.relativePositionAdjustment(player, state)
	return adj
}

func (ps *PreFlopStrategy) raiserArchetypeAdjustment(state *game.GameState) int {
	raiser := ps.findLastRaiser(state)
	if raiser == nil {
		return 0
	}
	profile, ok := ps.Profiles[raiser.Index]
	if !ok {
		return 0
	}
	return profile.Archetype.RaiserAdjustment()
}

func (ps *PreFlopStrategy) raiserPositionAdjustment(state *game.GameState) int {
	raiser := ps.findLastRaiser(state)
	if raiser == nil {
		return 0
	}
	switch raiser.Position {
	case game.UTG, game.UTG1:
		return -3
	case game.LJ:
		return -2
	case game.MP:
		return -1
	case game.BTN:
		return 2
	case game.SB:
		return 3
	default:
		return 0
	}
}

func (ps *PreFlopStrategy) raiseSizingAdjustment(state *game.GameState) int {
	var lastRaise *game.ActionRecord
	for i := len(state.History) - 1; i >= 0; i-- {
		rec := &state.History[i]
		if rec.Phase == game.PreFlop && rec.Action.Type == game.Raise {
			lastRaise = rec
			break
		}
	}
	if lastRaise == nil {
		return 0
	}
	raiseInBBs := float64(lastRaise.Action.Amount) / float64(state.BigBlind)
	switch {
	case raiseInBBs <= 2.0:
		return 2
	case raiseInBBs <= 2.5:
		return 1
	case raiseInBBs <= 3.5:
		return 0
	case raiseInBBs <= 5.0:
		return -1
	case raiseInBBs <= 7.0:
		return -2
	default:
		return -3
	}
}

// relativePositionAdjustment widens the defender acting after the
// raiser and slightly tightens one acting before.
func (ps *PreFlopStrategy) relativePositionAdjustment(player *game.Player, state *game.GameState) int {
	raiser := ps.findLastRaiser(state)
	if raiser == nil {
		return 0
	}
	switch {
	case player.Position > raiser.Position:
		return 2
	case player.Position < raiser.Position:
		return -1
	default:
		return 0
	}
}

func (ps *PreFlopStrategy) findLastRaiser(state *game.GameState) *game.Player {
	for i := len(state.History) - 1; i >= 0; i-- {
		rec := state.History[i]
		if rec.Phase == game.PreFlop && rec.Action.Type == game.Raise {
			return state.Players[rec.PlayerIndex]
		}
	}
	return nil
}

func (ps *PreFlopStrategy) callOrAllIn(player *game.Player, state *game.GameState) game.Action {
	callAmount := state.CurrentBetLevel - player.Bet
	if callAmount >= player.Chips {
		return game.NewAllIn(player.Chips)
	}
	return game.NewCall(callAmount)
}

func (ps *PreFlopStrategy) raiseOrAllIn(player *game.Player, target int) game.Action {
	if target >= player.Chips+player.Bet {
		return game.NewAllIn(player.Chips)
	}
	return game.NewRaise(target)
}

func (ps *PreFlopStrategy) openRaiseSize(player *game.Player, profile *Profile, state *game.GameState, effectiveBBs float64) int {
	multiplier := randBetween(ps.rng, profile.OpenRaiseSizeMin, profile.OpenRaiseSizeMax)
	posAdj := positionSizeAdjustment(player.Position)
	shortStackAdj := 1.0
	if effectiveBBs <= 20 {
		shortStackAdj = randBetween(ps.rng, 2.0, 2.3) / multiplier
	}
	return RoundBet(int(float64(state.BigBlind) * multiplier * posAdj * shortStackAdj))
}

func (ps *PreFlopStrategy) reRaiseSize(state *game.GameState, min, max float64) int {
	multiplier := randBetween(ps.rng, min, max)
	return RoundBet(int(float64(state.CurrentBetLevel) * multiplier))
}

// positionSizeAdjustment scales open sizing up from early position and
// down on the button.
func positionSizeAdjustment(pos game.Position) float64 {
	switch pos {
	case game.UTG, game.UTG1:
		return 1.10
	case game.LJ:
		return 1.08
	case game.MP:
		return 1.05
	case game.HJ:
		return 1.02
	case game.BTN:
		return 0.95
	case game.SB:
		return 1.05
	default:
		return 1.00
	}
}
