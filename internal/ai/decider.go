package ai

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-ai/internal/game"
)

// DecisionSource produces postflop actions for bot players. Sources
// are untrusted: whatever they return is sanitized before it reaches
// the engine, so a source that times out or returns garbage degrades to
// a legal fallback rather than corrupting the hand.
type DecisionSource interface {
	Decide(player *game.Player, profile *Profile, state *game.GameState) game.Action
}

// ProfileSource is the built-in postflop decision source: a profile's
// postflop probabilities drive a simple check/call/bet policy with no
// board reading.
type ProfileSource struct {
	rng *rand.Rand
}

// NewProfileSource builds the heuristic postflop source
func NewProfileSource(rng *rand.Rand) *ProfileSource {
	return &ProfileSource{rng: rng}
}

// Decide picks a postflop action from the profile's tendencies. Facing
// a bet: fold at the persona's fold rate or when the price exceeds its
// call ceiling, raise at a fraction of its aggression, otherwise call.
// Unbet pots: check at the persona's check rate, otherwise bet a
// persona-sized fraction of the pot.
func (s *ProfileSource) Decide(player *game.Player, profile *Profile, state *game.GameState) game.Action {
	callAmount := state.CurrentBetLevel - player.Bet

	if callAmount > 0 {
		if s.rng.Float64() < profile.PostFlopFoldProb {
			return game.NewFold()
		}
		price := 1.0
		if state.Pot > 0 {
			price = float64(callAmount) / float64(state.Pot)
		}
		if price > profile.PostFlopCallCeiling {
			return game.NewFold()
		}
		if s.rng.Float64() < (1-profile.PostFlopCheckProb)/4 {
			target := RoundBet(int(float64(state.CurrentBetLevel) * profile.RaiseMultiplier))
			return game.NewRaise(target)
		}
		return game.NewCall(callAmount)
	}

	if s.rng.Float64() < profile.PostFlopCheckProb {
		return game.NewCheck()
	}
	bet := RoundBet(int(float64(state.Pot) * profile.BetSizePotFraction))
	if bet <= 0 {
		return game.NewCheck()
	}
	return game.NewRaise(state.CurrentBetLevel + bet)
}

// Decider is the complete bot decision pipeline for one table: preflop
// range strategy, a postflop source, and sanitization over both.
type Decider struct {
	Strategy *PreFlopStrategy
	Source   DecisionSource
	Context  GameContext
}

// NewDecider wires the table's profiles into a decision pipeline. A nil
// source falls back to the built-in profile heuristic.
func NewDecider(profiles map[int]*Profile, source DecisionSource, rng *rand.Rand) *Decider {
	if source == nil {
		source = NewProfileSource(rng)
	}
	return &Decider{
		Strategy: NewPreFlopStrategy(profiles, rng),
		Source:   source,
		Context:  NeutralContext,
	}
}

// Decide produces a sanitized action for the seat on any street
func (d *Decider) Decide(player *game.Player, state *game.GameState) game.Action {
	profile, ok := d.Strategy.Profiles[player.Index]
	if !ok || player.HoleCards == nil {
		return Sanitize(game.NewFold(), player, state)
	}

	var action game.Action
	if state.Phase == game.PreFlop {
		action = d.Strategy.Decide(player, profile, state, d.Context)
	} else {
		action = d.Source.Decide(player, profile, state)
	}
	return Sanitize(action, player, state)
}
