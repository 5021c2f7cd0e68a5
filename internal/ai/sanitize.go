package ai

import "github.com/lox/holdem-ai/internal/game"

// Sanitize coerces any proposed action into a legal one for the seat's
// current situation, so the engine never sees an impossible move no
// matter what a decision source returns. Folds with nothing to call
// become checks, checks facing a bet become calls, call amounts are
// recomputed, and raise targets are clamped between the minimum legal
// raise and twice the pot over the current level, then rounded to a
// clean chip amount.
func Sanitize(action game.Action, player *game.Player, state *game.GameState) game.Action {
	callAmount := state.CurrentBetLevel - player.Bet
	facingBet := callAmount > 0

	switch action.Type {
	case game.Fold:
		if !facingBet {
			return game.NewCheck()
		}
		return action

	case game.Check:
		if facingBet {
			return game.NewCall(min(callAmount, player.Chips))
		}
		return action

	case game.Call:
		amount := min(callAmount, player.Chips)
		if amount <= 0 && !facingBet {
			return game.NewCheck()
		}
		if amount >= player.Chips {
			return game.NewAllIn(player.Chips)
		}
		return game.NewCall(amount)

	case game.Raise:
		target := max(action.Amount, state.MinRaiseTotal())
		target = min(target, 2*state.Pot+state.CurrentBetLevel)
		target = RoundBet(target)
		if target-player.Bet >= player.Chips {
			return game.NewAllIn(player.Chips)
		}
		return game.NewRaise(target)

	case game.AllIn:
		return game.NewAllIn(player.Chips)

	default:
		return game.NewFold()
	}
}
