package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-ai/internal/randutil"
)

// newTestGame builds a table with the given stacks, blinds 5/10, and a
// fixed dealer at seat 0.
func newTestGame(t *testing.T, chips ...int) *GameState {
	t.Helper()
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = &Player{Index: i, Name: string(rune('A' + i)), Chips: c}
	}
	s := NewGame(players, 5, 10, randutil.New(1))
	s.DealerIndex = 0
	return s
}

// act submits an action the way a driver would: set the actor, apply.
func act(s *GameState, playerIndex int, action Action) {
	s.CurrentPlayerIndex = playerIndex
	s.ApplyAction(playerIndex, action)
}

func TestStartNewHandBlindsAndFirstToAct(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	assert.Equal(t, 1, s.HandNumber)
	assert.Equal(t, PreFlop, s.Phase)
	assert.Equal(t, 5, s.Players[1].Bet, "seat 1 posts small blind")
	assert.Equal(t, 10, s.Players[2].Bet, "seat 2 posts big blind")
	assert.Equal(t, 15, s.Pot)
	assert.Equal(t, 10, s.CurrentBetLevel)
	assert.Equal(t, 10, s.MinRaise)
	assert.Equal(t, -1, s.LastRaiserIndex)
	assert.Equal(t, 3, s.CurrentPlayerIndex, "UTG acts first")

	for _, p := range s.Players {
		require.NotNil(t, p.HoleCards, "seat %d dealt in", p.Index)
	}
}

func TestStartNewHandAssignsPositions(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	assert.Equal(t, BTN, s.Players[0].Position)
	assert.Equal(t, SB, s.Players[1].Position)
	assert.Equal(t, BB, s.Players[2].Position)
	assert.Equal(t, UTG, s.Players[3].Position)
}

// TestSixMaxPreflopScenario walks a full 6-max betting round step by
// step: call, folds, button raise, blind defense.
func TestSixMaxPreflopScenario(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	startingTotal := s.TotalChips()

	// UTG calls 10
	require.Equal(t, 3, s.CurrentPlayerIndex)
	assert.Equal(t, 10, s.CallAmount(3))
	act(s, 3, NewCall(10))
	assert.Equal(t, 25, s.Pot)

	// seats 4 and 5 fold
	require.Equal(t, 4, s.NextToAct())
	act(s, 4, NewFold())
	require.Equal(t, 5, s.NextToAct())
	act(s, 5, NewFold())

	// button raises to 30
	require.Equal(t, 0, s.NextToAct())
	act(s, 0, NewRaise(30))
	assert.Equal(t, 30, s.CurrentBetLevel)
	assert.Equal(t, 20, s.MinRaise)
	assert.Equal(t, 0, s.LastRaiserIndex)
	assert.Equal(t, 55, s.Pot)
	assert.Equal(t, 50, s.MinRaiseTotal())

	// SB folds, BB calls 20 more
	require.Equal(t, 1, s.NextToAct())
	act(s, 1, NewFold())
	require.Equal(t, 2, s.NextToAct())
	assert.Equal(t, 20, s.CallAmount(2))
	act(s, 2, NewCall(20))
	assert.Equal(t, 75, s.Pot)

	// UTG still owes 20
	require.Equal(t, 3, s.NextToAct())
	act(s, 3, NewCall(20))
	assert.Equal(t, 95, s.Pot)

	// Action returns to the raiser: round over
	assert.Equal(t, -1, s.NextToAct())

	assert.Equal(t, startingTotal, s.TotalChips(), "chips must be conserved")
}

// TestBigBlindOption is the crux case: everyone limped, bets match, but
// the BB has not yet acted and must get the option.
func TestBigBlindOption(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 3, NewCall(10))
	act(s, 4, NewCall(10))
	act(s, 5, NewCall(10))
	act(s, 0, NewCall(10))
	act(s, 1, NewCall(5)) // SB completes

	// Everyone has matched 10, but the BB has not acted yet
	next := s.NextToAct()
	require.Equal(t, 2, next, "BB must get the option")

	act(s, 2, NewCheck())
	assert.Equal(t, -1, s.NextToAct(), "round closes after the BB option")
}

func TestBigBlindRaiseReopensAction(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 3, NewCall(10))
	act(s, 4, NewFold())
	act(s, 5, NewFold())
	act(s, 0, NewFold())
	act(s, 1, NewCall(5))

	require.Equal(t, 2, s.NextToAct())
	act(s, 2, NewRaise(40))

	// SB and the limper must respond to the raise
	require.Equal(t, 3, s.NextToAct())
	act(s, 3, NewCall(30))
	require.Equal(t, 1, s.NextToAct())
	act(s, 1, NewFold())
	assert.Equal(t, -1, s.NextToAct(), "back to the raiser ends the round")
}

func TestHeadsUpPreflopOrder(t *testing.T) {
	s := newTestGame(t, 500, 500)
	require.NoError(t, s.StartNewHand())

	// Heads-up: offset order from the dealer decides the blinds, and
	// the small blind acts first pre-flop.
	assert.Equal(t, 5, s.Players[1].Bet)
	assert.Equal(t, 10, s.Players[0].Bet)
	assert.Equal(t, 1, s.CurrentPlayerIndex)

	act(s, 1, NewCall(5))
	require.Equal(t, 0, s.NextToAct(), "BB gets the option heads-up")
	act(s, 0, NewCheck())
	assert.Equal(t, -1, s.NextToAct())
}

func TestShortStackPostsPartialBlind(t *testing.T) {
	s := newTestGame(t, 1000, 3, 1000)
	require.NoError(t, s.StartNewHand())

	sb := s.Players[1]
	assert.Equal(t, 3, sb.Bet)
	assert.Equal(t, 0, sb.Chips)
	assert.True(t, sb.AllIn)
	assert.Equal(t, 10, s.CurrentBetLevel)
	assert.Equal(t, 10, s.MinRaise, "min raise stays at the configured big blind")
}

func TestCallAmountIsRecomputed(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	// A stale amount from the caller must not corrupt the pot: the
	// effective call is derived from the bet level.
	act(s, 3, NewCall(9999))
	assert.Equal(t, 25, s.Pot)
	assert.Equal(t, 990, s.Players[3].Chips)
	require.NotNil(t, s.Players[3].LastAction)
	assert.Equal(t, 10, s.Players[3].LastAction.Amount)
}

func TestAllInAboveLevelRaises(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 25, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 3, NewRaise(20))
	act(s, 4, NewAllIn(25))
	assert.Equal(t, 25, s.CurrentBetLevel, "all-in above the level raises it")
	assert.Equal(t, 4, s.LastRaiserIndex)
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 15, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 3, NewRaise(30))
	act(s, 4, NewAllIn(15))
	assert.Equal(t, 30, s.CurrentBetLevel)
	assert.Equal(t, 3, s.LastRaiserIndex, "short all-in must not reopen betting")
}

func TestFoldOutEndsHand(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 3, NewFold())
	act(s, 4, NewFold())
	act(s, 5, NewFold())
	act(s, 0, NewFold())
	act(s, 1, NewFold())

	assert.True(t, s.IsHandComplete())
	assert.Equal(t, -1, s.NextToAct())

	results, err := s.EvaluateShowdown()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].PlayerIndex, "BB wins uncontested")
	assert.Equal(t, 15, results[0].Amount)
	assert.Empty(t, results[0].HandDesc, "no evaluation when everyone folded")
	assert.Equal(t, HandComplete, s.Phase)
}

func TestDealCommunityStreets(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 0, NewCall(10))
	act(s, 1, NewCall(5))
	act(s, 2, NewCheck())
	require.Equal(t, -1, s.NextToAct())

	require.NoError(t, s.DealCommunity())
	assert.Equal(t, Flop, s.Phase)
	assert.Len(t, s.Community, 3)
	assert.Equal(t, 0, s.CurrentBetLevel)
	assert.Equal(t, 10, s.MinRaise)
	assert.Equal(t, -1, s.LastRaiserIndex)
	assert.Equal(t, 1, s.CurrentPlayerIndex, "SB first to act postflop")
	for _, p := range s.Players {
		assert.Zero(t, p.Bet)
		assert.Nil(t, p.LastAction)
	}

	require.NoError(t, s.DealCommunity())
	assert.Equal(t, Turn, s.Phase)
	assert.Len(t, s.Community, 4)

	require.NoError(t, s.DealCommunity())
	assert.Equal(t, River, s.Phase)
	assert.Len(t, s.Community, 5)

	// River onwards is a no-op for dealing
	require.NoError(t, s.DealCommunity())
	assert.Len(t, s.Community, 5)
}

func TestDealCommunityBurnsCards(t *testing.T) {
	s := newTestGame(t, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	// 2 players x 2 hole cards = 4 dealt
	require.Equal(t, 48, s.Deck.Remaining())
	require.NoError(t, s.DealCommunity())
	assert.Equal(t, 44, s.Deck.Remaining(), "burn + three flop cards")
	require.NoError(t, s.DealCommunity())
	assert.Equal(t, 42, s.Deck.Remaining(), "burn + turn")
	require.NoError(t, s.DealCommunity())
	assert.Equal(t, 40, s.Deck.Remaining(), "burn + river")
}

func TestAllInRunout(t *testing.T) {
	s := newTestGame(t, 100, 100, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 0, NewAllIn(100))
	assert.False(t, s.AllInRunout(), "two players can still act")

	act(s, 1, NewAllIn(95))
	assert.True(t, s.AllInRunout(), "one live stack left against all-ins")

	act(s, 2, NewCall(90))
	assert.True(t, s.AllInRunout())
	assert.Equal(t, -1, s.NextToAct())
}

func TestTurnOrderTerminates(t *testing.T) {
	// Any sequence of matching actions must drive NextToAct to -1
	// within a bounded number of turns.
	s := newTestGame(t, 200, 200, 200, 200)
	require.NoError(t, s.StartNewHand())

	for i := 0; i < 50; i++ {
		next := s.NextToAct()
		if next == -1 {
			return
		}
		s.CurrentPlayerIndex = next
		if s.CallAmount(next) > 0 {
			s.ApplyAction(next, NewCall(s.CallAmount(next)))
		} else {
			s.ApplyAction(next, NewCheck())
		}
	}
	t.Fatal("betting round did not terminate")
}

func TestShowdownAwardsBestHand(t *testing.T) {
	s := newTestGame(t, 500, 500)
	require.NoError(t, s.StartNewHand())

	act(s, 1, NewCall(5))
	act(s, 0, NewCheck())
	require.NoError(t, s.DealCommunity())
	for s.Phase != River {
		require.NoError(t, s.DealCommunity())
	}

	total := s.TotalChips()
	results, err := s.EvaluateShowdown()
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, HandComplete, s.Phase)
	assert.Zero(t, s.Pot)

	awarded := 0
	for _, r := range results {
		awarded += r.Amount
	}
	assert.Equal(t, 20, awarded, "both blinds contested the pot")
	assert.Equal(t, total, s.TotalChips())
}

func TestShowdownOrderLastAggressorFirst(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 3, NewCall(10))
	act(s, 4, NewFold())
	act(s, 5, NewFold())
	act(s, 0, NewCall(10))
	act(s, 1, NewFold())
	act(s, 2, NewCheck())
	require.NoError(t, s.DealCommunity())

	// Seat 0 bets the flop, everyone calls: seat 0 shows first
	act(s, 2, NewCheck())
	act(s, 3, NewCheck())
	act(s, 0, NewRaise(40))
	act(s, 2, NewCall(40))
	act(s, 3, NewCall(40))

	order := s.ShowdownOrder()
	require.Len(t, order, 3)
	assert.Equal(t, 0, order[0], "last aggressor shows first")
	assert.Equal(t, []int{0, 2, 3}, order, "then clockwise")
}

func TestShowdownOrderNoAggression(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	act(s, 0, NewCall(10))
	act(s, 1, NewCall(5))
	act(s, 2, NewCheck())
	require.NoError(t, s.DealCommunity())

	act(s, 1, NewCheck())
	act(s, 2, NewCheck())
	act(s, 0, NewCheck())

	order := s.ShowdownOrder()
	require.Len(t, order, 3)
	assert.Equal(t, 1, order[0], "first by position shows when nobody bet")
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestAdvanceDealerSkipsSittingOut(t *testing.T) {
	s := newTestGame(t, 1000, 0, 1000, 1000)
	s.Players[1].SittingOut = true

	s.AdvanceDealer()
	assert.Equal(t, 2, s.DealerIndex, "busted seat 1 is skipped")

	s.AdvanceDealer()
	assert.Equal(t, 3, s.DealerIndex)

	s.AdvanceDealer()
	assert.Equal(t, 0, s.DealerIndex, "wraps around the table")
}

func TestBustedPlayersSitOutNextHand(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000)
	s.Players[2].Chips = 0
	require.NoError(t, s.StartNewHand())

	assert.True(t, s.Players[2].SittingOut)
	assert.Nil(t, s.Players[2].HoleCards, "sitting out players are not dealt in")
	assert.Equal(t, 2, s.PlayerCount())
}

func TestAntesPosted(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000)
	s.Ante = 10
	require.NoError(t, s.StartNewHand())

	// 3 antes + SB 5 + BB 10
	assert.Equal(t, 45, s.Pot)
	for _, p := range s.Players {
		assert.Equal(t, 10+p.Bet, 1000-p.Chips, "seat %d paid ante plus blind", p.Index)
	}
}

func TestValidActions(t *testing.T) {
	s := newTestGame(t, 1000, 1000, 1000, 1000, 1000, 1000)
	require.NoError(t, s.StartNewHand())

	// UTG faces the big blind
	assert.Equal(t, []ActionType{Fold, Call, Raise, AllIn}, s.ValidActions(3))

	// BB with the bet matched can check
	act(s, 3, NewCall(10))
	act(s, 4, NewFold())
	act(s, 5, NewFold())
	act(s, 0, NewFold())
	act(s, 1, NewCall(5))
	assert.Equal(t, []ActionType{Check, Raise, AllIn}, s.ValidActions(2))

	// A stack that can only flat cannot raise
	s.Players[3].Chips = 0
	s.Players[3].Bet = 0
	s.CurrentBetLevel = 30
	assert.Equal(t, []ActionType{Fold, Call, AllIn}, s.ValidActions(3))
}

func TestChipConservationAcrossFullHand(t *testing.T) {
	s := newTestGame(t, 300, 800, 150, 500)
	require.NoError(t, s.StartNewHand())
	total := s.TotalChips()

	for street := 0; street < 4; street++ {
		for i := 0; i < 20; i++ {
			next := s.NextToAct()
			if next == -1 {
				break
			}
			s.CurrentPlayerIndex = next
			owed := s.CallAmount(next)
			if owed > 0 {
				s.ApplyAction(next, NewCall(owed))
			} else {
				s.ApplyAction(next, NewCheck())
			}
			assert.Equal(t, total, s.TotalChips())
		}
		if s.Phase == River {
			break
		}
		require.NoError(t, s.DealCommunity())
	}

	_, err := s.EvaluateShowdown()
	require.NoError(t, err)
	assert.Equal(t, total, s.TotalChips(), "showdown must redistribute exactly")
}
