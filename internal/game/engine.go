package game

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-ai/internal/deck"
	"github.com/lox/holdem-ai/internal/evaluator"
)

// The engine operations in this file drive one hand through its
// lifecycle: WAITING -> PRE_FLOP -> FLOP -> TURN -> RIVER -> SHOWDOWN ->
// HAND_COMPLETE. Action legality is advisory: ApplyAction trusts the
// caller, and drivers must consult ValidActions before submitting. The
// same trust applies to turn order - only the seat in CurrentPlayerIndex
// may act, enforced by the driver, not here.

// StartNewHand resets per-hand state, shuffles, deals hole cards, posts
// antes and blinds, and sets the first player to act.
func (s *GameState) StartNewHand() error {
	s.HandNumber++

	for _, p := range s.Players {
		p.ResetForNewHand()
	}

	s.Community = s.Community[:0]
	s.Pot = 0
	s.SidePots = nil
	s.CurrentBetLevel = 0
	s.MinRaise = s.BigBlind
	s.LastRaiserIndex = -1
	s.History = s.History[:0]

	s.Deck.Reset()
	s.Deck.Shuffle()

	if err := s.assignPositions(); err != nil {
		return err
	}

	for _, p := range s.PlayersInHand() {
		c1, err := s.Deck.Deal()
		if err != nil {
			return err
		}
		c2, err := s.Deck.Deal()
		if err != nil {
			return err
		}
		hc := deck.NewHoleCards(c1, c2)
		p.HoleCards = &hc
	}

	if s.Ante > 0 {
		s.postAntes()
	}
	s.postBlinds()

	s.Phase = PreFlop
	s.CurrentPlayerIndex = s.firstToActPreFlop()
	return nil
}

func (s *GameState) assignPositions() error {
	inHand := s.PlayersInHand()
	total := len(inHand)
	for _, p := range inHand {
		pos, err := PositionForSeat(p.Index, s.DealerIndex, total)
		if err != nil {
			return fmt.Errorf("assign positions: %w", err)
		}
		p.Position = pos
	}
	return nil
}

func (s *GameState) postAntes() {
	for _, p := range s.PlayersInHand() {
		ante := min(s.Ante, p.Chips)
		p.Chips -= ante
		p.TotalBet += ante
		s.Pot += ante
		if p.Chips == 0 {
			p.AllIn = true
		}
	}
}

// postBlinds posts SB and BB from the first two players after the dealer.
// Short stacks post what they have; the bet level is the BB actually
// posted while the minimum raise stays at the configured big blind.
func (s *GameState) postBlinds() {
	active := s.playersByDealerOffset(s.PlayersInHand())
	if len(active) < 2 {
		return
	}

	sb := active[0]
	sbAmount := min(s.SmallBlind, sb.Chips)
	sb.Chips -= sbAmount
	sb.Bet = sbAmount
	sb.TotalBet += sbAmount
	s.Pot += sbAmount
	if sb.Chips == 0 {
		sb.AllIn = true
	}

	bb := active[1]
	bbAmount := min(s.BigBlind, bb.Chips)
	bb.Chips -= bbAmount
	bb.Bet = bbAmount
	bb.TotalBet += bbAmount
	s.Pot += bbAmount
	if bb.Chips == 0 {
		bb.AllIn = true
	}

	s.CurrentBetLevel = bbAmount
	s.MinRaise = s.BigBlind
}

// playersByDealerOffset sorts players by clockwise distance from the
// dealer, small blind first.
func (s *GameState) playersByDealerOffset(players []*Player) []*Player {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.dealerOffset(sorted[i].Index) < s.dealerOffset(sorted[j].Index)
	})
	return sorted
}

// firstToActPreFlop returns the seat after the big blind, or the small
// blind heads-up.
func (s *GameState) firstToActPreFlop() int {
	active := s.playersByDealerOffset(s.PlayersInHand())
	if len(active) > 2 {
		return active[2].Index
	}
	return active[0].Index
}

// firstToActPostFlop returns the first non-folded player after the
// dealer who can still act, falling back to the first non-folded player
// when everyone remaining is all-in. The driver detects that case via
// AllInRunout before soliciting an action.
func (s *GameState) firstToActPostFlop() int {
	var inHand []*Player
	for _, p := range s.PlayersInHand() {
		if !p.Folded {
			inHand = append(inHand, p)
		}
	}
	ordered := s.playersByDealerOffset(inHand)
	for _, p := range ordered {
		if p.IsActive() {
			return p.Index
		}
	}
	if len(ordered) > 0 {
		return ordered[0].Index
	}
	return -1
}

// ApplyAction applies one action for the given seat. No validity check
// happens here; the recorded call amount is recomputed from the state so
// a stale amount from the caller cannot corrupt the pot.
func (s *GameState) ApplyAction(playerIndex int, action Action) {
	p := s.Players[playerIndex]
	recorded := action

	switch action.Type {
	case Fold:
		p.Folded = true

	case Check:
		// no money movement

	case Call:
		callAmount := min(s.CurrentBetLevel-p.Bet, p.Chips)
		p.Chips -= callAmount
		p.Bet += callAmount
		p.TotalBet += callAmount
		s.Pot += callAmount
		if p.Chips == 0 {
			p.AllIn = true
		}
		recorded = NewCall(callAmount)

	case Raise:
		additional := min(action.Amount-p.Bet, p.Chips)
		p.Chips -= additional
		p.Bet += additional
		p.TotalBet += additional
		s.Pot += additional
		s.MinRaise = max(p.Bet-s.CurrentBetLevel, s.BigBlind)
		s.CurrentBetLevel = p.Bet
		s.LastRaiserIndex = playerIndex
		if p.Chips == 0 {
			p.AllIn = true
		}
		recorded = NewRaise(p.Bet)

	case AllIn:
		allInAmount := p.Chips
		p.Chips = 0
		p.Bet += allInAmount
		p.TotalBet += allInAmount
		s.Pot += allInAmount
		p.AllIn = true
		// A short all-in below the current bet level is a call and does
		// not reopen the betting.
		if p.Bet > s.CurrentBetLevel {
			s.MinRaise = max(p.Bet-s.CurrentBetLevel, s.BigBlind)
			s.CurrentBetLevel = p.Bet
			s.LastRaiserIndex = playerIndex
		}
		recorded = NewAllIn(allInAmount)
	}

	p.LastAction = &recorded
	s.History = append(s.History, ActionRecord{
		PlayerIndex: playerIndex,
		PlayerName:  p.Name,
		Action:      recorded,
		Phase:       s.Phase,
	})
}

// NextToAct returns the seat of the next player to act this street, or
// -1 when the betting round is over.
func (s *GameState) NextToAct() int {
	notFolded := 0
	for _, p := range s.PlayersInHand() {
		if !p.Folded {
			notFolded++
		}
	}
	if notFolded <= 1 {
		return -1
	}
	if len(s.BettingPlayers()) == 0 {
		return -1
	}

	total := len(s.Players)
	next := (s.CurrentPlayerIndex + 1) % total
	for i := 0; i < total; i++ {
		p := s.Players[next]
		if p.IsActive() {
			if s.roundComplete(next) {
				return -1
			}
			return next
		}
		next = (next + 1) % total
	}
	return -1
}

// roundComplete decides whether the betting round ends before the
// candidate acts. Two branches, both required: action closes when it
// returns to the last raiser, or, with no outstanding bet to match, when
// every active player's bet equals the level AND the candidate has
// already acted this street. The history check is what gives the big
// blind its pre-flop option - without it the round would close before
// the BB ever acted.
func (s *GameState) roundComplete(candidateIndex int) bool {
	if s.LastRaiserIndex == candidateIndex {
		return true
	}

	for _, p := range s.Players {
		if p.IsActive() && p.Bet != s.CurrentBetLevel {
			return false
		}
	}
	for _, rec := range s.History {
		if rec.Phase == s.Phase && rec.PlayerIndex == candidateIndex {
			return true
		}
	}
	return false
}

// ValidActions returns the actions currently legal for a seat. This is
// advisory: ApplyAction does not re-check.
func (s *GameState) ValidActions(playerIndex int) []ActionType {
	p := s.Players[playerIndex]
	var actions []ActionType

	if s.CurrentBetLevel > p.Bet {
		actions = append(actions, Fold, Call)
		if p.Chips > s.CurrentBetLevel-p.Bet {
			actions = append(actions, Raise)
		}
	} else {
		actions = append(actions, Check)
		if p.Chips > 0 {
			actions = append(actions, Raise)
		}
	}
	return append(actions, AllIn)
}

// CallAmount returns the chips a seat owes to call, capped at its stack
func (s *GameState) CallAmount(playerIndex int) int {
	p := s.Players[playerIndex]
	return min(s.CurrentBetLevel-p.Bet, p.Chips)
}

// MinRaiseTotal returns the minimum legal total bet for a raise
func (s *GameState) MinRaiseTotal() int {
	return s.CurrentBetLevel + s.MinRaise
}

// DealCommunity advances to the next street, burning and dealing the
// community cards and resetting per-street betting state. Outside the
// three dealing transitions it only performs the street reset.
func (s *GameState) DealCommunity() error {
	switch s.Phase {
	case PreFlop:
		if _, err := s.Deck.Deal(); err != nil { // burn
			return err
		}
		flop, err := s.Deck.DealN(3)
		if err != nil {
			return err
		}
		s.Community = append(s.Community, flop...)
		s.Phase = Flop

	case Flop, Turn:
		if _, err := s.Deck.Deal(); err != nil { // burn
			return err
		}
		card, err := s.Deck.Deal()
		if err != nil {
			return err
		}
		s.Community = append(s.Community, card)
		if s.Phase == Flop {
			s.Phase = Turn
		} else {
			s.Phase = River
		}

	default:
	}

	for _, p := range s.Players {
		p.ResetForNewStreet()
	}
	s.CurrentBetLevel = 0
	s.MinRaise = s.BigBlind
	s.LastRaiserIndex = -1
	s.CurrentPlayerIndex = s.firstToActPostFlop()
	return nil
}

// IsHandComplete returns true when at most one player is left contesting
// the pot; the hand short-circuits to completion from any street.
func (s *GameState) IsHandComplete() bool {
	return len(s.ActivePlayers()) <= 1
}

// AllInRunout returns true when the hand must run out to showdown with
// no further betting: two or more players remain but at most one can
// still voluntarily bet.
func (s *GameState) AllInRunout() bool {
	notFolded := s.ActivePlayers()
	canBet := 0
	for _, p := range notFolded {
		if !p.AllIn && p.Chips > 0 {
			canBet++
		}
	}
	return len(notFolded) > 1 && canBet <= 1
}

// Result is one pot award at showdown
type Result struct {
	PlayerIndex int
	Amount      int
	HandDesc    string
}

// EvaluateShowdown resolves the hand: a lone remaining player wins the
// pot outright without showing; otherwise every remaining player's best
// seven-card hand is evaluated and the pot manager distributes each side
// pot. The phase moves to HAND_COMPLETE either way.
func (s *GameState) EvaluateShowdown() ([]Result, error) {
	s.Phase = Showdown

	active := s.ActivePlayers()
	if len(active) == 1 {
		winner := active[0]
		amount := s.Pot
		winner.Chips += amount
		s.Pot = 0
		s.Phase = HandComplete
		return []Result{{PlayerIndex: winner.Index, Amount: amount}}, nil
	}

	evals := make(map[int]evaluator.Evaluation, len(active))
	for _, p := range active {
		if p.HoleCards == nil {
			return nil, fmt.Errorf("showdown: player %d has no hole cards", p.Index)
		}
		all := append(p.HoleCards.Cards(), s.Community...)
		eval, err := evaluator.EvaluateBest(all)
		if err != nil {
			return nil, fmt.Errorf("showdown: evaluate player %d: %w", p.Index, err)
		}
		evals[p.Index] = eval
	}

	results := s.AwardPot(evals)
	s.Phase = HandComplete
	return results, nil
}

// ShowdownOrder returns player indices in reveal order: the last
// aggressor on the final street shows first, or absent any aggression
// the first player to act by position; the rest follow clockwise. The
// engine only produces the order - muck decisions belong to the driver.
func (s *GameState) ShowdownOrder() []int {
	showdown := s.ActivePlayers()
	if len(showdown) <= 1 {
		order := make([]int, 0, len(showdown))
		for _, p := range showdown {
			order = append(order, p.Index)
		}
		return order
	}

	total := len(s.Players)
	inShowdown := func(idx int) bool {
		for _, p := range showdown {
			if p.Index == idx {
				return true
			}
		}
		return false
	}

	firstShower := -1
	for i := len(s.History) - 1; i >= 0; i-- {
		rec := s.History[i]
		if rec.Phase != s.Phase {
			continue
		}
		if rec.Action.Type == Raise || rec.Action.Type == AllIn {
			if inShowdown(rec.PlayerIndex) {
				firstShower = rec.PlayerIndex
			}
			break
		}
	}
	if firstShower == -1 {
		firstShower = s.playersByDealerOffset(showdown)[0].Index
	}

	order := []int{firstShower}
	next := (firstShower + 1) % total
	for len(order) < len(showdown) {
		if inShowdown(next) {
			order = append(order, next)
		}
		next = (next + 1) % total
	}
	return order
}

// AdvanceDealer moves the button to the next seat that is not sitting out
func (s *GameState) AdvanceDealer() {
	total := len(s.Players)
	next := (s.DealerIndex + 1) % total
	for s.Players[next].SittingOut {
		next = (next + 1) % total
	}
	s.DealerIndex = next
}
