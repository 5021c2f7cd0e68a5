package game

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-ai/internal/deck"
)

// SidePot is a pot layer with a restricted set of eligible winners.
// Side pots are ephemeral: recomputed at each showdown from the distinct
// all-in contribution levels.
type SidePot struct {
	Amount   int
	Eligible []int // player indices eligible to win this pot
}

// GameState is the complete live state of one table. It is created once
// per table session and reused across hands; StartNewHand resets the
// per-hand fields. All mutations must be serialized by the caller -
// engine operations are synchronous transitions with no internal
// locking.
type GameState struct {
	Players            []*Player
	Community          []deck.Card
	Pot                int
	SidePots           []SidePot
	Phase              Phase
	DealerIndex        int
	CurrentPlayerIndex int
	LastRaiserIndex    int
	CurrentBetLevel    int
	MinRaise           int
	SmallBlind         int
	BigBlind           int
	Ante               int
	HandNumber         int
	History            []ActionRecord
	Deck               *deck.Deck

	rng *rand.Rand
}

// NewGame creates a table with the given players and stakes. The RNG
// drives deck shuffling and must be provided explicitly so tests can fix
// the seed.
func NewGame(players []*Player, smallBlind, bigBlind int, rng *rand.Rand) *GameState {
	return &GameState{
		Players:            players,
		Community:          make([]deck.Card, 0, 5),
		Phase:              Waiting,
		DealerIndex:        rng.IntN(len(players)),
		CurrentPlayerIndex: -1,
		LastRaiserIndex:    -1,
		SmallBlind:         smallBlind,
		BigBlind:           bigBlind,
		Deck:               deck.New(rng),
		rng:                rng,
	}
}

// PlayersInHand returns players dealt into the current hand (not sitting out)
func (s *GameState) PlayersInHand() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.SittingOut {
			out = append(out, p)
		}
	}
	return out
}

// ActivePlayers returns players still contesting the pot
func (s *GameState) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.Folded && !p.SittingOut {
			out = append(out, p)
		}
	}
	return out
}

// BettingPlayers returns players able to voluntarily put chips in
func (s *GameState) BettingPlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// PlayerCount returns the number of players not sitting out
func (s *GameState) PlayerCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.SittingOut {
			n++
		}
	}
	return n
}

// dealerOffset returns the clockwise distance of a seat from the seat
// after the dealer; the small blind is offset 0.
func (s *GameState) dealerOffset(seatIndex int) int {
	n := len(s.Players)
	return ((seatIndex-s.DealerIndex-1)%n + n) % n
}

// TotalChips returns all chips on the table: stacks plus the pot. Live
// street bets are banked into the pot as actions are applied, so this
// sum is invariant across a hand except for rake.
func (s *GameState) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}
