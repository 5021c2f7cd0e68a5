package game

import "github.com/lox/holdem-ai/internal/deck"

// Player is one seat at the table. The seat index is stable for the
// lifetime of the table; chips carry across hands while the per-hand
// fields are reset by StartNewHand.
type Player struct {
	Index      int
	Name       string
	Human      bool
	Chips      int
	HoleCards  *deck.HoleCards
	Bet        int // chips committed this street
	TotalBet   int // chips committed this hand, drives side-pot math
	Folded     bool
	AllIn      bool
	SittingOut bool
	LastAction *Action
	Position   Position
}

// IsActive returns true if the player can still voluntarily act
func (p *Player) IsActive() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut && p.Chips > 0
}

// ResetForNewHand clears all per-hand state. Players left without chips
// are marked sitting out.
func (p *Player) ResetForNewHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.LastAction = nil
	if p.Chips <= 0 {
		p.SittingOut = true
	}
}

// ResetForNewStreet clears the per-street fields
func (p *Player) ResetForNewStreet() {
	p.Bet = 0
	p.LastAction = nil
}
