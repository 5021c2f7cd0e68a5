package game

import "fmt"

// Position is a named table position relative to the dealer button
type Position int

const (
	SB Position = iota
	BB
	UTG
	UTG1
	LJ
	MP
	HJ
	CO
	BTN
)

// String returns the position label
func (p Position) String() string {
	switch p {
	case SB:
		return "SB"
	case BB:
		return "BB"
	case UTG:
		return "UTG"
	case UTG1:
		return "UTG+1"
	case LJ:
		return "LJ"
	case MP:
		return "MP"
	case HJ:
		return "HJ"
	case CO:
		return "CO"
	case BTN:
		return "BTN"
	default:
		return "?"
	}
}

// positionLayouts maps table size to the canonical ordered position list,
// starting at the small blind (offset 0 from the dealer).
var positionLayouts = map[int][]Position{
	2: {SB, BB},
	3: {SB, BB, BTN},
	4: {SB, BB, UTG, BTN},
	5: {SB, BB, UTG, CO, BTN},
	6: {SB, BB, UTG, MP, CO, BTN},
	7: {SB, BB, UTG, MP, HJ, CO, BTN},
	8: {SB, BB, UTG, UTG1, MP, HJ, CO, BTN},
	9: {SB, BB, UTG, UTG1, LJ, MP, HJ, CO, BTN},
}

// PositionForSeat maps a seat to its table position given the dealer seat
// and the number of players in the hand. Table sizes outside 2-9 are a
// configuration error.
func PositionForSeat(seatIndex, dealerIndex, totalPlayers int) (Position, error) {
	layout, ok := positionLayouts[totalPlayers]
	if !ok {
		return 0, fmt.Errorf("unsupported table size: %d", totalPlayers)
	}
	offset := ((seatIndex-dealerIndex-1)%totalPlayers + totalPlayers) % totalPlayers
	return layout[offset], nil
}
