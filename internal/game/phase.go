package game

// Phase is the lifecycle state of a hand
type Phase int

const (
	Waiting Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	HandComplete
)

// String returns the wire name for the phase
func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case PreFlop:
		return "pre_flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case HandComplete:
		return "hand_complete"
	default:
		return "unknown"
	}
}

// IsBettingStreet returns true for the four betting rounds
func (p Phase) IsBettingStreet() bool {
	return p >= PreFlop && p <= River
}
