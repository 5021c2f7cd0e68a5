package game

import "fmt"

// ActionType identifies a betting action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
	AllIn
)

// String returns the wire name for the action type
func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case AllIn:
		return "all_in"
	default:
		return "unknown"
	}
}

// ParseActionType parses a wire action name
func ParseActionType(s string) (ActionType, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "all_in", "allin", "all-in":
		return AllIn, nil
	default:
		return Fold, fmt.Errorf("unknown action type %q", s)
	}
}

// Action is a betting action with its chip amount. For Raise the amount
// is the target total bet, not the increment; for Call and AllIn it is
// the chips being put in.
type Action struct {
	Type   ActionType
	Amount int
}

// NewFold creates a fold action
func NewFold() Action { return Action{Type: Fold} }

// NewCheck creates a check action
func NewCheck() Action { return Action{Type: Check} }

// NewCall creates a call action for the given amount
func NewCall(amount int) Action { return Action{Type: Call, Amount: amount} }

// NewRaise creates a raise action to the given total bet
func NewRaise(total int) Action { return Action{Type: Raise, Amount: total} }

// NewAllIn creates an all-in action for the given amount
func NewAllIn(amount int) Action { return Action{Type: AllIn, Amount: amount} }

// Describe returns a human-readable description of the action
func (a Action) Describe() string {
	switch a.Type {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return fmt.Sprintf("Call $%d", a.Amount)
	case Raise:
		return fmt.Sprintf("Raise to $%d", a.Amount)
	case AllIn:
		return fmt.Sprintf("All-In $%d", a.Amount)
	default:
		return "Unknown"
	}
}

// ActionRecord is an immutable log entry of one applied action. Records
// are append-only within a hand and cleared at hand start.
type ActionRecord struct {
	PlayerIndex int
	PlayerName  string
	Action      Action
	Phase       Phase
}
