package ai

import "fmt"

// Difficulty tiers a table's bot lineup and sharpens or blunts
// individual personas.
type Difficulty int

const (
	DifficultyLow Difficulty = iota
	DifficultyMedium
	DifficultyHigh
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyLow:
		return "low"
	case DifficultyMedium:
		return "medium"
	case DifficultyHigh:
		return "high"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty maps a wire string to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "low":
		return DifficultyLow, nil
	case "medium":
		return DifficultyMedium, nil
	case "high":
		return DifficultyHigh, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// TournamentStage coarsely describes how deep a tournament has run.
// StageNone marks cash games.
type TournamentStage int

const (
	StageNone TournamentStage = iota
	StageEarly
	StageMiddle
	StageBubble
	StageFinalTable
	StageHeadsUp
)

func (s TournamentStage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageEarly:
		return "early"
	case StageMiddle:
		return "middle"
	case StageBubble:
		return "bubble"
	case StageFinalTable:
		return "final_table"
	case StageHeadsUp:
		return "heads_up"
	default:
		return fmt.Sprintf("TournamentStage(%d)", int(s))
	}
}

// DeriveStage classifies tournament progress from the field size. Two
// players is always heads-up and a field at or under one table is the
// final table; otherwise the stage follows the fraction of the field
// remaining.
func DeriveStage(remaining, total, tableSize int) (TournamentStage, error) {
	if remaining <= 0 {
		return StageNone, fmt.Errorf("remaining players must be positive, got %d", remaining)
	}
	if remaining > total {
		return StageNone, fmt.Errorf("remaining players %d exceeds total %d", remaining, total)
	}

	if remaining == 2 {
		return StageHeadsUp, nil
	}
	if remaining <= tableSize {
		return StageFinalTable, nil
	}

	pct := float64(remaining) / float64(total)
	switch {
	case pct > 0.60:
		return StageEarly, nil
	case pct > 0.30:
		return StageMiddle, nil
	case pct > 0.15:
		return StageBubble, nil
	default:
		return StageFinalTable, nil
	}
}

// GameContext carries the table conditions a persona folds into its
// range decisions. It is supplied by the session driver, never derived
// here.
type GameContext struct {
	IsTournament bool
	Difficulty   Difficulty
	AntesActive  bool
	RakeEnabled  bool
	Stage        TournamentStage
}

// NeutralContext is the context used when no table conditions apply
var NeutralContext = GameContext{Difficulty: DifficultyMedium}
