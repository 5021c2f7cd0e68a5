package ai

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-ai/internal/game"
)

// Archetype is a closed set of strategy personas. Each carries constant
// tables: per-position range cutoffs, a context adjustment rule, and
// the bounds profiles are drawn from. Dispatch is by switch, never by
// embedding.
type Archetype int

const (
	TAG Archetype = iota
	LAG
	CallingStation
	Nit
	Shark
)

// Archetypes lists every persona in selection order
var Archetypes = []Archetype{TAG, LAG, CallingStation, Nit, Shark}

func (a Archetype) String() string {
	switch a {
	case TAG:
		return "tag"
	case LAG:
		return "lag"
	case CallingStation:
		return "calling_station"
	case Nit:
		return "nit"
	case Shark:
		return "shark"
	default:
		return fmt.Sprintf("Archetype(%d)", int(a))
	}
}

// DisplayName returns the persona's table-facing label
func (a Archetype) DisplayName() string {
	switch a {
	case TAG:
		return "Tight-Aggressive"
	case LAG:
		return "Loose-Aggressive"
	case CallingStation:
		return "Calling Station"
	case Nit:
		return "Nit"
	case Shark:
		return "Shark"
	default:
		return "Unknown"
	}
}

// Weight is the persona's base selection weight when no difficulty is set
func (a Archetype) Weight() int {
	switch a {
	case TAG:
		return 20
	case LAG:
		return 15
	case CallingStation:
		return 35
	case Nit:
		return 20
	case Shark:
		return 10
	default:
		return 0
	}
}

// BotNames returns the persona's pool of table names
func (a Archetype) BotNames() []string {
	switch a {
	case TAG:
		return []string{"Aiden", "Marcus", "Victor", "Elena"}
	case LAG:
		return []string{"Luna", "Blaze", "Ricky", "Dash"}
	case CallingStation:
		return []string{"Bobby", "Earl", "Doris", "Gus"}
	case Nit:
		return []string{"Gerald", "Edna", "Herb", "Mildred"}
	case Shark:
		return []string{"Sophia", "Alex", "Ivy", "Nolan"}
	default:
		return nil
	}
}

// OpenCutoff returns the persona's unopened-pot range size by position
func (a Archetype) OpenCutoff(pos game.Position) int {
	switch a {
	case TAG:
		switch pos {
		case game.UTG, game.UTG1:
			return 13
		case game.LJ, game.MP:
			return 20
		case game.HJ, game.CO:
			return 30
		case game.BTN:
			return 42
		case game.SB:
			return 29
		default:
			return 15
		}
	case LAG:
		switch pos {
		case game.UTG, game.UTG1:
			return 22
		case game.LJ, game.MP:
			return 33
		case game.HJ, game.CO:
			return 49
		case game.BTN:
			return 63
		case game.SB:
			return 48
		default:
			return 21
		}
	case CallingStation:
		switch pos {
		case game.UTG, game.UTG1:
			return 44
		case game.LJ, game.MP, game.HJ, game.CO:
			return 63
		case game.BTN, game.SB:
			return 79
		default:
			return 60
		}
	case Nit:
		switch pos {
		case game.UTG, game.UTG1:
			return 7
		case game.LJ, game.MP:
			return 11
		case game.HJ, game.CO:
			return 15
		case game.BTN:
			return 19
		case game.SB:
			return 15
		default:
			return 7
		}
	case Shark:
		switch pos {
		case game.UTG, game.UTG1:
			return 14
		case game.LJ, game.MP:
			return 22
		case game.HJ, game.CO:
			return 36
		case game.BTN:
			return 53
		case game.SB:
			return 34
		default:
			return 19
		}
	default:
		return 0
	}
}

// FacingRaiseCutoff returns the persona's continue range against one raise
func (a Archetype) FacingRaiseCutoff(pos game.Position) int {
	switch a {
	case TAG:
		return 12
	case LAG:
		return 25
	case CallingStation:
		return 51
	case Nit:
		return 7
	case Shark:
		return 21
	default:
		return 0
	}
}

// Facing3BetCutoff returns the persona's continue range against a 3-bet
func (a Archetype) Facing3BetCutoff() int {
	switch a {
	case TAG:
		return 8
	case LAG:
		return 14
	case CallingStation:
		return 21
	case Nit:
		return 5
	case Shark:
		return 10
	default:
		return 0
	}
}

// RaiserAdjustment shifts a defender's range by the raiser's persona:
// tight raisers narrow it, loose raisers widen it.
func (a Archetype) RaiserAdjustment() int {
	switch a {
	case Nit:
		return -4
	case TAG:
		return -2
	case Shark:
		return 0
	case LAG:
		return 3
	case CallingStation:
		return 4
	default:
		return 0
	}
}

// ContextAdjustment folds table conditions into the persona's range as
// an integer cutoff delta.
func (a Archetype) ContextAdjustment(ctx GameContext) int {
	adj := 0
	switch a {
	case TAG:
		if ctx.AntesActive {
			adj += 2
		}
		if ctx.RakeEnabled {
			adj--
		}
		switch ctx.Stage {
		case StageMiddle:
			adj--
		case StageBubble:
			adj -= 2
		case StageFinalTable:
			adj--
		case StageHeadsUp:
			adj += 2
		}

	case LAG:
		if ctx.AntesActive {
			adj += 2
		}
		switch ctx.Stage {
		case StageBubble:
			adj--
		case StageFinalTable:
			adj++
		case StageHeadsUp:
			adj += 4
		}
		switch ctx.Difficulty {
		case DifficultyLow:
			adj += 2
		case DifficultyHigh:
			adj--
		}

	case CallingStation:
		if ctx.Stage == StageHeadsUp {
			adj += 2
		}
		switch ctx.Difficulty {
		case DifficultyLow:
			adj += 2
		case DifficultyHigh:
			adj--
		}

	case Nit:
		if ctx.RakeEnabled {
			adj--
		}
		switch ctx.Stage {
		case StageMiddle:
			adj -= 2
		case StageBubble:
			adj -= 3
		case StageFinalTable:
			adj -= 2
		case StageHeadsUp:
			adj++
		}
		switch ctx.Difficulty {
		case DifficultyLow:
			adj--
		case DifficultyHigh:
			adj++
		}

	case Shark:
		if ctx.AntesActive {
			adj += 3
		}
		if ctx.RakeEnabled {
			adj--
		}
		switch ctx.Stage {
		case StageMiddle:
			adj--
		case StageBubble:
			adj += 2
		case StageHeadsUp:
			adj += 3
		}
	}
	return adj
}

// NewProfile draws a concrete personality from the persona's bounds
func (a Archetype) NewProfile(rng *rand.Rand) *Profile {
	p := &Profile{Archetype: a}
	switch a {
	case TAG:
		p.OpenRaiseProb = randBetween(rng, 0.80, 0.90)
		p.ThreeBetProb = randBetween(rng, 0.25, 0.35)
		p.FourBetProb = randBetween(rng, 0.15, 0.25)
		p.RangeFuzzProb = randBetween(rng, 0.02, 0.05)
		p.OpenRaiseSizeMin = randBetween(rng, 2.3, 2.7)
		p.OpenRaiseSizeMax = randBetween(rng, 2.8, 3.2)
		p.ThreeBetSizeMin = randBetween(rng, 2.6, 3.0)
		p.ThreeBetSizeMax = randBetween(rng, 3.0, 3.4)
		p.FourBetSizeMin = 2.2
		p.FourBetSizeMax = 2.5
		p.PostFlopFoldProb = randBetween(rng, 0.20, 0.30)
		p.PostFlopCallCeiling = randBetween(rng, 0.50, 0.60)
		p.PostFlopCheckProb = randBetween(rng, 0.35, 0.45)
		p.BetSizePotFraction = randBetween(rng, 0.55, 0.75)
		p.RaiseMultiplier = randBetween(rng, 2.5, 3.5)

	case LAG:
		p.OpenRaiseProb = randBetween(rng, 0.85, 0.95)
		p.ThreeBetProb = randBetween(rng, 0.40, 0.50)
		p.FourBetProb = randBetween(rng, 0.30, 0.40)
		p.RangeFuzzProb = randBetween(rng, 0.06, 0.10)
		p.OpenRaiseSizeMin = randBetween(rng, 2.3, 2.7)
		p.OpenRaiseSizeMax = randBetween(rng, 3.0, 3.8)
		p.ThreeBetSizeMin = randBetween(rng, 2.8, 3.2)
		p.ThreeBetSizeMax = randBetween(rng, 3.2, 3.8)
		p.FourBetSizeMin = 2.3
		p.FourBetSizeMax = 2.7
		p.PostFlopFoldProb = randBetween(rng, 0.10, 0.20)
		p.PostFlopCallCeiling = randBetween(rng, 0.35, 0.45)
		p.PostFlopCheckProb = randBetween(rng, 0.20, 0.30)
		p.BetSizePotFraction = randBetween(rng, 0.65, 0.85)
		p.RaiseMultiplier = randBetween(rng, 2.5, 3.5)

	case CallingStation:
		p.OpenRaiseProb = randBetween(rng, 0.15, 0.25)
		p.ThreeBetProb = randBetween(rng, 0.03, 0.08)
		p.FourBetProb = randBetween(rng, 0.01, 0.05)
		p.RangeFuzzProb = randBetween(rng, 0.08, 0.12)
		p.OpenRaiseSizeMin = 2.0
		p.OpenRaiseSizeMax = 2.5
		p.ThreeBetSizeMin = 2.3
		p.ThreeBetSizeMax = 2.8
		p.FourBetSizeMin = 2.0
		p.FourBetSizeMax = 2.3
		p.PostFlopFoldProb = randBetween(rng, 0.05, 0.15)
		p.PostFlopCallCeiling = randBetween(rng, 0.85, 0.95)
		p.PostFlopCheckProb = randBetween(rng, 0.70, 0.80)
		p.BetSizePotFraction = randBetween(rng, 0.40, 0.55)
		p.RaiseMultiplier = randBetween(rng, 2.0, 2.5)

	case Nit:
		p.OpenRaiseProb = randBetween(rng, 0.35, 0.45)
		p.ThreeBetProb = randBetween(rng, 0.10, 0.20)
		p.FourBetProb = randBetween(rng, 0.08, 0.15)
		p.RangeFuzzProb = randBetween(rng, 0.00, 0.05)
		p.OpenRaiseSizeMin = 2.8
		p.OpenRaiseSizeMax = 3.2
		p.ThreeBetSizeMin = 2.8
		p.ThreeBetSizeMax = 3.2
		p.FourBetSizeMin = 2.2
		p.FourBetSizeMax = 2.4
		p.PostFlopFoldProb = randBetween(rng, 0.45, 0.55)
		p.PostFlopCallCeiling = randBetween(rng, 0.80, 0.90)
		p.PostFlopCheckProb = randBetween(rng, 0.65, 0.75)
		p.BetSizePotFraction = randBetween(rng, 0.40, 0.55)
		p.RaiseMultiplier = randBetween(rng, 2.0, 2.5)

	case Shark:
		p.OpenRaiseProb = randBetween(rng, 0.75, 0.85)
		p.ThreeBetProb = randBetween(rng, 0.30, 0.40)
		p.FourBetProb = randBetween(rng, 0.20, 0.30)
		p.RangeFuzzProb = randBetween(rng, 0.03, 0.07)
		p.OpenRaiseSizeMin = randBetween(rng, 2.0, 2.4)
		p.OpenRaiseSizeMax = randBetween(rng, 2.6, 3.0)
		p.ThreeBetSizeMin = randBetween(rng, 2.5, 2.9)
		p.ThreeBetSizeMax = randBetween(rng, 3.0, 3.6)
		p.FourBetSizeMin = 2.2
		p.FourBetSizeMax = 2.6
		p.PostFlopFoldProb = randBetween(rng, 0.25, 0.35)
		p.PostFlopCallCeiling = randBetween(rng, 0.55, 0.65)
		p.PostFlopCheckProb = randBetween(rng, 0.40, 0.50)
		p.BetSizePotFraction = randBetween(rng, 0.50, 0.75)
		p.RaiseMultiplier = randBetween(rng, 2.5, 3.5)
	}
	return p
}

// difficultyWeights skew the lineup: low tables fill with passive
// players, high tables with sharks.
var difficultyWeights = map[Difficulty]map[Archetype]int{
	DifficultyLow: {
		CallingStation: 45, Nit: 25, TAG: 15, LAG: 10, Shark: 5,
	},
	DifficultyMedium: {
		CallingStation: 30, Nit: 20, TAG: 25, LAG: 15, Shark: 10,
	},
	DifficultyHigh: {
		CallingStation: 15, Nit: 15, TAG: 25, LAG: 20, Shark: 25,
	},
}

// Assignment pairs a drawn profile with a unique table name
type Assignment struct {
	Profile *Profile
	Name    string
}

// AssignRandom draws count personas by weighted selection and names
// each from its archetype's pool, spilling into the global pool when a
// persona's names run out. Names are unique within one call.
func AssignRandom(count int, difficulty Difficulty, rng *rand.Rand) []Assignment {
	weights := difficultyWeights[difficulty]
	if weights == nil {
		weights = make(map[Archetype]int, len(Archetypes))
		for _, a := range Archetypes {
			weights[a] = a.Weight()
		}
	}

	used := make(map[string]bool)
	out := make([]Assignment, 0, count)
	for i := 0; i < count; i++ {
		selected := pickWeighted(weights, rng)
		name := pickName(selected, used)
		used[name] = true
		out = append(out, Assignment{Profile: selected.NewProfile(rng), Name: name})
	}
	return out
}

func pickWeighted(weights map[Archetype]int, rng *rand.Rand) Archetype {
	total := 0
	for _, a := range Archetypes {
		total += weights[a]
	}
	roll := rng.IntN(total)
	cumulative := 0
	for _, a := range Archetypes {
		cumulative += weights[a]
		if roll < cumulative {
			return a
		}
	}
	return TAG
}

func pickName(a Archetype, used map[string]bool) string {
	for _, n := range a.BotNames() {
		if !used[n] {
			return n
		}
	}
	for _, other := range Archetypes {
		for _, n := range other.BotNames() {
			if !used[n] {
				return n
			}
		}
	}
	return fmt.Sprintf("Bot%d", len(used)+1)
}
