package config

import (
	"fmt"

	"github.com/lox/holdem-ai/internal/ai"
)

// CashStakes is one entry of the fixed cash-game catalog
type CashStakes struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	RakeCap       int
	Label         string
}

// cashStakes is the catalog keyed by the wire identifier
var cashStakes = map[string]CashStakes{
	"1/2":  {SmallBlind: 1, BigBlind: 2, StartingChips: 200, RakeCap: 3, Label: "$1/$2"},
	"2/5":  {SmallBlind: 2, BigBlind: 5, StartingChips: 500, RakeCap: 5, Label: "$2/$5"},
	"5/10": {SmallBlind: 5, BigBlind: 10, StartingChips: 1000, RakeCap: 10, Label: "$5/$10"},
}

// TournamentBuyin is one entry of the fixed tournament catalog. The
// buy-in sets how fast blinds climb: cheap tournaments are turbo.
type TournamentBuyin struct {
	Amount        int
	HandsPerLevel int
	Label         string
}

var tournamentBuyins = map[string]TournamentBuyin{
	"100":  {Amount: 100, HandsPerLevel: 8, Label: "$100"},
	"500":  {Amount: 500, HandsPerLevel: 12, Label: "$500"},
	"1500": {Amount: 1500, HandsPerLevel: 15, Label: "$1500"},
}

// TournamentStartingChips is 100 big blinds at the first level
const TournamentStartingChips = 5000

const (
	ModeCash       = "cash"
	ModeTournament = "tournament"
)

// GameConfig is the client's table setup request. Stakes and Buyin are
// catalog keys, not free-form numbers; Validate rejects anything off
// the menu.
type GameConfig struct {
	Mode         string `json:"mode"`
	Stakes       string `json:"stakes,omitempty"`
	RakeEnabled  bool   `json:"rakeEnabled,omitempty"`
	Buyin        string `json:"buyin,omitempty"`
	PlayerCount  int    `json:"playerCount,omitempty"`
	AntesEnabled bool   `json:"antesEnabled,omitempty"`
	TableSize    int    `json:"tableSize,omitempty"`
}

// Validate checks the config against the catalogs
func (c *GameConfig) Validate() error {
	if c.TableSize == 0 {
		c.TableSize = 6
	}
	if c.TableSize != 6 && c.TableSize != 9 {
		return fmt.Errorf("invalid table size %d", c.TableSize)
	}

	switch c.Mode {
	case ModeCash:
		if _, ok := cashStakes[c.Stakes]; !ok {
			return fmt.Errorf("unknown stakes %q", c.Stakes)
		}
	case ModeTournament:
		if _, ok := tournamentBuyins[c.Buyin]; !ok {
			return fmt.Errorf("unknown buy-in %q", c.Buyin)
		}
		switch c.PlayerCount {
		case 6, 45, 180, 1000:
		default:
			return fmt.Errorf("invalid tournament size %d", c.PlayerCount)
		}
	default:
		return fmt.Errorf("unknown game mode %q", c.Mode)
	}
	return nil
}

// CashStakes resolves the catalog entry; only valid for cash configs
func (c *GameConfig) CashStakes() CashStakes {
	return cashStakes[c.Stakes]
}

// TournamentBuyin resolves the catalog entry; only valid for tournament configs
func (c *GameConfig) TournamentBuyin() TournamentBuyin {
	return tournamentBuyins[c.Buyin]
}

// Difficulty derives the bot lineup tier from the table's price point
func (c *GameConfig) Difficulty() ai.Difficulty {
	switch c.Mode {
	case ModeCash:
		switch c.Stakes {
		case "1/2":
			return ai.DifficultyLow
		case "2/5":
			return ai.DifficultyMedium
		default:
			return ai.DifficultyHigh
		}
	case ModeTournament:
		switch c.Buyin {
		case "100":
			return ai.DifficultyLow
		case "500":
			return ai.DifficultyMedium
		default:
			return ai.DifficultyHigh
		}
	default:
		return ai.DifficultyMedium
	}
}

// StartingChips returns each seat's initial stack for the config
func (c *GameConfig) StartingChips() int {
	if c.Mode == ModeTournament {
		return TournamentStartingChips
	}
	return c.CashStakes().StartingChips
}

// Label renders the table description shown to players
func (c *GameConfig) Label() string {
	switch c.Mode {
	case ModeCash:
		stakes := c.CashStakes()
		if c.RakeEnabled {
			return fmt.Sprintf("%s Cash - Rake: 5%%/$%d cap", stakes.Label, stakes.RakeCap)
		}
		return fmt.Sprintf("%s Cash", stakes.Label)
	case ModeTournament:
		return fmt.Sprintf("%s Tournament - %d players", c.TournamentBuyin().Label, c.PlayerCount)
	default:
		return ""
	}
}
