package game

// BlindLevel is one step of a tournament blind schedule
type BlindLevel struct {
	Level      int
	SmallBlind int
	BigBlind   int
	Ante       int
}

// baseLevels is the fixed blind ladder every tournament follows
var baseLevels = [][2]int{
	{25, 50}, {50, 100}, {75, 150}, {100, 200}, {150, 300},
	{200, 400}, {300, 600}, {400, 800}, {500, 1000}, {600, 1200},
	{800, 1600}, {1000, 2000}, {1500, 3000}, {2000, 4000}, {3000, 6000},
}

// TournamentState tracks tournament-wide progress. It is mutated by the
// post-hand handler in the session driver, never by the engine itself.
type TournamentState struct {
	TotalPlayers     int
	RemainingPlayers int
	BlindStructure   []BlindLevel
	LevelIndex       int
	HandsAtLevel     int
	HandsPerLevel    int
	AntesEnabled     bool
}

// NewTournamentState builds the blind schedule for a tournament. When
// antes are enabled they start at level 4 at one tenth of the big blind.
func NewTournamentState(playerCount, handsPerLevel int, antesEnabled bool) *TournamentState {
	structure := make([]BlindLevel, 0, len(baseLevels))
	for i, sb := range baseLevels {
		ante := 0
		if antesEnabled && i >= 3 {
			ante = sb[1] / 10
		}
		structure = append(structure, BlindLevel{
			Level:      i + 1,
			SmallBlind: sb[0],
			BigBlind:   sb[1],
			Ante:       ante,
		})
	}
	return &TournamentState{
		TotalPlayers:     playerCount,
		RemainingPlayers: playerCount,
		BlindStructure:   structure,
		HandsPerLevel:    handsPerLevel,
		AntesEnabled:     antesEnabled,
	}
}

// CurrentLevel returns the active blind level
func (t *TournamentState) CurrentLevel() BlindLevel {
	return t.BlindStructure[t.LevelIndex]
}

// HandsUntilNextLevel returns how many hands remain at the current
// level, or 0 once the final level is reached.
func (t *TournamentState) HandsUntilNextLevel() int {
	if t.LevelIndex >= len(t.BlindStructure)-1 {
		return 0
	}
	return t.HandsPerLevel - t.HandsAtLevel
}

// AdvanceHand counts a completed hand, moving to the next blind level
// when the schedule says so.
func (t *TournamentState) AdvanceHand() {
	t.HandsAtLevel++
	if t.HandsAtLevel >= t.HandsPerLevel && t.LevelIndex < len(t.BlindStructure)-1 {
		t.LevelIndex++
		t.HandsAtLevel = 0
	}
}
