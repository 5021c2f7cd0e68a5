package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-ai/internal/ai"
	"github.com/lox/holdem-ai/internal/deck"
	"github.com/lox/holdem-ai/internal/game"
	"github.com/lox/holdem-ai/internal/randutil"
)

// SimulateCmd plays bot-only hands with no server or client attached
type SimulateCmd struct {
	Hands      int    `default:"1000" help:"Number of hands to simulate"`
	TableSize  int    `default:"6" help:"Seats at the table (6 or 9)"`
	Difficulty string `default:"medium" help:"Bot lineup tier: low, medium, high"`
	StartChips int    `default:"1000" help:"Starting chip count"`
	SmallBlind int    `default:"5" help:"Small blind amount"`
	BigBlind   int    `default:"10" help:"Big blind amount"`
	Seed       int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose    bool   `help:"Log every action"`
}

// seatStats accumulates per-seat results across the run
type seatStats struct {
	name      string
	archetype string
	hands     int
	net       int
	wins      int
}

func (c *SimulateCmd) Run() error {
	if c.TableSize != 6 && c.TableSize != 9 {
		return fmt.Errorf("invalid table size %d", c.TableSize)
	}
	difficulty, err := ai.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	rng := randutil.New(c.Seed)
	assignments := ai.AssignRandom(c.TableSize, difficulty, rng)

	players := make([]*game.Player, c.TableSize)
	profiles := make(map[int]*ai.Profile, c.TableSize)
	stats := make([]seatStats, c.TableSize)
	for i, a := range assignments {
		players[i] = &game.Player{Index: i, Name: a.Name, Chips: c.StartChips}
		profiles[i] = a.Profile
		stats[i] = seatStats{name: a.Name, archetype: a.Profile.Archetype.DisplayName()}
	}

	st := game.NewGame(players, c.SmallBlind, c.BigBlind, rng)
	decider := ai.NewDecider(profiles, nil, rng)

	fmt.Printf("Simulating %d hands, %d seats, %s lineup (seed %d)\n",
		c.Hands, c.TableSize, difficulty, c.Seed)
	start := time.Now()

	for hand := 0; hand < c.Hands; hand++ {
		// Reload busted stacks so the table never shrinks.
		for _, p := range st.Players {
			if p.Chips <= 0 {
				stats[p.Index].net -= c.StartChips - p.Chips
				p.Chips = c.StartChips
				p.SittingOut = false
			}
		}

		before := make([]int, len(st.Players))
		for i, p := range st.Players {
			before[i] = p.Chips
		}

		st.AdvanceDealer()
		if err := st.StartNewHand(); err != nil {
			return fmt.Errorf("hand %d: %w", hand+1, err)
		}

		if err := runHeadlessHand(st, decider, logger); err != nil {
			return fmt.Errorf("hand %d: %w", hand+1, err)
		}

		for i, p := range st.Players {
			stats[i].hands++
			delta := p.Chips - before[i]
			stats[i].net += delta
			if delta > 0 {
				stats[i].wins++
			}
		}
	}

	c.printResults(stats, time.Since(start))
	return nil
}

func runHeadlessHand(st *game.GameState, decider *ai.Decider, logger *log.Logger) error {
	runStreet := func() {
		next := -1
		if st.CurrentPlayerIndex >= 0 && st.Players[st.CurrentPlayerIndex].IsActive() {
			next = st.CurrentPlayerIndex
		}
		for next != -1 {
			st.CurrentPlayerIndex = next
			player := st.Players[next]
			action := decider.Decide(player, st)
			st.ApplyAction(next, action)
			logger.Debug("action", "phase", st.Phase, "player", player.Name, "action", action.Describe())
			if st.IsHandComplete() {
				return
			}
			next = st.NextToAct()
		}
	}

	runStreet()
	for !st.IsHandComplete() && st.Phase != game.River {
		if err := st.DealCommunity(); err != nil {
			return err
		}
		logger.Debug("board", "phase", st.Phase, "cards", prettyBoard(st.Community))
		if !st.AllInRunout() {
			runStreet()
		}
	}

	results, err := st.EvaluateShowdown()
	if err != nil {
		return err
	}
	for _, r := range results {
		logger.Debug("pot awarded", "player", st.Players[r.PlayerIndex].Name,
			"amount", r.Amount, "hand", r.HandDesc)
	}
	return nil
}

func prettyBoard(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Rank.String() + c.Suit.Glyph()
	}
	return strings.Join(parts, " ")
}

func (c *SimulateCmd) printResults(stats []seatStats, elapsed time.Duration) {
	sorted := make([]seatStats, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].net > sorted[j].net })

	fmt.Printf("\nDone in %s (%.0f hands/sec)\n\n", elapsed.Round(time.Millisecond),
		float64(sorted[0].hands)/elapsed.Seconds())
	fmt.Printf("%-12s %-16s %10s %10s %8s\n", "Seat", "Archetype", "Net", "BB/hand", "Win%")
	for _, s := range sorted {
		bbPerHand := 0.0
		winPct := 0.0
		if s.hands > 0 {
			bbPerHand = float64(s.net) / float64(c.BigBlind) / float64(s.hands)
			winPct = 100 * float64(s.wins) / float64(s.hands)
		}
		fmt.Printf("%-12s %-16s %10d %10.3f %7.1f%%\n", s.name, s.archetype, s.net, bbPerHand, winPct)
	}
}
