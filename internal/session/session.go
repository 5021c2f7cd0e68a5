package session

import (
	"context"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdem-ai/internal/ai"
	"github.com/lox/holdem-ai/internal/config"
	"github.com/lox/holdem-ai/internal/game"
)

// rakeRate is the fixed cash-game rake fraction; the cap varies by stakes
const rakeRate = 0.05

// Sink delivers server messages to the client. The websocket connection
// implements it; tests substitute a recorder.
type Sink interface {
	Send(msg *Message) error
}

// Session drives one table for one human client: it owns the game
// state, runs the hand loop in its own goroutine, and serializes the
// human's actions through a rendezvous channel. All engine mutations
// happen on the hand goroutine under s.mu, so HandleMessage can take
// consistent snapshots between actions; it never blocks on the game.
type Session struct {
	ID     string
	logger *log.Logger
	sink   Sink
	clock  quartz.Clock
	rng    *rand.Rand

	thinkMin time.Duration
	thinkMax time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	actionCh chan PlayerActionData

	mu              sync.Mutex
	awaitingAction  bool
	state           *game.GameState
	cfg             *config.GameConfig
	tournament      *game.TournamentState
	profiles        map[int]*ai.Profile
	decider         *ai.Decider
	handActive      bool
	showAiCards     bool
	showPlayerTypes bool
}

// New creates a session bound to a client sink
func New(sink Sink, logger *log.Logger, clock quartz.Clock, rng *rand.Rand, thinkMin, thinkMax time.Duration) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()
	return &Session{
		ID:       id,
		logger:   logger.WithPrefix("session").With("session", id),
		sink:     sink,
		clock:    clock,
		rng:      rng,
		thinkMin: thinkMin,
		thinkMax: thinkMax,
		ctx:      ctx,
		cancel:   cancel,
		actionCh: make(chan PlayerActionData, 1),
	}
}

// Close stops the hand loop; safe to call more than once
func (s *Session) Close() {
	s.cancel()
}

// HandleMessage processes one raw client frame. It is called from the
// connection's read loop and never blocks on the game.
func (s *Session) HandleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(fmt.Sprintf("invalid message: %v", err))
		return
	}

	switch msg.Type {
	case MessageTypeStartGame:
		var start StartGameData
		if err := json.Unmarshal(msg.Data, &start); err != nil {
			s.sendError(fmt.Sprintf("invalid start_game: %v", err))
			return
		}
		s.startGame(start)

	case MessageTypePlayerAction:
		var action PlayerActionData
		if err := json.Unmarshal(msg.Data, &action); err != nil {
			s.sendError(fmt.Sprintf("invalid player_action: %v", err))
			return
		}
		s.mu.Lock()
		awaiting := s.awaitingAction
		s.mu.Unlock()
		if !awaiting {
			s.sendError("no action expected right now")
			return
		}
		select {
		case s.actionCh <- action:
		default:
			s.sendError("action already submitted")
		}

	case MessageTypeDealNextHand:
		s.launchHand()

	case MessageTypeToggleSetting:
		var toggle ToggleSettingData
		if err := json.Unmarshal(msg.Data, &toggle); err != nil {
			s.sendError(fmt.Sprintf("invalid toggle_setting: %v", err))
			return
		}
		s.handleToggle(toggle)

	default:
		s.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *Session) startGame(msg StartGameData) {
	if msg.PlayerName == "" {
		msg.PlayerName = "Player"
	}

	var cfg *config.GameConfig
	if msg.Config != nil {
		cfg = &config.GameConfig{}
		if err := json.Unmarshal(*msg.Config, cfg); err != nil {
			s.sendError(fmt.Sprintf("invalid game config: %v", err))
			return
		}
		if err := cfg.Validate(); err != nil {
			s.sendError(err.Error())
			return
		}
	}

	s.mu.Lock()
	if s.handActive {
		s.mu.Unlock()
		s.sendError("a hand is already in progress")
		return
	}
	if cfg != nil {
		s.cfg = cfg
		if cfg.Mode == config.ModeTournament {
			buyin := cfg.TournamentBuyin()
			s.tournament = game.NewTournamentState(cfg.PlayerCount, buyin.HandsPerLevel, cfg.AntesEnabled)
			s.createTable(msg.PlayerName, cfg.StartingChips(), 25, 50, cfg.TableSize, cfg.Difficulty())
		} else {
			stakes := cfg.CashStakes()
			s.tournament = nil
			s.createTable(msg.PlayerName, cfg.StartingChips(), stakes.SmallBlind, stakes.BigBlind, cfg.TableSize, cfg.Difficulty())
		}
	} else {
		chips := msg.StartingChips
		if chips <= 0 {
			chips = 1000
		}
		sb, bb := msg.SmallBlind, msg.BigBlind
		if bb <= 0 {
			sb, bb = 5, 10
		}
		s.cfg = nil
		s.tournament = nil
		s.createTable(msg.PlayerName, chips, sb, bb, 6, ai.DifficultyMedium)
	}
	s.mu.Unlock()

	s.logger.Info("game started", "player", msg.PlayerName, "label", s.gameLabel())
	s.sendState()
	s.launchHand()
}

// createTable seats the human at index 0 and fills the rest with bots.
// Caller holds s.mu.
func (s *Session) createTable(playerName string, chips, smallBlind, bigBlind, tableSize int, difficulty ai.Difficulty) {
	players := []*game.Player{
		{Index: 0, Name: playerName, Human: true, Chips: chips},
	}
	s.profiles = make(map[int]*ai.Profile, tableSize-1)
	for i, a := range ai.AssignRandom(tableSize-1, difficulty, s.rng) {
		idx := i + 1
		players = append(players, &game.Player{Index: idx, Name: a.Name, Chips: chips})
		s.profiles[idx] = a.Profile
	}

	s.state = game.NewGame(players, smallBlind, bigBlind, s.rng)
	s.decider = ai.NewDecider(s.profiles, nil, s.rng)
	s.decider.Context = s.gameContext()
}

// gameContext derives the bots' table context. Caller holds s.mu.
func (s *Session) gameContext() ai.GameContext {
	cfg := s.cfg
	if cfg == nil || s.state == nil {
		return ai.NeutralContext
	}
	ctx := ai.GameContext{
		Difficulty:  cfg.Difficulty(),
		AntesActive: s.state.Ante > 0,
	}
	if cfg.Mode == config.ModeTournament {
		ctx.IsTournament = true
		if ts := s.tournament; ts != nil {
			stage, err := ai.DeriveStage(ts.RemainingPlayers, ts.TotalPlayers, cfg.TableSize)
			if err == nil {
				ctx.Stage = stage
			}
		}
	} else {
		ctx.RakeEnabled = cfg.RakeEnabled
	}
	return ctx
}

// launchHand starts the hand loop unless one is already running
func (s *Session) launchHand() {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		s.sendError("no game in progress")
		return
	}
	if s.handActive {
		s.mu.Unlock()
		return
	}
	s.handActive = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.handActive = false
			s.mu.Unlock()
		}()
		s.runHand()
	}()
}

// runHand plays one complete hand: deal, four betting rounds with
// all-in runouts skipping the betting, then showdown and post-hand
// bookkeeping.
func (s *Session) runHand() {
	s.mu.Lock()
	st := s.state

	if st.PlayerCount() < 2 {
		s.mu.Unlock()
		s.sendError("not enough players to continue")
		return
	}

	if ts := s.tournament; ts != nil {
		level := ts.CurrentLevel()
		st.SmallBlind = level.SmallBlind
		st.BigBlind = level.BigBlind
		st.Ante = level.Ante
	}

	st.AdvanceDealer()
	err := st.StartNewHand()
	if err == nil {
		s.decider.Context = s.gameContext()
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("failed to start hand", "error", err)
		s.sendError(err.Error())
		return
	}
	s.sendState()

	if !s.runBettingRound() {
		return
	}
	for {
		s.mu.Lock()
		if st.IsHandComplete() || st.Phase == game.River {
			s.mu.Unlock()
			break
		}
		err := st.DealCommunity()
		runout := err == nil && st.AllInRunout()
		s.mu.Unlock()
		if err != nil {
			s.logger.Error("failed to deal community cards", "error", err)
			s.sendError(err.Error())
			return
		}
		s.sendState()

		if !runout {
			if !s.runBettingRound() {
				return
			}
		}
	}

	s.finishHand()
}

// runBettingRound applies actions until the street closes. Returns
// false if the session was closed mid-round.
func (s *Session) runBettingRound() bool {
	s.mu.Lock()
	st := s.state

	next := -1
	if st.CurrentPlayerIndex >= 0 && st.Players[st.CurrentPlayerIndex].IsActive() {
		next = st.CurrentPlayerIndex
	}
	s.mu.Unlock()

	for next != -1 {
		s.mu.Lock()
		st.CurrentPlayerIndex = next
		player := st.Players[next]
		if player.Human {
			// Open the rendezvous before announcing the turn so a fast
			// client response cannot be rejected.
			s.awaitingAction = true
		}
		s.mu.Unlock()
		s.sendState()

		var action game.Action
		if player.Human {
			data, ok := s.awaitHumanAction()
			if !ok {
				return false
			}
			s.mu.Lock()
			parsed, err := parseAction(data, player, st)
			if err == nil {
				action = ai.Sanitize(parsed, player, st)
			}
			s.mu.Unlock()
			if err != nil {
				s.sendError(err.Error())
				continue
			}
		} else {
			if !s.thinkDelay() {
				return false
			}
			s.mu.Lock()
			action = s.decider.Decide(player, st)
			s.mu.Unlock()
		}

		s.mu.Lock()
		st.ApplyAction(next, action)
		phase := st.Phase
		complete := st.IsHandComplete()
		if !complete {
			next = st.NextToAct()
		}
		s.mu.Unlock()
		s.sendActionPerformed(player, action, phase)

		if complete {
			break
		}
	}
	return true
}

// awaitHumanAction blocks the hand goroutine until the client submits
// an action or the session closes.
func (s *Session) awaitHumanAction() (PlayerActionData, bool) {
	defer func() {
		s.mu.Lock()
		s.awaitingAction = false
		s.mu.Unlock()
	}()
	select {
	case data := <-s.actionCh:
		return data, true
	case <-s.ctx.Done():
		return PlayerActionData{}, false
	}
}

// thinkDelay pauses a bot for a random interval so the table reads as
// human-paced. Uses the injected clock so tests can skip the wait.
func (s *Session) thinkDelay() bool {
	delta := s.thinkMax - s.thinkMin
	d := s.thinkMin
	if delta > 0 {
		d += time.Duration(s.rng.Int64N(int64(delta)))
	}

	fired := make(chan struct{})
	timer := s.clock.AfterFunc(d, func() { close(fired) })
	defer timer.Stop()

	select {
	case <-fired:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Session) finishHand() {
	s.mu.Lock()
	st := s.state
	cfg := s.cfg
	st.CollectBets()
	showdownOrder := st.ShowdownOrder()

	if cfg != nil && cfg.Mode == config.ModeCash && cfg.RakeEnabled {
		rake := st.DeductRake(rakeRate, cfg.CashStakes().RakeCap)
		if rake > 0 {
			s.logger.Debug("rake deducted", "rake", rake, "pot", st.Pot)
		}
	}

	results, err := st.EvaluateShowdown()
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("showdown failed", "error", err)
		s.sendError(err.Error())
		return
	}

	winners := make([]WinnerDTO, 0, len(results))
	winnerIndices := make(map[int]bool, len(results))
	for _, r := range results {
		winners = append(winners, WinnerDTO{
			PlayerIndex:     r.PlayerIndex,
			PlayerName:      st.Players[r.PlayerIndex].Name,
			Amount:          r.Amount,
			HandDescription: r.HandDesc,
		})
		winnerIndices[r.PlayerIndex] = true
	}

	allHoleCards := make([]HoleCardsDTO, 0, len(showdownOrder))
	for _, idx := range showdownOrder {
		player := st.Players[idx]
		if player.HoleCards == nil {
			continue
		}
		// Cards show for winners, the first to reveal, and the human;
		// everyone else mucks.
		show := winnerIndices[idx] || player.Human ||
			(len(showdownOrder) > 0 && showdownOrder[0] == idx)
		allHoleCards = append(allHoleCards, HoleCardsDTO{
			PlayerIndex: idx,
			Cards:       cardDTOs(player.HoleCards.Cards()),
			Mucked:      !show,
		})
	}

	summaries := make([]string, 0, len(winners))
	for _, w := range winners {
		if w.HandDescription != "" {
			summaries = append(summaries, fmt.Sprintf("%s wins $%d with %s", w.PlayerName, w.Amount, w.HandDescription))
		} else {
			summaries = append(summaries, fmt.Sprintf("%s wins $%d", w.PlayerName, w.Amount))
		}
	}
	s.mu.Unlock()

	s.send(MessageTypeHandResult, HandResultData{
		Winners:      winners,
		AllHoleCards: allHoleCards,
		Summary:      strings.Join(summaries, "; "),
	})

	switch {
	case cfg != nil && cfg.Mode == config.ModeCash:
		s.cashGamePostHand(cfg)
	case cfg != nil && cfg.Mode == config.ModeTournament:
		s.tournamentPostHand(cfg)
	default:
		s.legacyPostHand()
	}

	s.sendState()
}

// cashGamePostHand reloads any busted stack to the table buy-in
func (s *Session) cashGamePostHand(cfg *config.GameConfig) {
	reload := cfg.CashStakes().StartingChips
	var reloaded []PlayerReloadedData
	s.mu.Lock()
	for _, p := range s.state.Players {
		if p.Chips <= 0 {
			p.Chips = reload
			p.SittingOut = false
			reloaded = append(reloaded, PlayerReloadedData{
				PlayerIndex: p.Index, PlayerName: p.Name, Chips: reload,
			})
		}
	}
	s.mu.Unlock()

	for _, r := range reloaded {
		s.logger.Info("player reloaded", "player", r.PlayerName, "chips", r.Chips)
		s.send(MessageTypePlayerReloaded, r)
	}
}

func (s *Session) tournamentPostHand(cfg *config.GameConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	ts := s.tournament
	if ts == nil {
		return
	}

	for _, p := range st.Players {
		if p.Chips <= 0 && !p.SittingOut {
			p.SittingOut = true
			ts.RemainingPlayers--
			s.logger.Info("player eliminated", "player", p.Name, "remaining", ts.RemainingPlayers)
			s.send(MessageTypePlayerEliminated, PlayerEliminatedData{
				PlayerIndex: p.Index, PlayerName: p.Name,
			})

			if p.Human {
				s.send(MessageTypeTournamentFinished, TournamentFinishedData{
					FinishPosition: ts.RemainingPlayers + 1,
					TotalPlayers:   ts.TotalPlayers,
				})
				return
			}
		}
	}

	activeTableCount := st.PlayerCount()
	ts.RemainingPlayers -= s.simulateBackgroundEliminations(ts, activeTableCount)

	// Refill busted bot seats from the background field until the
	// final table forms.
	if ts.RemainingPlayers > cfg.TableSize {
		avgStack := s.averageActiveStack()
		for _, seat := range st.Players {
			if !seat.SittingOut || seat.Human {
				continue
			}
			assignment := ai.AssignRandom(1, cfg.Difficulty(), s.rng)[0]
			variance := int(float64(avgStack) * 0.2 * (s.rng.Float64()*2 - 1))
			seat.Name = assignment.Name
			seat.Chips = max(avgStack+variance, 1)
			seat.SittingOut = false
			seat.Folded = false
			seat.AllIn = false
			s.profiles[seat.Index] = assignment.Profile
			s.logger.Info("seat refilled", "player", seat.Name, "chips", seat.Chips)
			s.send(MessageTypePlayerJoined, PlayerJoinedData{
				PlayerIndex: seat.Index, PlayerName: seat.Name, Chips: seat.Chips,
			})
		}
	}

	ts.AdvanceHand()

	if ts.RemainingPlayers <= 1 {
		s.send(MessageTypeTournamentFinished, TournamentFinishedData{
			FinishPosition: 1,
			TotalPlayers:   ts.TotalPlayers,
		})
		return
	}

	level := ts.CurrentLevel()
	s.send(MessageTypeTournamentUpdate, TournamentUpdateData{
		RemainingPlayers:    ts.RemainingPlayers,
		TotalPlayers:        ts.TotalPlayers,
		BlindLevel:          level.Level,
		SmallBlind:          level.SmallBlind,
		BigBlind:            level.BigBlind,
		Ante:                level.Ante,
		HandsUntilNextLevel: ts.HandsUntilNextLevel(),
	})
}

// simulateBackgroundEliminations approximates attrition at the unseen
// tables; the rate rises as the blinds climb.
func (s *Session) simulateBackgroundEliminations(ts *game.TournamentState, activeTableCount int) int {
	background := ts.RemainingPlayers - activeTableCount
	if background <= 0 {
		return 0
	}

	rate := 0.01 + 0.04*(float64(ts.LevelIndex)/float64(len(ts.BlindStructure)))
	eliminations := 0
	for i := 0; i < background; i++ {
		if s.rng.Float64() < rate {
			eliminations++
		}
	}
	return min(eliminations, background)
}

// averageActiveStack reports the mean live stack. Caller holds s.mu.
func (s *Session) averageActiveStack() int {
	total, n := 0, 0
	for _, p := range s.state.Players {
		if !p.SittingOut {
			total += p.Chips
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / n
}

// legacyPostHand keeps the pre-catalog behavior: busted players just
// sit out.
func (s *Session) legacyPostHand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Players {
		if p.Chips <= 0 && !p.SittingOut {
			p.SittingOut = true
			s.send(MessageTypePlayerEliminated, PlayerEliminatedData{
				PlayerIndex: p.Index, PlayerName: p.Name,
			})
		}
	}
}

func (s *Session) handleToggle(msg ToggleSettingData) {
	s.mu.Lock()
	switch msg.Setting {
	case "showAiCards":
		s.showAiCards = msg.Value
	case "showPlayerTypes":
		s.showPlayerTypes = msg.Value
	}
	s.mu.Unlock()
	s.sendState()
}

func (s *Session) gameLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return ""
	}
	return s.cfg.Label()
}

// sendState pushes a full masked snapshot to the client
func (s *Session) sendState() {
	s.mu.Lock()
	st := s.state
	if st == nil {
		s.mu.Unlock()
		return
	}
	data := s.snapshot(st)
	s.mu.Unlock()
	s.send(MessageTypeGameState, data)
}

// snapshot renders the state for the wire, masking bot hole cards
// until showdown. Caller holds s.mu.
func (s *Session) snapshot(st *game.GameState) GameStateData {
	const userIndex = 0

	callAmount := 0
	if st.CurrentPlayerIndex == userIndex && st.CurrentPlayerIndex >= 0 {
		callAmount = max(st.CallAmount(userIndex), 0)
	}

	players := make([]PlayerDTO, 0, len(st.Players))
	for _, p := range st.Players {
		var show bool
		switch {
		case p.Human:
			show = true
		case s.showAiCards:
			show = true
		case st.Phase == game.Showdown || st.Phase == game.HandComplete:
			show = !p.Folded
		}

		dto := PlayerDTO{
			Index:      p.Index,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.Bet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			SittingOut: p.SittingOut,
			Dealer:     p.Index == st.DealerIndex,
			Position:   p.Position.String(),
		}
		if show && p.HoleCards != nil {
			dto.HoleCards = cardDTOs(p.HoleCards.Cards())
		}
		if p.LastAction != nil {
			dto.LastAction = p.LastAction.Describe()
		}
		if s.showPlayerTypes && !p.Human {
			if profile, ok := s.profiles[p.Index]; ok {
				dto.PlayerType = profile.Archetype.DisplayName()
			}
		}
		players = append(players, dto)
	}

	label := ""
	if s.cfg != nil {
		label = s.cfg.Label()
	}

	return GameStateData{
		Phase:              st.Phase.String(),
		CommunityCards:     cardDTOs(st.Community),
		Pot:                st.Pot,
		Players:            players,
		DealerIndex:        st.DealerIndex,
		CurrentPlayerIndex: st.CurrentPlayerIndex,
		IsUserTurn:         st.CurrentPlayerIndex == userIndex && st.Phase.IsBettingStreet(),
		MinimumRaise:       st.MinRaiseTotal(),
		CallAmount:         callAmount,
		HandNumber:         st.HandNumber,
		ShowAiCards:        s.showAiCards,
		ShowPlayerTypes:    s.showPlayerTypes,
		Ante:               st.Ante,
		GameLabel:          label,
	}
}

func (s *Session) sendActionPerformed(player *game.Player, action game.Action, phase game.Phase) {
	s.send(MessageTypeActionPerformed, ActionPerformedData{
		PlayerIndex: player.Index,
		PlayerName:  player.Name,
		Action:      action.Describe(),
		Phase:       phase.String(),
	})
}

func (s *Session) sendError(message string) {
	s.send(MessageTypeError, ErrorData{Message: message})
}

func (s *Session) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("failed to encode message", "type", messageType, "error", err)
		return
	}
	if err := s.sink.Send(msg); err != nil {
		s.logger.Debug("failed to send message", "type", messageType, "error", err)
	}
}
