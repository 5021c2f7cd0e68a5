package session

import (
	"encoding/json"
	"time"

	"github.com/lox/holdem-ai/internal/deck"
	"github.com/lox/holdem-ai/internal/game"
)

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	// Client -> Server
	MessageTypeStartGame     MessageType = "start_game"
	MessageTypePlayerAction  MessageType = "player_action"
	MessageTypeDealNextHand  MessageType = "deal_next_hand"
	MessageTypeToggleSetting MessageType = "toggle_setting"

	// Server -> Client
	MessageTypeGameState          MessageType = "game_state"
	MessageTypeActionPerformed    MessageType = "action_performed"
	MessageTypeHandResult         MessageType = "hand_result"
	MessageTypePlayerEliminated   MessageType = "player_eliminated"
	MessageTypePlayerReloaded     MessageType = "player_reloaded"
	MessageTypePlayerJoined       MessageType = "player_joined"
	MessageTypeTournamentUpdate   MessageType = "tournament_update"
	MessageTypeTournamentFinished MessageType = "tournament_finished"
	MessageTypeError              MessageType = "error"
)

// Message is the wire envelope for both directions
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client -> Server payloads

type StartGameData struct {
	PlayerName    string           `json:"playerName"`
	StartingChips int              `json:"startingChips"`
	SmallBlind    int              `json:"smallBlind"`
	BigBlind      int              `json:"bigBlind"`
	Config        *json.RawMessage `json:"config,omitempty"`
}

type PlayerActionData struct {
	Action string `json:"action"`
	Amount *int   `json:"amount,omitempty"`
}

type ToggleSettingData struct {
	Setting string `json:"setting"`
	Value   bool   `json:"value"`
}

// Server -> Client payloads

type CardDTO struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func cardDTO(c deck.Card) CardDTO {
	return CardDTO{Rank: c.Rank.String(), Suit: c.Suit.String()}
}

func cardDTOs(cards []deck.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardDTO(c))
	}
	return out
}

type PlayerDTO struct {
	Index      int       `json:"index"`
	Name       string    `json:"name"`
	Chips      int       `json:"chips"`
	CurrentBet int       `json:"currentBet"`
	Folded     bool      `json:"isFolded"`
	AllIn      bool      `json:"isAllIn"`
	SittingOut bool      `json:"isSittingOut"`
	Dealer     bool      `json:"isDealer"`
	HoleCards  []CardDTO `json:"holeCards,omitempty"`
	LastAction string    `json:"lastAction,omitempty"`
	PlayerType string    `json:"playerType,omitempty"`
	Position   string    `json:"position"`
}

type GameStateData struct {
	Phase              string      `json:"phase"`
	CommunityCards     []CardDTO   `json:"communityCards"`
	Pot                int         `json:"pot"`
	Players            []PlayerDTO `json:"players"`
	DealerIndex        int         `json:"dealerIndex"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	IsUserTurn         bool        `json:"isUserTurn"`
	MinimumRaise       int         `json:"minimumRaise"`
	CallAmount         int         `json:"callAmount"`
	HandNumber         int         `json:"handNumber"`
	ShowAiCards        bool        `json:"showAiCards"`
	ShowPlayerTypes    bool        `json:"showPlayerTypes"`
	Ante               int         `json:"ante"`
	GameLabel          string      `json:"gameLabel,omitempty"`
}

type ActionPerformedData struct {
	PlayerIndex int    `json:"playerIndex"`
	PlayerName  string `json:"playerName"`
	Action      string `json:"action"`
	Phase       string `json:"phase"`
}

type WinnerDTO struct {
	PlayerIndex     int    `json:"playerIndex"`
	PlayerName      string `json:"playerName"`
	Amount          int    `json:"amount"`
	HandDescription string `json:"handDescription"`
}

type HoleCardsDTO struct {
	PlayerIndex int       `json:"playerIndex"`
	Cards       []CardDTO `json:"cards"`
	Mucked      bool      `json:"mucked"`
}

type HandResultData struct {
	Winners      []WinnerDTO    `json:"winners"`
	AllHoleCards []HoleCardsDTO `json:"allHoleCards"`
	Summary      string         `json:"summary"`
}

type PlayerEliminatedData struct {
	PlayerIndex int    `json:"playerIndex"`
	PlayerName  string `json:"playerName"`
}

type PlayerReloadedData struct {
	PlayerIndex int    `json:"playerIndex"`
	PlayerName  string `json:"playerName"`
	Chips       int    `json:"chips"`
}

type PlayerJoinedData struct {
	PlayerIndex int    `json:"playerIndex"`
	PlayerName  string `json:"playerName"`
	Chips       int    `json:"chips"`
}

type TournamentUpdateData struct {
	RemainingPlayers    int `json:"remainingPlayers"`
	TotalPlayers        int `json:"totalPlayers"`
	BlindLevel          int `json:"blindLevel"`
	SmallBlind          int `json:"smallBlind"`
	BigBlind            int `json:"bigBlind"`
	Ante                int `json:"ante"`
	HandsUntilNextLevel int `json:"handsUntilNextLevel"`
}

type TournamentFinishedData struct {
	FinishPosition int `json:"finishPosition"`
	TotalPlayers   int `json:"totalPlayers"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// parseAction maps a client action request onto an engine action,
// recomputing amounts the client cannot be trusted with.
func parseAction(data PlayerActionData, player *game.Player, state *game.GameState) (game.Action, error) {
	actionType, err := game.ParseActionType(data.Action)
	if err != nil {
		return game.Action{}, err
	}
	switch actionType {
	case game.Fold:
		return game.NewFold(), nil
	case game.Check:
		return game.NewCheck(), nil
	case game.Call:
		return game.NewCall(min(state.CurrentBetLevel-player.Bet, player.Chips)), nil
	case game.Raise:
		if data.Amount != nil {
			return game.NewRaise(*data.Amount), nil
		}
		return game.NewRaise(state.MinRaiseTotal()), nil
	default:
		return game.NewAllIn(player.Chips), nil
	}
}
