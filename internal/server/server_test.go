package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-ai/internal/config"
	"github.com/lox/holdem-ai/internal/session"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	_ = listener.Close()
	return port
}

func startTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultServerConfig()
	cfg.Server.Address = "127.0.0.1"
	cfg.Server.Port = findFreePort(t)
	cfg.AI.ThinkDelayMinMs = 0
	cfg.AI.ThinkDelayMaxMs = 0

	srv := NewServer(cfg, testLogger(), quartz.NewReal())
	go func() { _ = srv.Start() }()
	t.Cleanup(func() { _ = srv.Stop() })

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", srv.Addr()))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond, "server never came up")

	return srv
}

func dialTestClient(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	url := fmt.Sprintf("ws://%s/ws", srv.Addr())
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestServerHealth(t *testing.T) {
	cfg := config.DefaultServerConfig()
	srv := NewServer(cfg, testLogger(), quartz.NewReal())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.handleHealth(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerTracksConnections(t *testing.T) {
	srv := startTestServer(t)

	conn := dialTestClient(t, srv)

	require.Eventually(t, func() bool {
		return srv.ConnectionCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	_ = conn.Close()

	require.Eventually(t, func() bool {
		return srv.ConnectionCount() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStartGameOverWebSocket(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestClient(t, srv)

	msg, err := session.NewMessage(session.MessageTypeStartGame, session.StartGameData{
		PlayerName: "Alice",
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))

	// The hand plays out against zero-delay bots; collect frames until
	// the result arrives.
	deadline := time.Now().Add(10 * time.Second)
	var sawState, sawResult bool
	for time.Now().Before(deadline) && !sawResult {
		_ = conn.SetReadDeadline(deadline)
		var received session.Message
		require.NoError(t, conn.ReadJSON(&received))

		switch received.Type {
		case session.MessageTypeGameState:
			sawState = true
			var state session.GameStateData
			require.NoError(t, json.Unmarshal(received.Data, &state))
			assert.Len(t, state.Players, 6)
			assert.Equal(t, "Alice", state.Players[0].Name)
			if state.IsUserTurn {
				fold, err := session.NewMessage(session.MessageTypePlayerAction, session.PlayerActionData{Action: "fold"})
				require.NoError(t, err)
				require.NoError(t, conn.WriteJSON(fold))
			}
		case session.MessageTypeHandResult:
			sawResult = true
			var result session.HandResultData
			require.NoError(t, json.Unmarshal(received.Data, &result))
			assert.NotEmpty(t, result.Winners)
		case session.MessageTypeError:
			var data session.ErrorData
			_ = json.Unmarshal(received.Data, &data)
			t.Fatalf("unexpected error message: %s", data.Message)
		}
	}

	assert.True(t, sawState, "never saw a game_state frame")
	assert.True(t, sawResult, "never saw a hand_result frame")
}

func TestInvalidFrameGetsErrorResponse(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestClient(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var received session.Message
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, session.MessageTypeError, received.Type)
}
