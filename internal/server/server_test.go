package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/gameid"
	"github.com/sjoves/poker-shootout/poker"
)

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer("localhost:0", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.handleHealth(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

// newWebSocketFixture wires a server, its game service and a dialed client
func newWebSocketFixture(t *testing.T) (*Server, *GameService, *websocket.Conn) {
	t.Helper()

	srv := NewServer("localhost:0", testLogger())
	gs := NewGameService(srv, testLogger(), game.DefaultConfig(), quartz.NewReal())
	srv.SetGameService(gs)
	t.Cleanup(func() { _ = srv.Stop() })

	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(httpServer.Close)

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })

	return srv, gs, ws
}

func sendMessage(t *testing.T, ws *websocket.Conn, msgType MessageType, data interface{}) {
	t.Helper()
	msg, err := NewMessage(msgType, data)
	if err != nil {
		t.Fatalf("Failed to create %s message: %v", msgType, err)
	}
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("Failed to send %s message: %v", msgType, err)
	}
}

// readMessage reads until a message of the wanted type arrives, skipping
// the periodic state pushes in between
func readMessage(t *testing.T, ws *websocket.Conn, want MessageType) *Message {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	_ = ws.SetReadDeadline(deadline)

	for time.Now().Before(deadline) {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read %s message: %v", want, err)
		}
		if msg.Type == want {
			return &msg
		}
		if msg.Type == MessageTypeError && want != MessageTypeError {
			t.Fatalf("Got error message while waiting for %s: %s", want, string(msg.Data))
		}
	}
	t.Fatalf("Timed out waiting for %s message", want)
	return nil
}

func decodeData(t *testing.T, msg *Message, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(msg.Data, v); err != nil {
		t.Fatalf("Failed to decode %s data: %v", msg.Type, err)
	}
}

func TestWebSocketGameFlow(t *testing.T) {
	t.Parallel()
	_, _, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageTypeStartGame, StartGameData{Mode: "blitz", Seed: 42})

	var started GameStartedData
	decodeData(t, readMessage(t, ws, MessageTypeGameStarted), &started)

	if err := gameid.Validate(started.SessionID); err != nil {
		t.Fatalf("Invalid session ID %q: %v", started.SessionID, err)
	}
	if len(started.State.Pool) != 52 {
		t.Fatalf("Expected 52 pool cards, got %d", len(started.State.Pool))
	}
	if started.State.Mode != "blitz" || started.State.Status != "playing" {
		t.Fatalf("Unexpected opening state: %+v", started.State)
	}

	// Build a hand out of the first five pool cards
	for _, c := range started.State.Pool[:poker.HandSize] {
		sendMessage(t, ws, MessageTypeSelectCard, SelectCardData{CardID: c.ID})
	}
	sendMessage(t, ws, MessageTypeSubmitHand, nil)

	var result HandResultData
	decodeData(t, readMessage(t, ws, MessageTypeHandResult), &result)

	if result.TotalPoints <= 0 {
		t.Errorf("Expected positive hand points, got %d", result.TotalPoints)
	}
	if result.Score != result.TotalPoints {
		t.Errorf("First hand should equal the session score: %d vs %d",
			result.TotalPoints, result.Score)
	}
	if result.Category == "" {
		t.Error("Expected a named category")
	}
}

func TestWebSocketPowerUpFlow(t *testing.T) {
	t.Parallel()
	_, _, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageTypeStartGame, StartGameData{Mode: "challenge", Seed: 7})
	var started GameStartedData
	decodeData(t, readMessage(t, ws, MessageTypeGameStarted), &started)

	sendMessage(t, ws, MessageTypePowerUp, PowerUpData{PowerUp: "sharpshooter"})

	// The accepted power-up lands as a state push with five selected cards
	deadline := time.Now().Add(5 * time.Second)
	_ = ws.SetReadDeadline(deadline)
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read state push: %v", err)
		}
		if msg.Type == MessageTypeError {
			t.Fatalf("Power-up rejected: %s", string(msg.Data))
		}
		if msg.Type != MessageTypeGameState {
			continue
		}
		var state SessionState
		decodeData(t, &msg, &state)
		if len(state.Selected) == poker.HandSize {
			if state.Charges.Sharpshooter != 1 {
				t.Errorf("Expected one sharpshooter charge left, got %d", state.Charges.Sharpshooter)
			}
			return
		}
	}
}

func TestWebSocketClassicDeckOutEndsWithGameOver(t *testing.T) {
	t.Parallel()
	_, _, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageTypeStartGame, StartGameData{Mode: "classic", Seed: 3})
	var started GameStartedData
	decodeData(t, readMessage(t, ws, MessageTypeGameStarted), &started)

	// Classic consumes the selection, so the remaining pool keeps its
	// order and each hand is simply the next five cards.
	pool := started.State.Pool
	for len(pool) >= poker.HandSize {
		for _, c := range pool[:poker.HandSize] {
			sendMessage(t, ws, MessageTypeSelectCard, SelectCardData{CardID: c.ID})
		}
		sendMessage(t, ws, MessageTypeSubmitHand, nil)
		readMessage(t, ws, MessageTypeHandResult)
		pool = pool[poker.HandSize:]
	}

	var over GameOverData
	decodeData(t, readMessage(t, ws, MessageTypeGameOver), &over)

	if over.State.Status != "complete" {
		t.Errorf("Status = %s, want complete", over.State.Status)
	}
	if over.Score != over.State.Score {
		t.Errorf("Score mismatch: %d vs state %d", over.Score, over.State.Score)
	}
	if len(over.State.Pool) != 2 {
		t.Errorf("Expected 2 leftover cards, got %d", len(over.State.Pool))
	}
	if over.State.HandsPlayed != 10 {
		t.Errorf("HandsPlayed = %d, want 10", over.State.HandsPlayed)
	}
}

func TestWebSocketCommandWithoutSession(t *testing.T) {
	t.Parallel()
	_, _, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageTypeSubmitHand, nil)

	var errData ErrorData
	decodeData(t, readMessage(t, ws, MessageTypeError), &errData)
	if errData.Code != "no_session" {
		t.Errorf("Expected no_session error, got %s", errData.Code)
	}
}

func TestWebSocketUnknownMessageType(t *testing.T) {
	t.Parallel()
	_, _, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageType("juggle"), nil)

	var errData ErrorData
	decodeData(t, readMessage(t, ws, MessageTypeError), &errData)
	if errData.Code != "unknown_message_type" {
		t.Errorf("Expected unknown_message_type error, got %s", errData.Code)
	}
}

func TestWebSocketDisconnectEndsSession(t *testing.T) {
	t.Parallel()
	_, gs, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageTypeStartGame, StartGameData{Mode: "classic"})
	readMessage(t, ws, MessageTypeGameStarted)

	if gs.SessionCount() != 1 {
		t.Fatalf("Expected 1 session, got %d", gs.SessionCount())
	}

	_ = ws.Close()

	// Give the server time to unregister
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if gs.SessionCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Expected session cleanup after disconnect, still have %d", gs.SessionCount())
}

func TestWebSocketRestartReplacesSession(t *testing.T) {
	t.Parallel()
	_, gs, ws := newWebSocketFixture(t)

	sendMessage(t, ws, MessageTypeStartGame, StartGameData{Mode: "classic"})
	var first GameStartedData
	decodeData(t, readMessage(t, ws, MessageTypeGameStarted), &first)

	sendMessage(t, ws, MessageTypeStartGame, StartGameData{Mode: "blitz"})
	var second GameStartedData
	decodeData(t, readMessage(t, ws, MessageTypeGameStarted), &second)

	if first.SessionID == second.SessionID {
		t.Error("Expected a fresh session ID on restart")
	}
	if gs.SessionCount() != 1 {
		t.Errorf("Expected the old session to be dropped, have %d", gs.SessionCount())
	}
	if _, err := gs.GetSession(first.SessionID); err == nil {
		t.Error("Expected the first session to be gone")
	}
}
