package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	sessionID   string
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// SetSession associates this connection with a session
func (c *Connection) SetSession(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
}

// GetSession returns the associated session ID
func (c *Connection) GetSession() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "session", c.GetSession())

	if c.gameService == nil {
		c.sendError("service_unavailable", "Game service not available")
		return
	}

	switch msg.Type {
	case MessageTypeStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start game data")
			return
		}
		c.handleStartGame(data)

	case MessageTypeSelectCard:
		var data SelectCardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse select card data")
			return
		}
		if id, ok := c.requireSession(); ok {
			if _, err := c.gameService.SelectCard(id, data.CardID); err != nil {
				c.sendError("select_failed", err.Error())
			}
		}

	case MessageTypeDeselectCard:
		var data DeselectCardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse deselect card data")
			return
		}
		if id, ok := c.requireSession(); ok {
			if _, err := c.gameService.DeselectCard(id, data.CardID); err != nil {
				c.sendError("deselect_failed", err.Error())
			}
		}

	case MessageTypeSubmitHand:
		c.handleSubmitHand()

	case MessageTypePowerUp:
		var data PowerUpData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse power-up data")
			return
		}
		if id, ok := c.requireSession(); ok {
			if _, err := c.gameService.UsePowerUp(id, data.PowerUp); err != nil {
				c.sendError("power_up_failed", err.Error())
			}
		}

	case MessageTypeAdvanceLevel:
		if id, ok := c.requireSession(); ok {
			if _, err := c.gameService.AdvanceLevel(id); err != nil {
				c.sendError("advance_failed", err.Error())
			}
		}

	case MessageTypeFinishGame:
		if id, ok := c.requireSession(); ok {
			if _, err := c.gameService.FinishGame(id); err != nil {
				c.sendError("finish_failed", err.Error())
			}
		}

	case MessageTypeGetState:
		c.handleGetState()

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// requireSession fetches the session ID or reports the missing one
func (c *Connection) requireSession() (string, bool) {
	id := c.GetSession()
	if id == "" {
		c.sendError("no_session", "Start a game first")
		return "", false
	}
	return id, true
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

func (c *Connection) handleStartGame(data StartGameData) {
	c.logger.Info("Start game request", "mode", data.Mode)

	// A replacement game tears down whatever this connection was playing
	if old := c.GetSession(); old != "" {
		c.gameService.EndSession(old)
		c.SetSession("")
	}

	id, sess, err := c.gameService.StartGame(data.Mode, data.Seed)
	if err != nil {
		c.sendError("start_failed", err.Error())
		return
	}

	c.SetSession(id)

	response, _ := NewMessage(MessageTypeGameStarted, GameStartedData{
		SessionID: id,
		State:     SessionStateFromGame(id, sess),
	})
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleSubmitHand() {
	id, ok := c.requireSession()
	if !ok {
		return
	}

	sess, hr, err := c.gameService.SubmitHand(id)
	if err != nil {
		c.sendError("submit_failed", err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeHandResult, HandResultFromPoker(hr, sess))
	_ = c.SendMessage(response) // Ignore send errors

	// A classic run can end on the submit itself, when the deck runs dry.
	if sess.Status.Terminal() {
		c.gameService.pushGameOver(id, sess)
	}
}

func (c *Connection) handleGetState() {
	id, ok := c.requireSession()
	if !ok {
		return
	}

	sess, err := c.gameService.GetSession(id)
	if err != nil {
		c.sendError("state_failed", err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeGameState, SessionStateFromGame(id, sess))
	_ = c.SendMessage(response) // Ignore send errors
}
