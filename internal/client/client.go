// Package client is a WebSocket client for the shootout server. The bot
// command drives complete games through it, and tests use it as a
// reference consumer of the wire protocol.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/sjoves/poker-shootout/internal/server"
)

// Client speaks the shootout message protocol over a WebSocket
type Client struct {
	serverURL string
	conn      *websocket.Conn
	send      chan *server.Message
	receive   chan *server.Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	connected bool
	closeOnce sync.Once
}

// NewClient creates a client for the given server URL
func NewClient(serverURL string, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL: serverURL,
		send:      make(chan *server.Message, 256),
		receive:   make(chan *server.Message, 256),
		logger:    logger.WithPrefix("client"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Connect establishes a WebSocket connection to the server
func (c *Client) Connect() error {
	c.logger.Info("Connecting to server", "url", c.serverURL)

	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	// Convert http/https to ws/wss
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()

	c.logger.Info("Connected to server")
	return nil
}

// Disconnect closes the WebSocket connection
func (c *Client) Disconnect() error {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.conn != nil {
			_ = c.conn.Close() // Ignore close errors during shutdown
			c.connected = false
		}

		c.logger.Info("Disconnected from server")
	})
	return nil
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SendMessage queues a message for the server
func (c *Client) SendMessage(msg *server.Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		return fmt.Errorf("send buffer full")
	}
}

// WaitFor reads server messages until one of the wanted types arrives.
// Unrelated pushes (periodic state broadcasts) are skipped; a protocol
// error from the server surfaces immediately.
func (c *Client) WaitFor(timeout time.Duration, types ...server.MessageType) (*server.Message, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case msg := <-c.receive:
			if msg.Type == server.MessageTypeError {
				var data server.ErrorData
				if err := json.Unmarshal(msg.Data, &data); err != nil {
					return nil, fmt.Errorf("server error (unparseable payload)")
				}
				return nil, fmt.Errorf("server error %s: %s", data.Code, data.Message)
			}
			for _, t := range types {
				if msg.Type == t {
					return msg, nil
				}
			}
			c.logger.Debug("Skipping message", "type", msg.Type)

		case <-deadline.C:
			return nil, fmt.Errorf("timeout waiting for %v", types)

		case <-c.ctx.Done():
			return nil, c.ctx.Err()
		}
	}
}

// TryReceive pops a queued message without blocking
func (c *Client) TryReceive() (*server.Message, bool) {
	select {
	case msg := <-c.receive:
		return msg, true
	default:
		return nil, false
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg server.Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.logger.Debug("Received message", "type", msg.Type)

		select {
		case c.receive <- &msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// StartGame asks the server to start a session in the given mode
func (c *Client) StartGame(mode string, seed int64) error {
	msg, err := server.NewMessage(server.MessageTypeStartGame, server.StartGameData{
		Mode: mode,
		Seed: seed,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// SelectCard moves a pool card into the selection
func (c *Client) SelectCard(cardID string) error {
	msg, err := server.NewMessage(server.MessageTypeSelectCard, server.SelectCardData{
		CardID: cardID,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// DeselectCard returns a selected card to the pool
func (c *Client) DeselectCard(cardID string) error {
	msg, err := server.NewMessage(server.MessageTypeDeselectCard, server.DeselectCardData{
		CardID: cardID,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// SubmitHand scores the current selection
func (c *Client) SubmitHand() error {
	msg, err := server.NewMessage(server.MessageTypeSubmitHand, nil)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// UsePowerUp spends a power-up charge
func (c *Client) UsePowerUp(name string) error {
	msg, err := server.NewMessage(server.MessageTypePowerUp, server.PowerUpData{
		PowerUp: name,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// AdvanceLevel moves past a level interstitial
func (c *Client) AdvanceLevel() error {
	msg, err := server.NewMessage(server.MessageTypeAdvanceLevel, nil)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// FinishGame cashes out a classic run
func (c *Client) FinishGame() error {
	msg, err := server.NewMessage(server.MessageTypeFinishGame, nil)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// GetState requests a session snapshot
func (c *Client) GetState() error {
	msg, err := server.NewMessage(server.MessageTypeGetState, nil)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}
