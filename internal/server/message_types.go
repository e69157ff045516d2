package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeStartGame    MessageType = "start_game"
	MessageTypeSelectCard   MessageType = "select_card"
	MessageTypeDeselectCard MessageType = "deselect_card"
	MessageTypeSubmitHand   MessageType = "submit_hand"
	MessageTypePowerUp      MessageType = "power_up"
	MessageTypeAdvanceLevel MessageType = "advance_level"
	MessageTypeFinishGame   MessageType = "finish_game"
	MessageTypeGetState     MessageType = "get_state"

	// Server to client messages
	MessageTypeGameStarted MessageType = "game_started"
	MessageTypeGameState   MessageType = "game_state"
	MessageTypeHandResult  MessageType = "hand_result"
	MessageTypeGameOver    MessageType = "game_over"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
