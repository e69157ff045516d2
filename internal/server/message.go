package server

import (
	"encoding/json"
	"time"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/poker"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
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

// Client → Server Messages

type StartGameData struct {
	Mode string `json:"mode"`
	Seed int64  `json:"seed,omitempty"`
}

type SelectCardData struct {
	CardID string `json:"cardId"`
}

type DeselectCardData struct {
	CardID string `json:"cardId"`
}

type PowerUpData struct {
	PowerUp string `json:"powerUp"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CardState is the wire form of a single card
type CardState struct {
	ID    string `json:"id"`
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
}

// ChargesState reports the remaining power-up charges
type ChargesState struct {
	Sharpshooter int `json:"sharpshooter"`
	TimeShift    int `json:"timeShift"`
	Redraw       int `json:"redraw"`
}

// SessionState is a full snapshot of one session, pushed on every tick
// while the clock is running and after every accepted command
type SessionState struct {
	SessionID     string       `json:"sessionId"`
	Mode          string       `json:"mode"`
	Status        string       `json:"status"`
	Score         int          `json:"score"`
	RawScore      int          `json:"rawScore"`
	LevelScore    int          `json:"levelScore"`
	HandsPlayed   int          `json:"handsPlayed"`
	Pool          []CardState  `json:"pool"`
	Selected      []CardState  `json:"selected"`
	TimeRemaining int          `json:"timeRemaining"`
	TimeElapsed   int          `json:"timeElapsed"`
	Level         int          `json:"level,omitempty"`
	Goal          int          `json:"goal,omitempty"`
	Phase         string       `json:"phase,omitempty"`
	Round         int          `json:"round,omitempty"`
	Speed         float64      `json:"speed,omitempty"`
	Stars         int          `json:"stars,omitempty"`
	Streak        int          `json:"streak"`
	BonusRound    int          `json:"bonusRound,omitempty"`
	BonusHands    int          `json:"bonusHands,omitempty"`
	BonusPending  bool         `json:"bonusPending,omitempty"`
	Charges       ChargesState `json:"charges"`
}

type GameStartedData struct {
	SessionID string       `json:"sessionId"`
	State     SessionState `json:"state"`
}

// HandResultData reports a scored hand along with the session totals it
// produced, so clients can animate the delta without a second round trip
type HandResultData struct {
	Category    string      `json:"category"`
	Cards       []CardState `json:"cards"`
	BasePoints  int         `json:"basePoints"`
	ValueBonus  int         `json:"valueBonus"`
	TotalPoints int         `json:"totalPoints"`
	Streak      int         `json:"streak"`
	Score       int         `json:"score"`
	LevelScore  int         `json:"levelScore,omitempty"`
}

type GameOverData struct {
	SessionID string       `json:"sessionId"`
	Score     int          `json:"score"`
	State     SessionState `json:"state"`
}

// Helper functions to convert between engine types and message types

func CardStateFromPoker(c poker.Card) CardState {
	return CardState{
		ID:    c.ID,
		Rank:  c.Rank.String(),
		Suit:  c.Suit.String(),
		Value: c.Value(),
	}
}

func cardStates(cards []poker.Card) []CardState {
	out := make([]CardState, len(cards))
	for i, c := range cards {
		out[i] = CardStateFromPoker(c)
	}
	return out
}

func SessionStateFromGame(sessionID string, s game.Session) SessionState {
	state := SessionState{
		SessionID:     sessionID,
		Mode:          s.Mode.String(),
		Status:        s.Status.String(),
		Score:         s.Score,
		RawScore:      s.RawScore,
		LevelScore:    s.LevelScore,
		HandsPlayed:   s.HandsPlayed,
		Pool:          cardStates(s.Pool),
		Selected:      cardStates(s.Selected),
		TimeRemaining: s.TimeRemaining,
		TimeElapsed:   s.TimeElapsed,
		Streak:        s.Streak,
		BonusRound:    s.BonusRound,
		BonusHands:    s.BonusHands,
		BonusPending:  s.BonusPending,
		Charges: ChargesState{
			Sharpshooter: s.Charges.Sharpshooter,
			TimeShift:    s.Charges.TimeShift,
			Redraw:       s.Charges.Redraw,
		},
	}

	if s.Mode == game.Challenge {
		state.Level = s.Level
		state.Goal = s.Goal
		state.Phase = s.Phase.String()
		state.Round = s.Round
		state.Speed = s.Speed
		state.Stars = s.Stars
	}

	return state
}

func HandResultFromPoker(hr poker.HandResult, s game.Session) HandResultData {
	return HandResultData{
		Category:    hr.Category.String(),
		Cards:       cardStates(hr.Cards),
		BasePoints:  hr.Category.BasePoints(),
		ValueBonus:  hr.ValueBonus,
		TotalPoints: hr.TotalPoints,
		Streak:      s.Streak,
		Score:       s.Score,
		LevelScore:  s.LevelScore,
	}
}
