package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/randutil"
	"github.com/sjoves/poker-shootout/internal/server"
	"github.com/sjoves/poker-shootout/internal/simulator"
	"github.com/sjoves/poker-shootout/poker"
)

// waitTimeout bounds every wait for a server response. State pushes
// arrive at least once per clock second, so anything slower is a stall.
const waitTimeout = 15 * time.Second

// BotConfig tunes an automated player
type BotConfig struct {
	Strategy  simulator.Strategy
	Seed      int64         // strategy RNG seed (0 draws one)
	Delay     time.Duration // pause between submitted hands
	MaxLevels int           // challenge: stop after clearing this many levels (0 = no cap)
}

// Bot plays complete games over a client connection, standing in for a
// human with one of the simulator strategies.
type Bot struct {
	client    *Client
	strategy  simulator.Strategy
	rng       *rand.Rand
	logger    *log.Logger
	delay     time.Duration
	maxLevels int
}

// NewBot creates a bot driving the given connected client
func NewBot(c *Client, cfg BotConfig, logger *log.Logger) *Bot {
	strategy := cfg.Strategy
	if strategy == nil {
		strategy, _ = simulator.NewStrategy("greedy")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}

	return &Bot{
		client:    c,
		strategy:  strategy,
		rng:       randutil.New(seed),
		logger:    logger.WithPrefix("bot"),
		delay:     cfg.Delay,
		maxLevels: cfg.MaxLevels,
	}
}

// Play starts a session in the given mode and plays it to the end,
// returning the final state snapshot.
func (b *Bot) Play(ctx context.Context, mode string, gameSeed int64) (server.SessionState, error) {
	if err := b.client.StartGame(mode, gameSeed); err != nil {
		return server.SessionState{}, err
	}

	msg, err := b.client.WaitFor(waitTimeout, server.MessageTypeGameStarted)
	if err != nil {
		return server.SessionState{}, err
	}
	var started server.GameStartedData
	if err := json.Unmarshal(msg.Data, &started); err != nil {
		return server.SessionState{}, fmt.Errorf("bad game_started payload: %w", err)
	}

	state := started.State
	b.logger.Info("Game started",
		"session", started.SessionID,
		"mode", state.Mode,
		"strategy", b.strategy.Name())

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		if terminalStatus(state.Status) {
			b.logger.Info("Game finished",
				"status", state.Status,
				"score", state.Score,
				"hands", state.HandsPlayed)
			return state, nil
		}

		switch state.Status {
		case game.StatusLevelComplete.String():
			if b.maxLevels > 0 && state.Level >= b.maxLevels && !state.BonusPending {
				b.logger.Info("Level cap reached", "level", state.Level, "score", state.Score)
				return state, nil
			}
			if err := b.client.AdvanceLevel(); err != nil {
				return state, err
			}
			state, err = b.refreshState()

		case game.StatusBonusFailed.String():
			if err := b.client.AdvanceLevel(); err != nil {
				return state, err
			}
			state, err = b.refreshState()

		case game.StatusPlaying.String(), game.StatusBonusRound.String():
			state, err = b.playHand(state)

		default:
			return state, fmt.Errorf("unexpected session status %q", state.Status)
		}

		if err != nil {
			return state, err
		}
	}
}

// playHand picks, selects and submits one hand, then refreshes the state
func (b *Bot) playHand(state server.SessionState) (server.SessionState, error) {
	pool, err := poolCards(state.Pool)
	if err != nil {
		return state, err
	}

	hand := b.strategy.PickHand(game.Session{Pool: pool}, b.rng)
	if hand == nil {
		if state.Mode == game.Classic.String() {
			if err := b.client.FinishGame(); err != nil {
				return state, err
			}
			return b.refreshState()
		}
		// Nothing playable; sit out a clock tick
		return b.nextPush()
	}

	for _, card := range hand {
		if err := b.client.SelectCard(card.ID); err != nil {
			return state, err
		}
	}
	if err := b.client.SubmitHand(); err != nil {
		return state, err
	}

	msg, err := b.client.WaitFor(waitTimeout, server.MessageTypeHandResult)
	if err != nil {
		// The clock keeps moving between our snapshot and the submit, so
		// a rejected play means the state went stale, not that the game
		// broke. Resync and let the main loop try again.
		b.logger.Warn("Play rejected, resyncing", "error", err)
		return b.refreshState()
	}
	var hr server.HandResultData
	if err := json.Unmarshal(msg.Data, &hr); err != nil {
		return state, fmt.Errorf("bad hand_result payload: %w", err)
	}
	b.logger.Info("Hand scored",
		"category", hr.Category,
		"points", hr.TotalPoints,
		"score", hr.Score)

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	return b.refreshState()
}

// refreshState requests a snapshot and waits for it. Error messages from
// plays the snapshot supersedes drain ahead of it and are skipped.
func (b *Bot) refreshState() (server.SessionState, error) {
	if err := b.client.GetState(); err != nil {
		return server.SessionState{}, err
	}

	for {
		state, err := b.nextPush()
		if err == nil {
			return state, nil
		}
		if !retryableDesync(err) {
			return server.SessionState{}, err
		}
		b.logger.Debug("Skipping stale error during resync", "error", err)
	}
}

// retryableDesync reports whether an error names a play that failed only
// because the session moved underneath it
func retryableDesync(err error) bool {
	s := err.Error()
	for _, code := range []string{
		"select_failed",
		"deselect_failed",
		"submit_failed",
		"power_up_failed",
		"advance_failed",
	} {
		if strings.Contains(s, code) {
			return true
		}
	}
	return false
}

// nextPush waits for the next state-bearing message. Queued pushes are
// drained so the freshest snapshot wins; anything older only describes a
// world the clock has already moved past.
func (b *Bot) nextPush() (server.SessionState, error) {
	msg, err := b.client.WaitFor(waitTimeout, server.MessageTypeGameState, server.MessageTypeGameOver)
	if err != nil {
		return server.SessionState{}, err
	}

	for {
		queued, ok := b.client.TryReceive()
		if !ok {
			break
		}
		switch queued.Type {
		case server.MessageTypeGameState, server.MessageTypeGameOver:
			msg = queued
		default:
			b.logger.Debug("Dropping superseded message", "type", queued.Type)
		}
	}

	if msg.Type == server.MessageTypeGameOver {
		var over server.GameOverData
		if err := json.Unmarshal(msg.Data, &over); err != nil {
			return server.SessionState{}, fmt.Errorf("bad game_over payload: %w", err)
		}
		return over.State, nil
	}

	var state server.SessionState
	if err := json.Unmarshal(msg.Data, &state); err != nil {
		return server.SessionState{}, fmt.Errorf("bad game_state payload: %w", err)
	}
	return state, nil
}

func terminalStatus(status string) bool {
	return status == game.StatusComplete.String() || status == game.StatusGameOver.String()
}

// poolCards rebuilds engine cards from their wire form
func poolCards(states []server.CardState) (poker.Deck, error) {
	pool := make(poker.Deck, 0, len(states))
	for _, cs := range states {
		card, err := poker.ParseCard(cs.ID)
		if err != nil {
			return nil, fmt.Errorf("bad card in state: %w", err)
		}
		pool = append(pool, card)
	}
	return pool, nil
}
