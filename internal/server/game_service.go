package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/gameid"
	"github.com/sjoves/poker-shootout/internal/randutil"
	"github.com/sjoves/poker-shootout/poker"
)

// errSessionOver stops a session ticker once the session is terminal.
var errSessionOver = errors.New("session over")

// liveSession pairs a session value with the ticker driving its clock.
// The mutex covers both the session and its rng: commands arrive on the
// connection goroutine while ticks arrive on the clock goroutine.
type liveSession struct {
	id     string
	mu     sync.Mutex
	sess   game.Session
	rng    *rand.Rand
	cancel context.CancelFunc
}

// GameService hosts sessions and routes commands into the engine. The
// engine itself is synchronous and value-based; everything concurrent
// lives here.
type GameService struct {
	server   *Server
	logger   *log.Logger
	clock    quartz.Clock
	gameCfg  game.Config
	ids      *gameid.Generator
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewGameService creates a game service backed by the given clock. Tests
// pass a mock clock to drive ticks explicitly.
func NewGameService(server *Server, logger *log.Logger, gameCfg game.Config, clock quartz.Clock) *GameService {
	return &GameService{
		server:   server,
		logger:   logger.WithPrefix("game"),
		clock:    clock,
		gameCfg:  gameCfg,
		ids:      gameid.NewGenerator(nil),
		sessions: make(map[string]*liveSession),
	}
}

// StartGame creates a session in the given mode and starts its one-second
// ticker. A zero seed draws a fresh one.
func (gs *GameService) StartGame(mode string, seed int64) (string, game.Session, error) {
	m, err := game.ParseMode(mode)
	if err != nil {
		return "", game.Session{}, err
	}

	id := gs.ids.Generate()

	if seed == 0 {
		seed = randutil.Seed()
	}
	rng := randutil.New(seed)
	sess := game.NewSession(m, gs.gameCfg, rng)

	ctx, cancel := context.WithCancel(context.Background())
	ls := &liveSession{
		id:     id,
		sess:   sess,
		rng:    rng,
		cancel: cancel,
	}

	gs.mu.Lock()
	gs.sessions[id] = ls
	gs.mu.Unlock()

	waiter := gs.clock.TickerFunc(ctx, time.Second, func() error {
		return gs.tickSession(ls)
	})
	go func() {
		err := waiter.Wait()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errSessionOver) {
			gs.logger.Error("Session ticker stopped", "session", id, "error", err)
		}
	}()

	gs.logger.Info("Session started", "session", id, "mode", m, "seed", seed)
	return id, sess, nil
}

// tickSession advances the session clock by one second and pushes the
// resulting state. Returning errSessionOver stops the ticker.
func (gs *GameService) tickSession(ls *liveSession) error {
	ls.mu.Lock()
	before := ls.sess
	ls.sess = game.Tick(ls.sess)
	after := ls.sess
	ls.mu.Unlock()

	// Interstitial screens do not consume time; skip the push when the
	// tick changed nothing.
	if after.TimeElapsed == before.TimeElapsed && after.Status == before.Status {
		return nil
	}

	if after.Status.Terminal() {
		gs.pushGameOver(ls.id, after)
		return errSessionOver
	}
	gs.pushState(ls.id, after)
	return nil
}

// GetSession returns a snapshot of the identified session.
func (gs *GameService) GetSession(sessionID string) (game.Session, error) {
	ls, err := gs.lookup(sessionID)
	if err != nil {
		return game.Session{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.sess, nil
}

// SelectCard moves a pool card into the selection.
func (gs *GameService) SelectCard(sessionID, cardID string) (game.Session, error) {
	return gs.apply(sessionID, func(s game.Session, _ *rand.Rand) (game.Session, error) {
		return game.Select(s, cardID)
	})
}

// DeselectCard returns a selected card to the pool.
func (gs *GameService) DeselectCard(sessionID, cardID string) (game.Session, error) {
	return gs.apply(sessionID, func(s game.Session, _ *rand.Rand) (game.Session, error) {
		return game.Deselect(s, cardID)
	})
}

// SubmitHand scores the current selection.
func (gs *GameService) SubmitHand(sessionID string) (game.Session, poker.HandResult, error) {
	var hr poker.HandResult
	sess, err := gs.apply(sessionID, func(s game.Session, _ *rand.Rand) (game.Session, error) {
		next, result, err := game.Submit(s)
		if err != nil {
			return s, err
		}
		hr = result
		return next, nil
	})
	return sess, hr, err
}

// UsePowerUp applies a power-up by wire name.
func (gs *GameService) UsePowerUp(sessionID, name string) (game.Session, error) {
	p, err := game.ParsePowerUp(name)
	if err != nil {
		return game.Session{}, err
	}
	return gs.apply(sessionID, func(s game.Session, rng *rand.Rand) (game.Session, error) {
		next, ok := game.UsePowerUp(s, p, rng)
		if !ok {
			return s, fmt.Errorf("power-up %s not available", p)
		}
		return next, nil
	})
}

// AdvanceLevel moves a session off an interstitial screen.
func (gs *GameService) AdvanceLevel(sessionID string) (game.Session, error) {
	return gs.apply(sessionID, func(s game.Session, rng *rand.Rand) (game.Session, error) {
		next := game.AdvanceLevel(s, rng)
		if next.Status == s.Status && next.Level == s.Level {
			return s, fmt.Errorf("session is not awaiting a level advance")
		}
		return next, nil
	})
}

// FinishGame closes a classic session early.
func (gs *GameService) FinishGame(sessionID string) (game.Session, error) {
	sess, err := gs.apply(sessionID, func(s game.Session, _ *rand.Rand) (game.Session, error) {
		next := game.Finish(s)
		if next.Status == s.Status {
			return s, fmt.Errorf("session cannot be finished now")
		}
		return next, nil
	})
	if err != nil {
		return sess, err
	}
	if sess.Status.Terminal() {
		gs.pushGameOver(sessionID, sess)
	}
	return sess, nil
}

// EndSession stops the ticker and drops the session.
func (gs *GameService) EndSession(sessionID string) {
	gs.mu.Lock()
	ls, ok := gs.sessions[sessionID]
	if ok {
		delete(gs.sessions, sessionID)
	}
	gs.mu.Unlock()

	if ok {
		ls.cancel()
		gs.logger.Info("Session ended", "session", sessionID)
	}
}

// SessionCount returns the number of live sessions.
func (gs *GameService) SessionCount() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return len(gs.sessions)
}

func (gs *GameService) lookup(sessionID string) (*liveSession, error) {
	gs.mu.RLock()
	ls, ok := gs.sessions[sessionID]
	gs.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return ls, nil
}

// apply runs one engine transform under the session lock. On success the
// new state is pushed to the attached client; on failure the session is
// left untouched and only the error travels back.
func (gs *GameService) apply(sessionID string, fn func(game.Session, *rand.Rand) (game.Session, error)) (game.Session, error) {
	ls, err := gs.lookup(sessionID)
	if err != nil {
		return game.Session{}, err
	}

	ls.mu.Lock()
	next, err := fn(ls.sess, ls.rng)
	if err != nil {
		cur := ls.sess
		ls.mu.Unlock()
		return cur, err
	}
	ls.sess = next
	ls.mu.Unlock()

	gs.pushState(sessionID, next)
	return next, nil
}

func (gs *GameService) pushState(sessionID string, sess game.Session) {
	if gs.server == nil {
		return
	}
	msg, err := NewMessage(MessageTypeGameState, SessionStateFromGame(sessionID, sess))
	if err != nil {
		gs.logger.Error("Failed to create state message", "error", err)
		return
	}
	if err := gs.server.SendToSession(sessionID, msg); err != nil {
		gs.logger.Debug("No client attached to session", "session", sessionID)
	}
}

func (gs *GameService) pushGameOver(sessionID string, sess game.Session) {
	if gs.server == nil {
		return
	}
	msg, err := NewMessage(MessageTypeGameOver, GameOverData{
		SessionID: sessionID,
		Score:     sess.Score,
		State:     SessionStateFromGame(sessionID, sess),
	})
	if err != nil {
		gs.logger.Error("Failed to create game over message", "error", err)
		return
	}
	if err := gs.server.SendToSession(sessionID, msg); err != nil {
		gs.logger.Debug("No client attached to session", "session", sessionID)
	}
	gs.logger.Info("Session finished", "session", sessionID,
		"status", sess.Status, "score", sess.Score, "hands", sess.HandsPlayed)
}
