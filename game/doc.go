// Package game implements the session layer of the shootout rules engine:
// modes, scoring, level progression and power-ups on top of the poker
// package's evaluator.
//
// The main type is Session, a plain value that callers thread through the
// pure transforms. Nothing in the package keeps state and nothing blocks:
// timers, persistence and input all belong to the caller.
//
// # Basic Usage
//
// Create a session and play a hand:
//
//	rng := randutil.New(42)
//	s := game.NewSession(game.Blitz, game.DefaultConfig(), rng)
//	s, _ = game.Select(s, s.Pool[0].ID)
//	// ... select four more ...
//	s, result, err := game.Submit(s)
//
// Drive the clock from outside, once per second:
//
//	s = game.Tick(s)
//	if s.Status.Terminal() {
//	    report(s.Score)
//	}
//
// # Determinism
//
// Every transform is a pure function of its inputs; randomness only enters
// through explicit *rand.Rand parameters. Two callers replaying the same
// seed and the same inputs see bit-identical sessions, which is what makes
// recorded runs replayable and scores verifiable after the fact.
//
// # Concurrency
//
// Transforms never share hidden state, so they are safe to call from any
// number of goroutines. The one shared mutable resource is the caller's
// own Session variable; serialize updates to it (the server does this with
// a per-session goroutine).
package game
