package game

import "fmt"

// Mode selects the rule set of a session.
type Mode int

const (
	// Classic counts time up and consumes cards permanently; the run
	// ends when no full hand can be formed, closing with a time bonus
	// and a leftover penalty.
	Classic Mode = iota
	// Blitz is a fixed countdown against a recycling deck; the final
	// score is raw points times hands played, settled at time-out.
	Blitz
	// Challenge is the level mode: per-level countdowns, goals, phase
	// rotation, streak multipliers and bonus rounds.
	Challenge
)

// String returns the wire name of the mode
func (m Mode) String() string {
	switch m {
	case Classic:
		return "classic"
	case Blitz:
		return "blitz"
	case Challenge:
		return "challenge"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode wire name
func ParseMode(s string) (Mode, error) {
	switch s {
	case "classic":
		return Classic, nil
	case "blitz":
		return Blitz, nil
	case "challenge":
		return Challenge, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", s)
	}
}

// Recycles reports whether submitted cards return to the live pool after
// scoring. Classic is the only consuming mode.
func (m Mode) Recycles() bool {
	return m != Classic
}

// Timed reports whether the mode plays against a countdown.
func (m Mode) Timed() bool {
	return m != Classic
}

// Status is the lifecycle state of a session.
type Status int

const (
	StatusPlaying Status = iota
	StatusLevelComplete
	StatusBonusRound
	StatusBonusFailed
	StatusComplete
	StatusGameOver
)

// String returns the wire name of the status
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLevelComplete:
		return "level_complete"
	case StatusBonusRound:
		return "bonus_round"
	case StatusBonusFailed:
		return "bonus_failed"
	case StatusComplete:
		return "complete"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is finished for good.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusGameOver
}
