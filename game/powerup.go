package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/sjoves/poker-shootout/poker"
)

// PowerUp identifies a one-shot session effect.
type PowerUp int

const (
	// PowerUpSharpshooter replaces the selection with the strongest
	// hand the live cards can form.
	PowerUpSharpshooter PowerUp = iota
	// PowerUpTimeShift adds ten seconds to the running countdown.
	PowerUpTimeShift
	// PowerUpRedraw reshuffles the live pool.
	PowerUpRedraw
)

const timeShiftSeconds = 10

// String returns the wire name of the power-up
func (p PowerUp) String() string {
	switch p {
	case PowerUpSharpshooter:
		return "sharpshooter"
	case PowerUpTimeShift:
		return "time_shift"
	case PowerUpRedraw:
		return "redraw"
	default:
		return "unknown"
	}
}

// ParsePowerUp parses a power-up wire name
func ParsePowerUp(s string) (PowerUp, error) {
	switch s {
	case "sharpshooter":
		return PowerUpSharpshooter, nil
	case "time_shift":
		return PowerUpTimeShift, nil
	case "redraw":
		return PowerUpRedraw, nil
	default:
		return 0, fmt.Errorf("unknown power-up: %q", s)
	}
}

// UsePowerUp applies p to the session. The boolean is false when the
// effect did not apply (out of charges, wrong mode, or nothing for the
// effect to do), and in that case no charge is consumed and the session
// comes back unchanged.
func UsePowerUp(s Session, p PowerUp, rng *rand.Rand) (Session, bool) {
	if !s.accepting() {
		return s, false
	}
	switch p {
	case PowerUpSharpshooter:
		return useSharpshooter(s, rng)
	case PowerUpTimeShift:
		return useTimeShift(s)
	case PowerUpRedraw:
		return useRedraw(s, rng)
	default:
		return s, false
	}
}

// useSharpshooter walks the categories from strongest to weakest over the
// live cards (pool plus current selection) and loads the first hand that
// synthesizes. A pool that can't form even a high card leaves the charge
// unspent.
func useSharpshooter(s Session, rng *rand.Rand) (Session, bool) {
	if s.Charges.Sharpshooter <= 0 {
		return s, false
	}
	available := withCards(s.Pool, s.Selected)
	for cat := poker.RoyalFlush; cat >= poker.HighCard; cat-- {
		hand := poker.Synthesize(cat, available, rng)
		if hand == nil {
			continue
		}
		s.Charges.Sharpshooter--
		s.Selected = hand
		s.Pool = withoutCards(available, hand)
		return s, true
	}
	return s, false
}

func useTimeShift(s Session) (Session, bool) {
	if s.Charges.TimeShift <= 0 || s.Mode == Classic {
		return s, false
	}
	s.Charges.TimeShift--
	s.TimeRemaining += timeShiftSeconds
	return s, true
}

func useRedraw(s Session, rng *rand.Rand) (Session, bool) {
	if s.Charges.Redraw <= 0 || len(s.Pool) < 2 {
		return s, false
	}
	s.Charges.Redraw--
	s.Pool = s.Pool.Shuffled(rng)
	return s, true
}
