package game

import (
	"errors"
	rand "math/rand/v2"

	"github.com/sjoves/poker-shootout/poker"
)

// Sentinel errors returned by session transforms. They signal rejected
// inputs; the session value accompanying them is always the unchanged
// original.
var (
	ErrNotPlaying      = errors.New("session is not accepting play")
	ErrCardNotInPool   = errors.New("card is not in the live pool")
	ErrCardNotSelected = errors.New("card is not selected")
	ErrSelectionFull   = errors.New("selection already holds five cards")
	ErrSelectionShort  = errors.New("selection does not hold five cards")
)

// Session is one game in progress. It is a plain value: every transform
// returns a new Session and never mutates its input, so callers own
// serialization, persistence and teardown outright. Slice fields are
// copy-on-write; transforms never write through a shared backing array.
type Session struct {
	Mode   Mode
	Status Status
	Config Config

	// Score is the running total, including every bonus and multiplier.
	// Blitz rewrites it at time-out; classic rewrites it at the close.
	Score int
	// RawScore accumulates plain evaluated hand points, before the
	// final-stretch, streak and bonus-round multipliers.
	RawScore int
	// LevelScore is the progress toward the current challenge goal.
	LevelScore  int
	HandsPlayed int

	Pool     poker.Deck   // live, selectable cards
	Used     []poker.Card // classic only: permanently consumed cards
	Selected []poker.Card

	TimeRemaining int // countdown: blitz, challenge levels, bonus rounds
	TimeElapsed   int // total seconds played

	Level int
	Goal  int
	Phase Phase
	Round int
	Speed float64
	Stars int // rating of the last cleared level

	Streak   int
	LastRank int // strength rank of the previous scored hand; 0 = none

	BonusRound   int  // bonus rounds entered so far
	BonusHands   int  // hands scored in the current bonus round
	BonusPending bool // a bonus round is owed before the next level

	Charges Charges
}

// NewSession starts a session in the given mode. The rng seeds the deck
// shuffle and must not be nil.
func NewSession(mode Mode, cfg Config, rng *rand.Rand) Session {
	cfg = cfg.withDefaults()
	s := Session{
		Mode:    mode,
		Status:  StatusPlaying,
		Config:  cfg,
		Pool:    poker.NewDeck().Shuffled(rng),
		Charges: cfg.Charges,
	}

	switch mode {
	case Blitz:
		s.TimeRemaining = cfg.BlitzSeconds
	case Challenge:
		s.Level = 1
		s.Goal = LevelGoal(1)
		s.Phase, s.Round = LevelInfo(1, cfg)
		s.Speed = LevelSpeed(1, cfg)
		s.TimeRemaining = cfg.LevelSeconds
	}
	return s
}

// accepting reports whether hands can be built and submitted right now.
func (s Session) accepting() bool {
	return s.Status == StatusPlaying || s.Status == StatusBonusRound
}

// inFinalStretch reports whether a countdown is in its doubled tail.
// Classic never has time remaining, so the check is mode-agnostic.
func (s Session) inFinalStretch() bool {
	return s.TimeRemaining > 0 && s.TimeRemaining <= FinalStretchSeconds
}

// Select moves the identified card from the pool into the selection.
func Select(s Session, cardID string) (Session, error) {
	if !s.accepting() {
		return s, ErrNotPlaying
	}
	if len(s.Selected) >= poker.HandSize {
		return s, ErrSelectionFull
	}
	i := indexOf(s.Pool, cardID)
	if i < 0 {
		return s, ErrCardNotInPool
	}
	card := s.Pool[i]
	s.Pool = withoutIndex(s.Pool, i)
	s.Selected = withCard(s.Selected, card)
	return s, nil
}

// Deselect returns the identified card from the selection to the pool.
func Deselect(s Session, cardID string) (Session, error) {
	if !s.accepting() {
		return s, ErrNotPlaying
	}
	i := indexOf(s.Selected, cardID)
	if i < 0 {
		return s, ErrCardNotSelected
	}
	card := s.Selected[i]
	s.Selected = withoutIndex(s.Selected, i)
	s.Pool = withCard(s.Pool, card)
	return s, nil
}

// Preview evaluates the current selection without submitting it. Below
// five cards the result degrades to a high-card reading, which makes it
// safe to call on every selection change.
func Preview(s Session) poker.HandResult {
	return poker.Evaluate(s.Selected)
}

// Submit scores the selected five cards and applies mode rules: the
// final-stretch doubling, challenge streaks, bonus-round doubling, card
// recycling or consumption, and level or run completion.
func Submit(s Session) (Session, poker.HandResult, error) {
	if !s.accepting() {
		return s, poker.HandResult{}, ErrNotPlaying
	}
	if len(s.Selected) != poker.HandSize {
		return s, poker.HandResult{}, ErrSelectionShort
	}

	result := poker.Evaluate(s.Selected)
	base := result.TotalPoints

	points := base
	if s.inFinalStretch() {
		points *= 2
	}

	s.RawScore += base
	s.HandsPlayed++

	if s.Status == StatusBonusRound {
		s.Score += points * 2
		s.BonusHands++
	} else if s.Mode == Challenge {
		if s.LastRank != 0 && result.Category.StrengthRank() < s.LastRank {
			s.Streak++
		} else {
			s.Streak = 0
		}
		s.LastRank = result.Category.StrengthRank()

		points = applyStreak(points, s.Streak)
		s.Score += points
		s.LevelScore += points
	} else {
		s.Score += points
	}

	// Card lifecycle: recycling modes feed the hand back into the pool,
	// classic retires it. Bonus rounds always recycle their own deck.
	if s.Mode.Recycles() || s.Status == StatusBonusRound {
		s.Pool = withCards(s.Pool, s.Selected)
	} else {
		s.Used = withCards(s.Used, s.Selected)
	}
	s.Selected = nil

	if s.Status == StatusPlaying {
		switch {
		case s.Mode == Challenge && s.LevelScore >= s.Goal:
			s.Status = StatusLevelComplete
			s.Stars = StarRating(s.LevelScore, s.Goal)
			s.BonusPending = BonusRoundDue(s.Level)
		case s.Mode == Classic && len(s.Pool) < poker.HandSize:
			s = closeClassic(s)
		}
	}

	return s, result, nil
}

// Tick advances the session clock by one second. The caller owns the
// timer; the engine only applies its consequences: blitz settlement,
// challenge game over, and bonus-round resolution.
func Tick(s Session) Session {
	switch s.Status {
	case StatusPlaying:
		s.TimeElapsed++
		if s.Mode == Classic {
			return s
		}
		s.TimeRemaining--
		if s.TimeRemaining > 0 {
			return s
		}
		s.TimeRemaining = 0
		switch s.Mode {
		case Blitz:
			// Settled once, from the pre-multiplier raw total. The
			// final-stretch doubling never feeds this product.
			s.Score = s.RawScore * s.HandsPlayed
			s.Status = StatusComplete
		case Challenge:
			s.Status = StatusGameOver
		}
	case StatusBonusRound:
		s.TimeElapsed++
		s.TimeRemaining--
		if s.TimeRemaining > 0 {
			return s
		}
		s.TimeRemaining = 0
		if s.BonusHands > 0 {
			s.Status = StatusLevelComplete
		} else {
			s.Status = StatusBonusFailed
		}
	}
	return s
}

// AdvanceLevel moves a challenge session out of an interstitial: into the
// owed bonus round, or on to the next numbered level. Bonus rounds never
// increment the level counter.
func AdvanceLevel(s Session, rng *rand.Rand) Session {
	switch s.Status {
	case StatusLevelComplete:
		if s.BonusPending {
			return startBonusRound(s, rng)
		}
		return startLevel(s, s.Level+1, rng)
	case StatusBonusFailed:
		return startLevel(s, s.Level+1, rng)
	default:
		return s
	}
}

// Finish ends a classic run early with the same closing tally that deck
// exhaustion applies.
func Finish(s Session) Session {
	if s.Mode != Classic || s.Status != StatusPlaying {
		return s
	}
	return closeClassic(s)
}

func startBonusRound(s Session, rng *rand.Rand) Session {
	s.Status = StatusBonusRound
	s.BonusPending = false
	s.BonusRound++
	s.BonusHands = 0
	s.Pool = poker.NewBonusDeck(s.BonusRound, rng)
	s.Selected = nil
	s.TimeRemaining = s.Config.BonusSeconds
	return s
}

func startLevel(s Session, level int, rng *rand.Rand) Session {
	s.Status = StatusPlaying
	s.Level = level
	s.Goal = LevelGoal(level)
	s.Phase, s.Round = LevelInfo(level, s.Config)
	s.Speed = LevelSpeed(level, s.Config)
	s.LevelScore = 0
	s.Stars = 0
	s.Streak = 0
	s.LastRank = 0
	s.Pool = poker.NewDeck().Shuffled(rng)
	s.Selected = nil
	s.TimeRemaining = s.Config.LevelSeconds
	return s
}

// closeClassic settles a classic run: raw points, plus the time bonus,
// minus the leftover penalty over every card never played, an unsubmitted
// selection included.
func closeClassic(s Session) Session {
	leftovers := withCards(s.Pool, s.Selected)
	s.Score = s.RawScore + TimeBonus(s.TimeElapsed) - LeftoverPenalty(leftovers)
	s.Status = StatusComplete
	return s
}

func indexOf(cards []poker.Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func withCard(cards []poker.Card, c poker.Card) []poker.Card {
	out := make([]poker.Card, len(cards), len(cards)+1)
	copy(out, cards)
	return append(out, c)
}

func withCards(cards, more []poker.Card) []poker.Card {
	out := make([]poker.Card, 0, len(cards)+len(more))
	out = append(out, cards...)
	return append(out, more...)
}

func withoutIndex(cards []poker.Card, i int) []poker.Card {
	out := make([]poker.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

// withoutCards removes the identified cards, keeping order.
func withoutCards(cards []poker.Card, remove []poker.Card) []poker.Card {
	out := make([]poker.Card, 0, len(cards))
	for _, c := range cards {
		removed := false
		for _, r := range remove {
			if c.ID == r.ID {
				removed = true
				break
			}
		}
		if !removed {
			out = append(out, c)
		}
	}
	return out
}
