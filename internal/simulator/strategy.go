package simulator

import (
	"fmt"

	rand "math/rand/v2"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/poker"
)

// Strategy decides which hand a headless player submits next.
type Strategy interface {
	Name() string
	// PickHand returns five cards from the session pool, or nil when the
	// pool cannot form a full hand.
	PickHand(s game.Session, rng *rand.Rand) []poker.Card
}

// NewStrategy resolves a strategy by name. An empty name selects greedy.
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "greedy", "":
		return greedyStrategy{}, nil
	case "rush":
		return rushStrategy{}, nil
	case "random":
		return randomStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// greedyStrategy submits the strongest hand the pool affords, walking the
// categories from royal flush down.
type greedyStrategy struct{}

func (greedyStrategy) Name() string { return "greedy" }

func (greedyStrategy) PickHand(s game.Session, rng *rand.Rand) []poker.Card {
	for cat := poker.RoyalFlush; cat >= poker.HighCard; cat-- {
		if hand := poker.Synthesize(cat, s.Pool, rng); hand != nil {
			return hand
		}
	}
	return nil
}

// rushStrategy submits the first five pool cards, maximizing hand rate
// with no regard for quality.
type rushStrategy struct{}

func (rushStrategy) Name() string { return "rush" }

func (rushStrategy) PickHand(s game.Session, _ *rand.Rand) []poker.Card {
	if len(s.Pool) < poker.HandSize {
		return nil
	}
	return append([]poker.Card(nil), s.Pool[:poker.HandSize]...)
}

// randomStrategy submits five uniformly random pool cards. It is the
// baseline the other strategies are measured against.
type randomStrategy struct{}

func (randomStrategy) Name() string { return "random" }

func (randomStrategy) PickHand(s game.Session, rng *rand.Rand) []poker.Card {
	if len(s.Pool) < poker.HandSize {
		return nil
	}
	shuffled := s.Pool.Shuffled(rng)
	return append([]poker.Card(nil), shuffled[:poker.HandSize]...)
}
