package game

import "github.com/sjoves/poker-shootout/poker"

const (
	// timeBonusPar is the classic-mode elapsed time under which the
	// closing bonus applies; every second beyond it costs a point.
	timeBonusPar   = 60
	timeBonusAward = 1000

	// leftoverFactor scales the value of each unplayed card into the
	// classic-mode closing penalty.
	leftoverFactor = 10

	// FinalStretchSeconds is the tail of any countdown during which
	// submitted hands score double.
	FinalStretchSeconds = 10
)

// TimeBonus is the classic-mode closing time adjustment: a flat award for
// finishing inside the par time, otherwise minus one point per second over
// it. It can go negative.
func TimeBonus(elapsedSeconds int) int {
	if elapsedSeconds <= timeBonusPar {
		return timeBonusAward
	}
	return -(elapsedSeconds - timeBonusPar)
}

// LeftoverPenalty charges ten points per card value over everything never
// played, so leaving high cards unused hurts most.
func LeftoverPenalty(cards []poker.Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value() * leftoverFactor
	}
	return total
}

// StreakMultiplier returns the hand multiplier for a streak of
// consecutively stronger hands: 1x, 1.2x, 1.5x, then 2x from three on.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak <= 0:
		return 1
	case streak == 1:
		return 1.2
	case streak == 2:
		return 1.5
	default:
		return 2
	}
}

// applyStreak scales points by the streak multiplier in exact integer
// ratios (6/5, 3/2, 2) so scores stay bit-identical across platforms.
func applyStreak(points, streak int) int {
	switch {
	case streak <= 0:
		return points
	case streak == 1:
		return points * 6 / 5
	case streak == 2:
		return points * 3 / 2
	default:
		return points * 2
	}
}
