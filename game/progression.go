package game

import "math"

// Phase is the card layout of a challenge level.
type Phase int

const (
	PhaseStatic Phase = iota
	PhaseConveyor
	PhaseFalling
	PhaseOrbit
)

// String returns the wire name of the phase. The static phase keeps its
// historical "sitting_duck" name.
func (p Phase) String() string {
	switch p {
	case PhaseStatic:
		return "sitting_duck"
	case PhaseConveyor:
		return "conveyor"
	case PhaseFalling:
		return "falling"
	case PhaseOrbit:
		return "orbit"
	default:
		return "unknown"
	}
}

// phaseCycle is the rotation order; pre-orbit levels use the first three
// entries, later levels all four.
var phaseCycle = [4]Phase{PhaseStatic, PhaseConveyor, PhaseFalling, PhaseOrbit}

const (
	phaseBlock    = 3                  // levels per phase
	shortCycleLen = 3 * phaseBlock     // rotation length before orbit unlocks
	fullCycleLen  = 4 * phaseBlock     // rotation length once orbit is in
	maxLevelSpeed = 2.5
)

// LevelGoal is the score required to clear a level: 500 compounding five
// percent per level, floored.
func LevelGoal(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(500 * math.Pow(1.05, float64(level-1))))
}

// LevelInfo returns the phase and round of a challenge level. Phases
// rotate in three-level blocks (static, conveyor, falling), and orbit
// joins the rotation from cfg.OrbitUnlockLevel on. The round counts
// completed rotations and carries across the unlock boundary.
func LevelInfo(level int, cfg Config) (Phase, int) {
	if level < 1 {
		level = 1
	}
	cfg = cfg.withDefaults()
	unlock := cfg.OrbitUnlockLevel

	if level < unlock {
		idx := level - 1
		return phaseCycle[(idx%shortCycleLen)/phaseBlock], idx/shortCycleLen + 1
	}

	preRounds := (unlock - 1 + shortCycleLen - 1) / shortCycleLen
	idx := level - unlock
	return phaseCycle[(idx%fullCycleLen)/phaseBlock], preRounds + idx/fullCycleLen + 1
}

// LevelSpeed is the presentation speed hint for a level: it rises through
// each three-level phase block and with every completed round, capped so
// late levels stay playable.
func LevelSpeed(level int, cfg Config) float64 {
	if level < 1 {
		level = 1
	}
	cfg = cfg.withDefaults()

	step := (level - 1) % phaseBlock
	if level >= cfg.OrbitUnlockLevel {
		step = (level - cfg.OrbitUnlockLevel) % phaseBlock
	}
	_, round := LevelInfo(level, cfg)

	speed := 1 + 0.15*float64(step) + 0.1*float64(round-1)
	return math.Min(speed, maxLevelSpeed)
}

// BonusRoundDue reports whether clearing the given level earns a bonus
// round: every third level, and never before the first.
func BonusRoundDue(completedLevel int) bool {
	return completedLevel > 0 && completedLevel%3 == 0
}

// StarRating awards zero to three stars for a cleared level: one for
// reaching the goal, two at 1.25x, three at 1.5x. The comparisons use
// integer ratios, never floats.
func StarRating(score, goal int) int {
	switch {
	case score*2 >= goal*3:
		return 3
	case score*4 >= goal*5:
		return 2
	case score >= goal:
		return 1
	default:
		return 0
	}
}
