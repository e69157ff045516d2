package game

import (
	"math"
	"testing"
)

func TestLevelGoal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level int
		want  int
	}{
		{1, 500},
		{2, 525},
		{3, 551},
		{11, 814},
		{21, 1326},
		{0, 500},  // clamped
		{-5, 500}, // clamped
	}

	for _, tt := range tests {
		if got := LevelGoal(tt.level); got != tt.want {
			t.Errorf("LevelGoal(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	for level := 1; level < 100; level++ {
		if LevelGoal(level+1) < LevelGoal(level) {
			t.Fatalf("Goal regressed from level %d (%d) to %d (%d)",
				level, LevelGoal(level), level+1, LevelGoal(level+1))
		}
	}
}

func TestLevelInfoRotation(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	tests := []struct {
		level     int
		wantPhase Phase
		wantRound int
	}{
		{1, PhaseStatic, 1},
		{2, PhaseStatic, 1},
		{3, PhaseStatic, 1},
		{4, PhaseConveyor, 1},
		{6, PhaseConveyor, 1},
		{7, PhaseFalling, 1},
		{9, PhaseFalling, 1},
		{10, PhaseStatic, 2},
		{18, PhaseFalling, 2},
		{19, PhaseStatic, 3},
		{36, PhaseFalling, 4},

		// Orbit joins the rotation at level 37. The rotation restarts
		// there, so the first orbit block is levels 46-48.
		{37, PhaseStatic, 5},
		{40, PhaseConveyor, 5},
		{43, PhaseFalling, 5},
		{46, PhaseOrbit, 5},
		{48, PhaseOrbit, 5},
		{49, PhaseStatic, 6},
		{58, PhaseOrbit, 6},
		{61, PhaseStatic, 7},
	}

	for _, tt := range tests {
		phase, round := LevelInfo(tt.level, cfg)
		if phase != tt.wantPhase || round != tt.wantRound {
			t.Errorf("LevelInfo(%d) = (%v, %d), want (%v, %d)",
				tt.level, phase, round, tt.wantPhase, tt.wantRound)
		}
	}
}

func TestLevelInfoNoOrbitBeforeUnlock(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	for level := 1; level < cfg.OrbitUnlockLevel; level++ {
		if phase, _ := LevelInfo(level, cfg); phase == PhaseOrbit {
			t.Fatalf("Level %d is orbit before the unlock level %d",
				level, cfg.OrbitUnlockLevel)
		}
	}
}

func TestLevelInfoCustomUnlock(t *testing.T) {
	t.Parallel()
	cfg := Config{OrbitUnlockLevel: 10}

	// Levels 1-9 complete round one of the short rotation; level 10
	// starts the long one, with orbit first reached at level 19.
	if phase, round := LevelInfo(9, cfg); phase != PhaseFalling || round != 1 {
		t.Errorf("LevelInfo(9) = (%v, %d), want (falling, 1)", phase, round)
	}
	if phase, round := LevelInfo(10, cfg); phase != PhaseStatic || round != 2 {
		t.Errorf("LevelInfo(10) = (%v, %d), want (static, 2)", phase, round)
	}
	if phase, round := LevelInfo(19, cfg); phase != PhaseOrbit || round != 2 {
		t.Errorf("LevelInfo(19) = (%v, %d), want (orbit, 2)", phase, round)
	}
	if phase, round := LevelInfo(22, cfg); phase != PhaseStatic || round != 3 {
		t.Errorf("LevelInfo(22) = (%v, %d), want (static, 3)", phase, round)
	}
}

func TestLevelSpeed(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	tests := []struct {
		level int
		want  float64
	}{
		{1, 1.0},
		{2, 1.15},
		{3, 1.3},
		{4, 1.0},  // block resets
		{10, 1.1}, // round two
		{12, 1.4},
		{37, 1.4}, // unlock re-anchors the block, round five
		{38, 1.55},
		{100, 1.9},
		{997, 2.5}, // capped
	}

	for _, tt := range tests {
		got := LevelSpeed(tt.level, cfg)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LevelSpeed(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}

	for level := 1; level < 2000; level++ {
		if got := LevelSpeed(level, cfg); got > maxLevelSpeed {
			t.Fatalf("LevelSpeed(%d) = %v exceeds the cap", level, got)
		}
	}
}

func TestBonusRoundDue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level int
		want  bool
	}{
		{-3, false},
		{0, false},
		{1, false},
		{2, false},
		{3, true},
		{4, false},
		{6, true},
		{9, true},
		{10, false},
		{300, true},
	}

	for _, tt := range tests {
		if got := BonusRoundDue(tt.level); got != tt.want {
			t.Errorf("BonusRoundDue(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestStarRating(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		score int
		goal  int
		want  int
	}{
		{"miss", 499, 500, 0},
		{"zero score", 0, 500, 0},
		{"exactly goal", 500, 500, 1},
		{"just under 1.25x", 624, 500, 1},
		{"exactly 1.25x", 625, 500, 2},
		{"just under 1.5x", 749, 500, 2},
		{"exactly 1.5x", 750, 500, 3},
		{"blowout", 4060, 500, 3},
		// Integer-ratio edge on an odd goal: 1017*4 = 4068 falls one
		// short of 814*5 = 4070, 1018*4 = 4072 clears it.
		{"odd goal below 1.25x", 1017, 814, 1},
		{"odd goal at 1.25x", 1018, 814, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StarRating(tt.score, tt.goal); got != tt.want {
				t.Errorf("StarRating(%d, %d) = %d, want %d",
					tt.score, tt.goal, got, tt.want)
			}
		})
	}
}

func TestStarRatingMonotonic(t *testing.T) {
	t.Parallel()
	const goal = 500
	prev := 0
	for score := 0; score <= 2*goal; score++ {
		got := StarRating(score, goal)
		if got < prev {
			t.Fatalf("StarRating(%d, %d) = %d dropped below %d", score, goal, got, prev)
		}
		prev = got
	}
	if prev != 3 {
		t.Fatalf("Rating never reached three stars, ended at %d", prev)
	}
}
