package simulator

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/randutil"
	"github.com/sjoves/poker-shootout/internal/statistics"
	"github.com/sjoves/poker-shootout/poker"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func cards(t *testing.T, codes ...string) []poker.Card {
	t.Helper()
	out := make([]poker.Card, len(codes))
	for i, code := range codes {
		c, err := poker.ParseCard(code)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", code, err)
		}
		out[i] = c
	}
	return out
}

func TestNewStrategy(t *testing.T) {
	for _, name := range []string{"greedy", "rush", "random"} {
		strat, err := NewStrategy(name)
		if err != nil {
			t.Fatalf("NewStrategy(%q): %v", name, err)
		}
		if strat.Name() != name {
			t.Errorf("NewStrategy(%q).Name() = %q", name, strat.Name())
		}
	}

	strat, err := NewStrategy("")
	if err != nil || strat.Name() != "greedy" {
		t.Errorf("Empty name resolved to (%v, %v), want greedy", strat, err)
	}

	if _, err := NewStrategy("psychic"); err == nil {
		t.Error("NewStrategy accepted an unknown name")
	}
}

func TestGreedyPicksStrongestHand(t *testing.T) {
	sess := game.NewSession(game.Blitz, game.DefaultConfig(), randutil.New(1))

	hand := greedyStrategy{}.PickHand(sess, randutil.New(2))
	if hand == nil {
		t.Fatal("Greedy found nothing in a full deck")
	}
	if got := poker.Evaluate(hand).Category; got != poker.RoyalFlush {
		t.Errorf("Greedy picked a %v from a full deck, want royal flush", got)
	}
}

func TestGreedySettlesForPoolStrength(t *testing.T) {
	sess := game.Session{Pool: cards(t, "Ah", "Ad", "Ac", "As", "Kd", "2c", "3h")}

	hand := greedyStrategy{}.PickHand(sess, randutil.New(3))
	if hand == nil {
		t.Fatal("Greedy found nothing in a quad-bearing pool")
	}
	if got := poker.Evaluate(hand).Category; got != poker.FourOfAKind {
		t.Errorf("Greedy picked a %v, want four of a kind", got)
	}
}

func TestRushPicksPoolOrder(t *testing.T) {
	pool := cards(t, "2c", "9h", "Kd", "5s", "Jc", "Ah")
	sess := game.Session{Pool: pool}

	hand := rushStrategy{}.PickHand(sess, nil)
	if len(hand) != 5 {
		t.Fatalf("Rush picked %d cards, want 5", len(hand))
	}
	for i, c := range hand {
		if c.ID != pool[i].ID {
			t.Errorf("Card %d = %s, want pool order %s", i, c.ID, pool[i].ID)
		}
	}

	short := game.Session{Pool: cards(t, "2c", "9h", "Kd", "5s")}
	if hand := (rushStrategy{}).PickHand(short, nil); hand != nil {
		t.Error("Rush picked a hand from four cards")
	}
}

func TestRandomPicksFromPool(t *testing.T) {
	sess := game.NewSession(game.Classic, game.DefaultConfig(), randutil.New(5))

	hand := randomStrategy{}.PickHand(sess, randutil.New(6))
	if len(hand) != 5 {
		t.Fatalf("Random picked %d cards, want 5", len(hand))
	}
	seen := make(map[string]bool)
	for _, c := range hand {
		if seen[c.ID] {
			t.Fatalf("Random picked %s twice", c.ID)
		}
		seen[c.ID] = true
		found := false
		for _, p := range sess.Pool {
			if p.ID == c.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Random picked %s, which is not in the pool", c.ID)
		}
	}
}

func TestSimulatorClassic(t *testing.T) {
	sim := New(Config{
		Mode:   game.Classic,
		Runs:   3,
		Seed:   12345,
		Logger: quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Runs != 3 {
		t.Errorf("Expected 3 runs, got %d", stats.Runs)
	}

	// Classic always consumes the deck down to two stranded cards, ten
	// hands per run.
	if stats.HandsPlayed != 30 {
		t.Errorf("Expected 30 hands across the batch, got %d", stats.HandsPlayed)
	}

	// Greedy hands are worth far more than the leftover penalty on two
	// cards, so every classic run lands positive.
	if stats.Mean() <= 0 {
		t.Errorf("Expected positive mean score for greedy classic, got %f", stats.Mean())
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Statistics failed validation: %v", err)
	}
}

func TestSimulatorBlitzExactSchedule(t *testing.T) {
	sim := New(Config{
		Mode:        game.Blitz,
		Runs:        2,
		Seed:        777,
		HandSeconds: 5,
		Logger:      quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// A 60-second countdown at 5 seconds per hand fits exactly 12 hands,
	// each a synthesized royal flush off the recycling deck: raw score
	// 12 x 4060 = 48720, settled at 48720 x 12 hands.
	if stats.HandsPlayed != 24 {
		t.Errorf("Expected 24 hands across the batch, got %d", stats.HandsPlayed)
	}
	if want := 48720 * 12; stats.MaxScore != want {
		t.Errorf("Expected settled score %d, got max %d", want, stats.MaxScore)
	}
	if stats.Mean() != float64(48720*12) {
		t.Errorf("Expected every run to settle identically, mean %f", stats.Mean())
	}
	if stats.Categories[poker.RoyalFlush] != 24 {
		t.Errorf("Expected 24 royal flushes, got %d", stats.Categories[poker.RoyalFlush])
	}
}

func TestSimulatorChallengeWithBonusRound(t *testing.T) {
	sim := New(Config{
		Mode:        game.Challenge,
		Runs:        1,
		Seed:        31337,
		HandSeconds: 5,
		MaxLevels:   3,
		Logger:      quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// Greedy clears levels 1-3 with one royal flush each (4060 beats
	// every early goal), then plays the level-3 bonus round: 30 seconds
	// at 5 per hand is 6 more royals.
	if stats.HandsPlayed != 9 {
		t.Errorf("Expected 9 hands, got %d", stats.HandsPlayed)
	}
	if stats.MaxLevel != 3 {
		t.Errorf("Expected the run to stop at level 3, got %d", stats.MaxLevel)
	}
	if stats.TotalStars != 9 {
		t.Errorf("Expected 3 stars per level, got %d total", stats.TotalStars)
	}
	if stats.BonusRounds != 1 || stats.BonusWins != 1 {
		t.Errorf("Expected one bonus round entered and won, got %d and %d",
			stats.BonusRounds, stats.BonusWins)
	}

	// Level hands: 3 x 4060. Bonus hands pay double: 4 x 8120 plus two
	// inside the final stretch at 16240.
	want := 3*4060 + 4*8120 + 2*16240
	if stats.MaxScore != want {
		t.Errorf("Expected score %d, got %d", want, stats.MaxScore)
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Statistics failed validation: %v", err)
	}
}

func TestSimulatorDeterministic(t *testing.T) {
	config := Config{
		Mode:    game.Classic,
		Runs:    4,
		Seed:    999,
		Workers: 4,
		Logger:  quietLogger(),
	}

	first, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Same master seed produced different batch statistics")
	}

	config.Seed = 1000
	third, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("Third run failed: %v", err)
	}
	if reflect.DeepEqual(first.Values, third.Values) {
		t.Error("Different master seeds produced identical run scores")
	}
}

func TestSimulatorRandomStrategy(t *testing.T) {
	strat, err := NewStrategy("random")
	if err != nil {
		t.Fatal(err)
	}
	sim := New(Config{
		Mode:     game.Classic,
		Runs:     2,
		Seed:     4242,
		Strategy: strat,
		Logger:   quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.HandsPlayed != 20 {
		t.Errorf("Expected 20 hands, got %d", stats.HandsPlayed)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Statistics failed validation: %v", err)
	}
}

func TestSimulatorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(Config{
		Mode:   game.Classic,
		Runs:   50,
		Seed:   1,
		Logger: quietLogger(),
	})

	if _, err := sim.Run(ctx); err == nil {
		t.Error("Expected an error from a canceled context")
	}
}

func TestPrintSummary(t *testing.T) {
	sim := New(Config{
		Mode:      game.Challenge,
		Runs:      1,
		Seed:      7,
		MaxLevels: 2,
		Logger:    quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// PrintSummary should not panic on a populated batch or an empty one
	PrintSummary(stats, game.Challenge, "greedy")
	PrintSummary(&statistics.Statistics{}, game.Blitz, "rush")
}

func TestNewReport(t *testing.T) {
	sim := New(Config{
		Mode:        game.Challenge,
		Runs:        2,
		Seed:        31337,
		HandSeconds: 5,
		MaxLevels:   3,
		Logger:      quietLogger(),
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	report := NewReport(stats, game.Challenge, "greedy", 31337)
	if report.Mode != "challenge" || report.Strategy != "greedy" || report.Seed != 31337 {
		t.Errorf("Report header = %s/%s/%d", report.Mode, report.Strategy, report.Seed)
	}
	if report.Runs != 2 || report.HandsPlayed != stats.HandsPlayed {
		t.Errorf("Report counts = %d runs, %d hands", report.Runs, report.HandsPlayed)
	}
	if report.MeanScore != stats.Mean() || report.MaxScore != stats.MaxScore {
		t.Errorf("Report scores disagree with the batch statistics")
	}
	if report.Categories["Royal Flush"] != stats.Categories[poker.RoyalFlush] {
		t.Errorf("Report category map disagrees with stats buckets")
	}
	if report.MaxLevel != 3 || report.TotalStars != stats.TotalStars {
		t.Errorf("Report progression = level %d, %d stars", report.MaxLevel, report.TotalStars)
	}
	if report.BestHand != "Royal Flush" {
		t.Errorf("Report best hand = %q", report.BestHand)
	}

	total := 0
	for _, n := range report.Categories {
		total += n
	}
	if total != report.HandsPlayed {
		t.Errorf("Category map holds %d hands, report says %d", total, report.HandsPlayed)
	}

	// Progression fields stay zero outside challenge mode
	blitz := NewReport(stats, game.Blitz, "rush", 1)
	if blitz.MaxLevel != 0 || blitz.TotalStars != 0 {
		t.Errorf("Blitz report carries progression numbers: level %d, %d stars",
			blitz.MaxLevel, blitz.TotalStars)
	}
}
