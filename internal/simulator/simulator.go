// Package simulator plays complete games headlessly and aggregates their
// outcomes. Batches drive strategy comparisons, scoring regressions and the
// balance numbers behind the level goal curve.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/randutil"
	"github.com/sjoves/poker-shootout/internal/statistics"
	"github.com/sjoves/poker-shootout/poker"
)

// Config holds configuration for running batches of headless games
type Config struct {
	Mode        game.Mode
	Runs        int
	Seed        int64 // master seed; run i derives its own stream from it
	Strategy    Strategy
	HandSeconds int // clock seconds charged per submitted hand
	MaxLevels   int // challenge: stop a run after clearing this many levels (0 = no cap)
	Workers     int // concurrent runs (0 = GOMAXPROCS)
	Game        game.Config
	Logger      *log.Logger
}

// Simulator runs game simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Runs <= 0 {
		config.Runs = 1
	}
	if config.Strategy == nil {
		config.Strategy = greedyStrategy{}
	}
	if config.HandSeconds <= 0 {
		config.HandSeconds = 5
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns aggregated results. Runs execute in
// parallel but fold into the statistics in run order, so a master seed
// always produces identical output regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.RunResult, s.config.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for run := 0; run < s.config.Runs; run++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[run] = s.playRun(randutil.Derive(s.config.Seed, uint64(run)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(result)
		s.config.Logger.Debug("run complete",
			"seed", result.Seed,
			"score", result.Score,
			"hands", result.HandsPlayed)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playRun plays a single game from deal to terminal state
func (s *Simulator) playRun(runSeed int64) statistics.RunResult {
	rng := randutil.New(runSeed)
	sess := game.NewSession(s.config.Mode, s.config.Game, rng)
	result := statistics.RunResult{Seed: runSeed}

loop:
	for !sess.Status.Terminal() {
		switch sess.Status {
		case game.StatusPlaying, game.StatusBonusRound:
			sess = s.playHand(sess, rng, &result)

		case game.StatusLevelComplete:
			if !sess.BonusPending {
				result.Stars += sess.Stars
				if s.config.MaxLevels > 0 && sess.Level >= s.config.MaxLevels {
					break loop
				}
			}
			sess = game.AdvanceLevel(sess, rng)

		case game.StatusBonusFailed:
			// The level underneath was still cleared; its stars count.
			result.Stars += sess.Stars
			sess = game.AdvanceLevel(sess, rng)
		}
	}

	result.Score = sess.Score
	result.HandsPlayed = sess.HandsPlayed
	result.TimeElapsed = sess.TimeElapsed
	result.BonusRounds = sess.BonusRound
	if s.config.Mode == game.Challenge {
		result.MaxLevel = sess.Level
	}
	return result
}

// playHand asks the strategy for a hand, submits it, and charges the hand's
// clock cost in ticks.
func (s *Simulator) playHand(sess game.Session, rng *rand.Rand, result *statistics.RunResult) game.Session {
	hand := s.config.Strategy.PickHand(sess, rng)
	if hand == nil {
		if sess.Mode == game.Classic {
			return game.Finish(sess)
		}
		return s.tick(sess, result)
	}

	var err error
	for _, c := range hand {
		if sess, err = game.Select(sess, c.ID); err != nil {
			s.config.Logger.Error("strategy picked an unplayable card",
				"card", c.ID, "error", err)
			return s.tick(sess, result)
		}
	}

	sess, hr, err := game.Submit(sess)
	if err != nil {
		s.config.Logger.Error("submit rejected", "error", err)
		return s.tick(sess, result)
	}

	result.Categories[hr.Category]++
	if hr.TotalPoints > result.BestPoints {
		result.BestPoints = hr.TotalPoints
		result.BestHand = hr.Category
	}

	for i := 0; i < s.config.HandSeconds && !sess.Status.Terminal(); i++ {
		sess = s.tick(sess, result)
	}
	return sess
}

// tick advances the clock one second and records a bonus round resolving
// in the player's favor, which only ever happens inside Tick.
func (s *Simulator) tick(sess game.Session, result *statistics.RunResult) game.Session {
	wasBonus := sess.Status == game.StatusBonusRound
	next := game.Tick(sess)
	if wasBonus && next.Status == game.StatusLevelComplete {
		result.BonusWins++
	}
	return next
}

// PrintSummary prints a comprehensive summary of batch results
func PrintSummary(stats *statistics.Statistics, mode game.Mode, strategy string) {
	fmt.Printf("\n=== FINAL RESULTS: %s mode, %s strategy ===\n", mode, strategy)
	fmt.Printf("Runs: %d\n", stats.Runs)
	fmt.Printf("Hands played: %d\n", stats.HandsPlayed)

	fmt.Printf("\n=== SCORE DISTRIBUTION ===\n")
	fmt.Printf("Mean: %.1f\n", stats.Mean())
	fmt.Printf("Median: %.1f\n", stats.Median())
	fmt.Printf("Std Dev: %.1f\n", stats.StdDev())
	fmt.Printf("Std Error: %.1f\n", stats.StdError())
	low, high := stats.ConfidenceInterval95()
	fmt.Printf("95%% CI: [%.1f, %.1f]\n", low, high)
	fmt.Printf("Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25),
		stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Printf("Best run: %d\n", stats.MaxScore)

	fmt.Printf("\n=== HAND MIX ===\n")
	for cat := poker.RoyalFlush; cat >= poker.HighCard; cat-- {
		if n := stats.Categories[cat]; n > 0 {
			fmt.Printf("%-15s %6d hands (%.1f%%)\n", cat, n, stats.CategoryShare(cat)*100)
		}
	}
	if stats.BestPoints > 0 {
		fmt.Printf("Best hand: %s for %d points\n", stats.BestHand, stats.BestPoints)
	}

	if mode == game.Challenge {
		fmt.Printf("\n=== PROGRESSION ===\n")
		fmt.Printf("Deepest level: %d\n", stats.MaxLevel)
		fmt.Printf("Stars earned: %d\n", stats.TotalStars)
		if stats.BonusRounds > 0 {
			fmt.Printf("Bonus rounds: %d entered, %d won (%.0f%%)\n",
				stats.BonusRounds, stats.BonusWins, stats.BonusWinRate()*100)
		}
	}
}
