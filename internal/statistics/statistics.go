package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/sjoves/poker-shootout/poker"
)

// RunResult captures one finished game for aggregation
type RunResult struct {
	Score       int   // Final score after mode settlement
	Seed        int64 // Master RNG seed for this run (for replay)
	HandsPlayed int
	TimeElapsed int                       // Seconds of play
	MaxLevel    int                       // Challenge: highest level reached
	Stars       int                       // Challenge: stars earned across cleared levels
	BonusRounds int                       // Bonus rounds entered
	BonusWins   int                       // Bonus rounds that scored at least one hand
	BestHand    poker.HandCategory        // Strongest hand submitted
	BestPoints  int                       // Points of the single best hand
	Categories  [poker.RoyalFlush + 1]int // Hands submitted, bucketed by category
}

// Statistics tracks comprehensive run statistics across a batch of games
type Statistics struct {
	Runs      int
	SumScore  float64
	SumScore2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all scores for median/percentile calculation

	// Hand analytics - every submitted hand lands in exactly one bucket
	HandsPlayed int
	Categories  [poker.RoyalFlush + 1]int

	// Bonus round analytics
	BonusRounds int
	BonusWins   int

	// Highs observed across the batch
	MaxScore   int
	MaxLevel   int
	TotalStars int
	BestHand   poker.HandCategory
	BestPoints int
}

// Mean returns the arithmetic mean score per run
func (s *Statistics) Mean() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.SumScore / float64(s.Runs)
}

// Variance returns the sample variance of run scores
func (s *Statistics) Variance() float64 {
	if s.Runs < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Runs)*mean*mean) / float64(s.Runs-1)
}

// StdDev returns the sample standard deviation of run scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Runs))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Add incorporates a finished run into the statistics
func (s *Statistics) Add(result RunResult) {
	score := float64(result.Score)
	s.Runs++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Values = append(s.Values, score)

	s.HandsPlayed += result.HandsPlayed
	for cat, n := range result.Categories {
		s.Categories[cat] += n
	}

	s.BonusRounds += result.BonusRounds
	s.BonusWins += result.BonusWins

	if result.Score > s.MaxScore {
		s.MaxScore = result.Score
	}
	if result.MaxLevel > s.MaxLevel {
		s.MaxLevel = result.MaxLevel
	}
	s.TotalStars += result.Stars

	if result.BestPoints > s.BestPoints {
		s.BestPoints = result.BestPoints
		s.BestHand = result.BestHand
	}
}

// Median returns the median run score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the run score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// CategoryShare returns the fraction of all submitted hands that landed in
// the given category
func (s *Statistics) CategoryShare(cat poker.HandCategory) float64 {
	if s.HandsPlayed == 0 || cat < poker.HighCard || cat > poker.RoyalFlush {
		return 0
	}
	return float64(s.Categories[cat]) / float64(s.HandsPlayed)
}

// BonusWinRate returns the fraction of entered bonus rounds that scored
func (s *Statistics) BonusWinRate() float64 {
	if s.BonusRounds == 0 {
		return 0
	}
	return float64(s.BonusWins) / float64(s.BonusRounds)
}

// IsLedgerBalanced checks if every submitted hand landed in a category bucket
func (s *Statistics) IsLedgerBalanced() bool {
	total := 0
	for _, n := range s.Categories {
		total += n
	}
	return total == s.HandsPlayed
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	// Check ledger balance
	if !s.IsLedgerBalanced() {
		total := 0
		for _, n := range s.Categories {
			total += n
		}
		return fmt.Errorf("ledger mismatch: category buckets hold %d hands, %d were played",
			total, s.HandsPlayed)
	}

	// Check that run count is positive
	if s.Runs <= 0 {
		return fmt.Errorf("invalid run count: %d", s.Runs)
	}

	// Check that values array matches run count
	if len(s.Values) != s.Runs {
		return fmt.Errorf("values array length (%d) does not match run count (%d)",
			len(s.Values), s.Runs)
	}

	// Check that bonus wins don't exceed bonus rounds
	if s.BonusWins > s.BonusRounds {
		return fmt.Errorf("bonus wins (%d) exceed bonus rounds entered (%d)",
			s.BonusWins, s.BonusRounds)
	}

	// Check that the recorded maximum matches the run scores
	max := 0.0
	for _, v := range s.Values {
		if v > max {
			max = v
		}
	}
	if float64(s.MaxScore) < max {
		return fmt.Errorf("max score (%d) is below a recorded run score (%.0f)",
			s.MaxScore, max)
	}

	return nil
}
