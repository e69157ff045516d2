package simulator

import (
	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/statistics"
	"github.com/sjoves/poker-shootout/poker"
)

// Report is the exported form of a finished batch. Fields mirror
// PrintSummary so a saved file and the console output always agree.
type Report struct {
	Mode     string `json:"mode"`
	Strategy string `json:"strategy"`
	Seed     int64  `json:"seed"`
	Runs     int    `json:"runs"`

	HandsPlayed int            `json:"hands_played"`
	Categories  map[string]int `json:"hands_by_category"`
	BestHand    string         `json:"best_hand,omitempty"`
	BestPoints  int            `json:"best_points,omitempty"`

	MeanScore   float64 `json:"mean_score"`
	MedianScore float64 `json:"median_score"`
	StdDev      float64 `json:"std_dev"`
	StdError    float64 `json:"std_error"`
	CILow       float64 `json:"ci95_low"`
	CIHigh      float64 `json:"ci95_high"`
	MaxScore    int     `json:"max_score"`

	MaxLevel    int `json:"max_level,omitempty"`
	TotalStars  int `json:"total_stars,omitempty"`
	BonusRounds int `json:"bonus_rounds,omitempty"`
	BonusWins   int `json:"bonus_wins,omitempty"`
}

// NewReport snapshots batch statistics into a Report. The seed is the
// master seed, so a saved report is enough to replay the whole batch.
func NewReport(stats *statistics.Statistics, mode game.Mode, strategy string, seed int64) Report {
	categories := make(map[string]int)
	for cat := poker.HighCard; cat <= poker.RoyalFlush; cat++ {
		if n := stats.Categories[cat]; n > 0 {
			categories[cat.String()] = n
		}
	}

	low, high := stats.ConfidenceInterval95()
	r := Report{
		Mode:        mode.String(),
		Strategy:    strategy,
		Seed:        seed,
		Runs:        stats.Runs,
		HandsPlayed: stats.HandsPlayed,
		Categories:  categories,
		MeanScore:   stats.Mean(),
		MedianScore: stats.Median(),
		StdDev:      stats.StdDev(),
		StdError:    stats.StdError(),
		CILow:       low,
		CIHigh:      high,
		MaxScore:    stats.MaxScore,
		BonusRounds: stats.BonusRounds,
		BonusWins:   stats.BonusWins,
	}
	if stats.BestPoints > 0 {
		r.BestHand = stats.BestHand.String()
		r.BestPoints = stats.BestPoints
	}
	if mode == game.Challenge {
		r.MaxLevel = stats.MaxLevel
		r.TotalStars = stats.TotalStars
	}
	return r
}
