package game

// Charges holds the remaining uses of each power-up.
type Charges struct {
	Sharpshooter int
	TimeShift    int
	Redraw       int
}

// Config carries the caller-tunable knobs of a session. Rule constants
// that must stay bit-identical across implementations (base points, the
// goal curve, star thresholds, the streak table, the final-stretch window)
// are fixed in code, not configuration.
type Config struct {
	// BlitzSeconds is the blitz countdown.
	BlitzSeconds int
	// LevelSeconds is the countdown of each challenge level.
	LevelSeconds int
	// BonusSeconds is the countdown of a bonus round.
	BonusSeconds int
	// OrbitUnlockLevel is the first level whose rotation includes the
	// orbit phase.
	OrbitUnlockLevel int
	// Charges are the power-up uses a fresh session starts with.
	Charges Charges
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		BlitzSeconds:     60,
		LevelSeconds:     90,
		BonusSeconds:     30,
		OrbitUnlockLevel: 37,
		Charges: Charges{
			Sharpshooter: 2,
			TimeShift:    1,
			Redraw:       2,
		},
	}
}

// withDefaults fills zero-valued knobs so a partially built Config behaves.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BlitzSeconds <= 0 {
		c.BlitzSeconds = def.BlitzSeconds
	}
	if c.LevelSeconds <= 0 {
		c.LevelSeconds = def.LevelSeconds
	}
	if c.BonusSeconds <= 0 {
		c.BonusSeconds = def.BonusSeconds
	}
	if c.OrbitUnlockLevel <= 0 {
		c.OrbitUnlockLevel = def.OrbitUnlockLevel
	}
	return c
}
