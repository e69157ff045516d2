package game

import "testing"

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	got := Config{}.withDefaults()
	want := DefaultConfig()
	want.Charges = Charges{} // charges are a real zero: none granted
	if got != want {
		t.Errorf("Zero config filled to %+v, want %+v", got, want)
	}

	custom := Config{BlitzSeconds: 120, OrbitUnlockLevel: 13}.withDefaults()
	if custom.BlitzSeconds != 120 || custom.OrbitUnlockLevel != 13 {
		t.Errorf("Overrides lost: %+v", custom)
	}
	if custom.LevelSeconds != 90 || custom.BonusSeconds != 30 {
		t.Errorf("Unset knobs not filled: %+v", custom)
	}
}

func TestNewSessionHonorsConfig(t *testing.T) {
	t.Parallel()

	cfg := Config{BlitzSeconds: 120, Charges: Charges{Redraw: 5}}
	s := NewSession(Blitz, cfg, testRNG(97))
	if s.TimeRemaining != 120 {
		t.Errorf("Countdown = %d, want 120", s.TimeRemaining)
	}
	if s.Charges != (Charges{Redraw: 5}) {
		t.Errorf("Charges = %+v, want only the five redraws granted", s.Charges)
	}
}
