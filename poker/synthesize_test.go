package poker

import (
	"testing"
)

var allCategories = []HandCategory{
	HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

func TestSynthesizeRoundTrip(t *testing.T) {
	t.Parallel()
	// A full deck satisfies every category; whatever comes back must
	// re-evaluate to exactly the requested one.
	deck := NewDeck()

	for _, cat := range allCategories {
		for seed := uint64(0); seed < 25; seed++ {
			hand := Synthesize(cat, deck, testRNG(seed))
			if hand == nil {
				t.Fatalf("%s: no hand from a full deck (seed %d)", cat, seed)
			}
			if len(hand) != HandSize {
				t.Fatalf("%s: got %d cards, want %d", cat, len(hand), HandSize)
			}
			if got := Evaluate(hand).Category; got != cat {
				t.Errorf("%s: hand %v re-evaluates to %s", cat, hand, got)
			}
		}
	}
}

func TestSynthesizeFromPartialPool(t *testing.T) {
	t.Parallel()
	// Small shuffled pools: some categories are satisfiable, some are
	// not. Either answer the pool honestly or return nil; never return a
	// hand of the wrong category.
	for seed := uint64(0); seed < 40; seed++ {
		pool := NewDeck().Shuffled(testRNG(seed))[:20]
		for _, cat := range allCategories {
			hand := Synthesize(cat, pool, testRNG(seed+1000))
			if hand == nil {
				continue
			}
			if got := Evaluate(hand).Category; got != cat {
				t.Errorf("Seed %d %s: hand %v re-evaluates to %s", seed, cat, hand, got)
			}
			for _, hc := range hand {
				found := false
				for _, pc := range pool {
					if pc.ID == hc.ID {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Seed %d %s: card %s is not in the pool", seed, cat, hc.ID)
				}
			}
		}
	}
}

func TestSynthesizeUnsatisfiable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		category HandCategory
		pool     []Card
	}{
		{
			name:     "empty pool",
			category: OnePair,
			pool:     nil,
		},
		{
			name:     "four cards only",
			category: HighCard,
			pool:     cards("2c", "5d", "9h", "Js"),
		},
		{
			name:     "royal without the window",
			category: RoyalFlush,
			pool:     cards("2c", "3c", "4c", "5c", "6c", "7c", "8c", "9c"),
		},
		{
			name:     "quads from distinct ranks",
			category: FourOfAKind,
			pool:     cards("2c", "3d", "4h", "5s", "6c", "7d", "8h", "9s"),
		},
		{
			name:     "full house without a second group",
			category: FullHouse,
			pool:     cards("Ac", "Ad", "Ah", "2c", "3d", "4h", "5s"),
		},
		{
			name:     "straight with a gap",
			category: Straight,
			pool:     cards("2c", "3d", "4h", "5s", "7c", "8d", "9h", "Js"),
		},
		{
			name:     "flush with four per suit",
			category: Flush,
			pool: cards("2c", "3c", "4c", "5c", "2d", "3d", "4d", "5d",
				"2h", "3h", "4h", "5h", "2s", "3s", "4s", "5s"),
		},
		{
			name:     "high card from a straight-only pool",
			category: HighCard,
			pool:     cards("5c", "6d", "7h", "8s", "9c"),
		},
		{
			name:     "straight confined to one suit",
			category: Straight,
			pool:     cards("2s", "3s", "4s", "5s", "6s", "7s", "8s"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if hand := Synthesize(tt.category, tt.pool, testRNG(3)); hand != nil {
				t.Errorf("Expected nil, got %v (%s)", hand, Evaluate(hand).Category)
			}
		})
	}
}

func TestSynthesizeAvoidsUpgrades(t *testing.T) {
	t.Parallel()
	// Single-suit pool with consecutive runs: a naive flush pick would
	// come back as a straight flush.
	pool := cards("2s", "3s", "4s", "5s", "6s", "7s", "8s", "9s")
	for seed := uint64(0); seed < 20; seed++ {
		hand := Synthesize(Flush, pool, testRNG(seed))
		if hand == nil {
			t.Fatalf("Seed %d: flush should be satisfiable", seed)
		}
		if got := Evaluate(hand).Category; got != Flush {
			t.Errorf("Seed %d: got %s, want plain Flush", seed, got)
		}
	}

	// Both suits hold the same window, so the straight must mix them.
	twoSuits := cards("10c", "Jc", "Qc", "Kc", "Ac", "10d", "Jd", "Qd", "Kd", "Ad")
	for seed := uint64(0); seed < 20; seed++ {
		hand := Synthesize(Straight, twoSuits, testRNG(seed))
		if hand == nil {
			t.Fatalf("Seed %d: straight should be satisfiable", seed)
		}
		if got := Evaluate(hand).Category; got != Straight {
			t.Errorf("Seed %d: got %s, want plain Straight", seed, got)
		}
	}

	// Trips plus pairs only: the pair hand must dodge the full house.
	trappy := cards("Ac", "Ad", "Ah", "Kc", "Kd", "Qc", "Jd")
	hand := Synthesize(OnePair, trappy, testRNG(5))
	if hand == nil {
		t.Fatal("One pair should be satisfiable")
	}
	if got := Evaluate(hand).Category; got != OnePair {
		t.Errorf("Got %s, want One Pair", got)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	t.Parallel()
	pool := NewDeck()
	for _, cat := range allCategories {
		first := Synthesize(cat, pool, testRNG(99))
		second := Synthesize(cat, pool, testRNG(99))
		if len(first) != len(second) {
			t.Fatalf("%s: runs with equal seeds differ in length", cat)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("%s: runs with equal seeds differ at card %d", cat, i)
			}
		}
	}
}

func TestSynthesizeKeepsPoolIntact(t *testing.T) {
	t.Parallel()
	pool := NewDeck().Shuffled(testRNG(11))
	snapshot := make(Deck, len(pool))
	copy(snapshot, pool)

	for _, cat := range allCategories {
		_ = Synthesize(cat, pool, testRNG(12))
	}

	for i := range pool {
		if pool[i] != snapshot[i] {
			t.Fatalf("Pool modified at index %d", i)
		}
	}
}

func TestSynthesizeNilRNG(t *testing.T) {
	t.Parallel()
	// A nil rng searches the pool in order; still a valid round trip.
	hand := Synthesize(FullHouse, NewDeck(), nil)
	if hand == nil {
		t.Fatal("Expected a full house from a full deck")
	}
	if got := Evaluate(hand).Category; got != FullHouse {
		t.Errorf("Got %s, want Full House", got)
	}
}

func BenchmarkSynthesize(b *testing.B) {
	deck := NewDeck()
	rng := testRNG(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Synthesize(FullHouse, deck, rng)
	}
}

func BenchmarkSynthesizeHighCard(b *testing.B) {
	deck := NewDeck()
	rng := testRNG(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Synthesize(HighCard, deck, rng)
	}
}
