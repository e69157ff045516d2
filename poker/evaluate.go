package poker

import (
	"math/bits"
	"sort"
)

// HandCategory classifies a five-card hand. Values ascend in strength so
// categories compare directly: RoyalFlush > StraightFlush > ... > HighCard.
type HandCategory int

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (hc HandCategory) String() string {
	switch hc {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// BasePoints returns the fixed score contribution of the category
func (hc HandCategory) BasePoints() int {
	switch hc {
	case RoyalFlush:
		return 4000
	case StraightFlush:
		return 2400
	case FourOfAKind:
		return 1600
	case FullHouse:
		return 1000
	case Flush:
		return 600
	case Straight:
		return 400
	case ThreeOfAKind:
		return 240
	case TwoPair:
		return 160
	case OnePair:
		return 80
	default:
		return 20
	}
}

// StrengthRank returns the strength ordinal used for streak comparisons:
// 1 for Royal Flush down to 10 for High Card. Lower is stronger.
func (hc HandCategory) StrengthRank() int {
	return int(RoyalFlush) - int(hc) + 1
}

// Rank bitmask constants. Bit i stands for rank i+2, so bit 12 is the ace.
const (
	wheelMask = 0x100F // A-2-3-4-5, the one straight where the ace plays low
	royalMask = 0x1F00 // 10-J-Q-K-A
)

// HandResult is the outcome of evaluating a hand.
//
// TotalPoints = Category.BasePoints() + ValueBonus, where ValueBonus is
// the sum of the card values. Cards holds the input re-sorted canonically
// (descending value, then suit), so permutations of the same five cards
// produce identical results.
type HandResult struct {
	Category    HandCategory
	Cards       []Card
	ValueBonus  int
	TotalPoints int
}

// Evaluate classifies cards into a poker category and computes its points.
//
// It never panics: anything other than exactly five cards degrades to a
// High Card result over the same cards, so callers can probe a partial
// selection for a live score preview.
func Evaluate(cards []Card) HandResult {
	sorted := sortedByStrength(cards)

	bonus := 0
	for _, c := range sorted {
		bonus += c.Value()
	}

	category := HighCard
	if len(sorted) == HandSize {
		category = classify(sorted)
	}

	return HandResult{
		Category:    category,
		Cards:       sorted,
		ValueBonus:  bonus,
		TotalPoints: category.BasePoints() + bonus,
	}
}

// classify determines the category of exactly five cards using per-suit
// rank bitmasks plus rank frequencies. The case order mirrors category
// strength; with five cards the patterns are mutually exclusive anyway.
func classify(five []Card) HandCategory {
	var suitMasks [4]uint16
	var counts [13]uint8
	for _, c := range five {
		suitMasks[c.Suit] |= 1 << uint(c.Rank-Two)
		counts[c.Rank-Two]++
	}

	var rankMask uint16
	flush := false
	for _, m := range suitMasks {
		rankMask |= m
		if bits.OnesCount16(m) >= HandSize {
			flush = true
		}
	}
	straight := isStraightMask(rankMask)

	var quads, trips, pairs int
	for _, n := range counts {
		switch n {
		case 4:
			quads++
		case 3:
			trips++
		case 2:
			pairs++
		}
	}

	switch {
	case flush && rankMask == royalMask:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case quads == 1:
		return FourOfAKind
	case trips == 1 && pairs == 1:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips == 1:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case pairs == 1:
		return OnePair
	default:
		return HighCard
	}
}

// isStraightMask reports whether the rank mask holds five consecutive
// ranks. The bitwise cascade finds any run of five; the wheel needs its
// own check because the ace bit sits at the top.
func isStraightMask(mask uint16) bool {
	if mask&wheelMask == wheelMask {
		return true
	}
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	return seq != 0
}

// sortedByStrength returns a copy of cards in canonical order: descending
// value with descending suit as the tie break.
func sortedByStrength(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].Suit > out[j].Suit
	})
	return out
}
