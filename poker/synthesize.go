package poker

import (
	rand "math/rand/v2"
)

// Synthesize assembles five cards from pool that evaluate to exactly cat.
//
// It returns nil when the pool cannot satisfy the category; callers must
// treat nil as "effect not applied" and keep whatever resource triggered
// the call. A non-nil result always re-evaluates to cat via Evaluate.
//
// The search walks a shuffled copy of pool so repeated calls vary their
// picks, but it is deterministic for a given rng stream; pool itself is
// never modified. A nil rng searches pool in its current order.
func Synthesize(cat HandCategory, pool []Card, rng *rand.Rand) []Card {
	if len(pool) < HandSize {
		return nil
	}
	cards := make([]Card, len(pool))
	copy(cards, pool)
	if rng != nil {
		for i := len(cards) - 1; i > 0; i-- {
			j := rng.IntN(i + 1)
			cards[i], cards[j] = cards[j], cards[i]
		}
	}

	var hand []Card
	switch cat {
	case RoyalFlush:
		hand = synthRoyalFlush(cards)
	case StraightFlush:
		hand = synthStraightFlush(cards)
	case FourOfAKind:
		hand = synthFourOfAKind(cards)
	case FullHouse:
		hand = synthFullHouse(cards)
	case Flush:
		hand = synthFlush(cards)
	case Straight:
		hand = synthStraight(cards)
	case ThreeOfAKind:
		hand = synthThreeOfAKind(cards)
	case TwoPair:
		hand = synthTwoPair(cards)
	case OnePair:
		hand = synthOnePair(cards)
	case HighCard:
		hand = synthHighCard(cards)
	}

	// Round-trip guard: only hand back what Evaluate agrees with.
	if hand == nil || Evaluate(hand).Category != cat {
		return nil
	}
	return hand
}

// suitGroups splits cards by suit, preserving their order.
func suitGroups(cards []Card) [4][]Card {
	var groups [4][]Card
	for _, c := range cards {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

// rankGroups splits cards by rank (index 0 = Two), preserving their order.
func rankGroups(cards []Card) [13][]Card {
	var groups [13][]Card
	for _, c := range cards {
		groups[c.Rank-Two] = append(groups[c.Rank-Two], c)
	}
	return groups
}

// pickRanks selects one card per requested rank from a single-suit group.
func pickRanks(group []Card, ranks [5]Rank) []Card {
	hand := make([]Card, 0, HandSize)
	for _, r := range ranks {
		found := false
		for _, c := range group {
			if c.Rank == r {
				hand = append(hand, c)
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	return hand
}

// windowRanks returns the five ranks of the straight topped by high.
func windowRanks(high Rank) [5]Rank {
	return [5]Rank{high - 4, high - 3, high - 2, high - 1, high}
}

var wheelRanks = [5]Rank{Ace, Two, Three, Four, Five}

func sameSuit(hand []Card) bool {
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// swapOffSuit replaces one card of hand with a same-rank card of another
// suit, reporting whether any replacement existed.
func swapOffSuit(hand []Card, groups [13][]Card) bool {
	suit := hand[0].Suit
	for i, hc := range hand {
		for _, c := range groups[hc.Rank-Two] {
			if c.Suit != suit {
				hand[i] = c
				return true
			}
		}
	}
	return false
}

func handIsStraight(hand []Card) bool {
	var mask uint16
	for _, c := range hand {
		mask |= 1 << uint(c.Rank-Two)
	}
	return isStraightMask(mask)
}

func synthRoyalFlush(cards []Card) []Card {
	groups := suitGroups(cards)
	var tried [4]bool
	for _, c := range cards {
		if tried[c.Suit] {
			continue
		}
		tried[c.Suit] = true
		if hand := pickRanks(groups[c.Suit], windowRanks(Ace)); hand != nil {
			return hand
		}
	}
	return nil
}

func synthStraightFlush(cards []Card) []Card {
	groups := suitGroups(cards)
	var tried [4]bool
	for _, c := range cards {
		if tried[c.Suit] {
			continue
		}
		tried[c.Suit] = true
		group := groups[c.Suit]
		if len(group) < HandSize {
			continue
		}

		var mask uint16
		for _, gc := range group {
			mask |= 1 << uint(gc.Rank-Two)
		}

		// King-high down to six-high, then the wheel. The ace-high window
		// is excluded: in one suit it is a royal flush, not a straight
		// flush.
		for high := King; high >= Six; high-- {
			window := uint16(0x1F) << uint(high-Six)
			if mask&window == window {
				return pickRanks(group, windowRanks(high))
			}
		}
		if mask&wheelMask == wheelMask {
			return pickRanks(group, wheelRanks)
		}
	}
	return nil
}

func synthFourOfAKind(cards []Card) []Card {
	groups := rankGroups(cards)
	for _, c := range cards {
		group := groups[c.Rank-Two]
		if len(group) < 4 {
			continue
		}
		hand := append(make([]Card, 0, HandSize), group[:4]...)
		for _, kicker := range cards {
			if kicker.Rank != c.Rank {
				return append(hand, kicker)
			}
		}
		return nil
	}
	return nil
}

func synthFullHouse(cards []Card) []Card {
	groups := rankGroups(cards)
	var trips []Card
	for _, c := range cards {
		if group := groups[c.Rank-Two]; len(group) >= 3 {
			trips = group[:3]
			break
		}
	}
	if trips == nil {
		return nil
	}
	for _, c := range cards {
		if c.Rank == trips[0].Rank {
			continue
		}
		if group := groups[c.Rank-Two]; len(group) >= 2 {
			return append(append(make([]Card, 0, HandSize), trips...), group[:2]...)
		}
	}
	return nil
}

// synthFlush looks for five same-suit cards whose ranks are not
// consecutive; a consecutive pick would evaluate as a straight flush.
func synthFlush(cards []Card) []Card {
	groups := suitGroups(cards)
	var tried [4]bool
	for _, sc := range cards {
		if tried[sc.Suit] {
			continue
		}
		tried[sc.Suit] = true
		group := groups[sc.Suit]
		n := len(group)
		if n < HandSize {
			continue
		}
		for a := 0; a <= n-5; a++ {
			for b := a + 1; b <= n-4; b++ {
				for c := b + 1; c <= n-3; c++ {
					for d := c + 1; d <= n-2; d++ {
						for e := d + 1; e <= n-1; e++ {
							hand := []Card{group[a], group[b], group[c], group[d], group[e]}
							if !handIsStraight(hand) {
								return hand
							}
						}
					}
				}
			}
		}
	}
	return nil
}

// synthStraight picks one card per rank of a straight window, steering
// away from single-suit picks (which would evaluate as straight flushes).
func synthStraight(cards []Card) []Card {
	groups := rankGroups(cards)
	for high := Ace; high >= Six; high-- {
		if hand := straightFromWindow(groups, windowRanks(high)); hand != nil {
			return hand
		}
	}
	return straightFromWindow(groups, wheelRanks)
}

func straightFromWindow(groups [13][]Card, ranks [5]Rank) []Card {
	hand := make([]Card, 0, HandSize)
	for _, r := range ranks {
		group := groups[r-Two]
		if len(group) == 0 {
			return nil
		}
		hand = append(hand, group[0])
	}
	if !sameSuit(hand) {
		return hand
	}
	if swapOffSuit(hand, groups) {
		return hand
	}
	// Every card of this window lives in one suit; the window can only
	// make a straight flush.
	return nil
}

func synthThreeOfAKind(cards []Card) []Card {
	groups := rankGroups(cards)
	var trips []Card
	for _, c := range cards {
		if group := groups[c.Rank-Two]; len(group) >= 3 {
			trips = group[:3]
			break
		}
	}
	if trips == nil {
		return nil
	}
	// Kickers must not pair with anything or the hand upgrades.
	hand := append(make([]Card, 0, HandSize), trips...)
	var used [13]bool
	used[trips[0].Rank-Two] = true
	for _, c := range cards {
		if used[c.Rank-Two] {
			continue
		}
		used[c.Rank-Two] = true
		hand = append(hand, c)
		if len(hand) == HandSize {
			return hand
		}
	}
	return nil
}

func synthTwoPair(cards []Card) []Card {
	groups := rankGroups(cards)
	var used [13]bool
	hand := make([]Card, 0, HandSize)
	for _, c := range cards {
		if len(hand) == 4 {
			break
		}
		if used[c.Rank-Two] {
			continue
		}
		if group := groups[c.Rank-Two]; len(group) >= 2 {
			used[c.Rank-Two] = true
			hand = append(hand, group[:2]...)
		}
	}
	if len(hand) < 4 {
		return nil
	}
	for _, c := range cards {
		if !used[c.Rank-Two] {
			return append(hand, c)
		}
	}
	return nil
}

func synthOnePair(cards []Card) []Card {
	groups := rankGroups(cards)
	var pair []Card
	for _, c := range cards {
		if group := groups[c.Rank-Two]; len(group) >= 2 {
			pair = group[:2]
			break
		}
	}
	if pair == nil {
		return nil
	}
	hand := append(make([]Card, 0, HandSize), pair...)
	var used [13]bool
	used[pair[0].Rank-Two] = true
	for _, c := range cards {
		if used[c.Rank-Two] {
			continue
		}
		used[c.Rank-Two] = true
		hand = append(hand, c)
		if len(hand) == HandSize {
			return hand
		}
	}
	return nil
}

// synthHighCard needs five distinct ranks that are neither consecutive nor
// confined to one suit. It scans rank combinations over one representative
// per rank, swapping suits when a combination lands on a flush.
func synthHighCard(cards []Card) []Card {
	groups := rankGroups(cards)
	var reps []Card
	var seen [13]bool
	for _, c := range cards {
		if seen[c.Rank-Two] {
			continue
		}
		seen[c.Rank-Two] = true
		reps = append(reps, c)
	}
	n := len(reps)
	if n < HandSize {
		return nil
	}
	for a := 0; a <= n-5; a++ {
		for b := a + 1; b <= n-4; b++ {
			for c := b + 1; c <= n-3; c++ {
				for d := c + 1; d <= n-2; d++ {
					for e := d + 1; e <= n-1; e++ {
						hand := []Card{reps[a], reps[b], reps[c], reps[d], reps[e]}
						if handIsStraight(hand) {
							continue
						}
						if sameSuit(hand) && !swapOffSuit(hand, groups) {
							continue
						}
						return hand
					}
				}
			}
		}
	}
	return nil
}
