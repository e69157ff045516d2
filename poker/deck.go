package poker

import (
	rand "math/rand/v2"
)

// HandSize is the number of cards in an evaluated hand.
const HandSize = 5

// BonusWindow is the number of cards treated as visible at the start of a
// bonus round. NewBonusDeck places its guaranteed pairs inside it.
const BonusWindow = 10

// Deck is an ordered sequence of cards. A fresh deck holds all 52 rank and
// suit combinations exactly once; during play it shrinks and grows as the
// caller consumes and recycles cards.
type Deck []Card

// NewDeck returns all 52 cards in fixed suit-major order. No randomness.
func NewDeck() Deck {
	d := make(Deck, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d = append(d, NewCard(rank, suit))
		}
	}
	return d
}

// Shuffled returns a uniformly random permutation of the deck using
// Fisher-Yates on a copy. The receiver is never modified; rng must not be
// nil.
func (d Deck) Shuffled(rng *rand.Rand) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewBonusDeck returns a full shuffled deck for a bonus round. The first
// three bonus rounds are eased in: at least two ranks appear paired within
// the first BonusWindow cards, achieved by relocating cards only, so the
// deck still holds all 52 unique cards. Later rounds get a plain shuffle.
func NewBonusDeck(bonusRound int, rng *rand.Rand) Deck {
	d := NewDeck().Shuffled(rng)
	if bonusRound >= 1 && bonusRound <= 3 {
		frontLoadPairs(d)
	}
	return d
}

// frontLoadPairs swaps cards from the remainder into the visible window
// until two distinct ranks are paired there. Any rank with a single card
// in the window has three more in the remainder, so completion always
// succeeds; eviction only ever removes unpaired window cards.
func frontLoadPairs(d Deck) {
	var counts [13]uint8
	for _, c := range d[:BonusWindow] {
		counts[c.Rank-Two]++
	}
	paired := 0
	for _, n := range counts {
		if n >= 2 {
			paired++
		}
	}

	for i := BonusWindow; i < len(d) && paired < 2; i++ {
		rank := d[i].Rank
		if counts[rank-Two] != 1 {
			continue
		}
		for j, w := range d[:BonusWindow] {
			if w.Rank != rank && counts[w.Rank-Two] == 1 {
				counts[w.Rank-Two]--
				counts[rank-Two]++
				d[i], d[j] = d[j], d[i]
				paired++
				break
			}
		}
	}
}
