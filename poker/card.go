package poker

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the lowercase suit name used in card IDs
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// Symbol returns the suit glyph for display
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the face value of a card. Aces are always high (14); the wheel
// straight is the single place an ace plays low, and the evaluator handles
// that internally.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the display label ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Ten {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

// Value returns the scoring value (2-10 literal, J=11, Q=12, K=13, A=14)
func (r Rank) Value() int {
	return int(r)
}

// Card represents a playing card. ID is stable and unique per physical
// card within one deck ("A-hearts", "10-spades"); selection APIs key on it.
type Card struct {
	ID   string
	Suit Suit
	Rank Rank
}

// NewCard creates a card with its canonical ID
func NewCard(rank Rank, suit Suit) Card {
	return Card{
		ID:   fmt.Sprintf("%s-%s", rank, suit),
		Suit: suit,
		Rank: rank,
	}
}

// Value returns the numeric value of the card for scoring and comparison
func (c Card) Value() int {
	return c.Rank.Value()
}

// String returns the compact display form (e.g. "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses either the compact form ("As", "th", "10h") or the ID
// form ("A-spades", "10-hearts")
func ParseCard(s string) (Card, error) {
	if rankPart, suitPart, found := strings.Cut(s, "-"); found {
		rank, err := parseRank(rankPart)
		if err != nil {
			return Card{}, err
		}
		suit, err := parseSuitName(suitPart)
		if err != nil {
			return Card{}, err
		}
		return NewCard(rank, suit), nil
	}

	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuitChar(s[len(s)-1])
	if err != nil {
		return Card{}, err
	}
	return NewCard(rank, suit), nil
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("invalid rank: %q", s)
	}
	return Rank(n), nil
}

func parseSuitChar(b byte) (Suit, error) {
	switch b {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("invalid suit: %c", b)
	}
}

func parseSuitName(s string) (Suit, error) {
	switch strings.ToLower(s) {
	case "clubs":
		return Clubs, nil
	case "diamonds":
		return Diamonds, nil
	case "hearts":
		return Hearts, nil
	case "spades":
		return Spades, nil
	default:
		return 0, fmt.Errorf("invalid suit: %q", s)
	}
}
