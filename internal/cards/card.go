// Package cards defines the 32-card Belote deck: suits, ranks, point values
// and a deterministic shuffle.
package cards

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in canonical order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the lower-case suit name
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit glyph
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) letter() byte {
	return "hdcs?"[min(int(s), 4)]
}

// ParseSuit accepts a suit name ("hearts") or its letter ("h").
func ParseSuit(str string) (Suit, error) {
	switch strings.ToLower(str) {
	case "h", "hearts":
		return Hearts, nil
	case "d", "diamonds":
		return Diamonds, nil
	case "c", "clubs":
		return Clubs, nil
	case "s", "spades":
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit %q", str)
}

// Rank represents a card rank. The declared order is the sequence order
// used for runs: 7 8 9 10 J Q K A.
type Rank uint8

const (
	Seven Rank = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in sequence order.
var Ranks = [...]Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

const rankLetters = "789TJQKA"

// String returns the single-character rank ("T" for ten)
func (r Rank) String() string {
	if int(r) >= len(rankLetters) {
		return "?"
	}
	return string(rankLetters[r])
}

// Card is a value object: two cards are the same card iff suit and rank match.
type Card struct {
	Suit Suit
	Rank Rank
}

// New returns the card of the given rank and suit.
func New(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the two-character form, e.g. "Jh" or "Ts".
func (c Card) String() string {
	return c.Rank.String() + string(c.Suit.letter())
}

// ParseCard parses the two-character form produced by String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 characters", s)
	}
	rank := strings.IndexByte(rankLetters, strings.ToUpper(s[:1])[0])
	if rank < 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank", s)
	}
	suit, err := ParseSuit(s[1:])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return Card{Suit: suit, Rank: Rank(rank)}, nil
}

// ParseCards parses a whitespace separated list such as "Jh 9h Ah".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseCards is ParseCards for fixed inputs; it panics on error.
func MustParseCards(s string) []Card {
	cs, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// Format joins cards with spaces.
func Format(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
