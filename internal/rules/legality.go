// Package rules holds the stateless Belote rulebook: which cards may be
// played, who wins a trick, which declarations are valid and how a round
// is scored. Nothing in this package mutates its inputs.
package rules

import (
	"errors"

	"github.com/lox/belote/internal/cards"
)

// ErrNoLegalCard means the legality rules left a non-empty hand with nothing
// to play. It indicates a broken invariant, never a player mistake.
var ErrNoLegalCard = errors.New("no legal card in a non-empty hand")

// Play is one card put into a trick by a seat.
type Play struct {
	Seat string
	Card cards.Card
}

// CanBeat reports whether card wins against target. A trump beats any
// plain card; otherwise only a card of the same suit worth strictly more
// points wins, so equal-value cards never overtake each other.
func CanBeat(card, target cards.Card, trump cards.Suit) bool {
	switch {
	case card.Suit == trump && target.Suit != trump:
		return true
	case card.Suit != target.Suit:
		return false
	default:
		return card.Points(trump) > target.Points(trump)
	}
}

// IsLegalPlay reports whether card may be played from hand into trick.
// hand is the seat's full playable set (hand and talon) and must contain card.
func IsLegalPlay(card cards.Card, trick []Play, trump cards.Suit, hand []cards.Card) bool {
	if !cards.Contains(hand, card) {
		return false
	}
	if len(trick) == 0 {
		return true
	}

	led := trick[0].Card.Suit
	if cards.HasSuit(hand, led) {
		if card.Suit != led {
			return false
		}
		if led == trump {
			top, _ := highestOfSuit(trick, trump, trump)
			return overtakesIfAble(card, top, hand, trump)
		}
		if !trumpPlayed(trick, trump) {
			top, _ := highestOfSuit(trick, led, trump)
			return overtakesIfAble(card, top, hand, trump)
		}
		return true
	}

	if cards.HasSuit(hand, trump) {
		if card.Suit != trump {
			return false
		}
		if top, ok := highestOfSuit(trick, trump, trump); ok {
			return overtakesIfAble(card, top, hand, trump)
		}
		return true
	}

	return true
}

// LegalCards returns every card of hand that may be played now, in hand order.
func LegalCards(trick []Play, trump cards.Suit, hand []cards.Card) []cards.Card {
	out := make([]cards.Card, 0, len(hand))
	for _, c := range hand {
		if IsLegalPlay(c, trick, trump, hand) {
			out = append(out, c)
		}
	}
	return out
}

// PickAnyLegalCard returns the first legal card of hand. It returns false
// only for an empty hand.
func PickAnyLegalCard(trick []Play, trump cards.Suit, hand []cards.Card) (cards.Card, bool) {
	for _, c := range hand {
		if IsLegalPlay(c, trick, trump, hand) {
			return c, true
		}
	}
	return cards.Card{}, false
}

// TrickWinner returns the play that takes the trick.
func TrickWinner(trick []Play, trump cards.Suit) (Play, bool) {
	if len(trick) == 0 {
		return Play{}, false
	}
	best := trick[0]
	for _, p := range trick[1:] {
		if CanBeat(p.Card, best.Card, trump) {
			best = p
		}
	}
	return best, true
}

// overtakesIfAble accepts card when it beats target, or when no card of the
// same suit in hand could have.
func overtakesIfAble(card, target cards.Card, hand []cards.Card, trump cards.Suit) bool {
	if CanBeat(card, target, trump) {
		return true
	}
	for _, c := range hand {
		if c.Suit == card.Suit && CanBeat(c, target, trump) {
			return false
		}
	}
	return true
}

func highestOfSuit(trick []Play, suit, trump cards.Suit) (cards.Card, bool) {
	var top cards.Card
	found := false
	for _, p := range trick {
		if p.Card.Suit != suit {
			continue
		}
		if !found || p.Card.Points(trump) > top.Points(trump) {
			top = p.Card
			found = true
		}
	}
	return top, found
}

func trumpPlayed(trick []Play, trump cards.Suit) bool {
	for _, p := range trick {
		if p.Card.Suit == trump {
			return true
		}
	}
	return false
}
