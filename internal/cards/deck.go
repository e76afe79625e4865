package cards

import (
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a Belote deck.
const DeckSize = 32

// Deck represents the 32-card deck for one round
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards[i] = New(rank, suit)
			i++
		}
	}
	d.Shuffle()
	return d
}

// NewStackedDeck returns a deck that deals cards in exactly the given order.
// The order must be a permutation of the full deck.
func NewStackedDeck(order []Card) (*Deck, error) {
	if len(order) != DeckSize {
		return nil, fmt.Errorf("stacked deck needs %d cards, got %d", DeckSize, len(order))
	}
	d := &Deck{}
	seen := make(map[Card]bool, DeckSize)
	for i, c := range order {
		if c.Suit > Spades || c.Rank > Ace {
			return nil, fmt.Errorf("stacked deck: invalid card at %d", i)
		}
		if seen[c] {
			return nil, fmt.Errorf("stacked deck: duplicate card %s", c)
		}
		seen[c] = true
		d.cards[i] = c
	}
	return d, nil
}

// Shuffle shuffles the undealt deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck. The returned slice is owned by the caller.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Remaining returns a copy of the undealt cards in deal order.
func (d *Deck) Remaining() []Card {
	out := make([]Card, d.CardsRemaining())
	copy(out, d.cards[d.next:])
	return out
}
