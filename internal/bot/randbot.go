package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

// RandBot is a simple bot that makes uniform random legal decisions. It is
// the baseline the simulator measures Policy against.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

// Bid passes half the time unless it is the dealer.
func (r *RandBot) Bid(v View) (cards.Suit, bool) {
	if !v.Dealer && r.rng.IntN(2) == 0 {
		return 0, false
	}
	return cards.Suits[r.rng.IntN(len(cards.Suits))], true
}

// Declare picks one of the available combinations at random, or none.
func (r *RandBot) Declare(v View) []cards.Card {
	all := rules.FindAll(v.Playable(), v.Trump)
	pick := r.rng.IntN(len(all) + 1)
	if pick == len(all) {
		return nil
	}
	return all[pick].Cards
}

// Play picks uniformly among the legal cards.
func (r *RandBot) Play(v View) (cards.Card, error) {
	legal := rules.LegalCards(v.Trick, v.Trump, v.Playable())
	if len(legal) == 0 {
		return cards.Card{}, rules.ErrNoLegalCard
	}
	c := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("Random play", "card", c, "choices", len(legal))
	return c, nil
}
