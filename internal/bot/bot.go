// Package bot holds the automated-seat policies. Every decision is a pure
// function of the seat's own View and the bot's random stream.
package bot

import (
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

// View is what an automated seat can see when asked to act.
type View struct {
	Hand   []cards.Card
	Talon  []cards.Card
	Trick  []rules.Play
	Trump  cards.Suit
	Dealer bool
}

// Playable returns hand followed by talon.
func (v View) Playable() []cards.Card {
	out := make([]cards.Card, 0, len(v.Hand)+len(v.Talon))
	out = append(out, v.Hand...)
	return append(out, v.Talon...)
}

// Agent decides for an automated seat.
type Agent interface {
	// Bid returns the suit to name, or false to pass.
	Bid(v View) (cards.Suit, bool)
	// Declare returns the cards to declare; nil means no declaration.
	Declare(v View) []cards.Card
	// Play returns the card to play into v.Trick.
	Play(v View) (cards.Card, error)
}

const (
	minBidCards = 3
	minBidScore = 6.0
)

// Policy is the default heuristic agent.
type Policy struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewPolicy creates a policy drawing from rng.
func NewPolicy(rng *rand.Rand, logger *log.Logger) *Policy {
	return &Policy{
		rng:    rng,
		logger: logger.WithPrefix("bot"),
	}
}

// Bid names the suit with the best score(suit) = count*2 + trumpPoints*0.1,
// provided it holds at least three cards of it. The dealer may not pass.
func (p *Policy) Bid(v View) (cards.Suit, bool) {
	best, bestScore, bestCount := cards.Hearts, -1.0, 0
	for _, s := range cards.Suits {
		count, points := 0, 0
		for _, c := range v.Hand {
			if c.Suit == s {
				count++
				points += cards.TrumpPoints(c.Rank)
			}
		}
		score := float64(count)*2 + float64(points)*0.1
		if score > bestScore {
			best, bestScore, bestCount = s, score, count
		}
	}

	switch {
	case bestCount >= minBidCards && bestScore >= minBidScore:
		p.logger.Debug("Bidding", "suit", best, "score", bestScore)
		return best, true
	case !v.Dealer:
		return 0, false
	case len(v.Hand) == 0:
		best = cards.Suits[p.rng.IntN(len(cards.Suits))]
	}
	p.logger.Debug("Dealer forced to bid", "suit", best, "score", bestScore)
	return best, true
}

// Declare returns the strongest combination over hand and talon.
func (p *Policy) Declare(v View) []cards.Card {
	best, ok := rules.Best(v.Playable(), v.Trump)
	if !ok {
		return nil
	}
	p.logger.Debug("Declaring", "kind", best.Kind, "cards", cards.Format(best.Cards))
	return best.Cards
}

// Play leads its highest trump, or its highest card without one. Following,
// it plays the cheapest card that beats the whole trick, or else its cheapest
// legal card.
func (p *Policy) Play(v View) (cards.Card, error) {
	legal := rules.LegalCards(v.Trick, v.Trump, v.Playable())
	if len(legal) == 0 {
		return cards.Card{}, rules.ErrNoLegalCard
	}

	if len(v.Trick) == 0 {
		var trumps []cards.Card
		for _, c := range legal {
			if c.Suit == v.Trump {
				trumps = append(trumps, c)
			}
		}
		if len(trumps) > 0 {
			return highest(trumps, v.Trump), nil
		}
		return highest(legal, v.Trump), nil
	}

	var winners []cards.Card
	for _, c := range legal {
		if beatsAll(c, v.Trick, v.Trump) {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 {
		return lowest(winners, v.Trump), nil
	}
	return lowest(legal, v.Trump), nil
}

func beatsAll(c cards.Card, trick []rules.Play, trump cards.Suit) bool {
	for _, p := range trick {
		if !rules.CanBeat(c, p.Card, trump) {
			return false
		}
	}
	return true
}

// byValue orders cards by point value, then by sequence rank.
func byValue(trump cards.Suit) func(a, b cards.Card) int {
	return func(a, b cards.Card) int {
		if d := a.Points(trump) - b.Points(trump); d != 0 {
			return d
		}
		return int(a.Rank) - int(b.Rank)
	}
}

func highest(cs []cards.Card, trump cards.Suit) cards.Card {
	return slices.MaxFunc(cs, byValue(trump))
}

func lowest(cs []cards.Card, trump cards.Suit) cards.Card {
	return slices.MinFunc(cs, byValue(trump))
}
