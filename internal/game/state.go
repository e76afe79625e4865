package game

import (
	"slices"

	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

// Phase is the stage of the game state machine.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseDealing
	PhaseBidding
	PhaseCalling
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseDealing:
		return "dealing"
	case PhaseBidding:
		return "bidding"
	case PhaseCalling:
		return "calling"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Seat is one of the four places at the table.
type Seat struct {
	ID     string
	Name   string
	Team   int
	Dealer bool
	Ready  bool
	Bot    bool
	Hand   []cards.Card
	Talon  []cards.Card
}

// Playable returns hand followed by talon.
func (s *Seat) Playable() []cards.Card {
	out := make([]cards.Card, 0, len(s.Hand)+len(s.Talon))
	out = append(out, s.Hand...)
	return append(out, s.Talon...)
}

func (s *Seat) holds(c cards.Card) bool {
	return cards.Contains(s.Hand, c) || cards.Contains(s.Talon, c)
}

func (s *Seat) take(c cards.Card) bool {
	var ok bool
	if s.Hand, ok = cards.Remove(s.Hand, c); ok {
		return true
	}
	s.Talon, ok = cards.Remove(s.Talon, c)
	return ok
}

func (s *Seat) clone() Seat {
	c := *s
	c.Hand = slices.Clone(s.Hand)
	c.Talon = slices.Clone(s.Talon)
	return c
}

// Team is one of the two partnerships.
type Team struct {
	ID     int
	Name   string
	Scores []int
	// Tricks won in the current round.
	Tricks []rules.CompletedTrick
}

// Total is the cumulative score over all rounds.
func (t Team) Total() int {
	total := 0
	for _, s := range t.Scores {
		total += s
	}
	return total
}

func (t Team) clone() Team {
	c := t
	c.Scores = slices.Clone(t.Scores)
	c.Tricks = cloneTricks(t.Tricks)
	return c
}

// Bid is one bidding turn. Pass is set when the seat declined.
type Bid struct {
	Seat string
	Suit cards.Suit
	Pass bool
}

// GameState is everything the game tracks. Snapshot returns a deep copy.
type GameState struct {
	Seats []*Seat
	Teams [2]Team
	// Deck is the undealt remainder.
	Deck  []cards.Card
	Round int
	Phase Phase

	Trump     cards.Suit
	TrumpSet  bool
	TrumpTeam int
	Bids      []Bid
	// Declarations collects every submission during calling and keeps only
	// the winning one once calling resolves.
	Declarations []rules.Declaration
	Bonus        int

	Trick       []rules.Play
	TrickNumber int
	Completed   []rules.CompletedTrick

	// Turn indexes Seats; TimeLeft is its remaining whole seconds.
	Turn     int
	TimeLeft int

	GameOver bool
	Winner   int
}

// Team returns team 1 or 2.
func (s *GameState) Team(id int) *Team {
	return &s.Teams[id-1]
}

func (s *GameState) seatIndex(id string) int {
	return slices.IndexFunc(s.Seats, func(seat *Seat) bool { return seat.ID == id })
}

func (s *GameState) seat(id string) *Seat {
	if i := s.seatIndex(id); i >= 0 {
		return s.Seats[i]
	}
	return nil
}

func (s *GameState) dealerIndex() int {
	return slices.IndexFunc(s.Seats, func(seat *Seat) bool { return seat.Dealer })
}

func (s *GameState) teamSize(team int) int {
	n := 0
	for _, seat := range s.Seats {
		if seat.Team == team {
			n++
		}
	}
	return n
}

func (s *GameState) resetRound() {
	s.Trump, s.TrumpSet, s.TrumpTeam = 0, false, 0
	s.Bids = nil
	s.Declarations = nil
	s.Bonus = 0
	s.Trick = nil
	s.TrickNumber = 0
	s.Completed = nil
	s.TimeLeft = 0
	for i := range s.Teams {
		s.Teams[i].Tricks = nil
	}
	for _, seat := range s.Seats {
		seat.Hand, seat.Talon = nil, nil
	}
}

func (s *GameState) clone() GameState {
	c := *s
	c.Seats = make([]*Seat, len(s.Seats))
	for i, seat := range s.Seats {
		cp := seat.clone()
		c.Seats[i] = &cp
	}
	for i := range s.Teams {
		c.Teams[i] = s.Teams[i].clone()
	}
	c.Deck = slices.Clone(s.Deck)
	c.Bids = slices.Clone(s.Bids)
	c.Declarations = make([]rules.Declaration, len(s.Declarations))
	for i, d := range s.Declarations {
		c.Declarations[i] = d
		c.Declarations[i].Cards = slices.Clone(d.Cards)
	}
	c.Trick = slices.Clone(s.Trick)
	c.Completed = cloneTricks(s.Completed)
	return c
}

func cloneTricks(ts []rules.CompletedTrick) []rules.CompletedTrick {
	if ts == nil {
		return nil
	}
	out := make([]rules.CompletedTrick, len(ts))
	for i, t := range ts {
		out[i] = t
		out[i].Plays = slices.Clone(t.Plays)
	}
	return out
}
