package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

const (
	firstDeal = 3
	talonSize = 2
)

// Bid names trump for the seat whose turn it is.
func (g *Game) Bid(id string, suit cards.Suit) error {
	return g.guard("bid", func() error {
		s, err := g.actor(id, PhaseBidding)
		if err != nil {
			return err
		}
		if !slices.Contains(cards.Suits[:], suit) {
			return fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
		}
		return g.bid(s, suit, false)
	})
}

// Pass declines to name trump. The dealer may not pass.
func (g *Game) Pass(id string) error {
	return g.guard("pass", func() error {
		s, err := g.actor(id, PhaseBidding)
		if err != nil {
			return err
		}
		return g.pass(s, false)
	})
}

// Declare submits a seat's combination during calling. An empty set means
// no declaration; a set that does not classify counts as none.
func (g *Game) Declare(id string, cs []cards.Card) error {
	return g.guard("declare", func() error {
		if g.state.Phase != PhaseCalling {
			return fmt.Errorf("%w: %s", ErrWrongPhase, g.state.Phase)
		}
		s := g.state.seat(id)
		if s == nil {
			return fmt.Errorf("%w: %q", ErrUnknownSeat, id)
		}
		return g.declare(s, cs, false)
	})
}

// PlayCard puts a card from the seat's hand or talon into the trick.
func (g *Game) PlayCard(id string, c cards.Card) error {
	return g.guard("play", func() error {
		s, err := g.actor(id, PhasePlaying)
		if err != nil {
			return err
		}
		return g.playCard(s, c, false)
	})
}

func (g *Game) actor(id string, phase Phase) (*Seat, error) {
	if g.state.Phase != phase {
		return nil, fmt.Errorf("%w: %s", ErrWrongPhase, g.state.Phase)
	}
	i := g.state.seatIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeat, id)
	}
	if i != g.state.Turn {
		return nil, fmt.Errorf("%w: %q, waiting on %q", ErrNotYourTurn, id, g.state.Seats[g.state.Turn].ID)
	}
	return g.state.Seats[i], nil
}

// left returns the seat index k places clockwise of the dealer.
func (g *Game) left(k int) int {
	return (g.state.dealerIndex() + k) % seatsPerTable
}

func (g *Game) startNextRound() error {
	g.state.Round++
	g.state.resetRound()

	dealer := g.state.dealerIndex()
	g.state.Seats[dealer].Dealer = false
	next := g.state.Seats[(dealer+1)%seatsPerTable]
	next.Dealer = true

	g.logger.Debug("Round started", "round", g.state.Round, "dealer", next.ID)
	g.emit(RoundStartedEvent{stamp: g.now(), Round: g.state.Round, Dealer: next.ID})
	return g.dealInitial()
}

func (g *Game) dealInitial() error {
	g.state.Phase = PhaseDealing
	if g.cfg.deck != nil {
		d, err := cards.NewStackedDeck(g.cfg.deck(g.state.Round))
		if err != nil {
			return fmt.Errorf("round %d: %w", g.state.Round, err)
		}
		g.deck = d
	} else {
		g.deck = cards.NewDeck(g.deckRNG)
	}

	for range 2 {
		for k := 1; k <= seatsPerTable; k++ {
			s := g.state.Seats[g.left(k)]
			s.Hand = append(s.Hand, g.deck.Deal(firstDeal)...)
		}
	}
	g.state.Deck = g.deck.Remaining()

	counts := make([]SeatCount, len(g.state.Seats))
	for i, s := range g.state.Seats {
		counts[i] = SeatCount{SeatID: s.ID, Count: len(s.Hand)}
	}
	g.emit(CardsDealtEvent{stamp: g.now(), Seats: counts})

	g.state.Phase = PhaseBidding
	g.state.Turn = g.left(1)
	g.emit(BiddingStartedEvent{stamp: g.now(), SeatID: g.state.Seats[g.state.Turn].ID})
	g.prompt()
	return nil
}

func (g *Game) bid(s *Seat, suit cards.Suit, timedOut bool) error {
	g.stopTimers()
	b := Bid{Seat: s.ID, Suit: suit}
	g.state.Bids = append(g.state.Bids, b)
	g.emit(BidMadeEvent{stamp: g.now(), Bid: b, TimedOut: timedOut})

	g.state.Trump = suit
	g.state.TrumpSet = true
	g.state.TrumpTeam = s.Team
	g.logger.Debug("Trump chosen", "suit", suit, "seat", s.ID, "team", s.Team)
	g.emit(TrumpChosenEvent{stamp: g.now(), Suit: suit, SeatID: s.ID, Team: s.Team})

	talons := make([]SeatCards, 0, seatsPerTable)
	for k := 1; k <= seatsPerTable; k++ {
		seat := g.state.Seats[g.left(k)]
		seat.Talon = g.deck.Deal(talonSize)
		talons = append(talons, SeatCards{SeatID: seat.ID, Cards: slices.Clone(seat.Talon)})
	}
	g.state.Deck = g.deck.Remaining()
	g.emit(TalonDealtEvent{stamp: g.now(), Talons: talons})

	g.startCalling()
	return nil
}

func (g *Game) pass(s *Seat, timedOut bool) error {
	if s.Dealer {
		return ErrDealerMustBid
	}
	g.stopTimers()
	b := Bid{Seat: s.ID, Pass: true}
	g.state.Bids = append(g.state.Bids, b)
	g.emit(BidMadeEvent{stamp: g.now(), Bid: b, TimedOut: timedOut})

	// The dealer bids last and cannot pass, so a pass always has a successor.
	g.state.Turn = (g.state.Turn + 1) % seatsPerTable
	g.emit(NextBidderEvent{stamp: g.now(), SeatID: g.state.Seats[g.state.Turn].ID})
	g.prompt()
	return nil
}

func (g *Game) startCalling() {
	g.state.Phase = PhaseCalling
	g.state.Declarations = nil
	g.emit(CallingStartedEvent{stamp: g.now()})

	var bots, humans bool
	for _, s := range g.state.Seats {
		bots = bots || s.Bot
		humans = humans || !s.Bot
	}
	switch {
	case bots && humans:
		// The shared countdown starts once the bots have declared, so only
		// one timer is ever pending.
		g.startBotTimer(func() error {
			if err := g.botsDeclare(); err != nil {
				return err
			}
			if g.state.Phase == PhaseCalling {
				g.startTurnTimer("", g.timeoutCalling)
			}
			return nil
		})
	case bots:
		g.startBotTimer(g.botsDeclare)
	default:
		g.startTurnTimer("", g.timeoutCalling)
	}
}

func (g *Game) declared(id string) bool {
	return slices.ContainsFunc(g.state.Declarations, func(d rules.Declaration) bool { return d.Seat == id })
}

func (g *Game) declare(s *Seat, cs []cards.Card, timedOut bool) error {
	if g.declared(s.ID) {
		return fmt.Errorf("%w: %q", ErrAlreadyDeclared, s.ID)
	}
	if !g.state.TrumpSet {
		return ErrNoTrump
	}
	for _, c := range cs {
		if !s.holds(c) {
			return fmt.Errorf("%w: %s", ErrCardNotHeld, c)
		}
	}

	kind, _ := rules.Classify(cs, g.state.Trump)
	d := rules.Declaration{
		Seat:        s.ID,
		Team:        s.Team,
		Combination: rules.Combination{Kind: kind, Cards: slices.Clone(cs)},
	}
	g.state.Declarations = append(g.state.Declarations, d)
	g.emit(DeclarationMadeEvent{stamp: g.now(), SeatID: s.ID, Cards: slices.Clone(cs), Kind: kind, TimedOut: timedOut})

	if kind == rules.Belot {
		g.instantWin(s, cs[0].Suit)
		return nil
	}
	if len(g.state.Declarations) == seatsPerTable {
		g.resolveCalling()
	}
	return nil
}

func (g *Game) resolveCalling() {
	g.stopTimers()
	winner, found := rules.ResolveDeclarations(g.state.Declarations, g.state.TrumpTeam)
	g.state.Declarations = nil
	g.state.Bonus = 0
	if found {
		g.state.Declarations = []rules.Declaration{winner}
		g.state.Bonus = winner.Kind.Value()
		g.logger.Debug("Declaration scores", "seat", winner.Seat, "kind", winner.Kind, "bonus", g.state.Bonus)
	}
	g.emit(CallingResolvedEvent{stamp: g.now(), Winner: winner, Found: found, Bonus: g.state.Bonus})
	g.startPlaying()
}

func (g *Game) instantWin(s *Seat, suit cards.Suit) {
	g.stopTimers()
	g.logger.Info("Belot declared", "seat", s.ID, "team", s.Team, "suit", suit)
	g.emit(InstantWinEvent{stamp: g.now(), SeatID: s.ID, Team: s.Team, Suit: suit})
	g.endGame(s.Team, true)
}

func (g *Game) startPlaying() {
	g.state.Phase = PhasePlaying
	g.state.TrickNumber = 1
	g.state.Trick = nil
	// The first seat at the table leads trick one whoever dealt.
	g.state.Turn = 0
	leader := g.state.Seats[g.state.Turn].ID
	g.emit(PlayingStartedEvent{stamp: g.now(), Leader: leader})
	g.emit(NextToActEvent{stamp: g.now(), SeatID: leader})
	g.prompt()
}

func (g *Game) playCard(s *Seat, c cards.Card, timedOut bool) error {
	if !g.state.TrumpSet {
		return ErrNoTrump
	}
	if !s.holds(c) {
		return fmt.Errorf("%w: %s", ErrCardNotHeld, c)
	}
	if !rules.IsLegalPlay(c, g.state.Trick, g.state.Trump, s.Playable()) {
		return fmt.Errorf("%w: %s onto [%s]", ErrIllegalPlay, c, formatTrick(g.state.Trick))
	}

	g.stopTimers()
	s.take(c)
	g.state.Trick = append(g.state.Trick, rules.Play{Seat: s.ID, Card: c})
	g.emit(CardPlayedEvent{stamp: g.now(), SeatID: s.ID, Card: c, Trick: g.state.TrickNumber, TimedOut: timedOut})

	if len(g.state.Trick) == seatsPerTable {
		return g.completeTrick()
	}
	g.state.Turn = (g.state.Turn + 1) % seatsPerTable
	g.emit(NextToActEvent{stamp: g.now(), SeatID: g.state.Seats[g.state.Turn].ID})
	g.prompt()
	return nil
}

func (g *Game) completeTrick() error {
	w, ok := rules.TrickWinner(g.state.Trick, g.state.Trump)
	if !ok {
		return errors.New("empty trick")
	}
	winner := g.state.seat(w.Seat)
	t := rules.CompletedTrick{Plays: slices.Clone(g.state.Trick), Winner: w, WinnerTeam: winner.Team}
	team := g.state.Team(winner.Team)
	team.Tricks = append(team.Tricks, t)
	g.state.Completed = append(g.state.Completed, t)
	g.emit(TrickCompletedEvent{stamp: g.now(), Number: g.state.TrickNumber, Trick: t})

	if g.state.TrickNumber == rules.TricksPerRound {
		return g.completeRound()
	}
	g.state.TrickNumber++
	g.state.Trick = nil
	g.state.Turn = g.state.seatIndex(w.Seat)
	g.emit(NextTrickStartedEvent{stamp: g.now(), Number: g.state.TrickNumber, Leader: w.Seat})
	g.prompt()
	return nil
}

func (g *Game) completeRound() error {
	score := rules.ScoreRound(g.state.Completed, g.state.Trump, g.state.TrumpTeam, g.state.Bonus)
	t1, t2 := g.state.Team(1), g.state.Team(2)
	t1.Scores = append(t1.Scores, score.Team1)
	t2.Scores = append(t2.Scores, score.Team2)

	winner := 2
	if score.Team1 > score.Team2 {
		winner = 1
	}
	g.logger.Info("Round completed",
		"round", g.state.Round,
		"team1", score.Team1,
		"team2", score.Team2,
		"bonus", score.Bonus,
		"failed", score.Failed)
	g.emit(RoundCompletedEvent{
		stamp:      g.now(),
		Round:      g.state.Round,
		Score:      score,
		Winner:     winner,
		FailedTeam: score.Failed,
		Team1:      t1.Total(),
		Team2:      t2.Total(),
	})

	if t1.Total() >= g.cfg.endValue || t2.Total() >= g.cfg.endValue {
		champion := 2
		if t1.Total() > t2.Total() {
			champion = 1
		}
		g.endGame(champion, false)
		return nil
	}
	return g.startNextRound()
}

func (g *Game) endGame(winner int, instant bool) {
	g.stopTimers()
	g.state.Phase = PhaseFinished
	g.state.GameOver = true
	g.state.Winner = winner
	t1, t2 := g.state.Team(1).Total(), g.state.Team(2).Total()
	g.logger.Info("Game ended", "winner", winner, "team1", t1, "team2", t2, "instant", instant)
	g.emit(GameEndedEvent{stamp: g.now(), Winner: winner, Team1: t1, Team2: t2, InstantWin: instant})
}

// prompt arms the timer for whoever acts next while bidding or playing.
func (g *Game) prompt() {
	s := g.state.Seats[g.state.Turn]
	id := s.ID
	if s.Bot {
		g.turnTimer.stop()
		switch g.state.Phase {
		case PhaseBidding:
			g.startBotTimer(func() error { return g.botBid(id) })
		case PhasePlaying:
			g.startBotTimer(func() error { return g.botPlay(id) })
		}
		return
	}

	g.botTimer.stop()
	switch g.state.Phase {
	case PhaseBidding:
		g.startTurnTimer(id, func() error { return g.timeoutBid(id) })
	case PhasePlaying:
		g.startTurnTimer(id, func() error { return g.timeoutPlay(id) })
	}
}

func (g *Game) botBid(id string) error {
	s, err := g.actor(id, PhaseBidding)
	if err != nil {
		return err
	}
	suit, ok := g.agents[id].Bid(g.view(s))
	if !ok && s.Dealer {
		suit, ok = g.randomSuit(), true
	}
	if ok {
		return g.bid(s, suit, false)
	}
	return g.pass(s, false)
}

func (g *Game) timeoutBid(id string) error {
	s, err := g.actor(id, PhaseBidding)
	if err != nil {
		return err
	}
	if s.Dealer {
		return g.bid(s, g.randomSuit(), true)
	}
	return g.pass(s, true)
}

func (g *Game) randomSuit() cards.Suit {
	return cards.Suits[g.fallbackRNG.IntN(len(cards.Suits))]
}

func (g *Game) botsDeclare() error {
	for _, s := range slices.Clone(g.state.Seats) {
		if g.state.Phase != PhaseCalling {
			return nil
		}
		if !s.Bot || g.declared(s.ID) {
			continue
		}
		if err := g.declare(s, g.agents[s.ID].Declare(g.view(s)), false); err != nil {
			g.fail("bot declare", fmt.Errorf("bot declare: %w", err))
			if err := g.declare(s, nil, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) timeoutCalling() error {
	for _, s := range slices.Clone(g.state.Seats) {
		if g.state.Phase != PhaseCalling {
			return nil
		}
		if g.declared(s.ID) {
			continue
		}
		if err := g.declare(s, nil, true); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) botPlay(id string) error {
	s, err := g.actor(id, PhasePlaying)
	if err != nil {
		return err
	}
	c, err := g.agents[id].Play(g.view(s))
	if err != nil {
		return err
	}
	if err := g.playCard(s, c, false); err != nil {
		g.fail("bot play", fmt.Errorf("bot play: %w", err))
		fallback, ok := rules.PickAnyLegalCard(g.state.Trick, g.state.Trump, s.Playable())
		if !ok {
			return rules.ErrNoLegalCard
		}
		return g.playCard(s, fallback, false)
	}
	return nil
}

func (g *Game) timeoutPlay(id string) error {
	s, err := g.actor(id, PhasePlaying)
	if err != nil {
		return err
	}
	c, ok := rules.PickAnyLegalCard(g.state.Trick, g.state.Trump, s.Playable())
	if !ok {
		return rules.ErrNoLegalCard
	}
	return g.playCard(s, c, true)
}

func formatTrick(trick []rules.Play) string {
	cs := make([]cards.Card, len(trick))
	for i, p := range trick {
		cs[i] = p.Card
	}
	return cards.Format(cs)
}
