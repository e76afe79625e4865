package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/belote/internal/bot"
	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

// Game is one Belote table. It is safe for concurrent use.
type Game struct {
	mu     sync.Mutex
	cfg    config
	clock  quartz.Clock
	logger *log.Logger
	events *eventQueue

	state  GameState
	deck   *cards.Deck
	agents map[string]bot.Agent
	seq    int
	closed bool

	deckRNG     *rand.Rand
	botRNG      *rand.Rand
	fallbackRNG *rand.Rand

	turnTimer timerSlot
	botTimer  timerSlot
}

// New creates a game in the waiting phase.
func New(opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		clock:  cfg.clock,
		logger: cfg.logger.WithPrefix("game"),
		events: newEventQueue(),
		agents: make(map[string]bot.Agent),
	}
	g.deckRNG, g.botRNG, g.fallbackRNG = cfg.rngs()
	g.state.Teams = [2]Team{
		{ID: 1, Name: "Team 1"},
		{ID: 2, Name: "Team 2"},
	}
	g.state.TimeLeft = cfg.moveTime
	return g, nil
}

// EndValue is the total that ends the game.
func (g *Game) EndValue() int { return g.cfg.endValue }

// Subscribe registers sub for every later event and returns a function that
// removes it. Events are delivered in emission order without the game lock
// held.
func (g *Game) Subscribe(sub EventSubscriber) (unsubscribe func()) {
	return g.events.subscribe(sub)
}

// Close stops every timer and releases all subscribers. Later actions fail
// with ErrClosed.
func (g *Game) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.stopTimers()
	g.mu.Unlock()
	g.events.close()
	g.logger.Debug("Game closed")
}

// guard is the single error boundary for every action. fn runs under the
// game lock; an error is wrapped with op, logged and published as a
// FailureEvent before it is returned. Queued events are delivered after the
// lock is released.
func (g *Game) guard(op string, fn func() error) error {
	g.mu.Lock()
	var err error
	if g.closed {
		err = fmt.Errorf("%s: %w", op, ErrClosed)
	} else if err = fn(); err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		g.fail(op, err)
	}
	g.mu.Unlock()
	g.events.flush()
	return err
}

func (g *Game) fail(op string, err error) {
	if errors.Is(err, rules.ErrNoLegalCard) {
		g.logger.Error("Broken invariant", "op", op, "error", err)
	} else {
		g.logger.Warn("Action rejected", "op", op, "error", err)
	}
	g.emit(FailureEvent{stamp: g.now(), Op: op, Err: err})
}

func (g *Game) emit(e GameEvent) {
	g.events.push(e)
}

func (g *Game) now() stamp {
	return stamp{at: g.clock.Now()}
}

// CurrentSeat returns the seat expected to act while bidding or playing.
func (g *Game) CurrentSeat() (Seat, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Phase != PhaseBidding && g.state.Phase != PhasePlaying {
		return Seat{}, false
	}
	return g.state.Seats[g.state.Turn].clone(), true
}

// Seat returns a copy of the seat with the given id.
func (g *Game) Seat(id string) (Seat, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.state.seat(id)
	if s == nil {
		return Seat{}, false
	}
	return s.clone(), true
}

// TeamSeats returns copies of the seats in team 1 or 2, in seating order.
func (g *Game) TeamSeats(team int) []Seat {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Seat
	for _, s := range g.state.Seats {
		if s.Team == team {
			out = append(out, s.clone())
		}
	}
	return out
}

// Snapshot returns a deep copy of the whole game state.
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.state.clone()
	if g.deck != nil {
		s.Deck = g.deck.Remaining()
	}
	return s
}

func (g *Game) seatInfos() []Seat {
	out := make([]Seat, len(g.state.Seats))
	for i, s := range g.state.Seats {
		out[i] = s.clone()
	}
	return out
}

func (g *Game) view(s *Seat) bot.View {
	return bot.View{
		Hand:   append([]cards.Card(nil), s.Hand...),
		Talon:  append([]cards.Card(nil), s.Talon...),
		Trick:  append([]rules.Play(nil), g.state.Trick...),
		Trump:  g.state.Trump,
		Dealer: s.Dealer,
	}
}
