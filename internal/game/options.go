package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/belote/internal/bot"
	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/randutil"
)

// Defaults for a new game.
const (
	DefaultEndValue = 501
	DefaultMoveTime = 30
	DefaultBotDelay = time.Second
)

var (
	// EndValues are the accepted winning totals.
	EndValues = []int{501, 701, 1001}
	// MoveTimes are the accepted per-turn limits in seconds.
	MoveTimes = []int{10, 20, 30, 40, 50, 60}
)

// AgentFactory builds the agent driving a newly added bot seat. rng is the
// game's bot stream and is only ever used under the game lock.
type AgentFactory func(seatID string, team int, rng *rand.Rand, logger *log.Logger) bot.Agent

// DeckFunc returns the exact dealing order for a round, starting at 1.
type DeckFunc func(round int) []cards.Card

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	endValue int
	moveTime int
	botDelay time.Duration
	seed     int64
	seeded   bool
	clock    quartz.Clock
	logger   *log.Logger
	agent    AgentFactory
	deck     DeckFunc
}

func defaultConfig() config {
	return config{
		endValue: DefaultEndValue,
		moveTime: DefaultMoveTime,
		botDelay: DefaultBotDelay,
		clock:    quartz.NewReal(),
		logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
		agent:    PolicyAgents,
	}
}

func (c config) validate() error {
	if !slices.Contains(EndValues, c.endValue) {
		return fmt.Errorf("%w: end value %d not one of %v", ErrInvalidOption, c.endValue, EndValues)
	}
	if !slices.Contains(MoveTimes, c.moveTime) {
		return fmt.Errorf("%w: move time %ds not one of %v", ErrInvalidOption, c.moveTime, MoveTimes)
	}
	if c.botDelay < 0 {
		return fmt.Errorf("%w: negative bot delay %s", ErrInvalidOption, c.botDelay)
	}
	if c.clock == nil || c.logger == nil || c.agent == nil {
		return fmt.Errorf("%w: nil clock, logger or agent factory", ErrInvalidOption)
	}
	return nil
}

// WithEndValue sets the cumulative total that ends the game.
func WithEndValue(v int) Option {
	return func(c *config) { c.endValue = v }
}

// WithMoveTime sets the per-turn limit in whole seconds.
func WithMoveTime(seconds int) Option {
	return func(c *config) { c.moveTime = seconds }
}

// WithBotDelay sets how long an automated seat waits before acting.
func WithBotDelay(d time.Duration) Option {
	return func(c *config) { c.botDelay = d }
}

// WithSeed makes shuffles, bot decisions and timeout fallbacks reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithClock injects the clock that drives turn timers and bot delays.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithLogger sets the logger. The game logs under the "game" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithAgent replaces the agent used for bot seats added afterwards.
func WithAgent(f AgentFactory) Option {
	return func(c *config) { c.agent = f }
}

// WithDeck stacks the deck for each round instead of shuffling.
func WithDeck(f DeckFunc) Option {
	return func(c *config) { c.deck = f }
}

// PolicyAgents gives every bot the default heuristic policy.
func PolicyAgents(_ string, _ int, rng *rand.Rand, logger *log.Logger) bot.Agent {
	return bot.NewPolicy(rng, logger)
}

// RandomAgents gives every bot uniformly random legal moves.
func RandomAgents(_ string, _ int, rng *rand.Rand, logger *log.Logger) bot.Agent {
	return bot.NewRandBot(rng, logger)
}

// TeamAgents uses team1 for bots seated in team 1 and team2 otherwise.
func TeamAgents(team1, team2 AgentFactory) AgentFactory {
	return func(seatID string, team int, rng *rand.Rand, logger *log.Logger) bot.Agent {
		if team == 1 {
			return team1(seatID, team, rng, logger)
		}
		return team2(seatID, team, rng, logger)
	}
}

func (c config) rngs() (deck, bots, fallback *rand.Rand) {
	seed := c.seed
	if !c.seeded {
		seed = randutil.TimeSeed()
	}
	return randutil.Derive(seed, randutil.StreamDeck),
		randutil.Derive(seed, randutil.StreamBots),
		randutil.Derive(seed, randutil.StreamFallback)
}
