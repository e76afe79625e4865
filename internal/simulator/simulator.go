package simulator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/belote/internal/config"
	"github.com/lox/belote/internal/game"
	"github.com/lox/belote/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Team1    string // Agent strategy for team 1
	Team2    string // Agent strategy for team 2
	Seed     int64
	EndValue int
	Timeout  time.Duration // Per game
	Parallel int           // Concurrent games, defaults to GOMAXPROCS
	Logger   *log.Logger
}

// Simulator runs seeded bot-only games
type Simulator struct {
	config Config
	team1  game.AgentFactory
	team2  game.AgentFactory
}

// New creates a new simulator with the given configuration
func New(cfg Config) (*Simulator, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	team1, err := config.Agent(cfg.Team1)
	if err != nil {
		return nil, fmt.Errorf("team 1: %w", err)
	}
	team2, err := config.Agent(cfg.Team2)
	if err != nil {
		return nil, fmt.Errorf("team 2: %w", err)
	}
	if cfg.EndValue == 0 {
		cfg.EndValue = game.DefaultEndValue
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Simulator{config: cfg, team1: team1, team2: team2}, nil
}

// Run plays every seed twice, once with the strategies swapped between
// teams, so deal luck cancels out. Results are reported from the point of
// view of Team1's strategy and added in seed order.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.GameResult, 2*s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			r, err := s.playGame(ctx, seed, s.team1, s.team2)
			if err != nil {
				return err
			}
			results[2*i] = r
			return nil
		})
		g.Go(func() error {
			r, err := s.playGame(ctx, seed, s.team2, s.team1)
			if err != nil {
				return err
			}
			results[2*i+1] = r.Mirror()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGame runs one bot-only game on the real clock with no bot delay.
func (s *Simulator) playGame(ctx context.Context, seed int64, team1, team2 game.AgentFactory) (statistics.GameResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	g, err := game.New(
		game.WithSeed(seed),
		game.WithEndValue(s.config.EndValue),
		game.WithBotDelay(0),
		game.WithClock(quartz.NewReal()),
		game.WithLogger(s.config.Logger),
		game.WithAgent(game.TeamAgents(team1, team2)),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}
	defer g.Close()

	done := make(chan statistics.GameResult, 1)
	g.Subscribe(newCollector(seed, done, s.config.Logger))

	for _, team := range []int{1, 2, 1, 2} {
		if _, err := g.AddBot("", team); err != nil {
			return statistics.GameResult{}, err
		}
	}
	if err := g.Start(); err != nil {
		return statistics.GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}

	select {
	case r := <-done:
		return r, nil
	case <-ctx.Done():
		return statistics.GameResult{}, fmt.Errorf("game timed out after %v (seed: %d): %w", s.config.Timeout, seed, ctx.Err())
	}
}

// newCollector folds a game's events into a result and sends it once the
// game ends. Events arrive from a single drainer, so no locking is needed.
func newCollector(seed int64, done chan<- statistics.GameResult, logger *log.Logger) game.EventSubscriberFunc {
	r := statistics.GameResult{Seed: seed}
	trumpTeam := 0
	return func(e game.GameEvent) {
		switch e := e.(type) {
		case game.TrumpChosenEvent:
			trumpTeam = e.Team
		case game.RoundCompletedEvent:
			r.Rounds++
			r.Contracts[trumpTeam]++
			if e.FailedTeam != 0 {
				r.Failed[e.FailedTeam]++
			}
			r.Declared += e.Score.Bonus
		case game.FailureEvent:
			logger.Warn("Game reported a failure", "seed", seed, "op", e.Op, "error", e.Err)
		case game.GameEndedEvent:
			r.Winner = e.Winner
			r.Team1, r.Team2 = e.Team1, e.Team2
			r.InstantWin = e.InstantWin
			select {
			case done <- r:
			default:
			}
		}
	}
}

// PrintSummary prints a summary of simulation results
func PrintSummary(stats *statistics.Statistics, team1, team2 string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== FINAL RESULTS: %s (team 1) vs %s (team 2) ===\n", team1, team2)
	fmt.Printf("Games played: %d (duplicate pairs)\n", stats.Games)
	fmt.Printf("Wins: team 1 %d (%.1f%%), team 2 %d (%.1f%%)\n",
		stats.Teams[1].Wins, stats.WinRate(1)*100, stats.Teams[2].Wins, stats.WinRate(2)*100)
	fmt.Printf("Instant wins by Belot: %d\n", stats.InstantWins)
	fmt.Printf("Rounds per game: %.2f\n", stats.RoundsPerGame())

	fmt.Printf("\n=== MARGIN (team 1 - team 2) ===\n")
	fmt.Printf("Mean: %.2f\n", stats.Mean())
	fmt.Printf("Median: %.2f\n", stats.Median())
	fmt.Printf("Std Dev: %.2f\n", stats.StdDev())
	fmt.Printf("95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Printf("Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Printf("\n=== CONTRACTS ===\n")
	for team := 1; team <= 2; team++ {
		ts := stats.Teams[team]
		fmt.Printf("Team %d: %d named, %d failed (%.1f%%)\n", team, ts.Contracts, ts.Failed, ts.FailureRate()*100)
	}
	fmt.Printf("Overall failure rate: %.1f%%\n", stats.FailureRate()*100)
	fmt.Printf("Declaration points: %d\n", stats.Declared)
}
