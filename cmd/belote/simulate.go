package main

import (
	"time"

	"github.com/lox/belote/cmd/belote/shared"
	"github.com/lox/belote/internal/simulator"
	"github.com/lox/belote/internal/statistics"
)

type SimulateCmd struct {
	Games    int           `kong:"default='500',help='Number of seeds to play (each is played twice with teams swapped)'"`
	Team1    string        `kong:"default='policy',enum='policy,random',help='Agent strategy for team 1'"`
	Team2    string        `kong:"default='random',enum='policy,random',help='Agent strategy for team 2'"`
	Seed     int64         `kong:"default='1',help='First seed; game i uses seed+i'"`
	EndValue int           `kong:"default='501',help='Total that ends a game (501, 701 or 1001)'"`
	Parallel int           `kong:"help='Concurrent games (0 = GOMAXPROCS)'"`
	Timeout  time.Duration `kong:"default='30s',help='Per-game timeout'"`
	Report   string        `kong:"help='Write a JSON report to this file'"`
	Debug    bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	sim, err := simulator.New(simulator.Config{
		Games:    c.Games,
		Team1:    c.Team1,
		Team2:    c.Team2,
		Seed:     c.Seed,
		EndValue: c.EndValue,
		Timeout:  c.Timeout,
		Parallel: c.Parallel,
		Logger:   logger.WithPrefix("sim"),
	})
	if err != nil {
		return err
	}

	start := time.Now()
	logger.Info("Starting simulation", "games", c.Games, "team1", c.Team1, "team2", c.Team2, "seed", c.Seed)
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Simulation complete", "games", stats.Games, "elapsed", time.Since(start).Round(time.Millisecond))

	simulator.PrintSummary(stats, c.Team1, c.Team2)
	if c.Report != "" {
		if err := statistics.WriteReport(c.Report, stats.Report(c.Team1, c.Team2)); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}
