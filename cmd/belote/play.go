package main

import (
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/belote/cmd/belote/shared"
	"github.com/lox/belote/internal/config"
	"github.com/lox/belote/internal/game"
)

type PlayCmd struct {
	Config    string        `kong:"default='belote.hcl',help='Table configuration file (defaults apply when missing)'"`
	Seed      int64         `kong:"help='Override the configured seed (0 keeps it)'"`
	Delay     time.Duration `kong:"default='-1ns',help='Override the configured bot delay'"`
	ShowTicks bool          `kong:"help='Show per-second timer ticks'"`
	Talons    bool          `kong:"help='Reveal talons as they are dealt'"`
	Debug     bool          `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.LoadFile(c.Config)
	if err != nil {
		return err
	}
	if !cfg.AllBots() {
		return fmt.Errorf("%s: play needs four bot seats", c.Config)
	}
	if err := shared.ParseLevel(logger, cfg.Game.LogLevel, c.Debug); err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, game.WithClock(quartz.NewReal()), game.WithLogger(logger))
	if c.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Seed))
	}
	if c.Delay >= 0 {
		opts = append(opts, game.WithBotDelay(c.Delay))
	}

	g, err := game.New(opts...)
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	formatter := game.NewNotificationFormatter(game.FormattingOptions{
		ShowTimeouts: true,
		ShowTicks:    c.ShowTicks,
		ShowTalons:   c.Talons,
		Color:        colorEnabled(),
		Symbols:      colorEnabled(),
		Names: func(id string) string {
			if s, ok := g.Seat(id); ok {
				return s.Name
			}
			return ""
		},
	})

	done := make(chan struct{})
	g.Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
		line, ok := formatter.Format(e)
		if !ok {
			return
		}
		if style := styleFor(e); style != nil {
			line = style.Render(line)
		}
		fmt.Println(line)
		if _, ended := e.(game.GameEndedEvent); ended {
			close(done)
		}
	}))

	fmt.Println(titleStyle.Render(" ♠ ♥ Belote ♦ ♣ "))
	fmt.Println()

	if _, err := cfg.Populate(g); err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
