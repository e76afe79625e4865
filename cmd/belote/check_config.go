package main

import (
	"fmt"
	"os"

	"github.com/lox/belote/internal/config"
)

type CheckConfigCmd struct {
	Path string `kong:"arg,help='Configuration file to validate'"`
}

func (c *CheckConfigCmd) Run() error {
	if _, err := os.Stat(c.Path); err != nil {
		return err
	}
	cfg, err := config.LoadFile(c.Path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return err
	}

	fmt.Println(successStyle.Render("✓ " + c.Path))
	fmt.Printf("Game to %d, %ds per move, bot delay %s\n", cfg.Game.EndValue, cfg.Game.MoveTime, cfg.BotDelay())
	fmt.Printf("Agents: team 1 %s, team 2 %s\n", cfg.Game.Team1Agent, cfg.Game.Team2Agent)
	for _, s := range cfg.Seats {
		kind := "player"
		if s.Bot {
			kind = "bot"
		}
		fmt.Printf("  %-12s team %d (%s)\n", s.Name, s.Team, kind)
	}
	if len(cfg.Seats) < 4 {
		fmt.Println(warningStyle.Render(fmt.Sprintf("%d of 4 seats configured; the rest must join before start", len(cfg.Seats))))
	}
	return nil
}
