package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/belote/internal/game"
)

// Agent strategy names accepted in config files.
const (
	AgentPolicy = "policy"
	AgentRandom = "random"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents a table definition: game settings and the seats to fill.
type Config struct {
	Game  GameSettings `hcl:"game,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// GameSettings contains game-level configuration
type GameSettings struct {
	EndValue   int    `hcl:"end_value,optional"`
	MoveTime   int    `hcl:"move_time,optional"`
	BotDelayMS *int   `hcl:"bot_delay_ms,optional"`
	Seed       *int64 `hcl:"seed,optional"`
	Team1Agent string `hcl:"team1_agent,optional"`
	Team2Agent string `hcl:"team2_agent,optional"`
	LogLevel   string `hcl:"log_level,optional"`
}

// SeatConfig defines one seat. Bot seats are always ready.
type SeatConfig struct {
	Name string `hcl:"name,label"`
	Team int    `hcl:"team,optional"`
	Bot  bool   `hcl:"bot,optional"`
}

// Default returns a table of four policy bots with default game settings.
func Default() *Config {
	c := &Config{
		Seats: []SeatConfig{
			{Name: "North", Team: 1, Bot: true},
			{Name: "East", Team: 2, Bot: true},
			{Name: "South", Team: 1, Bot: true},
			{Name: "West", Team: 2, Bot: true},
		},
	}
	c.applyDefaults()
	return c
}

// LoadFile loads configuration from an HCL file. A missing file yields the
// default table.
func LoadFile(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// The game block is optional, so decode into a shape that allows it to
	// be absent before copying it over.
	var raw struct {
		Game  *GameSettings `hcl:"game,block"`
		Seats []SeatConfig  `hcl:"seat,block"`
	}
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Config{Seats: raw.Seats}
	if raw.Game != nil {
		c.Game = *raw.Game
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Game.EndValue == 0 {
		c.Game.EndValue = game.DefaultEndValue
	}
	if c.Game.MoveTime == 0 {
		c.Game.MoveTime = game.DefaultMoveTime
	}
	if c.Game.BotDelayMS == nil {
		ms := int(game.DefaultBotDelay / time.Millisecond)
		c.Game.BotDelayMS = &ms
	}
	if c.Game.Team1Agent == "" {
		c.Game.Team1Agent = AgentPolicy
	}
	if c.Game.Team2Agent == "" {
		c.Game.Team2Agent = AgentPolicy
	}
	if c.Game.LogLevel == "" {
		c.Game.LogLevel = "info"
	}

	// Seats without a team alternate, as the table would assign them.
	for i := range c.Seats {
		if c.Seats[i].Team == 0 {
			c.Seats[i].Team = 1 + i%2
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !slices.Contains(game.EndValues, c.Game.EndValue) {
		return fmt.Errorf("%w: end_value %d must be one of %v", ErrInvalid, c.Game.EndValue, game.EndValues)
	}
	if !slices.Contains(game.MoveTimes, c.Game.MoveTime) {
		return fmt.Errorf("%w: move_time %d must be one of %v", ErrInvalid, c.Game.MoveTime, game.MoveTimes)
	}
	if c.BotDelay() < 0 {
		return fmt.Errorf("%w: bot_delay_ms must not be negative", ErrInvalid)
	}
	for _, agent := range []string{c.Game.Team1Agent, c.Game.Team2Agent} {
		if _, err := Agent(agent); err != nil {
			return err
		}
	}
	switch c.Game.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.Game.LogLevel)
	}

	if len(c.Seats) > 4 {
		return fmt.Errorf("%w: %d seats configured, a table holds 4", ErrInvalid, len(c.Seats))
	}
	var perTeam [3]int
	names := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.Team != 1 && s.Team != 2 {
			return fmt.Errorf("%w: seat %s: team must be 1 or 2", ErrInvalid, s.Name)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: seat %s defined twice", ErrInvalid, s.Name)
		}
		names[s.Name] = true
		perTeam[s.Team]++
		if perTeam[s.Team] > 2 {
			return fmt.Errorf("%w: team %d has more than 2 seats", ErrInvalid, s.Team)
		}
	}
	return nil
}

// BotDelay returns the configured bot delay as a duration.
func (c *Config) BotDelay() time.Duration {
	if c.Game.BotDelayMS == nil {
		return game.DefaultBotDelay
	}
	return time.Duration(*c.Game.BotDelayMS) * time.Millisecond
}

// Options converts the game block into engine options. Clock and logger are
// left to the caller.
func (c *Config) Options() ([]game.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	team1, _ := Agent(c.Game.Team1Agent)
	team2, _ := Agent(c.Game.Team2Agent)
	opts := []game.Option{
		game.WithEndValue(c.Game.EndValue),
		game.WithMoveTime(c.Game.MoveTime),
		game.WithBotDelay(c.BotDelay()),
		game.WithAgent(game.TeamAgents(team1, team2)),
	}
	if c.Game.Seed != nil {
		opts = append(opts, game.WithSeed(*c.Game.Seed))
	}
	return opts, nil
}

// Populate seats the configured players at g in order and returns their
// ids. Human seats still have to mark themselves ready.
func (c *Config) Populate(g *game.Game) ([]string, error) {
	ids := make([]string, 0, len(c.Seats))
	for _, s := range c.Seats {
		var (
			id  string
			err error
		)
		if s.Bot {
			id, err = g.AddBot(s.Name, s.Team)
		} else {
			id, err = g.Join("", s.Name, s.Team)
		}
		if err != nil {
			return ids, fmt.Errorf("seat %s: %w", s.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AllBots reports whether the table can run without any human input.
func (c *Config) AllBots() bool {
	if len(c.Seats) != 4 {
		return false
	}
	for _, s := range c.Seats {
		if !s.Bot {
			return false
		}
	}
	return true
}

// Agent resolves an agent strategy name to its factory.
func Agent(name string) (game.AgentFactory, error) {
	switch name {
	case AgentPolicy:
		return game.PolicyAgents, nil
	case AgentRandom:
		return game.RandomAgents, nil
	default:
		return nil, fmt.Errorf("%w: unknown agent %q", ErrInvalid, name)
	}
}
