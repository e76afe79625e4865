package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/belote/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
game {
  end_value    = 701
  move_time    = 20
  bot_delay_ms = 0
  seed         = 42
  team2_agent  = "random"
}

seat "Alice" {
  team = 1
}

seat "Bob" {
  bot = true
}

seat "Carol" {
  team = 1
  bot  = true
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sampleConfig), "table.hcl")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 701, c.Game.EndValue)
	assert.Equal(t, 20, c.Game.MoveTime)
	assert.Equal(t, time.Duration(0), c.BotDelay(), "explicit zero survives defaults")
	require.NotNil(t, c.Game.Seed)
	assert.Equal(t, int64(42), *c.Game.Seed)
	assert.Equal(t, AgentPolicy, c.Game.Team1Agent)
	assert.Equal(t, AgentRandom, c.Game.Team2Agent)
	assert.Equal(t, "info", c.Game.LogLevel)

	require.Len(t, c.Seats, 3)
	assert.Equal(t, SeatConfig{Name: "Alice", Team: 1}, c.Seats[0])
	assert.Equal(t, SeatConfig{Name: "Bob", Team: 2, Bot: true}, c.Seats[1], "second seat defaults to team 2")
	assert.False(t, c.AllBots())
}

func TestParseWithoutGameBlock(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(`seat "Solo" {}`), "solo.hcl")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultEndValue, c.Game.EndValue)
	assert.Equal(t, game.DefaultMoveTime, c.Game.MoveTime)
	assert.Equal(t, game.DefaultBotDelay, c.BotDelay())
	assert.Nil(t, c.Game.Seed)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `game {`},
		{"unknown attribute", `colour = "red"`},
		{"unknown block", `table "main" {}`},
		{"wrong type", `game { end_value = "lots" }`},
		{"seat without label", `seat {}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"end value", func(c *Config) { c.Game.EndValue = 600 }},
		{"move time", func(c *Config) { c.Game.MoveTime = 15 }},
		{"bot delay", func(c *Config) { ms := -1; c.Game.BotDelayMS = &ms }},
		{"agent", func(c *Config) { c.Game.Team1Agent = "oracle" }},
		{"log level", func(c *Config) { c.Game.LogLevel = "trace" }},
		{"team", func(c *Config) { c.Seats[0].Team = 3 }},
		{"duplicate seat", func(c *Config) { c.Seats[1].Name = c.Seats[0].Name }},
		{"team overfull", func(c *Config) { c.Seats[1].Team = 1 }},
		{"too many seats", func(c *Config) { c.Seats = append(c.Seats, SeatConfig{Name: "Extra", Team: 1}) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Default()
			require.NoError(t, c.Validate())
			tc.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
			_, err := c.Options()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := LoadFile(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.True(t, c.AllBots())

	path := filepath.Join(dir, "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))
	c, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 701, c.Game.EndValue)
}

func TestOptionsAndPopulate(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sampleConfig), "table.hcl")
	require.NoError(t, err)
	opts, err := c.Options()
	require.NoError(t, err)

	g, err := game.New(opts...)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	assert.Equal(t, 701, g.EndValue())

	ids, err := c.Populate(g)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	alice, ok := g.Seat(ids[0])
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	assert.False(t, alice.Bot)
	assert.False(t, alice.Ready)

	bob, ok := g.Seat(ids[1])
	require.True(t, ok)
	assert.True(t, bob.Bot)
	assert.True(t, bob.Ready)
	assert.Equal(t, 2, bob.Team)
	assert.Len(t, g.TeamSeats(1), 2)
}

func TestExampleFileIsValid(t *testing.T) {
	t.Parallel()

	c, err := LoadFile(filepath.Join("..", "..", "belote.hcl"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.True(t, c.AllBots())
	assert.Equal(t, AgentRandom, c.Game.Team2Agent)
}
