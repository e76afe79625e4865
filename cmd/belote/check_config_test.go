package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/belote/internal/config"
	"github.com/lox/belote/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestCheckConfigCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name: "valid",
			src:  "game {\n  end_value = 1001\n}\nseat \"North\" {\n  bot = true\n}\n",
		},
		{
			name:    "bad move time",
			src:     "game {\n  move_time = 5\n}\n",
			wantErr: config.ErrInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cmd := &CheckConfigCmd{Path: writeConfig(t, tc.src)}
			err := cmd.Run()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCheckConfigCmdMissingFile(t *testing.T) {
	t.Parallel()

	cmd := &CheckConfigCmd{Path: filepath.Join(t.TempDir(), "nope.hcl")}
	assert.ErrorIs(t, cmd.Run(), os.ErrNotExist)
}

func TestPlayCmdNeedsBots(t *testing.T) {
	t.Parallel()

	cmd := &PlayCmd{Config: writeConfig(t, "seat \"Alice\" {}\n"), Delay: -1}
	assert.ErrorContains(t, cmd.Run(), "four bot seats")
}

func TestStyleFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, &errorStyle, styleFor(game.FailureEvent{}))
	assert.Equal(t, &headerStyle, styleFor(game.RoundStartedEvent{}))
	assert.Nil(t, styleFor(game.CardPlayedEvent{}))
}
