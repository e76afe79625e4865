package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/belote/internal/game"
	"github.com/muesli/termenv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	trumpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	trickStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)
)

// colorEnabled reports whether stdout can show ANSI colour.
func colorEnabled() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

// styleFor picks the style for a formatted event line. Nil means plain.
func styleFor(e game.GameEvent) *lipgloss.Style {
	switch e.(type) {
	case game.GameStartedEvent, game.RoundStartedEvent:
		return &headerStyle
	case game.TrumpChosenEvent, game.CallingResolvedEvent:
		return &trumpStyle
	case game.TrickCompletedEvent:
		return &trickStyle
	case game.GameEndedEvent, game.RoundCompletedEvent:
		return &successStyle
	case game.InstantWinEvent, game.NotEnoughSeatsEvent:
		return &warningStyle
	case game.FailureEvent:
		return &errorStyle
	default:
		return nil
	}
}
