package game

import (
	"fmt"
	"strings"

	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowTimeouts bool // Mark actions forced by the turn timer
	ShowTicks    bool // Include per-second timer ticks
	ShowTalons   bool // Reveal talon cards when they are dealt
	Color        bool // Wrap red suits in ANSI colour
	Symbols      bool // Prefix suit names with their glyph
	// Names maps a seat id to a display name. Nil shows ids.
	Names func(id string) string
}

// NotificationFormatter turns events into single human-readable lines
type NotificationFormatter struct {
	opts FormattingOptions
}

// NewNotificationFormatter creates a new formatter with the given options
func NewNotificationFormatter(opts FormattingOptions) *NotificationFormatter {
	return &NotificationFormatter{opts: opts}
}

// Format renders e. It returns false for events hidden by the options.
func (f *NotificationFormatter) Format(e GameEvent) (string, bool) {
	switch e := e.(type) {
	case SeatJoinedEvent:
		kind := "player"
		if e.Seat.Bot {
			kind = "bot"
		}
		return fmt.Sprintf("%s joins team %d (%s)", e.Seat.Name, e.Seat.Team, kind), true
	case SeatLeftEvent:
		return fmt.Sprintf("%s leaves the table", e.Seat.Name), true
	case TeamSwitchedEvent:
		return fmt.Sprintf("%s switches to team %d", f.name(e.SeatID), e.Team), true
	case ReadyChangedEvent:
		if e.Ready {
			return fmt.Sprintf("%s is ready", f.name(e.SeatID)), true
		}
		return fmt.Sprintf("%s is not ready", f.name(e.SeatID)), true
	case AllReadyEvent:
		return "All seats ready", true
	case NotEnoughSeatsEvent:
		if e.Interrupted {
			return fmt.Sprintf("Game interrupted: %d of 4 seats filled", e.Seats), true
		}
		return fmt.Sprintf("Waiting for players: %d of 4 seats filled", e.Seats), true
	case GameStartedEvent:
		names := make([]string, len(e.Seats))
		for i, s := range e.Seats {
			names[i] = fmt.Sprintf("%s (T%d)", s.Name, s.Team)
		}
		return fmt.Sprintf("=== Game to %d: %s ===", e.EndValue, strings.Join(names, ", ")), true
	case GameEndedEvent:
		if e.InstantWin {
			return fmt.Sprintf("=== Team %d wins by Belot ===", e.Winner), true
		}
		return fmt.Sprintf("=== Team %d wins %d to %d ===", e.Winner, max(e.Team1, e.Team2), min(e.Team1, e.Team2)), true
	case RoundStartedEvent:
		return fmt.Sprintf("\n--- Round %d, %s deals ---", e.Round, f.name(e.Dealer)), true
	case RoundCompletedEvent:
		return f.formatRound(e), true
	case TimerTickEvent:
		if !f.opts.ShowTicks {
			return "", false
		}
		if e.SeatID == "" {
			return fmt.Sprintf("Calling closes in %ds", e.TimeLeft), true
		}
		return fmt.Sprintf("%s has %ds", f.name(e.SeatID), e.TimeLeft), true
	case CardsDealtEvent:
		if len(e.Seats) == 0 {
			return "", false
		}
		return fmt.Sprintf("Dealt %d cards to each seat", e.Seats[0].Count), true
	case TalonDealtEvent:
		if !f.opts.ShowTalons {
			return "Talons dealt", true
		}
		parts := make([]string, len(e.Talons))
		for i, t := range e.Talons {
			parts[i] = fmt.Sprintf("%s %s", f.name(t.SeatID), f.cards(t.Cards))
		}
		return "Talons: " + strings.Join(parts, ", "), true
	case BiddingStartedEvent:
		return fmt.Sprintf("Bidding opens with %s", f.name(e.SeatID)), true
	case BidMadeEvent:
		action := "passes"
		if !e.Bid.Pass {
			action = "names " + f.suit(e.Bid.Suit)
		}
		return fmt.Sprintf("%s: %s%s", f.name(e.Bid.Seat), f.timeout(e.TimedOut), action), true
	case NextBidderEvent:
		return "", false
	case TrumpChosenEvent:
		return fmt.Sprintf("Trump is %s for team %d", f.suit(e.Suit), e.Team), true
	case CallingStartedEvent:
		return "Declarations open", true
	case DeclarationMadeEvent:
		if e.Kind == rules.KindNone {
			return fmt.Sprintf("%s: %sdeclares nothing", f.name(e.SeatID), f.timeout(e.TimedOut)), true
		}
		return fmt.Sprintf("%s: declares %s %s", f.name(e.SeatID), e.Kind, f.cards(e.Cards)), true
	case CallingResolvedEvent:
		if !e.Found {
			return "No declaration scores", true
		}
		return fmt.Sprintf("%s scores %s for team %d (+%d)", f.name(e.Winner.Seat), e.Winner.Kind, e.Winner.Team, e.Bonus), true
	case InstantWinEvent:
		return fmt.Sprintf("%s holds Belot in %s!", f.name(e.SeatID), f.suit(e.Suit)), true
	case PlayingStartedEvent:
		return fmt.Sprintf("%s leads", f.name(e.Leader)), true
	case CardPlayedEvent:
		return fmt.Sprintf("%s: %splays %s", f.name(e.SeatID), f.timeout(e.TimedOut), f.card(e.Card)), true
	case NextToActEvent:
		return "", false
	case TrickCompletedEvent:
		return fmt.Sprintf("Trick %d to %s with %s (team %d)", e.Number, f.name(e.Trick.Winner.Seat), f.card(e.Trick.Winner.Card), e.Trick.WinnerTeam), true
	case NextTrickStartedEvent:
		return "", false
	case FailureEvent:
		return fmt.Sprintf("! %v", e.Err), true
	default:
		return e.EventType().String(), true
	}
}

func (f *NotificationFormatter) formatRound(e RoundCompletedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d: team 1 %d, team 2 %d", e.Round, e.Score.Team1, e.Score.Team2)
	if e.Score.Bonus > 0 {
		fmt.Fprintf(&b, " (declared %d)", e.Score.Bonus)
	}
	if e.FailedTeam != 0 {
		fmt.Fprintf(&b, ", team %d falls short of %d", e.FailedTeam, e.Score.PassMark)
	}
	fmt.Fprintf(&b, "\nTotals: %d - %d", e.Team1, e.Team2)
	return b.String()
}

func (f *NotificationFormatter) name(id string) string {
	if f.opts.Names != nil {
		if n := f.opts.Names(id); n != "" {
			return n
		}
	}
	return id
}

func (f *NotificationFormatter) timeout(timedOut bool) string {
	if timedOut && f.opts.ShowTimeouts {
		return "times out and "
	}
	return ""
}

func (f *NotificationFormatter) suit(s cards.Suit) string {
	name := s.String()
	if f.opts.Symbols {
		name = s.Symbol() + " " + name
	}
	if f.opts.Color && s.IsRed() {
		return "\033[31m" + name + "\033[0m"
	}
	return name
}

func (f *NotificationFormatter) card(c cards.Card) string {
	if f.opts.Color && c.Suit.IsRed() {
		return "\033[31m" + c.String() + "\033[0m"
	}
	return c.String()
}

func (f *NotificationFormatter) cards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = f.card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
