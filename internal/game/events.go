package game

import (
	"sync"
	"time"

	"github.com/lox/belote/internal/cards"
	"github.com/lox/belote/internal/rules"
)

// EventType represents a game event type with type safety
type EventType string

// The fixed set of notifications a game emits.
const (
	EventTypeSeatJoined       EventType = "seat_joined"
	EventTypeSeatLeft         EventType = "seat_left"
	EventTypeTeamSwitched     EventType = "team_switched"
	EventTypeReadyChanged     EventType = "ready_changed"
	EventTypeAllReady         EventType = "all_ready"
	EventTypeNotEnoughSeats   EventType = "not_enough_seats"
	EventTypeGameStarted      EventType = "game_started"
	EventTypeGameEnded        EventType = "game_ended"
	EventTypeRoundStarted     EventType = "round_started"
	EventTypeRoundCompleted   EventType = "round_completed"
	EventTypeTimerTick        EventType = "timer_tick"
	EventTypeCardsDealt       EventType = "cards_dealt"
	EventTypeTalonDealt       EventType = "talon_dealt"
	EventTypeBiddingStarted   EventType = "bidding_started"
	EventTypeBidMade          EventType = "bid_made"
	EventTypeNextBidder       EventType = "next_bidder"
	EventTypeTrumpChosen      EventType = "trump_chosen"
	EventTypeCallingStarted   EventType = "calling_started"
	EventTypeDeclarationMade  EventType = "declaration_made"
	EventTypeCallingResolved  EventType = "calling_resolved"
	EventTypeInstantWin       EventType = "instant_win"
	EventTypePlayingStarted   EventType = "playing_started"
	EventTypeCardPlayed       EventType = "card_played"
	EventTypeNextToAct        EventType = "next_to_act"
	EventTypeTrickCompleted   EventType = "trick_completed"
	EventTypeNextTrickStarted EventType = "next_trick_started"
	EventTypeFailure          EventType = "failure"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct {
	at time.Time
}

func (s stamp) Timestamp() time.Time { return s.at }

// SeatJoinedEvent is published when a player or bot takes a seat
type SeatJoinedEvent struct {
	stamp
	Seat Seat
}

// SeatLeftEvent is published when a seat is vacated
type SeatLeftEvent struct {
	stamp
	Seat Seat
}

// TeamSwitchedEvent is published when a seat changes partnership
type TeamSwitchedEvent struct {
	stamp
	SeatID string
	Team   int
}

// ReadyChangedEvent is published when a player toggles ready
type ReadyChangedEvent struct {
	stamp
	SeatID string
	Ready  bool
}

// AllReadyEvent is published when four seats are all ready
type AllReadyEvent struct {
	stamp
}

// NotEnoughSeatsEvent is published when a departure leaves fewer than four
// seats. A game in progress returns to waiting.
type NotEnoughSeatsEvent struct {
	stamp
	Seats       int
	Interrupted bool
}

// GameStartedEvent is published once per Start
type GameStartedEvent struct {
	stamp
	Seats    []Seat
	EndValue int
}

// GameEndedEvent is published when a team wins
type GameEndedEvent struct {
	stamp
	Winner       int
	Team1, Team2 int
	InstantWin   bool
}

// RoundStartedEvent is published before each deal
type RoundStartedEvent struct {
	stamp
	Round  int
	Dealer string
}

// RoundCompletedEvent is published after the eighth trick is scored
type RoundCompletedEvent struct {
	stamp
	Round int
	Score rules.RoundScore
	// Winner is the team with the higher round score, team 2 on a tie.
	Winner int
	// FailedTeam is the trump team when it missed the pass mark, else 0.
	FailedTeam   int
	Team1, Team2 int
}

// TimerTickEvent is published every second of a human turn. SeatID is empty
// during calling, where the timer covers every seat.
type TimerTickEvent struct {
	stamp
	SeatID   string
	TimeLeft int
}

// SeatCount pairs a seat with a number of cards.
type SeatCount struct {
	SeatID string
	Count  int
}

// CardsDealtEvent is published after the six-card deal
type CardsDealtEvent struct {
	stamp
	Seats []SeatCount
}

// SeatCards pairs a seat with cards.
type SeatCards struct {
	SeatID string
	Cards  []cards.Card
}

// TalonDealtEvent is published after each seat receives its talon
type TalonDealtEvent struct {
	stamp
	Talons []SeatCards
}

// BiddingStartedEvent names the first bidder
type BiddingStartedEvent struct {
	stamp
	SeatID string
}

// BidMadeEvent is published for every bid or pass
type BidMadeEvent struct {
	stamp
	Bid      Bid
	TimedOut bool
}

// NextBidderEvent names the seat to bid after a pass
type NextBidderEvent struct {
	stamp
	SeatID string
}

// TrumpChosenEvent is published when a bid names trump
type TrumpChosenEvent struct {
	stamp
	Suit   cards.Suit
	SeatID string
	Team   int
}

// CallingStartedEvent opens the simultaneous declaration window
type CallingStartedEvent struct {
	stamp
}

// DeclarationMadeEvent is published for every submission. Kind is
// rules.KindNone for an empty or unrecognised set.
type DeclarationMadeEvent struct {
	stamp
	SeatID   string
	Cards    []cards.Card
	Kind     rules.Kind
	TimedOut bool
}

// CallingResolvedEvent carries the single declaration that scores, if any
type CallingResolvedEvent struct {
	stamp
	Winner rules.Declaration
	Found  bool
	Bonus  int
}

// InstantWinEvent is published when a seat declares Belot
type InstantWinEvent struct {
	stamp
	SeatID string
	Team   int
	Suit   cards.Suit
}

// PlayingStartedEvent names the seat leading the first trick
type PlayingStartedEvent struct {
	stamp
	Leader string
}

// CardPlayedEvent is published for every card put into a trick
type CardPlayedEvent struct {
	stamp
	SeatID   string
	Card     cards.Card
	Trick    int
	TimedOut bool
}

// NextToActEvent names the seat to play next within a trick
type NextToActEvent struct {
	stamp
	SeatID string
}

// TrickCompletedEvent is published when the fourth card lands
type TrickCompletedEvent struct {
	stamp
	Number int
	Trick  rules.CompletedTrick
}

// NextTrickStartedEvent names the seat leading the next trick
type NextTrickStartedEvent struct {
	stamp
	Number int
	Leader string
}

// FailureEvent reports an action, timer or bot error
type FailureEvent struct {
	stamp
	Op  string
	Err error
}

func (SeatJoinedEvent) EventType() EventType       { return EventTypeSeatJoined }
func (SeatLeftEvent) EventType() EventType         { return EventTypeSeatLeft }
func (TeamSwitchedEvent) EventType() EventType     { return EventTypeTeamSwitched }
func (ReadyChangedEvent) EventType() EventType     { return EventTypeReadyChanged }
func (AllReadyEvent) EventType() EventType         { return EventTypeAllReady }
func (NotEnoughSeatsEvent) EventType() EventType   { return EventTypeNotEnoughSeats }
func (GameStartedEvent) EventType() EventType      { return EventTypeGameStarted }
func (GameEndedEvent) EventType() EventType        { return EventTypeGameEnded }
func (RoundStartedEvent) EventType() EventType     { return EventTypeRoundStarted }
func (RoundCompletedEvent) EventType() EventType   { return EventTypeRoundCompleted }
func (TimerTickEvent) EventType() EventType        { return EventTypeTimerTick }
func (CardsDealtEvent) EventType() EventType       { return EventTypeCardsDealt }
func (TalonDealtEvent) EventType() EventType       { return EventTypeTalonDealt }
func (BiddingStartedEvent) EventType() EventType   { return EventTypeBiddingStarted }
func (BidMadeEvent) EventType() EventType          { return EventTypeBidMade }
func (NextBidderEvent) EventType() EventType       { return EventTypeNextBidder }
func (TrumpChosenEvent) EventType() EventType      { return EventTypeTrumpChosen }
func (CallingStartedEvent) EventType() EventType   { return EventTypeCallingStarted }
func (DeclarationMadeEvent) EventType() EventType  { return EventTypeDeclarationMade }
func (CallingResolvedEvent) EventType() EventType  { return EventTypeCallingResolved }
func (InstantWinEvent) EventType() EventType       { return EventTypeInstantWin }
func (PlayingStartedEvent) EventType() EventType   { return EventTypePlayingStarted }
func (CardPlayedEvent) EventType() EventType       { return EventTypeCardPlayed }
func (NextToActEvent) EventType() EventType        { return EventTypeNextToAct }
func (TrickCompletedEvent) EventType() EventType   { return EventTypeTrickCompleted }
func (NextTrickStartedEvent) EventType() EventType { return EventTypeNextTrickStarted }
func (FailureEvent) EventType() EventType          { return EventTypeFailure }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event).
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// eventQueue delivers events in emission order from a single drainer.
// Events are pushed while the game lock is held and flushed after it is
// released.
type eventQueue struct {
	mu          sync.Mutex
	pending     []GameEvent
	draining    bool
	nextID      int
	subscribers map[int]EventSubscriber
	order       []int
}

func newEventQueue() *eventQueue {
	return &eventQueue{subscribers: make(map[int]EventSubscriber)}
}

func (q *eventQueue) subscribe(sub EventSubscriber) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.nextID
	q.nextID++
	q.subscribers[id] = sub
	q.order = append(q.order, id)
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.subscribers, id)
	}
}

func (q *eventQueue) push(e GameEvent) {
	q.mu.Lock()
	q.pending = append(q.pending, e)
	q.mu.Unlock()
}

// flush delivers pending events. A call made while another goroutine is
// draining returns at once; the drainer picks up the new events.
func (q *eventQueue) flush() {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	for len(q.pending) > 0 {
		e := q.pending[0]
		q.pending = q.pending[1:]
		subs := q.snapshotLocked()
		q.mu.Unlock()
		for _, s := range subs {
			s.OnEvent(e)
		}
		q.mu.Lock()
	}
	q.draining = false
	q.mu.Unlock()
}

func (q *eventQueue) snapshotLocked() []EventSubscriber {
	subs := make([]EventSubscriber, 0, len(q.subscribers))
	live := q.order[:0]
	for _, id := range q.order {
		if s, ok := q.subscribers[id]; ok {
			subs = append(subs, s)
			live = append(live, id)
		}
	}
	q.order = live
	return subs
}

// close drops every subscriber and anything not yet delivered.
func (q *eventQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
	clear(q.subscribers)
	q.order = nil
}
