package game

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/belote/internal/cards"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

// recorder collects every event delivered to it.
type recorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *recorder) OnEvent(e GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GameEvent(nil), r.events...)
}

func (r *recorder) types() []EventType {
	var out []EventType
	for _, e := range r.all() {
		out = append(out, e.EventType())
	}
	return out
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.all() {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// eventsOf returns every recorded event of type T in order.
func eventsOf[T GameEvent](r *recorder) []T {
	var out []T
	for _, e := range r.all() {
		if te, ok := e.(T); ok {
			out = append(out, te)
		}
	}
	return out
}

func lastOf[T GameEvent](t *testing.T, r *recorder) T {
	t.Helper()
	all := eventsOf[T](r)
	require.NotEmpty(t, all, "no %T recorded", *new(T))
	return all[len(all)-1]
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *quartz.Mock, *recorder) {
	t.Helper()
	clk := quartz.NewMock(t)
	base := []Option{
		WithClock(clk),
		WithLogger(testLogger()),
		WithSeed(1),
		WithMoveTime(10),
		WithBotDelay(10 * time.Millisecond),
	}
	g, err := New(append(base, opts...)...)
	require.NoError(t, err)
	rec := &recorder{}
	g.Subscribe(rec)
	t.Cleanup(g.Close)
	return g, clk, rec
}

// seatHumans seats p1..p4 alternating teams, all ready. p1 holds the dealer
// flag, so round 1 is dealt by p2 and p3 acts first.
func seatHumans(t *testing.T, g *Game) {
	t.Helper()
	for i, id := range []string{"p1", "p2", "p3", "p4"} {
		_, err := g.Join(id, "", 1+i%2)
		require.NoError(t, err)
		require.NoError(t, g.SetReady(id, true))
	}
}

// dealOrder stacks a deck so the seats, in dealing order starting left of
// the dealer, receive hands[i][:6] as their hand and hands[i][6:] as talon.
func dealOrder(hands [4]string) DeckFunc {
	var parsed [4][]cards.Card
	for i, h := range hands {
		parsed[i] = cards.MustParseCards(h)
	}
	var order []cards.Card
	for pass := range 2 {
		for i := range 4 {
			order = append(order, parsed[i][pass*3:pass*3+3]...)
		}
	}
	for i := range 4 {
		order = append(order, parsed[i][6:8]...)
	}
	return func(int) []cards.Card { return order }
}

// advance fires the next pending timer and waits for its callback.
func advance(t *testing.T, clk *quartz.Mock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, w := clk.AdvanceNext()
	w.MustWait(ctx)
}

func advanceN(t *testing.T, clk *quartz.Mock, n int) {
	t.Helper()
	for range n {
		advance(t, clk)
	}
}
