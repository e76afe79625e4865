package game

import (
	"time"

	"github.com/coder/quartz"
)

// timerSlot holds at most one pending timer. gen is bumped on every stop so
// a callback that already fired, but has not yet taken the lock, can tell it
// is stale.
type timerSlot struct {
	timer *quartz.Timer
	gen   uint64
}

func (s *timerSlot) stop() uint64 {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	return s.gen
}

func (g *Game) stopTimers() {
	g.turnTimer.stop()
	g.botTimer.stop()
}

// startTurnTimer counts down MoveTime seconds for seatID, emitting a tick
// every second, and runs onTimeout under the lock when it reaches zero.
func (g *Game) startTurnTimer(seatID string, onTimeout func() error) {
	gen := g.turnTimer.stop()
	g.state.TimeLeft = g.cfg.moveTime
	g.scheduleTick(gen, seatID, onTimeout)
}

func (g *Game) scheduleTick(gen uint64, seatID string, onTimeout func() error) {
	g.turnTimer.timer = g.clock.AfterFunc(time.Second, func() {
		_ = g.guard("turn timer", func() error {
			if gen != g.turnTimer.gen {
				return nil
			}
			g.state.TimeLeft--
			g.emit(TimerTickEvent{stamp: g.now(), SeatID: seatID, TimeLeft: g.state.TimeLeft})
			if g.state.TimeLeft > 0 {
				g.scheduleTick(gen, seatID, onTimeout)
				return nil
			}
			g.turnTimer.timer = nil
			g.logger.Warn("Turn timed out", "seat", seatID, "phase", g.state.Phase)
			return onTimeout()
		})
	}, "turn", seatID)
}

// startBotTimer runs act under the lock after BotDelay.
func (g *Game) startBotTimer(act func() error) {
	gen := g.botTimer.stop()
	g.botTimer.timer = g.clock.AfterFunc(g.cfg.botDelay, func() {
		_ = g.guard("bot", func() error {
			if gen != g.botTimer.gen {
				return nil
			}
			g.botTimer.timer = nil
			return act()
		})
	}, "bot")
}
