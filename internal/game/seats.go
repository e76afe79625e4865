package game

import (
	"fmt"
	"slices"
)

const seatsPerTable = 4

// Join seats a player. An empty id or name gets a generated default; team 0
// picks a team by seating order, falling back to the other team when that
// one is full. It returns the seat id.
func (g *Game) Join(id, name string, team int) (string, error) {
	var seatID string
	err := g.guard("join", func() error {
		s, err := g.addSeat(id, name, team, false)
		if err != nil {
			return err
		}
		seatID = s.ID
		return nil
	})
	return seatID, err
}

// AddBot seats an automated player. Bots are always ready.
func (g *Game) AddBot(name string, team int) (string, error) {
	var seatID string
	err := g.guard("add bot", func() error {
		s, err := g.addSeat("", name, team, true)
		if err != nil {
			return err
		}
		seatID = s.ID
		return nil
	})
	return seatID, err
}

// RemoveBot vacates an automated seat.
func (g *Game) RemoveBot(id string) error {
	return g.guard("remove bot", func() error {
		s := g.state.seat(id)
		if s == nil || !s.Bot {
			return fmt.Errorf("%w: no bot %q", ErrUnknownSeat, id)
		}
		return g.removeSeat(id)
	})
}

// Leave vacates a seat. A game in progress returns to waiting.
func (g *Game) Leave(id string) error {
	return g.guard("leave", func() error {
		return g.removeSeat(id)
	})
}

// SetReady marks a player ready or not. It is a no-op for bots.
func (g *Game) SetReady(id string, ready bool) error {
	return g.guard("set ready", func() error {
		s := g.state.seat(id)
		if s == nil {
			return fmt.Errorf("%w: %q", ErrUnknownSeat, id)
		}
		if s.Bot {
			return nil
		}
		s.Ready = ready
		g.emit(ReadyChangedEvent{stamp: g.now(), SeatID: id, Ready: ready})
		g.checkAllReady()
		return nil
	})
}

// SwitchTeam moves a seat to the other team between games.
func (g *Game) SwitchTeam(id string, team int) error {
	return g.guard("switch team", func() error {
		if !g.between() {
			return fmt.Errorf("%w: %s", ErrWrongPhase, g.state.Phase)
		}
		s := g.state.seat(id)
		switch {
		case s == nil:
			return fmt.Errorf("%w: %q", ErrUnknownSeat, id)
		case team != 1 && team != 2:
			return fmt.Errorf("%w: %d", ErrInvalidTeam, team)
		case s.Team == team:
			return fmt.Errorf("%w: %q in team %d", ErrAlreadyInTeam, id, team)
		case g.state.teamSize(team) >= seatsPerTable/2:
			return fmt.Errorf("%w: team %d", ErrTeamFull, team)
		}
		s.Team = team
		g.emit(TeamSwitchedEvent{stamp: g.now(), SeatID: id, Team: team})
		return nil
	})
}

// Start begins a new game once four seats are ready.
func (g *Game) Start() error {
	return g.guard("start", func() error {
		if !g.between() {
			return fmt.Errorf("%w: %s", ErrWrongPhase, g.state.Phase)
		}
		if len(g.state.Seats) < seatsPerTable {
			return fmt.Errorf("%w: have %d", ErrNotEnoughSeats, len(g.state.Seats))
		}
		for _, s := range g.state.Seats {
			if !s.Ready {
				return fmt.Errorf("%w: %q", ErrNotAllReady, s.ID)
			}
		}

		g.state.Round = 0
		g.state.GameOver = false
		g.state.Winner = 0
		for i := range g.state.Teams {
			g.state.Teams[i].Scores = nil
		}
		g.state.resetRound()
		if g.state.dealerIndex() < 0 {
			g.state.Seats[0].Dealer = true
		}

		g.logger.Info("Game started", "endValue", g.cfg.endValue, "seats", len(g.state.Seats))
		g.emit(GameStartedEvent{stamp: g.now(), Seats: g.seatInfos(), EndValue: g.cfg.endValue})
		return g.startNextRound()
	})
}

func (g *Game) between() bool {
	return g.state.Phase == PhaseWaiting || g.state.Phase == PhaseFinished
}

func (g *Game) addSeat(id, name string, team int, isBot bool) (*Seat, error) {
	n := len(g.state.Seats)
	switch {
	case n >= seatsPerTable:
		return nil, ErrTableFull
	case id != "" && g.state.seat(id) != nil:
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSeat, id)
	case team != 0 && team != 1 && team != 2:
		return nil, fmt.Errorf("%w: %d", ErrInvalidTeam, team)
	case team != 0 && g.state.teamSize(team) >= seatsPerTable/2:
		return nil, fmt.Errorf("%w: team %d", ErrTeamFull, team)
	}

	prefix, defaultName := "player", "Player"
	if isBot {
		prefix, defaultName = "bot", "Bot"
	}
	g.seq++
	if id == "" {
		for id = fmt.Sprintf("%s-%d", prefix, g.seq); g.state.seat(id) != nil; id = fmt.Sprintf("%s-%d", prefix, g.seq) {
			g.seq++
		}
	}
	if name == "" {
		name = fmt.Sprintf("%s %d", defaultName, g.seq)
	}
	if team == 0 {
		team = 1 + n%2
		if g.state.teamSize(team) >= seatsPerTable/2 {
			team = 3 - team
		}
	}

	s := &Seat{
		ID:     id,
		Name:   name,
		Team:   team,
		Dealer: g.state.dealerIndex() < 0,
		Ready:  isBot,
		Bot:    isBot,
	}
	g.state.Seats = append(g.state.Seats, s)
	if isBot {
		g.agents[id] = g.cfg.agent(id, team, g.botRNG, g.cfg.logger)
	}

	g.logger.Debug("Seat joined", "seat", id, "team", team, "bot", isBot)
	g.emit(SeatJoinedEvent{stamp: g.now(), Seat: s.clone()})
	g.checkAllReady()
	return s, nil
}

func (g *Game) removeSeat(id string) error {
	i := g.state.seatIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSeat, id)
	}
	s := g.state.Seats[i]
	g.state.Seats = slices.Delete(g.state.Seats, i, i+1)
	delete(g.agents, id)
	if s.Dealer && len(g.state.Seats) > 0 {
		prev := (i - 1 + len(g.state.Seats)) % len(g.state.Seats)
		g.state.Seats[prev].Dealer = true
	}

	g.logger.Debug("Seat left", "seat", id, "phase", g.state.Phase)
	g.emit(SeatLeftEvent{stamp: g.now(), Seat: s.clone()})

	if len(g.state.Seats) < seatsPerTable {
		g.stopTimers()
		interrupted := !g.between()
		if interrupted {
			g.logger.Warn("Game interrupted", "seat", id, "round", g.state.Round)
			g.state.resetRound()
			g.state.Phase = PhaseWaiting
			g.state.Turn = 0
			g.deck = nil
		}
		g.emit(NotEnoughSeatsEvent{stamp: g.now(), Seats: len(g.state.Seats), Interrupted: interrupted})
	}
	return nil
}

func (g *Game) checkAllReady() {
	if len(g.state.Seats) != seatsPerTable {
		return
	}
	for _, s := range g.state.Seats {
		if !s.Ready {
			return
		}
	}
	g.emit(AllReadyEvent{stamp: g.now()})
}
