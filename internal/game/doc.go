// Package game runs a four-seat Belote table.
//
// The main type is Game, which owns the seats, both teams and the round in
// progress, and walks the phases Waiting, Dealing, Bidding, Calling, Playing
// and Finished. Every mutation goes through one lock; notifications are
// queued under it and delivered afterwards, so a subscriber may call back
// into the game.
//
// # Basic Usage
//
//	g, err := game.New(game.WithEndValue(701), game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
//	unsubscribe := g.Subscribe(game.EventSubscriberFunc(func(e game.GameEvent) {
//	    fmt.Println(e.EventType())
//	}))
//	defer unsubscribe()
//
//	id, _ := g.Join("", "Alice", 1)
//	_ = g.SetReady(id, true)
//	for range 3 {
//	    _, _ = g.AddBot("", 0)
//	}
//	_ = g.Start()
//
// # Deterministic Testing
//
// WithSeed fixes shuffles and bot decisions, WithDeck stacks the deck for a
// round, and WithClock accepts a quartz mock so turn timeouts and bot delays
// can be driven with AdvanceNext.
//
// # Architecture
//
// Game delegates the rules to pure helpers:
//   - rules.LegalCards and rules.TrickWinner: trick play
//   - rules.Best and rules.ResolveDeclarations: declarations
//   - rules.ScoreRound: round scoring and the contract check
//   - bot.Agent: automated seats
package game
