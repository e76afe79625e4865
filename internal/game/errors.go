package game

import "errors"

// Setup errors.
var (
	ErrTableFull      = errors.New("table is full")
	ErrDuplicateSeat  = errors.New("seat id already taken")
	ErrInvalidTeam    = errors.New("team must be 1 or 2")
	ErrTeamFull       = errors.New("team is full")
	ErrNotEnoughSeats = errors.New("four seats are required")
	ErrNotAllReady    = errors.New("not every seat is ready")
	ErrUnknownSeat    = errors.New("unknown seat")
	ErrAlreadyInTeam  = errors.New("seat is already in that team")
	ErrInvalidOption  = errors.New("invalid option")
)

// Turn order errors.
var (
	ErrWrongPhase  = errors.New("action not allowed in this phase")
	ErrNotYourTurn = errors.New("not this seat's turn")
)

// Rule errors.
var (
	ErrDealerMustBid   = errors.New("dealer cannot pass")
	ErrNoTrump         = errors.New("trump has not been chosen")
	ErrInvalidSuit     = errors.New("unknown suit")
	ErrAlreadyDeclared = errors.New("seat has already declared")
	ErrCardNotHeld     = errors.New("card not held by seat")
	ErrIllegalPlay     = errors.New("card cannot be played into this trick")
)

// ErrClosed is returned by every action after Close.
var ErrClosed = errors.New("game is closed")
