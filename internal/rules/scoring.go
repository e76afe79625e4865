package rules

import "github.com/lox/belote/internal/cards"

const (
	// TricksPerRound is the number of tricks in a full round.
	TricksPerRound = 8
	// BasePool is the point pool of a round before declarations.
	BasePool = 162
	// LastTrickBonus goes to the team that takes the final trick.
	LastTrickBonus = 20
	// CleanSweepBonus goes to a team that takes every trick.
	CleanSweepBonus = 90
)

// CompletedTrick is a finished trick together with the team that took it.
type CompletedTrick struct {
	Plays      []Play
	Winner     Play
	WinnerTeam int
}

// RoundScore is the outcome of scoring one round.
type RoundScore struct {
	// Points from tricks, last-trick and sweep bonuses, before the
	// contract check.
	Raw1, Raw2 int
	// Final round scores.
	Team1, Team2 int
	// Bonus is the declaration value in play this round.
	Bonus int
	// PassMark is what the trump-naming team had to reach.
	PassMark int
	// Failed is the trump team when it missed the pass mark, else zero.
	Failed int
}

// Score returns the final round score for team 1 or 2.
func (r RoundScore) Score(team int) int {
	if team == 1 {
		return r.Team1
	}
	return r.Team2
}

// TeamTrickPoints sums the card points, last-trick bonus and sweep bonus of
// one team from the ordered tricks of a round.
func TeamTrickPoints(tricks []CompletedTrick, trump cards.Suit, team int) int {
	points := 0
	won := 0
	for _, t := range tricks {
		if t.WinnerTeam != team {
			continue
		}
		won++
		for _, p := range t.Plays {
			points += p.Card.Points(trump)
		}
	}
	if n := len(tricks); n > 0 && tricks[n-1].WinnerTeam == team {
		points += LastTrickBonus
	}
	if won == TricksPerRound {
		points += CleanSweepBonus
	}
	return points
}

// ScoreRound applies the contract rule. The trump team keeps its points plus
// the declaration bonus only if it reaches a strict half of the pool;
// otherwise it scores nothing and the opponents take the whole pool. With no
// trump team the bonus is split between both teams.
func ScoreRound(tricks []CompletedTrick, trump cards.Suit, trumpTeam, bonus int) RoundScore {
	r := RoundScore{
		Raw1:  TeamTrickPoints(tricks, trump, 1),
		Raw2:  TeamTrickPoints(tricks, trump, 2),
		Bonus: bonus,
	}
	pool := BasePool + bonus
	r.PassMark = pool/2 + 1
	r.Team1, r.Team2 = r.Raw1, r.Raw2

	switch trumpTeam {
	case 1:
		if r.Raw1 >= r.PassMark {
			r.Team1 += bonus
		} else {
			r.Team1, r.Team2 = 0, pool
			r.Failed = 1
		}
	case 2:
		if r.Raw2 >= r.PassMark {
			r.Team2 += bonus
		} else {
			r.Team1, r.Team2 = pool, 0
			r.Failed = 2
		}
	default:
		r.Team1 += bonus / 2
		r.Team2 += bonus - bonus/2
	}
	return r
}
