package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed       int64  // RNG seed for this game (for replay)
	Winner     int    // Winning team, 1 or 2
	Team1      int    // Final total for team 1
	Team2      int    // Final total for team 2
	InstantWin bool   // Ended by a Belot declaration
	Rounds     int    // Rounds completed
	Contracts  [3]int // Rounds in which each team named trump (index 0 unused)
	Failed     [3]int // Contracts each team failed to make
	Declared   int    // Declaration points scored across all rounds
}

// Margin is team 1's final total minus team 2's.
func (r GameResult) Margin() float64 {
	return float64(r.Team1 - r.Team2)
}

// Mirror returns the result as seen with the two teams swapped.
func (r GameResult) Mirror() GameResult {
	m := r
	m.Winner = 3 - r.Winner
	m.Team1, m.Team2 = r.Team2, r.Team1
	m.Contracts = [3]int{0, r.Contracts[2], r.Contracts[1]}
	m.Failed = [3]int{0, r.Failed[2], r.Failed[1]}
	return m
}

// TeamStats tracks contract statistics for one team
type TeamStats struct {
	Wins      int `json:"wins"`
	Contracts int `json:"named"`
	Failed    int `json:"failed"`
}

// FailureRate returns the share of this team's contracts that failed
func (t TeamStats) FailureRate() float64 {
	if t.Contracts == 0 {
		return 0
	}
	return float64(t.Failed) / float64(t.Contracts)
}

// Statistics aggregates results over many games. Margin figures are from
// team 1's perspective.
type Statistics struct {
	Games      int
	SumMargin  float64
	SumMargin2 float64   // Sum of squares for variance calculation
	Values     []float64 // Store all margins for median/percentile calculation

	Teams       [3]TeamStats // Index 0 unused
	InstantWins int
	Rounds      int
	Declared    int
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	m := result.Margin()
	s.Games++
	s.SumMargin += m
	s.SumMargin2 += m * m
	s.Values = append(s.Values, m)

	if result.Winner == 1 || result.Winner == 2 {
		s.Teams[result.Winner].Wins++
	}
	for team := 1; team <= 2; team++ {
		s.Teams[team].Contracts += result.Contracts[team]
		s.Teams[team].Failed += result.Failed[team]
	}
	if result.InstantWin {
		s.InstantWins++
	}
	s.Rounds += result.Rounds
	s.Declared += result.Declared
}

// WinRate returns the share of games won by team
func (s *Statistics) WinRate(team int) float64 {
	if s.Games == 0 || team < 1 || team > 2 {
		return 0
	}
	return float64(s.Teams[team].Wins) / float64(s.Games)
}

// RoundsPerGame returns the mean number of rounds played per game
func (s *Statistics) RoundsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Games)
}

// FailureRate returns the share of all contracts that failed
func (s *Statistics) FailureRate() float64 {
	contracts := s.Teams[1].Contracts + s.Teams[2].Contracts
	if contracts == 0 {
		return 0
	}
	return float64(s.Teams[1].Failed+s.Teams[2].Failed) / float64(contracts)
}

// Mean returns the arithmetic mean of the final margin
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of the final margin
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the final margin
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean margin
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if wins := s.Teams[1].Wins + s.Teams[2].Wins; wins != s.Games {
		return fmt.Errorf("team wins (%d) do not match games count (%d)", wins, s.Games)
	}
	if s.InstantWins > s.Games {
		return fmt.Errorf("instant wins (%d) exceed games count (%d)", s.InstantWins, s.Games)
	}
	contracts := s.Teams[1].Contracts + s.Teams[2].Contracts
	if contracts > s.Rounds {
		return fmt.Errorf("contracts (%d) exceed rounds played (%d)", contracts, s.Rounds)
	}
	for team := 1; team <= 2; team++ {
		if s.Teams[team].Failed > s.Teams[team].Contracts {
			return fmt.Errorf("team %d failed %d of %d contracts", team, s.Teams[team].Failed, s.Teams[team].Contracts)
		}
	}
	return nil
}
