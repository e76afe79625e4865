package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate(1) != 0 || stats.RoundsPerGame() != 0 || stats.FailureRate() != 0 {
		t.Error("Expected zero rates for empty stats")
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty stats to fail validation")
	}
}

func TestStatistics_SingleGame(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{
		Seed:      12345,
		Winner:    1,
		Team1:     520,
		Team2:     410,
		Rounds:    6,
		Contracts: [3]int{0, 4, 2},
		Failed:    [3]int{0, 1, 0},
		Declared:  70,
	})

	if stats.Games != 1 {
		t.Errorf("Expected 1 game, got %d", stats.Games)
	}
	if stats.Mean() != 110 {
		t.Errorf("Expected mean margin of 110, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.WinRate(1) != 1 || stats.WinRate(2) != 0 {
		t.Errorf("Expected team 1 to win every game, got %f / %f", stats.WinRate(1), stats.WinRate(2))
	}
	if stats.RoundsPerGame() != 6 {
		t.Errorf("Expected 6 rounds per game, got %f", stats.RoundsPerGame())
	}
	if stats.Teams[1].FailureRate() != 0.25 {
		t.Errorf("Expected team 1 failure rate of 0.25, got %f", stats.Teams[1].FailureRate())
	}
	if math.Abs(stats.FailureRate()-1.0/6.0) > 1e-9 {
		t.Errorf("Expected overall failure rate of 1/6, got %f", stats.FailureRate())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := &Statistics{}

	results := []GameResult{
		{Winner: 1, Team1: 510, Team2: 300, Rounds: 4, Contracts: [3]int{0, 2, 2}},
		{Winner: 2, Team1: 0, Team2: 0, InstantWin: true},
		{Winner: 2, Team1: 480, Team2: 530, Rounds: 5, Contracts: [3]int{0, 3, 2}, Failed: [3]int{0, 2, 0}},
		{Winner: 1, Team1: 600, Team2: 450, Rounds: 5, Contracts: [3]int{0, 1, 4}, Failed: [3]int{0, 0, 1}},
	}
	for _, r := range results {
		stats.Add(r)
	}

	// Margins: 210, 0, -50, 150
	expectedMean := (210.0 + 0 - 50 + 150) / 4
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}
	// Sorted: -50, 0, 150, 210
	if stats.Median() != 75 {
		t.Errorf("Expected median of 75, got %f", stats.Median())
	}
	if stats.InstantWins != 1 {
		t.Errorf("Expected 1 instant win, got %d", stats.InstantWins)
	}
	if stats.WinRate(2) != 0.5 {
		t.Errorf("Expected team 2 win rate of 0.5, got %f", stats.WinRate(2))
	}
	if stats.Rounds != 14 {
		t.Errorf("Expected 14 rounds, got %d", stats.Rounds)
	}
	if stats.Teams[1].Contracts != 6 || stats.Teams[2].Contracts != 8 {
		t.Errorf("Expected contracts 6/8, got %d/%d", stats.Teams[1].Contracts, stats.Teams[2].Contracts)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}

	// Margins: 10, 20, 30, 40, 50
	for i := 1; i <= 5; i++ {
		stats.Add(GameResult{Winner: 1, Team1: 10 * i})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.75, 40},
		{1.0, 50},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_VarianceAndConfidence(t *testing.T) {
	stats := &Statistics{}

	// Margins [1, 3, 5] have sample variance 4
	for _, v := range []int{1, 3, 5} {
		stats.Add(GameResult{Winner: 1, Team1: v})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, stats.Mean())
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_ValidateMismatches(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(*Statistics)
		want    string
	}{
		{"values", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"wins", func(s *Statistics) { s.Teams[1].Wins++ }, "team wins"},
		{"instant wins", func(s *Statistics) { s.InstantWins = 5 }, "instant wins"},
		{"contracts", func(s *Statistics) { s.Teams[2].Contracts = 50 }, "exceed rounds"},
		{"failed", func(s *Statistics) { s.Teams[1].Failed = 9 }, "team 1 failed"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stats := &Statistics{}
			stats.Add(GameResult{Winner: 1, Team1: 510, Rounds: 5, Contracts: [3]int{0, 3, 2}})
			stats.Add(GameResult{Winner: 2, Team2: 505, Rounds: 4, Contracts: [3]int{0, 2, 2}})
			test.corrupt(stats)

			err := stats.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("Expected error containing %q, got %v", test.want, err)
			}
		})
	}
}

func TestGameResult_Mirror(t *testing.T) {
	r := GameResult{Seed: 7, Winner: 1, Team1: 505, Team2: 320, Rounds: 4, Contracts: [3]int{0, 3, 1}, Failed: [3]int{0, 1, 0}}
	m := r.Mirror()

	if m.Winner != 2 || m.Team1 != 320 || m.Team2 != 505 {
		t.Errorf("Expected swapped totals and winner, got %+v", m)
	}
	if m.Contracts != [3]int{0, 1, 3} || m.Failed != [3]int{0, 0, 1} {
		t.Errorf("Expected swapped contracts, got %v / %v", m.Contracts, m.Failed)
	}
	if m.Margin() != -r.Margin() {
		t.Errorf("Expected margin %f, got %f", -r.Margin(), m.Margin())
	}
	if m.Mirror() != r {
		t.Error("Expected mirroring twice to restore the result")
	}
}
