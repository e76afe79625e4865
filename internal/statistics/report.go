package statistics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Report is the machine-readable summary of a simulation run.
type Report struct {
	Team1       string        `json:"team1"`
	Team2       string        `json:"team2"`
	Games       int           `json:"games"`
	WinRate     [2]float64    `json:"win_rate"`
	InstantWins int           `json:"instant_wins"`
	Rounds      float64       `json:"rounds_per_game"`
	Margin      MarginSummary `json:"margin"`
	Contracts   [2]TeamStats  `json:"contracts"`
	FailureRate float64       `json:"failure_rate"`
	Declared    int           `json:"declared_points"`
}

// MarginSummary describes the distribution of team 1's final margin.
type MarginSummary struct {
	Mean   float64    `json:"mean"`
	Median float64    `json:"median"`
	StdDev float64    `json:"stddev"`
	CI95   [2]float64 `json:"ci95"`
}

// Report summarises the statistics for the named team strategies.
func (s *Statistics) Report(team1, team2 string) Report {
	low, high := s.ConfidenceInterval95()
	return Report{
		Team1:       team1,
		Team2:       team2,
		Games:       s.Games,
		WinRate:     [2]float64{s.WinRate(1), s.WinRate(2)},
		InstantWins: s.InstantWins,
		Rounds:      s.RoundsPerGame(),
		Margin: MarginSummary{
			Mean:   s.Mean(),
			Median: s.Median(),
			StdDev: s.StdDev(),
			CI95:   [2]float64{low, high},
		},
		Contracts:   [2]TeamStats{s.Teams[1], s.Teams[2]},
		FailureRate: s.FailureRate(),
		Declared:    s.Declared,
	}
}

// WriteReport writes r as indented JSON. The file is written to a temporary
// sibling and renamed into place, so readers never see a partial report.
func WriteReport(filename string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}
