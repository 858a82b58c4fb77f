package game

import (
	"math"
	"testing"
)

func TestMetricsReport_ZeroDenominators(t *testing.T) {
	var m Metrics
	report := m.Report("empty-game")

	if report.GameID != "empty-game" {
		t.Errorf("GameID = %q, want empty-game", report.GameID)
	}
	zeros := map[string]float64{
		"SeerAccuracy":            report.SeerAccuracy,
		"SeerRevealRate":          report.SeerRevealRate,
		"VotingAccuracy":          report.VotingAccuracy,
		"VoteDiscussionAlignment": report.VoteDiscussionAlignment,
		"SuspicionChangeRate":     report.SuspicionChangeRate,
		"StatementVarietyRate":    report.StatementVarietyRate,
		"WerewolfDeceptionRate":   report.WerewolfDeceptionRate,
		"WerewolfCoordination":    report.WerewolfCoordination,
		"VillageConsensusRate":    report.VillageConsensusRate,
	}
	for field, value := range zeros {
		if value != 0 {
			t.Errorf("%s = %v, want 0 with zero denominators", field, value)
		}
	}
}

func TestMetricsReport_Rates(t *testing.T) {
	m := Metrics{
		RoundsPlayed:            4,
		Winner:                  WinnerVillagers,
		SeerCorrectAccusations:  1,
		TotalSeerInvestigations: 4,
		VotesAgainstWerewolves:  6,
		TotalVotes:              12,
		SeerReveals:             1,
		SuspicionChanges:        10,
		VoteDiscussionAlignment: 9,
		TotalStatements:         40,
		StatementVariety:        8,
		WerewolfDeceptions:      5,
		MedicProtections:        2,
		WerewolfCoordination:    3,
		VillageConsensusSum:     2.5,
	}
	report := m.Report("game-1")

	checks := []struct {
		field string
		got   float64
		want  float64
	}{
		{"SeerAccuracy", report.SeerAccuracy, 0.25},
		{"SeerRevealRate", report.SeerRevealRate, 0.25},
		{"VotingAccuracy", report.VotingAccuracy, 0.5},
		{"VoteDiscussionAlignment", report.VoteDiscussionAlignment, 0.75},
		{"SuspicionChangeRate", report.SuspicionChangeRate, 0.25},
		{"StatementVarietyRate", report.StatementVarietyRate, 0.2},
		{"WerewolfDeceptionRate", report.WerewolfDeceptionRate, 0.125},
		{"WerewolfCoordination", report.WerewolfCoordination, 0.75},
		{"VillageConsensusRate", report.VillageConsensusRate, 0.625},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
		}
	}
	if report.Winner != string(WinnerVillagers) {
		t.Errorf("Winner = %q, want %q", report.Winner, WinnerVillagers)
	}
	if report.MedicProtections != 2 {
		t.Errorf("MedicProtections = %d, want 2", report.MedicProtections)
	}
	if report.TotalInvestigations != 4 || report.TotalStatements != 40 || report.TotalVotes != 12 {
		t.Errorf("raw counters off: %+v", report)
	}
}
