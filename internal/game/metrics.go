package game

// Metrics holds the raw counters the phases increment while a game
// runs. Report turns them into the normalized record handed to sinks.
type Metrics struct {
	RoundsPlayed            int
	Winner                  Winner
	SeerCorrectAccusations  int
	TotalSeerInvestigations int
	VotesAgainstWerewolves  int
	TotalVotes              int
	SeerReveals             int
	SuspicionChanges        int
	VoteDiscussionAlignment int
	TotalStatements         int
	StatementVariety        int
	WerewolfDeceptions      int
	MedicProtections        int
	WerewolfCoordination    int
	VillageConsensusSum     float64
}

// Report is the final per-game metrics record.
type Report struct {
	GameID                  string  `json:"game_id"`
	RoundsPlayed            int     `json:"rounds_played"`
	Winner                  string  `json:"winner"`
	SeerAccuracy            float64 `json:"seer_accuracy"`
	SeerRevealRate          float64 `json:"seer_reveal_rate"`
	TotalInvestigations     int     `json:"total_investigations"`
	VotingAccuracy          float64 `json:"voting_accuracy"`
	VoteDiscussionAlignment float64 `json:"vote_discussion_alignment"`
	SuspicionChangeRate     float64 `json:"suspicion_change_rate"`
	StatementVarietyRate    float64 `json:"statement_variety_rate"`
	WerewolfDeceptionRate   float64 `json:"werewolf_deception_rate"`
	WerewolfCoordination    float64 `json:"werewolf_team_coordination"`
	MedicProtections        int     `json:"medic_successful_protections"`
	VillageConsensusRate    float64 `json:"village_consensus_rate"`
	TotalStatements         int     `json:"total_statements"`
	TotalVotes              int     `json:"total_votes"`
}

// Report computes the normalized record. Every ratio collapses to 0
// when its denominator is 0.
func (m *Metrics) Report(gameID string) *Report {
	return &Report{
		GameID:                  gameID,
		RoundsPlayed:            m.RoundsPlayed,
		Winner:                  string(m.Winner),
		SeerAccuracy:            ratio(m.SeerCorrectAccusations, m.TotalSeerInvestigations),
		SeerRevealRate:          ratio(m.SeerReveals, m.RoundsPlayed),
		TotalInvestigations:     m.TotalSeerInvestigations,
		VotingAccuracy:          ratio(m.VotesAgainstWerewolves, m.TotalVotes),
		VoteDiscussionAlignment: ratio(m.VoteDiscussionAlignment, m.TotalVotes),
		SuspicionChangeRate:     ratio(m.SuspicionChanges, m.TotalStatements),
		StatementVarietyRate:    ratio(m.StatementVariety, m.TotalStatements),
		WerewolfDeceptionRate:   ratio(m.WerewolfDeceptions, m.TotalStatements),
		WerewolfCoordination:    ratio(m.WerewolfCoordination, m.RoundsPlayed),
		MedicProtections:        m.MedicProtections,
		VillageConsensusRate:    divide(m.VillageConsensusSum, m.RoundsPlayed),
		TotalStatements:         m.TotalStatements,
		TotalVotes:              m.TotalVotes,
	}
}

func ratio(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

func divide(numerator float64, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / float64(denominator)
}
