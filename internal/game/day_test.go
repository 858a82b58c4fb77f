package game

import (
	"context"
	"math"
	"testing"
)

func TestDetectClaims(t *testing.T) {
	tests := []struct {
		name         string
		speaker      string
		statement    string
		wantClaim    Role
		wantRegistry string
		wantReveals  int
	}{
		{
			name:         "seer reveals themself",
			speaker:      "Carol",
			statement:    "Everyone, I am the Seer and I checked Bob last night",
			wantClaim:    RoleSeer,
			wantRegistry: "Claimed Seer",
			wantReveals:  1,
		},
		{
			name:         "villager fakes a seer claim",
			speaker:      "Eve",
			statement:    "Believe me, I am the Seer",
			wantClaim:    RoleSeer,
			wantRegistry: "Claimed Seer",
			wantReveals:  0,
		},
		{
			name:         "indirect seer phrasing counts as a claim but not a reveal",
			speaker:      "Carol",
			statement:    "Speaking as the Seer, Frank is clean",
			wantClaim:    RoleSeer,
			wantRegistry: "Claimed Seer",
			wantReveals:  0,
		},
		{
			name:         "medic claim",
			speaker:      "Dave",
			statement:    "I am the Medic, I saved someone last night",
			wantClaim:    RoleMedic,
			wantRegistry: "Claimed Medic",
			wantReveals:  0,
		},
		{
			name:         "double claim counts as seer",
			speaker:      "Eve",
			statement:    "I am the Seer and also I am the Medic",
			wantClaim:    RoleSeer,
			wantRegistry: "Claimed Seer",
			wantReveals:  0,
		},
		{
			name:      "lowercase claim is not a claim",
			speaker:   "Eve",
			statement: "i am the seer, honest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, standardRoster(), Options{})
			g.Round = 1
			speaker := findPlayer(g.Players, tt.speaker)

			g.detectClaims(speaker, tt.statement, 1)

			if tt.wantClaim == "" {
				if len(speaker.RoleClaims) != 0 {
					t.Errorf("claims = %v, want none", speaker.RoleClaims)
				}
				return
			}
			if len(speaker.RoleClaims) != 1 || speaker.RoleClaims[0].Role != tt.wantClaim {
				t.Fatalf("claims = %v, want one %s claim", speaker.RoleClaims, tt.wantClaim)
			}
			if got := g.ClaimedRoles[tt.speaker]; got != tt.wantRegistry {
				t.Errorf("registry entry = %q, want %q", got, tt.wantRegistry)
			}
			if g.Metrics.SeerReveals != tt.wantReveals {
				t.Errorf("SeerReveals = %d, want %d", g.Metrics.SeerReveals, tt.wantReveals)
			}
		})
	}
}

func TestDetectDeception(t *testing.T) {
	tests := []struct {
		name      string
		speaker   string
		statement string
		want      int
	}{
		{"werewolf names a villager", "Alice", "I completely trust Eve on this", 1},
		{"werewolf names the seer", "Alice", "Carol has been quiet", 1},
		{"werewolf names only a teammate", "Alice", "Bob was with me all night", 0},
		{"werewolf names nobody", "Alice", "We should all stay calm", 0},
		{"villager names a villager", "Eve", "Frank is acting strangely", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, standardRoster(), Options{})
			g.detectDeception(findPlayer(g.Players, tt.speaker), tt.statement)
			if g.Metrics.WerewolfDeceptions != tt.want {
				t.Errorf("WerewolfDeceptions = %d, want %d", g.Metrics.WerewolfDeceptions, tt.want)
			}
		})
	}
}

func TestUpdateSuspicions(t *testing.T) {
	g := mustGame(t, standardRoster(), Options{})
	g.Round = 1
	alive := g.AlivePlayers()
	eve := findPlayer(g.Players, "Eve")

	g.updateSuspicions(eve, "I suspect Grace strongly", alive, 1)
	if got := eve.Beliefs.ScoreOf("Grace"); got != 0.25 {
		t.Errorf("score after accusation = %v, want 0.25", got)
	}
	if len(eve.SuspicionLog) != 1 {
		t.Fatalf("suspicion log = %v, want one entry", eve.SuspicionLog)
	}
	if ev := eve.SuspicionLog[0]; ev.Old != 0 || ev.New != 0.25 || ev.Target != "Grace" {
		t.Errorf("log entry = %+v, want Grace 0 -> 0.25", ev)
	}

	g.updateSuspicions(eve, "I still accuse Grace", alive, 2)
	if got := eve.Beliefs.ScoreOf("Grace"); got != 0.5 {
		t.Errorf("score after second accusation = %v, want 0.5", got)
	}

	g.updateSuspicions(eve, "Actually Grace might be innocent", alive, 2)
	if got := eve.Beliefs.ScoreOf("Grace"); got != 0.3 {
		t.Errorf("score after defense = %v, want 0.3", got)
	}
	if g.Metrics.SuspicionChanges != 3 {
		t.Errorf("SuspicionChanges = %d, want 3", g.Metrics.SuspicionChanges)
	}
}

func TestUpdateSuspicions_NoChangeCases(t *testing.T) {
	g := mustGame(t, standardRoster(), Options{})
	g.Round = 1
	alive := g.AlivePlayers()
	eve := findPlayer(g.Players, "Eve")

	// A defense of someone at the zero default clamps back to zero, so
	// nothing is recorded.
	g.updateSuspicions(eve, "Frank is innocent, leave him alone", alive, 1)
	if len(eve.SuspicionLog) != 0 {
		t.Errorf("log = %v, want empty after a no-op defense", eve.SuspicionLog)
	}

	// Mentioning a name without any keyword changes nothing.
	g.updateSuspicions(eve, "Grace seems quiet today", alive, 1)
	if len(eve.SuspicionLog) != 0 || g.Metrics.SuspicionChanges != 0 {
		t.Error("keywordless mention recorded a suspicion change")
	}

	// Repeated accusations saturate at 1.0 and stop recording.
	for i := 0; i < 5; i++ {
		g.updateSuspicions(eve, "I suspect Grace", alive, 1)
	}
	if got := eve.Beliefs.ScoreOf("Grace"); got != 1.0 {
		t.Errorf("saturated score = %v, want 1.0", got)
	}
	if g.Metrics.SuspicionChanges != 4 {
		t.Errorf("SuspicionChanges = %d, want 4 (fifth hit the clamp)", g.Metrics.SuspicionChanges)
	}
}

func TestUpdateSuspicions_SeerFactsImmutable(t *testing.T) {
	g := mustGame(t, standardRoster(), Options{})
	g.Round = 1
	alive := g.AlivePlayers()
	seer := findPlayer(g.Players, "Carol")
	seer.Beliefs.SetFact("Alice", true)

	g.updateSuspicions(seer, "I suspect Alice, mark my words", alive, 1)

	if !seer.Beliefs.KnownWerewolf("Alice") {
		t.Error("werewolf fact disappeared")
	}
	if got := seer.Beliefs.ScoreOf("Alice"); got != 0 {
		t.Errorf("fact target score = %v, want 0", got)
	}
	if len(seer.SuspicionLog) != 0 {
		t.Errorf("log = %v, want empty when the target is a fact", seer.SuspicionLog)
	}
	if g.Metrics.SuspicionChanges != 0 {
		t.Errorf("SuspicionChanges = %d, want 0", g.Metrics.SuspicionChanges)
	}
}

func TestTrackVariety(t *testing.T) {
	g := mustGame(t, standardRoster(), Options{})
	alive := g.AlivePlayers()
	eve := findPlayer(g.Players, "Eve")

	say := func(text string) {
		eve.Statements = append(eve.Statements, Statement{Round: 1, DiscussionRound: 1, Text: text})
		g.trackVariety(eve, text, alive)
	}

	say("I wonder about Grace")
	if g.Metrics.StatementVariety != 1 {
		t.Errorf("variety = %d, want 1 after a fresh mention", g.Metrics.StatementVariety)
	}

	say("Grace again, same as before")
	if g.Metrics.StatementVariety != 1 {
		t.Errorf("variety = %d, want 1 after a repeat", g.Metrics.StatementVariety)
	}

	say("What about Grace and Frank")
	if g.Metrics.StatementVariety != 1 {
		t.Errorf("variety = %d, want 1 when any mention repeats", g.Metrics.StatementVariety)
	}

	say("Now only Dave concerns me")
	if g.Metrics.StatementVariety != 2 {
		t.Errorf("variety = %d, want 2 after another fresh mention", g.Metrics.StatementVariety)
	}

	say("No names at all")
	if g.Metrics.StatementVariety != 2 {
		t.Errorf("variety = %d, want 2 after a nameless statement", g.Metrics.StatementVariety)
	}
}

func TestDayPhase_FullFlow(t *testing.T) {
	sink := newRecordingSink()
	g := mustGame(t, standardRoster(), Options{
		Sink: sink,
		Oracle: &scriptOracle{rules: []scriptRule{
			{contains: "make a strategic statement", reply: "I suspect Alice"},
			{contains: "vote for one player to eliminate", reply: "Alice"},
			{contains: "explain your strategic reasoning", reply: "The evidence points that way"},
		}},
	})
	g.Round = 1

	g.dayPhase(context.Background())

	if alice := findPlayer(g.Players, "Alice"); alice.Alive {
		t.Error("Alice survived a unanimous vote")
	}
	if got := g.History[len(g.History)-1]; got != "Day 1: Alice was eliminated with 6 votes out of 7 voters" {
		t.Errorf("history entry = %q", got)
	}

	m := g.Metrics
	if m.TotalStatements != 14 {
		t.Errorf("TotalStatements = %d, want 14", m.TotalStatements)
	}
	if m.TotalVotes != 6 {
		t.Errorf("TotalVotes = %d, want 6 (Alice's self-vote is a Pass)", m.TotalVotes)
	}
	if m.VotesAgainstWerewolves != 6 {
		t.Errorf("VotesAgainstWerewolves = %d, want 6", m.VotesAgainstWerewolves)
	}
	if m.VoteDiscussionAlignment != 6 {
		t.Errorf("VoteDiscussionAlignment = %d, want 6", m.VoteDiscussionAlignment)
	}
	if m.SuspicionChanges != 12 {
		t.Errorf("SuspicionChanges = %d, want 12 (six speakers, two rising rounds)", m.SuspicionChanges)
	}
	if m.StatementVariety != 6 {
		t.Errorf("StatementVariety = %d, want 6", m.StatementVariety)
	}
	if m.SeerCorrectAccusations != 1 {
		t.Errorf("SeerCorrectAccusations = %d, want 1", m.SeerCorrectAccusations)
	}
	if math.Abs(m.VillageConsensusSum-6.0/7.0) > 1e-9 {
		t.Errorf("VillageConsensusSum = %v, want 6/7", m.VillageConsensusSum)
	}

	if len(g.Discussions) != 2 {
		t.Errorf("retained discussions = %d, want 2", len(g.Discussions))
	}
	if len(g.VotingHistory) != 1 {
		t.Fatalf("voting history = %v, want one record", g.VotingHistory)
	}
	if got := g.VotingHistory[0].Votes["Alice"]; got != "Pass" {
		t.Errorf("Alice's vote = %q, want Pass", got)
	}
	if got := g.VotingHistory[0].Votes["Eve"]; got != "Alice" {
		t.Errorf("Eve's vote = %q, want Alice", got)
	}

	votes, ok := sink.votes[1]
	if !ok || votes["Carol"] != "Alice" {
		t.Errorf("recorded votes = %v, want Carol voting Alice", votes)
	}
	if sink.count("vote_reason") != 7 {
		t.Errorf("vote_reason events = %d, want 7", sink.count("vote_reason"))
	}
	if sink.count("elimination") != 1 {
		t.Errorf("elimination events = %d, want 1", sink.count("elimination"))
	}
	if sink.count("discussion") != 1 {
		t.Errorf("discussion events = %d, want 1", sink.count("discussion"))
	}
}
