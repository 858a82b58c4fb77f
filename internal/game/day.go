package game

import (
	"context"
	"strings"
)

type promptRecord struct {
	Speaker string `json:"player"`
	Prompt  string `json:"prompt"`
}

type roundPrompts struct {
	Index   int            `json:"discussion_round"`
	Prompts []promptRecord `json:"prompts"`
}

// dayPhase runs the discussion rounds and the vote. Speaking order is
// reshuffled every discussion round; the voters go in the final
// speaking order.
func (g *Game) dayPhase(ctx context.Context) {
	g.sink.RecordEvent("day_start", map[string]any{"round": g.Round})
	alive := g.AlivePlayers()

	var day []DiscussionRecord
	var prompts []roundPrompts
	for index := 1; index <= g.discussionRounds; index++ {
		rec, recPrompts := g.runDiscussionRound(ctx, alive, index, day)
		day = append(day, rec)
		prompts = append(prompts, recPrompts)
	}
	g.Discussions = append(g.Discussions, day...)
	g.sink.RecordEvent("discussion", map[string]any{"discussions": day})
	g.sink.RecordEvent("discussion_prompts", map[string]any{"prompts": prompts})

	g.runVoting(ctx, alive, day)
	g.logRoundSummary()
}

// runDiscussionRound collects one statement from every alive player in
// a freshly shuffled order and applies the statement analyses.
func (g *Game) runDiscussionRound(ctx context.Context, alive []*Player, index int, day []DiscussionRecord) (DiscussionRecord, roundPrompts) {
	rec := DiscussionRecord{Round: g.Round, Index: index}
	recPrompts := roundPrompts{Index: index}
	prevSummary := summarizeDiscussions(day)

	g.rng.Shuffle(len(alive), func(i, j int) { alive[i], alive[j] = alive[j], alive[i] })
	for _, speaker := range alive {
		prompt := g.discussionPrompt(speaker, alive, index, rec, prevSummary)
		statement := g.ask(ctx, prompt, answerMaxTokens)

		rec.Statements = append(rec.Statements, StatementRecord{Speaker: speaker.Name, Statement: statement})
		recPrompts.Prompts = append(recPrompts.Prompts, promptRecord{Speaker: speaker.Name, Prompt: prompt})
		speaker.Statements = append(speaker.Statements, Statement{Round: g.Round, DiscussionRound: index, Text: statement})
		g.Metrics.TotalStatements++

		g.detectClaims(speaker, statement, index)
		g.detectDeception(speaker, statement)
		g.updateSuspicions(speaker, statement, alive, index)
		g.trackVariety(speaker, statement, alive)
	}
	return rec, recPrompts
}

// detectClaims registers public role claims. A statement claiming both
// roles counts as a Seer claim only.
func (g *Game) detectClaims(speaker *Player, statement string, index int) {
	switch {
	case strings.Contains(statement, "I am the Seer") || strings.Contains(statement, "as the Seer"):
		speaker.RoleClaims = append(speaker.RoleClaims, RoleClaim{Role: RoleSeer, Round: g.Round, DiscussionRound: index})
		g.ClaimedRoles[speaker.Name] = "Claimed Seer"
	case strings.Contains(statement, "I am the Medic") || strings.Contains(statement, "as the Medic"):
		speaker.RoleClaims = append(speaker.RoleClaims, RoleClaim{Role: RoleMedic, Round: g.Round, DiscussionRound: index})
		g.ClaimedRoles[speaker.Name] = "Claimed Medic"
	}
	if speaker.Role == RoleSeer && strings.Contains(statement, "I am the Seer") {
		g.Metrics.SeerReveals++
	}
}

// detectDeception counts werewolf statements that name any villager.
func (g *Game) detectDeception(speaker *Player, statement string) {
	if speaker.Role != RoleWerewolf {
		return
	}
	for _, p := range g.Villagers() {
		if strings.Contains(statement, p.Name) {
			g.Metrics.WerewolfDeceptions++
			return
		}
	}
}

// updateSuspicions adjusts the speaker's suspicion of every alive
// player their statement names. Accusation keywords raise the score,
// defense keywords lower it, and a Seer speaking about a confirmed
// werewolf pushes hard regardless of keywords. Investigation facts are
// never touched.
func (g *Game) updateSuspicions(speaker *Player, statement string, alive []*Player, index int) {
	lower := strings.ToLower(statement)
	for _, target := range alive {
		if target.Name == speaker.Name || !strings.Contains(statement, target.Name) {
			continue
		}
		var delta float64
		switch {
		case strings.Contains(lower, "suspect") || strings.Contains(lower, "accuse"):
			delta = 0.25
		case strings.Contains(lower, "innocent") || strings.Contains(lower, "defend"):
			delta = -0.2
		}
		if speaker.Role == RoleSeer && speaker.Beliefs.KnownWerewolf(target.Name) {
			delta = 0.5
		}
		old := speaker.Beliefs.ScoreOf(target.Name)
		if !speaker.Beliefs.SetScore(target.Name, old+delta) {
			continue
		}
		speaker.SuspicionLog = append(speaker.SuspicionLog, SuspicionChange{
			Round:           g.Round,
			DiscussionRound: index,
			Target:          target.Name,
			Old:             old,
			New:             speaker.Beliefs.ScoreOf(target.Name),
		})
		g.Metrics.SuspicionChanges++
	}
}

// trackVariety counts statements whose named targets are all players
// the speaker has never mentioned before.
func (g *Game) trackVariety(speaker *Player, statement string, alive []*Player) {
	var current []string
	for _, p := range alive {
		if p.Name != speaker.Name && strings.Contains(statement, p.Name) {
			current = append(current, p.Name)
		}
	}
	if len(current) == 0 {
		return
	}
	past := make(map[string]bool)
	for _, s := range speaker.Statements[:len(speaker.Statements)-1] {
		for _, p := range alive {
			if p.Name != speaker.Name && strings.Contains(s.Text, p.Name) {
				past[p.Name] = true
			}
		}
	}
	for _, name := range current {
		if past[name] {
			return
		}
	}
	g.Metrics.StatementVariety++
}
