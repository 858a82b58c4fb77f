package game

import (
	"context"
	"fmt"
)

// runVoting collects one vote per alive player, tallies them, and
// eliminates the winner of the tally. Anything that is not the name of
// another alive player is coerced to a Pass with no retry.
func (g *Game) runVoting(ctx context.Context, alive []*Player, day []DiscussionRecord) {
	votes := make(map[string]string, len(alive))
	reasons := make(map[string]string, len(alive))

	for _, voter := range alive {
		prompt, coordinated := g.votePrompt(voter, alive, day)
		if coordinated {
			g.Metrics.WerewolfCoordination++
		}
		vote := g.ask(ctx, prompt, answerMaxTokens)
		reason := g.ask(ctx, voteReasonPrompt(vote), reasonMaxTokens)

		target := findPlayer(alive, vote)
		if vote == "Pass" || target == nil || target == voter {
			votes[voter.Name] = "Pass"
			reasons[voter.Name] = reason
		} else {
			votes[voter.Name] = vote
			reasons[voter.Name] = reason
			voter.VotesCast = append(voter.VotesCast, vote)
			target.VotedBy = append(target.VotedBy, voter.Name)

			g.Metrics.TotalVotes++
			if target.Role == RoleWerewolf {
				g.Metrics.VotesAgainstWerewolves++
			}
			if voter.raisedSuspicionIn(g.Round, vote) {
				g.Metrics.VoteDiscussionAlignment++
			}
			g.checkWolfVoteCoordination(voter, vote, votes)
		}
		g.sink.RecordEvent("vote_reason", map[string]any{
			"player": voter.Name, "vote": votes[voter.Name], "reason": reason,
		})
	}

	g.sink.RecordEvent("votes", votes)
	g.VotingHistory = append(g.VotingHistory, VoteRecord{Round: g.Round, Votes: votes, Reasons: reasons})
	g.sink.RecordVote(g.Round, votes)

	g.tally(alive, votes)
}

// checkWolfVoteCoordination credits the werewolf team when a wolf's
// vote matches every teammate vote already on the table.
func (g *Game) checkWolfVoteCoordination(voter *Player, vote string, votes map[string]string) {
	wolves := g.Werewolves()
	if voter.Role != RoleWerewolf || len(wolves) < 2 {
		return
	}
	matched := 0
	for _, w := range wolves {
		if w == voter {
			continue
		}
		cast, ok := votes[w.Name]
		if !ok {
			continue
		}
		if cast != vote {
			return
		}
		matched++
	}
	if matched > 0 {
		g.Metrics.WerewolfCoordination++
	}
}

// tally counts the non-Pass votes and eliminates the player with the
// most, breaking ties uniformly at random. No votes means no
// elimination this round.
func (g *Game) tally(alive []*Player, votes map[string]string) {
	counts := make(map[string]int)
	var order []string
	for _, voter := range alive {
		vote := votes[voter.Name]
		if vote == "Pass" || vote == "" {
			continue
		}
		if counts[vote] == 0 {
			order = append(order, vote)
		}
		counts[vote]++
	}
	if len(order) == 0 {
		return
	}

	maxVotes := 0
	for _, name := range order {
		if counts[name] > maxVotes {
			maxVotes = counts[name]
		}
	}
	g.Metrics.VillageConsensusSum += float64(maxVotes) / float64(len(alive))

	var tied []string
	for _, name := range order {
		if counts[name] == maxVotes {
			tied = append(tied, name)
		}
	}
	eliminatedName := tied[g.rng.Intn(len(tied))]
	eliminated := findPlayer(alive, eliminatedName)
	eliminated.Alive = false

	g.sink.RecordEvent("elimination", map[string]any{
		"eliminated": eliminatedName, "votes_received": maxVotes, "total_voters": len(alive),
	})
	g.appendHistory(fmt.Sprintf("Day %d: %s was eliminated with %d votes out of %d voters",
		g.Round, eliminatedName, maxVotes, len(alive)))

	if eliminated.Role == RoleWerewolf {
		if seer := g.findAliveRole(RoleSeer); seer != nil && votes[seer.Name] == eliminatedName {
			g.Metrics.SeerCorrectAccusations++
		}
	}
}
