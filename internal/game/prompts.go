package game

import (
	"fmt"
	"strings"
)

// Game stages steer the strategy text handed to the oracle. Thresholds
// are in rounds: two rounds of early game, two of mid, then late.
const (
	stageEarly = "early"
	stageMid   = "mid"
	stageLate  = "late"
)

func (g *Game) gameStage() string {
	switch {
	case g.Round <= 2:
		return stageEarly
	case g.Round <= 4:
		return stageMid
	default:
		return stageLate
	}
}

func names(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

// summarizedHistory condenses the history log into the most recent
// events plus every death so far.
func (g *Game) summarizedHistory() string {
	if len(g.History) == 0 {
		return "Game just started."
	}
	recent := g.History
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var deaths []string
	for _, event := range g.History {
		if strings.Contains(event, "was killed") || strings.Contains(event, "was eliminated") {
			deaths = append(deaths, event)
		}
	}
	summary := "Recent events: " + strings.Join(recent, "; ")
	if len(deaths) > 0 {
		summary += "\nAll deaths so far: " + strings.Join(deaths, "; ")
	}
	return summary
}

// formatKnowledge renders a player's belief map for their prompts. The
// Seer sees investigation results; everyone else sees banded suspicion.
func formatKnowledge(p *Player) string {
	if len(p.Beliefs) == 0 {
		return "No specific knowledge yet."
	}
	var lines []string
	for _, target := range p.Beliefs.sortedTargets() {
		belief := p.Beliefs[target]
		if belief.IsFact {
			result := "Not a Werewolf"
			if belief.IsWerewolf {
				result = "Werewolf"
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", target, result))
			continue
		}
		switch {
		case belief.Score >= 0.7:
			lines = append(lines, fmt.Sprintf("- %s: Highly suspicious", target))
		case belief.Score >= 0.4:
			lines = append(lines, fmt.Sprintf("- %s: Somewhat suspicious", target))
		case belief.Score <= 0.2:
			lines = append(lines, fmt.Sprintf("- %s: Likely innocent", target))
		default:
			lines = append(lines, fmt.Sprintf("- %s: Neutral/Uncertain", target))
		}
	}
	if len(lines) == 0 {
		return "No clear suspicions yet."
	}
	return strings.Join(lines, "\n")
}

// summarizeDiscussions reduces earlier discussion rounds to accusation
// and defense counts.
func summarizeDiscussions(records []DiscussionRecord) string {
	if len(records) == 0 {
		return "No previous discussion yet."
	}
	var summaries []string
	for _, rec := range records {
		accusations := 0
		defenses := 0
		for _, s := range rec.Statements {
			lower := strings.ToLower(s.Statement)
			if strings.Contains(lower, "suspect") || strings.Contains(lower, "accuse") {
				accusations++
			}
			if strings.Contains(lower, "innocent") || strings.Contains(lower, "defend") {
				defenses++
			}
		}
		summary := fmt.Sprintf("Round %d: ", rec.Index)
		if accusations > 0 {
			summary += fmt.Sprintf("%d accusations; ", accusations)
		}
		if defenses > 0 {
			summary += fmt.Sprintf("%d defenses", defenses)
		}
		summaries = append(summaries, summary)
	}
	return strings.Join(summaries, "\n")
}

// keyAccusations extracts who said what about whom across the day's
// discussion, at most two mentions per target.
func (g *Game) keyAccusations(records []DiscussionRecord) string {
	if len(records) == 0 {
		return "No discussions yet."
	}
	alive := g.AlivePlayers()
	mentions := make(map[string][]string)
	for _, rec := range records {
		for _, s := range rec.Statements {
			for _, p := range alive {
				if p.Name != s.Speaker && strings.Contains(s.Statement, p.Name) {
					mentions[p.Name] = append(mentions[p.Name], fmt.Sprintf("%s: %s", s.Speaker, s.Statement))
				}
			}
		}
	}
	var lines []string
	for _, p := range alive {
		quoted := mentions[p.Name]
		if len(quoted) == 0 {
			continue
		}
		if len(quoted) > 2 {
			quoted = quoted[:2]
		}
		lines = append(lines, fmt.Sprintf("About %s:", p.Name))
		for _, q := range quoted {
			lines = append(lines, "- "+q)
		}
	}
	if len(lines) == 0 {
		return "No significant accusations or defenses yet."
	}
	return strings.Join(lines, "\n")
}

// formatVotingHistory renders every past vote round for prompt context.
func (g *Game) formatVotingHistory() string {
	if len(g.VotingHistory) == 0 {
		return "No voting history yet."
	}
	var rounds []string
	for _, rec := range g.VotingHistory {
		lines := []string{fmt.Sprintf("Round %d votes:", rec.Round)}
		for _, p := range g.Players {
			if vote, ok := rec.Votes[p.Name]; ok {
				lines = append(lines, fmt.Sprintf("- %s voted for %s", p.Name, vote))
			}
		}
		rounds = append(rounds, strings.Join(lines, "\n"))
	}
	return strings.Join(rounds, "\n\n")
}

func werewolfStrategy(g *Game, p *Player) []string {
	lines := []string{
		"Try to blend in by accusing other players without drawing attention to yourself",
		"Defend your fellow werewolves subtly, but don't make it obvious",
		"Try to create confusion by casting doubt on vocal players",
	}
	switch g.gameStage() {
	case stageEarly:
		lines = prepend(lines, "In early rounds, observe before making strong accusations")
	case stageMid:
		lines = prepend(lines, "Build on previous discussions to seem consistent")
	default:
		lines = prepend(lines, "Coordinate with other werewolves to secure eliminations",
			"Target confirmed villagers or suspected power roles")
	}
	if len(g.Werewolves()) < len(g.AlivePlayers())/3 {
		lines = prepend(lines, "Your team is outnumbered - focus on survival rather than aggression")
	}
	if g.gameStage() == stageLate {
		lines = append(lines, "If a consensus is building against a villager, support it to blend in")
	}
	return cap3(lines)
}

func seerStrategy(g *Game, p *Player) []string {
	lines := []string{
		"Use your knowledge strategically without revealing your role too early",
		"Pay attention to contradictions in player statements compared to your knowledge",
		"If pressured, you might need to reveal your role to save yourself or confirm information",
	}
	if len(p.Beliefs.KnownWerewolves()) > 0 {
		if g.gameStage() == stageEarly {
			lines = prepend(lines, "You've identified a werewolf early - consider waiting before revealing")
		} else {
			lines = prepend(lines, "You've identified a werewolf - consider revealing this to unite the village")
		}
	}
	if g.gameStage() == stageLate {
		lines = prepend(lines, "In late game, revealing your role may be necessary to save the village")
	}
	return cap3(lines)
}

func medicStrategy(g *Game, p *Player) []string {
	lines := []string{
		"Keep your role secret to avoid being targeted by werewolves",
		"Pay attention to discussions to identify potential Seers to protect",
		"Vary your protection targets to be unpredictable",
	}
	switch g.gameStage() {
	case stageMid:
		lines = prepend(lines, "Prioritize protecting players who seem to have important information")
	case stageLate:
		lines = prepend(lines, "In late game, consider self-protection if you're being targeted",
			"Don't waste protection on inactive players")
	}
	return cap3(lines)
}

func villagerStrategy(g *Game, p *Player) []string {
	lines := []string{
		"Analyze player statements carefully for inconsistencies",
		"Be careful about who you trust, but work with others to identify werewolves",
		"Pay attention to voting patterns from previous rounds",
	}
	switch g.gameStage() {
	case stageMid:
		lines = prepend(lines, "Be suspicious of quiet players who don't contribute")
	case stageLate:
		lines = prepend(lines, "In late game, consensus is crucial - try to align with other trusted villagers",
			"Look for patterns in voting - werewolves often protect each other")
	}
	return cap3(lines)
}

func prepend(lines []string, extra ...string) []string {
	return append(extra, lines...)
}

func cap3(lines []string) []string {
	if len(lines) > 3 {
		return lines[:3]
	}
	return lines
}

func werewolfVoteStrategy(g *Game, p *Player) string {
	if g.gameStage() == stageLate && len(g.Werewolves()) > 1 {
		return "Coordinate votes with your werewolf teammates to eliminate key villagers. " +
			"Target confirmed or suspected Seers or Medics first. " +
			"Avoid voting for fellow werewolves at all costs. " +
			"If there's a clear village consensus against someone, consider joining it to blend in."
	}
	return "Vote strategically to eliminate villagers, especially those who might be the Seer or Medic. " +
		"Avoid voting for your fellow werewolves. Consider voting for players who are suspicious of you " +
		"or your teammates. Try to align your vote with village consensus if possible."
}

func seerVoteStrategy(g *Game, p *Player) string {
	if len(p.Beliefs.KnownWerewolves()) > 0 && g.gameStage() != stageEarly {
		return "Vote for a confirmed werewolf from your investigations. If you need to reveal your role " +
			"to convince others, do so strategically. Your vote carries important information."
	}
	return "Use your investigation results to guide your vote. Prioritize voting for confirmed werewolves. " +
		"If you haven't found a werewolf yet, vote based on suspicious behavior. " +
		"Consider the consequences of revealing your knowledge through your vote."
}

func medicVoteStrategy(g *Game, p *Player) string {
	if g.gameStage() == stageLate {
		return "Vote strategically based on all available information. Prioritize eliminating confirmed " +
			"or strongly suspected werewolves. Be suspicious of quiet players or those with inconsistent " +
			"statements. Your survival is important for the village."
	}
	return "Vote based on observed behavior and discussion patterns. Try to identify werewolves through " +
		"their inconsistencies or suspicious defenses. Be wary of players who seem to be working together."
}

func villagerVoteStrategy(g *Game, p *Player) string {
	if g.gameStage() == stageLate {
		return "In this critical stage, voting consensus is crucial. Look at voting history to identify patterns. " +
			"Be suspicious of quiet players who haven't contributed meaningfully. " +
			"Trust players who have consistently voted against confirmed werewolves."
	}
	return "Vote based on the evidence from discussions. Look for inconsistencies in statements. " +
		"Consider who made the most logical arguments. Be cautious of players making vague accusations."
}

// candidateInfo renders a priority list for night prompts, keeping only
// candidates whose names appear in valid.
func candidateInfo(candidates []targetCandidate, valid []*Player) string {
	var lines []string
	for _, c := range candidates {
		if findPlayer(valid, c.Name) == nil {
			continue
		}
		band := "Low priority"
		switch {
		case c.Priority >= 0.8:
			band = "High priority"
		case c.Priority >= 0.6:
			band = "Medium priority"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, band))
	}
	return strings.Join(lines, "\n")
}

func (g *Game) werewolfPrompt(wolves, alive []*Player, candidates []targetCandidate) string {
	return fmt.Sprintf(
		"In the fictional Werewolf game, you are a Werewolf. Your team: %s. "+
			"Alive players: %s.\n"+
			"Game history summary: %s\n"+
			"Game stage: %s game (Round %d)\n"+
			"Target analysis:\n%s\n"+
			"Strategic considerations:\n"+
			"- Target influential players who might be the Seer or Medic\n"+
			"- Avoid targeting players who were protected previously\n"+
			"- Focus on eliminating vocal players who are suspicious of werewolves\n"+
			"- In late game, prioritize eliminating confirmed villagers\n"+
			"Select one player as the target for this round. Respond with only the player's name.",
		strings.Join(names(wolves), ", "), strings.Join(names(alive), ", "),
		g.summarizedHistory(), g.gameStage(), g.Round, candidateInfo(candidates, alive))
}

func (g *Game) seerPrompt(seer *Player, valid, uninvestigated []*Player, suspicious []targetCandidate) string {
	suspiciousNames := "None identified"
	if len(suspicious) > 0 {
		top := suspicious
		if len(top) > 3 {
			top = top[:3]
		}
		picks := make([]string, len(top))
		for i, c := range top {
			picks[i] = c.Name
		}
		suspiciousNames = strings.Join(picks, ", ")
	}
	return fmt.Sprintf(
		"In the fictional Werewolf game, you are the Seer. Alive players (excluding yourself): %s.\n"+
			"Game history summary: %s\n"+
			"Your previous investigations:\n%s\n"+
			"Players you haven't investigated yet: %s\n"+
			"Suspicious players based on behavior: %s\n"+
			"Strategic considerations:\n"+
			"- Prioritize investigating players who show suspicious behavior\n"+
			"- In early game, focus on gathering information on multiple players\n"+
			"- In late game, focus on confirming your suspicions\n"+
			"- Balance between checking new players and verifying suspicions\n"+
			"Select one player to investigate their role. Respond with only the player's name.",
		strings.Join(names(valid), ", "), g.summarizedHistory(), formatKnowledge(seer),
		strings.Join(names(uninvestigated), ", "), suspiciousNames)
}

func (g *Game) medicPrompt(medic *Player, valid []*Player, candidates []targetCandidate) string {
	lastProtected := medic.LastProtected
	if lastProtected == "" {
		lastProtected = "none"
	}
	return fmt.Sprintf(
		"In the fictional Werewolf game, you are the Medic. Alive players: %s.\n"+
			"Game history summary: %s\n"+
			"You cannot protect %s again this round.\n"+
			"Game stage: %s game (Round %d)\n"+
			"Target analysis:\n%s\n"+
			"Strategic considerations:\n"+
			"- Protect players who might be the Seer or other key roles\n"+
			"- Prioritize vocal players who are likely targets for werewolves\n"+
			"- In late game, don't waste protection on inactive players\n"+
			"- Consider self-protection if you're at risk\n"+
			"Select one player to protect this round. Respond with only the player's name.",
		strings.Join(names(valid), ", "), g.summarizedHistory(), lastProtected,
		g.gameStage(), g.Round, candidateInfo(candidates, valid))
}

// discussionRoleInfo builds the private role line a speaker sees, with
// stage-dependent hints folded into the strategy guidance.
func (g *Game) discussionRoleInfo(p *Player) (string, string) {
	strategy := strings.Join(bulleted(roleBehaviors[p.Role].strategy(g, p)), "\n")
	switch p.Role {
	case RoleWerewolf:
		var teammates []string
		for _, w := range g.Werewolves() {
			if w != p {
				teammates = append(teammates, w.Name)
			}
		}
		info := fmt.Sprintf("You are a Werewolf. Your teammates are %s.", strings.Join(teammates, ", "))
		if g.gameStage() == stageLate {
			strategy += "\nIn this late stage, coordinate subtly with your teammates. " +
				"Focus on discrediting players who might be the Seer or Medic. " +
				"If there's a consensus building against a villager, support it to blend in."
		}
		return info, strategy
	case RoleSeer:
		info := fmt.Sprintf("You are the Seer. Your investigations:\n%s", formatKnowledge(p))
		if len(p.Beliefs.KnownWerewolves()) > 0 && g.gameStage() != stageEarly {
			strategy += "\nYou have found a werewolf. Consider revealing your role strategically " +
				"to convince others. In late game, this information is crucial for the village."
		}
		return info, strategy
	case RoleMedic:
		info := "You are the Medic."
		if p.LastProtected != "" {
			info += fmt.Sprintf(" Last night you protected %s.", p.LastProtected)
		}
		if g.gameStage() == stageLate {
			strategy += "\nIn late game, your survival is critical. Be careful about revealing your role, " +
				"but focus on identifying werewolves through voting patterns and behavior."
		}
		return info, strategy
	default:
		info := fmt.Sprintf("You are a %s.", p.Role)
		if g.gameStage() == stageLate {
			strategy += "\nIn late game, be suspicious of quiet players who haven't contributed meaningfully. " +
				"Look for voting patterns that suggest werewolf coordination."
		}
		return info, strategy
	}
}

func bulleted(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = "- " + line
	}
	return out
}

func (g *Game) discussionPrompt(speaker *Player, alive []*Player, index int, current DiscussionRecord, prevSummary string) string {
	roleInfo, strategy := g.discussionRoleInfo(speaker)
	currentStatements := "No statements yet."
	if len(current.Statements) > 0 {
		var lines []string
		for _, s := range current.Statements {
			lines = append(lines, fmt.Sprintf("%s: %s", s.Speaker, s.Statement))
		}
		currentStatements = strings.Join(lines, "\n")
	}
	return fmt.Sprintf(
		"In the fictional Werewolf game, %s\n"+
			"Game summary: %s\n"+
			"Alive players: %s\n"+
			"Game stage: %s game (Round %d)\n"+
			"Discussion round %d of %d\n"+
			"Previous discussion rounds summary: %s\n"+
			"Current round statements: %s\n"+
			"Your knowledge: %s\n"+
			"Voting history: %s\n"+
			"Strategic guidance:\n%s\n"+
			"Now, as %s, make a strategic statement about who you suspect or defend. "+
			"Your statement should directly advance your win condition while appearing logical to others. "+
			"Be specific with your reasoning and avoid vague statements. "+
			"Respond with only your in-character statement (1-2 sentences).",
		roleInfo, g.summarizedHistory(), strings.Join(names(alive), ", "),
		g.gameStage(), g.Round, index, g.discussionRounds, prevSummary,
		currentStatements, formatKnowledge(speaker), g.formatVotingHistory(),
		strategy, speaker.Name)
}

// voteRoleInfo builds a voter's private role line. For werewolves in the
// late game it also analyzes village consensus; the returned flag tells
// the caller the join-the-consensus hint fired.
func (g *Game) voteRoleInfo(p *Player) (string, bool) {
	switch p.Role {
	case RoleWerewolf:
		var teammates []string
		for _, w := range g.Werewolves() {
			if w != p {
				teammates = append(teammates, w.Name)
			}
		}
		info := fmt.Sprintf("You are a Werewolf. Your teammates are %s.", strings.Join(teammates, ", "))
		if g.gameStage() == stageLate && len(g.Werewolves()) > 1 {
			if target, count := g.villageConsensus(); target != "" &&
				float64(count) >= float64(len(g.Villagers()))/2 {
				info = fmt.Sprintf("You are a Werewolf. Your teammates are %s. "+
					"IMPORTANT: The village seems to be forming a consensus against %s. "+
					"Consider voting with this consensus to blend in, unless another werewolf is at risk.",
					strings.Join(teammates, ", "), target)
				return info, true
			}
		}
		return info, false
	case RoleSeer:
		if confirmed := p.Beliefs.KnownWerewolves(); len(confirmed) > 0 {
			return fmt.Sprintf("You are the Seer. Your investigations have identified these werewolves: %s. "+
				"Your vote should prioritize eliminating a confirmed werewolf.", strings.Join(confirmed, ", ")), false
		}
		return fmt.Sprintf("You are the Seer. Your investigations:\n%s", formatKnowledge(p)), false
	default:
		return fmt.Sprintf("You are a %s.", p.Role), false
	}
}

// villageConsensus finds the non-werewolf most accused by villagers in
// their statements, and how many accusations they drew.
func (g *Game) villageConsensus() (string, int) {
	counts := make(map[string]int)
	for _, villager := range g.Villagers() {
		for _, s := range villager.Statements {
			if !strings.Contains(strings.ToLower(s.Text), "suspect") {
				continue
			}
			for _, other := range g.AlivePlayers() {
				if other.Role != RoleWerewolf && strings.Contains(s.Text, other.Name) {
					counts[other.Name]++
				}
			}
		}
	}
	best := ""
	bestCount := 0
	for _, p := range g.AlivePlayers() {
		if counts[p.Name] > bestCount {
			best, bestCount = p.Name, counts[p.Name]
		}
	}
	return best, bestCount
}

func (g *Game) votePrompt(voter *Player, alive []*Player, day []DiscussionRecord) (string, bool) {
	var valid []string
	for _, p := range alive {
		if p != voter {
			valid = append(valid, p.Name)
		}
	}
	roleInfo, coordinated := g.voteRoleInfo(voter)
	var claims []string
	for _, p := range g.Players {
		if claim, ok := g.ClaimedRoles[p.Name]; ok {
			claims = append(claims, fmt.Sprintf("%s: %s", p.Name, claim))
		}
	}
	prompt := fmt.Sprintf(
		"In the fictional Werewolf game, %s\n"+
			"Game summary: %s\n"+
			"Game stage: %s game (Round %d)\n"+
			"Alive players (excluding yourself): %s\n"+
			"Key accusations and defenses from discussions:\n%s\n"+
			"Your knowledge: %s\n"+
			"Voting history: %s\n"+
			"Role claims in the game: %s\n"+
			"Voting strategy: %s\n"+
			"Based on all information, vote for one player to eliminate, "+
			"or respond with 'Pass' if you truly cannot decide. Respond with only the player's name or 'Pass'.",
		roleInfo, g.summarizedHistory(), g.gameStage(), g.Round,
		strings.Join(valid, ", "), g.keyAccusations(day), formatKnowledge(voter),
		g.formatVotingHistory(), strings.Join(claims, ", "),
		roleBehaviors[voter.Role].voteStrategy(g, voter))
	return prompt, coordinated
}

func voteReasonPrompt(vote string) string {
	return fmt.Sprintf(
		"You just voted for %s in the Werewolf game. "+
			"In 1-2 sentences, explain your strategic reasoning for this vote. "+
			"Be specific about why this target advances your win condition.", vote)
}
