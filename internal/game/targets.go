package game

import (
	"math"
	"sort"
	"strings"
)

// targetCandidate is one entry in a night-action priority list. Higher
// priority wins; ties keep list order so fallbacks stay reproducible.
type targetCandidate struct {
	Name     string
	Priority float64
}

const highActivity = 7.0

// werewolfTargets ranks the alive non-werewolves as kill candidates:
// claimed power roles first, then highly active players, then players
// who voiced suspicion of a werewolf, then anyone at a uniform default.
// The later tiers only fill in when the earlier ones found nothing.
func werewolfTargets(g *Game, _ *Player) []targetCandidate {
	alive := g.AlivePlayers()
	var targets []targetCandidate

	for _, p := range alive {
		if p.Role != RoleWerewolf && (p.Said("I am the Seer") || p.Said("I am the Medic")) {
			targets = append(targets, targetCandidate{p.Name, 1.0})
		}
	}
	for _, p := range alive {
		if p.Role != RoleWerewolf && p.Activity >= highActivity {
			targets = append(targets, targetCandidate{p.Name, 0.8})
		}
	}
	if len(targets) == 0 {
		for _, p := range alive {
			if p.Role == RoleWerewolf {
				continue
			}
			for _, wolf := range g.Werewolves() {
				if p.Suspects(wolf.Name) {
					targets = append(targets, targetCandidate{p.Name, 0.7})
					break
				}
			}
		}
	}
	if len(targets) == 0 {
		for _, p := range alive {
			if p.Role != RoleWerewolf {
				targets = append(targets, targetCandidate{p.Name, 0.5})
			}
		}
	}
	return targets
}

// medicTargets ranks protection candidates: claimed Seers, then vocal
// players, then anyone drawing suspicion from several others, and from
// round three on the medic themself as a fallback self-protect.
func medicTargets(g *Game, medic *Player) []targetCandidate {
	alive := g.AlivePlayers()
	var targets []targetCandidate

	for _, p := range alive {
		if p.Role != RoleWerewolf && p.Said("I am the Seer") {
			targets = append(targets, targetCandidate{p.Name, 1.0})
		}
	}
	for _, p := range alive {
		if p.Role != RoleWerewolf && p.Activity >= highActivity {
			targets = append(targets, targetCandidate{p.Name, 0.8})
		}
	}
	for _, p := range alive {
		if p.Role == RoleWerewolf {
			continue
		}
		suspectedBy := 0
		for _, other := range alive {
			if other != p && other.Suspects(p.Name) {
				suspectedBy++
			}
		}
		if suspectedBy >= 2 {
			targets = append(targets, targetCandidate{p.Name, 0.7})
		}
	}
	if g.Round >= 3 && medic != nil {
		targets = append(targets, targetCandidate{medic.Name, 0.6})
	}
	return targets
}

// updateActivity recomputes every alive player's activity score from
// the retained discussion record.
func (g *Game) updateActivity() {
	for _, p := range g.AlivePlayers() {
		p.Activity = g.activityScore(p)
	}
}

// activityScore rates how vocal a player has been on a 0-10 scale.
// Statements of more than three words count, weighted by their average
// length, and the result is rounded to one decimal.
func (g *Game) activityScore(p *Player) float64 {
	statements := 0
	words := 0
	for _, rec := range g.Discussions {
		for _, s := range rec.Statements {
			if s.Speaker != p.Name {
				continue
			}
			n := len(strings.Fields(s.Statement))
			if n > 3 {
				statements++
				words += n
			}
		}
	}
	if statements == 0 {
		return 0
	}
	avgWords := float64(words) / float64(statements)
	score := float64(statements) * (avgWords / 5)
	if score > 10 {
		score = 10
	}
	return math.Round(score*10) / 10
}

// behaviorSuspicion ranks the seer's uninvestigated candidates by
// observed behavior: defending a player whom someone else suspects, and
// voting against non-werewolves. The list is sorted by score, ties
// keeping candidate order.
func (g *Game) behaviorSuspicion(seer *Player, candidates []*Player) []targetCandidate {
	var ranked []targetCandidate
	for _, p := range candidates {
		if seer.Beliefs.HasFact(p.Name) {
			continue
		}
		score := 0.0
		for _, s := range p.Statements {
			for _, other := range candidates {
				if other == p || !strings.Contains(s.Text, other.Name) || !strings.Contains(strings.ToLower(s.Text), "defend") {
					continue
				}
				if g.suspectedByThirdParty(other.Name, p, other) {
					score += 0.2
				}
			}
		}
		for _, vote := range p.VotesCast {
			if target := findPlayer(g.Players, vote); target != nil && target.Role != RoleWerewolf {
				score += 0.1
			}
		}
		if score > 0 {
			ranked = append(ranked, targetCandidate{p.Name, score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})
	return ranked
}

// suspectedByThirdParty reports whether any alive player other than the
// two given voiced suspicion of name.
func (g *Game) suspectedByThirdParty(name string, a, b *Player) bool {
	for _, p := range g.AlivePlayers() {
		if p == a || p == b {
			continue
		}
		if p.Suspects(name) {
			return true
		}
	}
	return false
}

