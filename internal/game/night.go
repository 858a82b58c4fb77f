package game

import (
	"context"
	"fmt"
)

// Token budgets for the two query shapes: full answers and the short
// vote-reason follow-up.
const (
	answerMaxTokens = 100
	reasonMaxTokens = 75
)

// nightPhase runs one night: the werewolves pick a victim, the Seer
// investigates, the Medic protects. The kill resolves last so the
// protection can cancel it.
func (g *Game) nightPhase(ctx context.Context) {
	g.Round++
	g.Metrics.RoundsPlayed = g.Round
	g.sink.RecordEvent("night_start", map[string]any{"round": g.Round})
	g.updateActivity()

	victim := g.werewolfAction(ctx)
	g.seerAction(ctx)
	protected := g.medicAction(ctx)

	switch {
	case victim != nil && protected != nil && victim.Name == protected.Name:
		g.sink.RecordEvent("night_result", map[string]any{"victim": victim.Name, "saved": true})
		g.appendHistory(fmt.Sprintf("Night %d: No one was killed (Medic saved someone)", g.Round))
		g.Metrics.MedicProtections++
	case victim != nil:
		victim.Alive = false
		g.sink.RecordEvent("night_result", map[string]any{"victim": victim.Name, "saved": false})
		g.appendHistory(fmt.Sprintf("Night %d: %s was killed", g.Round, victim.Name))
	default:
		g.appendHistory(fmt.Sprintf("Night %d: No one was killed", g.Round))
	}
	g.logRoundSummary()
}

// werewolfAction asks the werewolf team for a victim. An answer naming
// a werewolf or nobody alive falls back to the highest priority
// candidate, then to a random villager.
func (g *Game) werewolfAction(ctx context.Context) *Player {
	wolves := g.Werewolves()
	if len(wolves) == 0 {
		return nil
	}
	alive := g.AlivePlayers()
	candidates := roleBehaviors[RoleWerewolf].targets(g, wolves[0])
	prompt := g.werewolfPrompt(wolves, alive, candidates)

	victim := findPlayer(alive, g.ask(ctx, prompt, answerMaxTokens))
	if victim == nil || victim.Role == RoleWerewolf {
		victim = nil
		for _, c := range candidates {
			if p := findPlayer(alive, c.Name); p != nil && p.Role != RoleWerewolf {
				victim = p
				break
			}
		}
	}
	if victim == nil {
		var village []*Player
		for _, p := range alive {
			if p.Role != RoleWerewolf {
				village = append(village, p)
			}
		}
		if len(village) == 0 {
			return nil
		}
		victim = village[g.rng.Intn(len(village))]
	}
	g.sink.RecordEvent("werewolf_choice", map[string]any{"victim": victim.Name, "reasoning": prompt})
	return victim
}

// seerAction lets the Seer investigate one player and records the
// result as a hard fact in their beliefs.
func (g *Game) seerAction(ctx context.Context) {
	seer := g.findAliveRole(RoleSeer)
	if seer == nil {
		return
	}
	var valid, uninvestigated []*Player
	for _, p := range g.AlivePlayers() {
		if p == seer {
			continue
		}
		valid = append(valid, p)
		if !seer.Beliefs.HasFact(p.Name) {
			uninvestigated = append(uninvestigated, p)
		}
	}
	if len(valid) == 0 {
		g.sink.RecordEvent("seer_investigation", map[string]any{"seer": seer.Name, "error": "No valid targets"})
		return
	}
	suspicious := g.behaviorSuspicion(seer, valid)
	prompt := g.seerPrompt(seer, valid, uninvestigated, suspicious)

	target := findPlayer(valid, g.ask(ctx, prompt, answerMaxTokens))
	if target == nil {
		switch {
		case len(uninvestigated) > 0:
			target = uninvestigated[0]
		case len(suspicious) > 0:
			target = findPlayer(valid, suspicious[0].Name)
		default:
			target = valid[g.rng.Intn(len(valid))]
		}
	}
	isWerewolf := target.Role == RoleWerewolf
	result := "Not a Werewolf"
	if isWerewolf {
		result = "Werewolf"
	}
	seer.Beliefs.SetFact(target.Name, isWerewolf)
	g.Metrics.TotalSeerInvestigations++
	g.sink.RecordEvent("seer_investigation", map[string]any{
		"seer": seer.Name, "target": target.Name, "result": result, "reasoning": prompt,
	})
}

// medicAction lets the Medic shield one player for the night. The
// previous round's choice is off the table.
func (g *Game) medicAction(ctx context.Context) *Player {
	medic := g.findAliveRole(RoleMedic)
	if medic == nil {
		return nil
	}
	candidates := roleBehaviors[RoleMedic].targets(g, medic)
	var valid []*Player
	for _, p := range g.AlivePlayers() {
		if p.Name != medic.LastProtected {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	prompt := g.medicPrompt(medic, valid, candidates)

	protected := findPlayer(valid, g.ask(ctx, prompt, answerMaxTokens))
	if protected == nil {
		for _, c := range candidates {
			if c.Priority < 0.8 {
				continue
			}
			if p := findPlayer(valid, c.Name); p != nil {
				protected = p
				break
			}
		}
	}
	if protected == nil {
		protected = valid[g.rng.Intn(len(valid))]
	}
	medic.LastProtected = protected.Name
	g.sink.RecordEvent("medic_protection", map[string]any{
		"medic": medic.Name, "protected": protected.Name, "reasoning": prompt,
	})
	return protected
}
