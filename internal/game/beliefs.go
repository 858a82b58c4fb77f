package game

import "sort"

// Belief is one player's judgement about another player. Exactly one
// variant is active: a Seer investigation fact, which is final, or a
// heuristic suspicion score that moves with the discussion.
type Belief struct {
	IsFact     bool
	IsWerewolf bool    // fact variant
	Score      float64 // score variant, kept within [0, 1]
}

// BeliefMap keys beliefs by target player name. A player never holds a
// belief about themself, so the owner's name never appears as a key.
type BeliefMap map[string]Belief

// SuspicionChange records one adjustment of a speaker's suspicion score.
// It is an audit trail; the belief map stays authoritative.
type SuspicionChange struct {
	Round           int     `json:"round"`
	DiscussionRound int     `json:"discussion_round"`
	Target          string  `json:"target"`
	Old             float64 `json:"old_suspicion"`
	New             float64 `json:"new_suspicion"`
}

// SetFact records an investigation result for target. Facts are ground
// truth: an existing fact is never replaced, a score entry is superseded.
func (b BeliefMap) SetFact(target string, isWerewolf bool) {
	if cur, ok := b[target]; ok && cur.IsFact {
		return
	}
	b[target] = Belief{IsFact: true, IsWerewolf: isWerewolf}
}

// HasFact reports whether an investigation fact is held for target.
func (b BeliefMap) HasFact(target string) bool {
	cur, ok := b[target]
	return ok && cur.IsFact
}

// KnownWerewolf reports whether a Werewolf fact is held for target.
func (b BeliefMap) KnownWerewolf(target string) bool {
	cur, ok := b[target]
	return ok && cur.IsFact && cur.IsWerewolf
}

// KnownWerewolves lists the targets confirmed as Werewolves, sorted by
// name so callers see a stable order.
func (b BeliefMap) KnownWerewolves() []string {
	var names []string
	for target, belief := range b {
		if belief.IsFact && belief.IsWerewolf {
			names = append(names, target)
		}
	}
	sort.Strings(names)
	return names
}

// ScoreOf returns the suspicion score held for target. Targets with no
// entry, and targets covered by a fact, score zero.
func (b BeliefMap) ScoreOf(target string) float64 {
	cur, ok := b[target]
	if !ok || cur.IsFact {
		return 0
	}
	return cur.Score
}

// SetScore stores a clamped suspicion score for target, replacing any
// prior score. An absent entry counts as a zero score. Fact entries are
// final and are left untouched. It reports whether the stored value
// changed.
func (b BeliefMap) SetScore(target string, score float64) bool {
	cur, ok := b[target]
	if ok && cur.IsFact {
		return false
	}
	score = clampScore(score)
	prev := 0.0
	if ok {
		prev = cur.Score
	}
	if prev == score {
		return false
	}
	b[target] = Belief{Score: score}
	return true
}

// sortedTargets returns all belief keys in name order.
func (b BeliefMap) sortedTargets() []string {
	names := make([]string, 0, len(b))
	for target := range b {
		names = append(names, target)
	}
	sort.Strings(names)
	return names
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
