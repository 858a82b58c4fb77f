package game

import "strings"

// Statement is one utterance a player made during a day discussion.
type Statement struct {
	Round           int    `json:"round"`
	DiscussionRound int    `json:"discussion_round"`
	Text            string `json:"text"`
}

// RoleClaim records a self-declared role detected in a statement. Claims
// are what the player said, not what the player is.
type RoleClaim struct {
	Role            Role `json:"role"`
	Round           int  `json:"round"`
	DiscussionRound int  `json:"discussion_round"`
}

// Player represents a player in the game
type Player struct {
	Name          string
	Role          Role
	Alive         bool
	LastProtected string // Medic only: target shielded the previous night
	Statements    []Statement
	VotesCast     []string
	VotedBy       []string
	RoleClaims    []RoleClaim
	SuspicionLog  []SuspicionChange
	Activity      float64
	Beliefs       BeliefMap
}

// NewPlayer creates a new alive player with an empty belief map
func NewPlayer(name string, role Role) *Player {
	return &Player{
		Name:    name,
		Role:    role,
		Alive:   true,
		Beliefs: make(BeliefMap),
	}
}

// Said reports whether any of the player's statements contains the
// literal phrase. Matching is case-sensitive, like all statement scans.
func (p *Player) Said(phrase string) bool {
	for _, s := range p.Statements {
		if strings.Contains(s.Text, phrase) {
			return true
		}
	}
	return false
}

// Suspects reports whether the player voiced suspicion of name in any
// statement, per the literal "suspect" keyword heuristic.
func (p *Player) Suspects(name string) bool {
	for _, s := range p.Statements {
		if strings.Contains(s.Text, name) && strings.Contains(s.Text, "suspect") {
			return true
		}
	}
	return false
}

// raisedSuspicionIn reports whether the player raised their suspicion
// score toward target during the given round's discussion.
func (p *Player) raisedSuspicionIn(round int, target string) bool {
	for _, ev := range p.SuspicionLog {
		if ev.Round == round && ev.Target == target && ev.New > ev.Old {
			return true
		}
	}
	return false
}
