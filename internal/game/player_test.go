package game

import "testing"

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("Alice", RoleWerewolf)

	if p.Name != "Alice" {
		t.Errorf("Name = %v, want Alice", p.Name)
	}
	if p.Role != RoleWerewolf {
		t.Errorf("Role = %v, want %v", p.Role, RoleWerewolf)
	}
	if !p.Alive {
		t.Error("new player starts dead")
	}
	if p.Beliefs == nil {
		t.Error("belief map not initialized")
	}
	if len(p.Statements) != 0 || len(p.VotesCast) != 0 || len(p.RoleClaims) != 0 {
		t.Error("new player carries history")
	}
}

func TestPlayer_Said(t *testing.T) {
	p := NewPlayer("Carol", RoleSeer)
	p.Statements = []Statement{
		{Round: 1, DiscussionRound: 1, Text: "Good morning everyone"},
		{Round: 1, DiscussionRound: 2, Text: "Fine: I am the Seer and Alice is a Werewolf"},
	}

	if !p.Said("I am the Seer") {
		t.Error("Said missed an exact phrase")
	}
	if p.Said("I am the Medic") {
		t.Error("Said matched a phrase never spoken")
	}
	if p.Said("i am the seer") {
		t.Error("Said ignored case")
	}
}

func TestPlayer_Suspects(t *testing.T) {
	p := NewPlayer("Eve", RoleVillager)
	p.Statements = []Statement{
		{Round: 1, DiscussionRound: 1, Text: "I suspect Frank is lying"},
		{Round: 1, DiscussionRound: 2, Text: "Grace seems trustworthy"},
	}

	if !p.Suspects("Frank") {
		t.Error("Suspects missed a direct accusation")
	}
	if p.Suspects("Grace") {
		t.Error("Suspects matched a mention without the keyword")
	}
	if p.Suspects("Dave") {
		t.Error("Suspects matched a player never mentioned")
	}
}

func TestPlayer_RaisedSuspicionIn(t *testing.T) {
	p := NewPlayer("Eve", RoleVillager)
	p.SuspicionLog = []SuspicionChange{
		{Round: 1, DiscussionRound: 1, Target: "Alice", Old: 0, New: 0.25},
		{Round: 1, DiscussionRound: 2, Target: "Bob", Old: 0.5, New: 0.3},
		{Round: 2, DiscussionRound: 1, Target: "Carol", Old: 0, New: 0.25},
	}

	if !p.raisedSuspicionIn(1, "Alice") {
		t.Error("missed a same-round increase")
	}
	if p.raisedSuspicionIn(1, "Bob") {
		t.Error("a decrease counted as raised suspicion")
	}
	if p.raisedSuspicionIn(1, "Carol") {
		t.Error("an increase from another round counted")
	}
}
