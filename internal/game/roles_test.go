package game

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"Werewolf", RoleWerewolf, false},
		{"Villager", RoleVillager, false},
		{"Seer", RoleSeer, false},
		{"Medic", RoleMedic, false},
		{"Moderator", RoleModerator, false},
		{"werewolf", "", true},
		{"Jester", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRole) {
					t.Fatalf("expected ErrUnknownRole, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRolePlayable(t *testing.T) {
	playable := []Role{RoleWerewolf, RoleVillager, RoleSeer, RoleMedic}
	for _, role := range playable {
		if !role.Playable() {
			t.Errorf("%s should be playable", role)
		}
	}
	if RoleModerator.Playable() {
		t.Error("the moderator never takes part in the game")
	}
}

func TestRoleBehaviorsCoverPlayableRoles(t *testing.T) {
	for _, role := range []Role{RoleWerewolf, RoleVillager, RoleSeer, RoleMedic} {
		if _, ok := roleBehaviors[role]; !ok {
			t.Errorf("no behavior registered for %s", role)
		}
	}
}
