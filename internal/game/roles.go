package game

import "fmt"

// Role represents a player's role
type Role string

const (
	RoleWerewolf  Role = "Werewolf"
	RoleVillager  Role = "Villager"
	RoleSeer      Role = "Seer"
	RoleMedic     Role = "Medic"
	RoleModerator Role = "Moderator"
)

// ParseRole converts a roster string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleWerewolf, RoleVillager, RoleSeer, RoleMedic, RoleModerator:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
	}
}

// Playable reports whether the role takes part in the game itself.
// Moderators appear in rosters but never play.
func (r Role) Playable() bool {
	switch r {
	case RoleWerewolf, RoleVillager, RoleSeer, RoleMedic:
		return true
	default:
		return false
	}
}

// roleBehavior groups the per-role hooks the phases dispatch on: night
// target selection, discussion strategy lines, and vote strategy text.
type roleBehavior struct {
	targets      func(g *Game, self *Player) []targetCandidate
	strategy     func(g *Game, p *Player) []string
	voteStrategy func(g *Game, p *Player) string
}

var roleBehaviors = map[Role]roleBehavior{
	RoleWerewolf: {targets: werewolfTargets, strategy: werewolfStrategy, voteStrategy: werewolfVoteStrategy},
	RoleSeer:     {strategy: seerStrategy, voteStrategy: seerVoteStrategy},
	RoleMedic:    {targets: medicTargets, strategy: medicStrategy, voteStrategy: medicVoteStrategy},
	RoleVillager: {strategy: villagerStrategy, voteStrategy: villagerVoteStrategy},
}
