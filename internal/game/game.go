package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GameState represents where a game is in its lifecycle
type GameState string

const (
	StateNight GameState = "night"
	StateDay   GameState = "day"
	StateEnded GameState = "ended"
)

// Winner is the terminal outcome of a game.
type Winner string

const (
	WinnerNone       Winner = ""
	WinnerVillagers  Winner = "Villagers win!"
	WinnerWerewolves Winner = "Werewolves win!"
)

// RosterEntry pairs a player name with their configured role.
type RosterEntry struct {
	Name string `yaml:"name" json:"name"`
	Role Role   `yaml:"role" json:"role"`
}

// StatementRecord is one spoken statement inside a discussion round.
type StatementRecord struct {
	Speaker   string `json:"player"`
	Statement string `json:"statement"`
}

// DiscussionRecord is the retained record of one discussion round. The
// engine keeps every record for the whole game; prompt builders and the
// activity analysis read them back.
type DiscussionRecord struct {
	Round      int               `json:"round"`
	Index      int               `json:"discussion_round"`
	Statements []StatementRecord `json:"statements"`
}

// VoteRecord is the outcome of one day's vote. Votes map voter name to
// target name or "Pass"; Reasons carry the stated rationale verbatim.
type VoteRecord struct {
	Round   int               `json:"round"`
	Votes   map[string]string `json:"votes"`
	Reasons map[string]string `json:"reasons"`
}

// Options configures a single game at construction time.
type Options struct {
	// DiscussionRounds is the number of discussion rounds per day phase.
	// It must be positive.
	DiscussionRounds int

	// RandomizeRoles permutes the roster's roles across its names.
	RandomizeRoles bool

	// Seed seeds the game's random source. Zero means a time-based seed.
	// Rand, when set, overrides Seed entirely.
	Seed int64
	Rand *rand.Rand

	// Oracle supplies all agent decisions. A nil oracle behaves like one
	// that fails every call, which the fallback policies absorb.
	Oracle Oracle

	// OracleTimeout bounds each oracle call. Zero means 30 seconds.
	OracleTimeout time.Duration

	// Sink receives events, votes and the final report. Nil discards.
	Sink Sink

	// Logger, when nil, falls back to the standard logger.
	Logger *log.Logger

	// ID overrides the generated game ID.
	ID string
}

// Game owns the authoritative player set and drives the phase loop. A
// game is single-goroutine; run many games in parallel rather than one
// game on many goroutines.
type Game struct {
	ID            string
	State         GameState
	Players       []*Player
	Moderator     string
	Round         int
	History       []string
	Discussions   []DiscussionRecord
	VotingHistory []VoteRecord
	ClaimedRoles  map[string]string
	Metrics       Metrics

	discussionRounds int
	oracle           Oracle
	sink             Sink
	rng              *rand.Rand
	log              *log.Logger
	oracleTimeout    time.Duration
}

// NewGame builds a game from a roster. The roster must contain exactly
// one Moderator entry, which is excluded from play, and at least one
// Werewolf and one non-Werewolf among the rest.
func NewGame(roster []RosterEntry, opts Options) (*Game, error) {
	if opts.DiscussionRounds <= 0 {
		return nil, fmt.Errorf("%w: discussion rounds must be positive, got %d", ErrInvalidConfiguration, opts.DiscussionRounds)
	}

	playable := make([]RosterEntry, 0, len(roster))
	moderator := ""
	moderators := 0
	seen := make(map[string]bool, len(roster))
	for _, entry := range roster {
		if seen[entry.Name] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfiguration, entry.Name)
		}
		seen[entry.Name] = true
		if entry.Role == RoleModerator {
			moderator = entry.Name
			moderators++
			continue
		}
		if !entry.Role.Playable() {
			return nil, fmt.Errorf("%w: %v %q for player %q", ErrInvalidConfiguration, ErrUnknownRole, entry.Role, entry.Name)
		}
		playable = append(playable, entry)
	}
	if len(playable) == 0 {
		return nil, fmt.Errorf("%w: roster has no playable players", ErrInvalidConfiguration)
	}
	if moderators != 1 {
		return nil, fmt.Errorf("%w: roster needs exactly one moderator, found %d", ErrInvalidConfiguration, moderators)
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	roles := make([]Role, len(playable))
	for i, entry := range playable {
		roles[i] = entry.Role
	}
	if opts.RandomizeRoles {
		rng.Shuffle(len(roles), func(i, j int) {
			roles[i], roles[j] = roles[j], roles[i]
		})
	}

	players := make([]*Player, len(playable))
	werewolves := 0
	for i, entry := range playable {
		players[i] = NewPlayer(entry.Name, roles[i])
		if roles[i] == RoleWerewolf {
			werewolves++
		}
	}
	if werewolves == 0 {
		return nil, fmt.Errorf("%w: roster needs at least one werewolf", ErrInvalidConfiguration)
	}
	if werewolves == len(players) {
		return nil, fmt.Errorf("%w: roster needs at least one non-werewolf", ErrInvalidConfiguration)
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	sink := opts.Sink
	if sink == nil {
		sink = NopSink{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := opts.OracleTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	g := &Game{
		ID:               id,
		State:            StateNight,
		Players:          players,
		Moderator:        moderator,
		ClaimedRoles:     make(map[string]string),
		discussionRounds: opts.DiscussionRounds,
		oracle:           opts.Oracle,
		sink:             sink,
		rng:              rng,
		log:              logger,
		oracleTimeout:    timeout,
	}
	if opts.RandomizeRoles {
		assigned := make(map[string]string, len(players))
		for _, p := range players {
			assigned[p.Name] = string(p.Role)
		}
		g.sink.RecordEvent("randomized_roles", assigned)
	}
	return g, nil
}

// AlivePlayers returns the alive players in seating order.
func (g *Game) AlivePlayers() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Alive {
			players = append(players, p)
		}
	}
	return players
}

// Werewolves returns the alive werewolves in seating order.
func (g *Game) Werewolves() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Alive && p.Role == RoleWerewolf {
			players = append(players, p)
		}
	}
	return players
}

// Villagers returns the alive non-werewolves in seating order.
func (g *Game) Villagers() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Alive && p.Role != RoleWerewolf {
			players = append(players, p)
		}
	}
	return players
}

// CheckWinCondition evaluates the terminal predicate over the alive
// factions. Villagers win on zero werewolves; werewolves win when they
// match or outnumber everyone else; otherwise the game continues.
func (g *Game) CheckWinCondition() Winner {
	werewolves := len(g.Werewolves())
	villagers := len(g.Villagers())
	if werewolves == 0 {
		return WinnerVillagers
	}
	if werewolves >= villagers {
		return WinnerWerewolves
	}
	return WinnerNone
}

// Run drives the game to completion and returns the final metrics
// report. The loop has no round cap: each pass through the phases can
// only shrink the factions toward one of the two terminal predicates.
func (g *Game) Run(ctx context.Context) (*Report, error) {
	if g.State == StateEnded {
		return nil, ErrGameFinished
	}
	roster := make([]RosterEntry, len(g.Players))
	for i, p := range g.Players {
		roster[i] = RosterEntry{Name: p.Name, Role: p.Role}
	}
	g.sink.RecordEvent("game_start", map[string]any{"players": roster})

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.State = StateNight
		g.nightPhase(ctx)
		if winner := g.CheckWinCondition(); winner != WinnerNone {
			return g.finish(winner), nil
		}
		g.State = StateDay
		g.dayPhase(ctx)
		if winner := g.CheckWinCondition(); winner != WinnerNone {
			return g.finish(winner), nil
		}
	}
}

func (g *Game) finish(winner Winner) *Report {
	g.State = StateEnded
	g.Metrics.Winner = winner
	g.sink.RecordEvent("game_end", map[string]any{"result": string(winner)})
	report := g.Metrics.Report(g.ID)
	g.sink.RecordMetrics(*report)
	g.log.Printf("game %s: %s after %d rounds", g.ID, winner, g.Round)
	return report
}

func (g *Game) appendHistory(entry string) {
	g.History = append(g.History, entry)
}

// findAliveRole returns the first alive player with the role, or nil.
func (g *Game) findAliveRole(role Role) *Player {
	for _, p := range g.Players {
		if p.Alive && p.Role == role {
			return p
		}
	}
	return nil
}

// findPlayer returns the player in players whose name equals name.
func findPlayer(players []*Player, name string) *Player {
	for _, p := range players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (g *Game) logRoundSummary() {
	werewolves := g.Werewolves()
	villagers := g.Villagers()
	g.log.Printf("game %s round %d: %d werewolves, %d villagers alive",
		g.ID, g.Round, len(werewolves), len(villagers))
}
