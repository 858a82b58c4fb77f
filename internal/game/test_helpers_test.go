package game

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// standardRoster is the seven player setup used across tests: two
// werewolves, a Seer, a Medic and three villagers, plus the moderator.
func standardRoster() []RosterEntry {
	return []RosterEntry{
		{Name: "Alice", Role: RoleWerewolf},
		{Name: "Bob", Role: RoleWerewolf},
		{Name: "Carol", Role: RoleSeer},
		{Name: "Dave", Role: RoleMedic},
		{Name: "Eve", Role: RoleVillager},
		{Name: "Frank", Role: RoleVillager},
		{Name: "Grace", Role: RoleVillager},
		{Name: "Mod", Role: RoleModerator},
	}
}

// scriptRule answers prompts containing a marker with a fixed reply.
type scriptRule struct {
	contains string
	reply    string
}

// scriptOracle replies per the first matching rule, or with fallback.
type scriptOracle struct {
	rules    []scriptRule
	fallback string
}

func (o *scriptOracle) Generate(_ context.Context, prompt string, _ int) (string, error) {
	for _, r := range o.rules {
		if strings.Contains(prompt, r.contains) {
			return r.reply, nil
		}
	}
	return o.fallback, nil
}

// queueOracle pops queued replies for prompts containing match and
// answers everything else with other. An exhausted queue repeats its
// final entry.
type queueOracle struct {
	match string
	queue []string
	other string
}

func (o *queueOracle) Generate(_ context.Context, prompt string, _ int) (string, error) {
	if !strings.Contains(prompt, o.match) {
		return o.other, nil
	}
	if len(o.queue) == 0 {
		return o.other, nil
	}
	reply := o.queue[0]
	if len(o.queue) > 1 {
		o.queue = o.queue[1:]
	}
	return reply, nil
}

// firstListedOracle answers every prompt with the first name on the
// prompt's alive players line, which is always a valid vote target and
// usually a valid night target.
type firstListedOracle struct{}

func (firstListedOracle) Generate(_ context.Context, prompt string, _ int) (string, error) {
	for _, line := range strings.Split(prompt, "\n") {
		if !strings.Contains(line, "Alive players") {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		name, _, _ := strings.Cut(line[colon+1:], ",")
		name = strings.TrimSuffix(strings.TrimSpace(name), ".")
		if name != "" {
			return name, nil
		}
	}
	return "Pass", nil
}

// failingOracle errors on every call.
type failingOracle struct{}

func (failingOracle) Generate(context.Context, string, int) (string, error) {
	return "", errors.New("oracle unavailable")
}

type recordedEvent struct {
	kind    string
	payload any
}

// recordingSink captures everything for assertions.
type recordingSink struct {
	mu      sync.Mutex
	events  []recordedEvent
	votes   map[int]map[string]string
	reports []Report
}

func newRecordingSink() *recordingSink {
	return &recordingSink{votes: make(map[int]map[string]string)}
}

func (s *recordingSink) RecordEvent(kind string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{kind: kind, payload: payload})
}

func (s *recordingSink) RecordVote(round int, votes map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[round] = votes
}

func (s *recordingSink) RecordMetrics(report Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
}

func (s *recordingSink) count(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.kind == kind {
			n++
		}
	}
	return n
}

func (s *recordingSink) last(kind string) (recordedEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].kind == kind {
			return s.events[i], true
		}
	}
	return recordedEvent{}, false
}
