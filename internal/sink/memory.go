package sink

import (
	"sync"

	"wolfarena/internal/game"
)

// Event is one recorded event with its game-order sequence number.
type Event struct {
	Seq     int    `json:"seq"`
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// VoteRound is one round's recorded votes.
type VoteRound struct {
	Round int               `json:"round"`
	Votes map[string]string `json:"votes"`
}

// Memory keeps a game's records in memory. The mutex makes reads safe
// while the game is still running on another goroutine.
type Memory struct {
	mu     sync.RWMutex
	events []Event
	votes  []VoteRound
	report *game.Report
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) RecordEvent(kind string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{Seq: len(m.events) + 1, Kind: kind, Payload: payload})
}

func (m *Memory) RecordVote(round int, votes map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[string]string, len(votes))
	for voter, target := range votes {
		copied[voter] = target
	}
	m.votes = append(m.votes, VoteRound{Round: round, Votes: copied})
}

func (m *Memory) RecordMetrics(report game.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.report = &report
}

// Events returns a copy of the recorded events.
func (m *Memory) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Votes returns a copy of the recorded vote rounds.
func (m *Memory) Votes() []VoteRound {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]VoteRound, len(m.votes))
	copy(out, m.votes)
	return out
}

// Report returns the final metrics report, or nil if the game has not
// finished.
func (m *Memory) Report() *game.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.report == nil {
		return nil
	}
	r := *m.report
	return &r
}
