// Package sink provides event-log and metrics destinations for game runs:
// JSON files laid out one directory per game, a SQLite store for the
// simulation service, and an in-memory recorder.
package sink

import "wolfarena/internal/game"

// Fanout broadcasts every record to all wrapped sinks in order.
type Fanout []game.Sink

func (f Fanout) RecordEvent(kind string, payload any) {
	for _, s := range f {
		s.RecordEvent(kind, payload)
	}
}

func (f Fanout) RecordVote(round int, votes map[string]string) {
	for _, s := range f {
		s.RecordVote(round, votes)
	}
}

func (f Fanout) RecordMetrics(report game.Report) {
	for _, s := range f {
		s.RecordMetrics(report)
	}
}
