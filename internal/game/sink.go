package game

// Sink receives the game's structured side-channel output: events,
// per-round votes, and the final metrics report. Calls arrive in game
// order and must never feed back into game logic.
type Sink interface {
	RecordEvent(kind string, payload any)
	RecordVote(round int, votes map[string]string)
	RecordMetrics(report Report)
}

// NopSink discards everything. It stands in when no sink is configured.
type NopSink struct{}

func (NopSink) RecordEvent(string, any)           {}
func (NopSink) RecordVote(int, map[string]string) {}
func (NopSink) RecordMetrics(Report)              {}
