package sink

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"wolfarena/internal/game"
)

// entry is the wire shape of one logged record.
type entry struct {
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	Data      any    `json:"data"`
}

type voteEntry struct {
	Timestamp string            `json:"timestamp"`
	Round     int               `json:"round"`
	Votes     map[string]string `json:"votes"`
}

// Files writes a game's records as indented JSON under a per-game
// directory:
//
//	game_logs_<id>/game_events.json
//	game_logs_<id>/discussions.json
//	game_logs_<id>/prompts.json
//	game_logs_<id>/voting_history.json
//	game_logs_<id>/metrics.json
//
// Each record rewrites its whole file so the logs stay readable even if
// the process dies mid-game. Write failures are logged and swallowed;
// the game must not fail because its log did.
type Files struct {
	dir string
	log *log.Logger

	events      []entry
	discussions []entry
	prompts     []entry
	votes       []voteEntry
}

// NewFiles creates the per-game log directory under baseDir.
func NewFiles(baseDir, gameID string, logger *log.Logger) (*Files, error) {
	if logger == nil {
		logger = log.Default()
	}
	dir := filepath.Join(baseDir, "game_logs_"+gameID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: create log directory: %w", err)
	}
	return &Files{dir: dir, log: logger}, nil
}

// Dir returns the per-game log directory.
func (f *Files) Dir() string {
	return f.dir
}

func (f *Files) RecordEvent(kind string, payload any) {
	e := entry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		EventType: kind,
		Data:      payload,
	}
	switch kind {
	case "discussion":
		f.discussions = append(f.discussions, e)
		f.writeJSON("discussions.json", f.discussions)
	case "discussion_prompts":
		f.prompts = append(f.prompts, e)
		f.writeJSON("prompts.json", f.prompts)
	default:
		f.events = append(f.events, e)
		f.writeJSON("game_events.json", f.events)
	}
}

func (f *Files) RecordVote(round int, votes map[string]string) {
	f.votes = append(f.votes, voteEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Round:     round,
		Votes:     votes,
	})
	f.writeJSON("voting_history.json", f.votes)
}

func (f *Files) RecordMetrics(report game.Report) {
	f.writeJSON("metrics.json", report)
}

func (f *Files) writeJSON(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		f.log.Printf("sink: marshal %s: %v", name, err)
		return
	}
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		f.log.Printf("sink: write %s: %v", path, err)
	}
}
