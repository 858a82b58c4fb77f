package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"wolfarena/internal/game"
)

func readEntries(t *testing.T, path string) []entry {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return entries
}

func TestFilesLayout(t *testing.T) {
	base := t.TempDir()
	f, err := NewFiles(base, "20250101_120000", nil)
	if err != nil {
		t.Fatalf("NewFiles failed: %v", err)
	}

	want := filepath.Join(base, "game_logs_20250101_120000")
	if f.Dir() != want {
		t.Fatalf("expected dir %s, got %s", want, f.Dir())
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("log directory not created: %v", err)
	}
}

func TestFilesRoutesEventKinds(t *testing.T) {
	f, err := NewFiles(t.TempDir(), "g1", nil)
	if err != nil {
		t.Fatalf("NewFiles failed: %v", err)
	}

	f.RecordEvent("game_start", map[string]any{"players": []string{"Alice"}})
	f.RecordEvent("night_start", map[string]any{"round": 1})
	f.RecordEvent("discussion", map[string]any{"discussions": []string{}})
	f.RecordEvent("discussion_prompts", map[string]any{"prompts": []string{}})

	events := readEntries(t, filepath.Join(f.Dir(), "game_events.json"))
	if len(events) != 2 {
		t.Fatalf("expected 2 general events, got %d", len(events))
	}
	if events[0].EventType != "game_start" || events[1].EventType != "night_start" {
		t.Errorf("wrong event routing: %+v", events)
	}
	if events[0].Timestamp == "" {
		t.Error("expected timestamp on entries")
	}

	discussions := readEntries(t, filepath.Join(f.Dir(), "discussions.json"))
	if len(discussions) != 1 || discussions[0].EventType != "discussion" {
		t.Errorf("discussions.json mismatch: %+v", discussions)
	}

	prompts := readEntries(t, filepath.Join(f.Dir(), "prompts.json"))
	if len(prompts) != 1 || prompts[0].EventType != "discussion_prompts" {
		t.Errorf("prompts.json mismatch: %+v", prompts)
	}
}

func TestFilesAccumulatesAcrossWrites(t *testing.T) {
	f, err := NewFiles(t.TempDir(), "g1", nil)
	if err != nil {
		t.Fatalf("NewFiles failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		f.RecordEvent("night_start", map[string]any{"round": i + 1})
	}

	events := readEntries(t, filepath.Join(f.Dir(), "game_events.json"))
	if len(events) != 3 {
		t.Fatalf("expected rewritten file with 3 entries, got %d", len(events))
	}
}

func TestFilesVotingHistory(t *testing.T) {
	f, err := NewFiles(t.TempDir(), "g1", nil)
	if err != nil {
		t.Fatalf("NewFiles failed: %v", err)
	}

	f.RecordVote(1, map[string]string{"Alice": "Bob", "Bob": "Pass"})
	f.RecordVote(2, map[string]string{"Alice": "Carol"})

	data, err := os.ReadFile(filepath.Join(f.Dir(), "voting_history.json"))
	if err != nil {
		t.Fatalf("read voting history: %v", err)
	}
	var rounds []voteEntry
	if err := json.Unmarshal(data, &rounds); err != nil {
		t.Fatalf("decode voting history: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 vote rounds, got %d", len(rounds))
	}
	if rounds[0].Round != 1 || rounds[0].Votes["Alice"] != "Bob" {
		t.Errorf("round 1 mismatch: %+v", rounds[0])
	}
	if rounds[1].Round != 2 || rounds[1].Votes["Alice"] != "Carol" {
		t.Errorf("round 2 mismatch: %+v", rounds[1])
	}
}

func TestFilesMetrics(t *testing.T) {
	f, err := NewFiles(t.TempDir(), "g1", nil)
	if err != nil {
		t.Fatalf("NewFiles failed: %v", err)
	}

	f.RecordMetrics(game.Report{GameID: "g1", Winner: "Villagers win!", RoundsPlayed: 4})

	data, err := os.ReadFile(filepath.Join(f.Dir(), "metrics.json"))
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	var report game.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if report.GameID != "g1" || report.Winner != "Villagers win!" || report.RoundsPlayed != 4 {
		t.Errorf("report mismatch: %+v", report)
	}
}
