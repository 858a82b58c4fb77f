package sink

import (
	"encoding/json"
	"errors"
	"testing"

	"wolfarena/internal/game"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(":memory:", nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestDBSinkRoundTrip(t *testing.T) {
	db := testDB(t)

	s, err := db.GameSink("g1")
	if err != nil {
		t.Fatalf("GameSink failed: %v", err)
	}

	s.RecordEvent("game_start", map[string]any{"players": []string{"Alice", "Bob"}})
	s.RecordEvent("night_start", map[string]any{"round": 1})
	s.RecordVote(1, map[string]string{"Alice": "Bob", "Bob": "Pass"})
	s.RecordMetrics(game.Report{GameID: "g1", Winner: "Werewolves win!", RoundsPlayed: 3})

	events, err := db.GetEvents("g1", 10, 0)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Seq != 1 || events[0].Kind != "game_start" {
		t.Errorf("first event mismatch: %+v", events[0])
	}
	if events[1].Seq != 2 || events[1].Kind != "night_start" {
		t.Errorf("second event mismatch: %+v", events[1])
	}

	var payload struct {
		Round int `json:"round"`
	}
	raw, ok := events[1].Payload.(json.RawMessage)
	if !ok {
		t.Fatalf("expected raw JSON payload, got %T", events[1].Payload)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Round != 1 {
		t.Errorf("payload round: expected 1, got %d", payload.Round)
	}

	votes, err := db.GetVotes("g1")
	if err != nil {
		t.Fatalf("GetVotes failed: %v", err)
	}
	if len(votes) != 1 || votes[0].Round != 1 {
		t.Fatalf("expected 1 vote round, got %+v", votes)
	}
	if votes[0].Votes["Alice"] != "Bob" || votes[0].Votes["Bob"] != "Pass" {
		t.Errorf("vote round mismatch: %+v", votes[0].Votes)
	}

	report, err := db.GetReport("g1")
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if report.Winner != "Werewolves win!" || report.RoundsPlayed != 3 {
		t.Errorf("report mismatch: %+v", report)
	}
}

func TestGetEventsPagination(t *testing.T) {
	db := testDB(t)

	s, err := db.GameSink("g1")
	if err != nil {
		t.Fatalf("GameSink failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		s.RecordEvent("night_start", map[string]any{"round": i + 1})
	}

	page, err := db.GetEvents("g1", 2, 2)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 events, got %d", len(page))
	}
	if page[0].Seq != 3 || page[1].Seq != 4 {
		t.Errorf("expected seq 3 and 4, got %d and %d", page[0].Seq, page[1].Seq)
	}
}

func TestGetGameNotFound(t *testing.T) {
	db := testDB(t)

	if _, err := db.GetGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := db.GetReport("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestListGames(t *testing.T) {
	db := testDB(t)

	for _, id := range []string{"g1", "g2"} {
		if _, err := db.GameSink(id); err != nil {
			t.Fatalf("GameSink failed: %v", err)
		}
	}
	s, err := db.GameSink("g1")
	if err != nil {
		t.Fatalf("GameSink failed: %v", err)
	}
	s.RecordMetrics(game.Report{GameID: "g1", Winner: "Villagers win!", RoundsPlayed: 5})

	games, err := db.ListGames(10, 0)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	byID := make(map[string]GameRow, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	if byID["g1"].Winner != "Villagers win!" || byID["g1"].RoundsPlayed != 5 {
		t.Errorf("finished game mismatch: %+v", byID["g1"])
	}
	if byID["g2"].Winner != "" {
		t.Errorf("unfinished game should have empty winner: %+v", byID["g2"])
	}
}

func TestGameSinkIsIdempotentPerGame(t *testing.T) {
	db := testDB(t)

	if _, err := db.GameSink("g1"); err != nil {
		t.Fatalf("first GameSink failed: %v", err)
	}
	if _, err := db.GameSink("g1"); err != nil {
		t.Fatalf("second GameSink failed: %v", err)
	}

	games, err := db.ListGames(10, 0)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game row, got %d", len(games))
	}
}
