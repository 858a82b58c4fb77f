package api

import (
	"wolfarena/internal/game"
	"wolfarena/internal/sink"
)

// APIError is the structured body every failing endpoint returns.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e APIError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	ErrTypeValidation  = "validation_error"
	ErrTypeNotFound    = "not_found"
	ErrTypeConflict    = "conflict"
	ErrTypeInternal    = "internal_error"
	ErrTypeUnavailable = "service_unavailable"
)

// StartGameRequest asks for one game. Both fields are optional: an empty
// id gets a generated one, a zero seed falls back to the configured seed.
type StartGameRequest struct {
	ID   string `json:"id,omitempty"`
	Seed int64  `json:"seed,omitempty"`
}

// StartGameResponse acknowledges an accepted game.
type StartGameResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// StartBatchRequest asks for a batch of games. A zero seed means every
// run gets fresh per-game seeds.
type StartBatchRequest struct {
	Games int   `json:"games"`
	Seed  int64 `json:"seed,omitempty"`
}

// StartBatchResponse acknowledges an accepted batch.
type StartBatchResponse struct {
	Games  int    `json:"games"`
	Status string `json:"status"`
}

// GamesResponse is a page of stored games, newest first.
type GamesResponse struct {
	Games  []sink.GameRow `json:"games"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// GameDetail is one game with its outcome. Report and Votes stay empty
// while the game is still running.
type GameDetail struct {
	sink.GameRow
	Status string           `json:"status"`
	Report *game.Report     `json:"report,omitempty"`
	Votes  []sink.VoteRound `json:"votes,omitempty"`
}

// Game lifecycle states as reported by the API.
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
)

// EventsResponse is a page of one game's event log in emission order.
type EventsResponse struct {
	GameID string       `json:"game_id"`
	Events []sink.Event `json:"events"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
