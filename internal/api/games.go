package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wolfarena/internal/sink"
)

const (
	defaultPageSize  = 50
	maxPageSize      = 500
	defaultEventPage = 200
	maxEventPage     = 1000
	maxBatchGames    = 1000
)

// handleStartGame accepts a game and runs it in the background. The
// response carries the id to poll; the game row exists in the store
// before the response is written.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid request body: "+err.Error())
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	if _, err := s.db.GetGame(id); err == nil {
		s.writeError(w, http.StatusConflict, ErrTypeConflict, fmt.Sprintf("game %q already exists", id))
		return
	} else if !errors.Is(err, sink.ErrGameNotFound) {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}

	if err := s.db.CreateGame(id); err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.Game.Seed
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.runner.RunSeeded(s.bg, id, seed); err != nil {
			s.logger.Printf("game %s failed: %v", id, err)
		}
	}()

	s.writeJSON(w, http.StatusAccepted, StartGameResponse{ID: id, Status: StatusRunning})
}

// handleStartBatch accepts a batch of games and runs it in the background.
// Finished games land in the store like any other.
func (s *Server) handleStartBatch(w http.ResponseWriter, r *http.Request) {
	var req StartBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid request body: "+err.Error())
		return
	}

	if req.Games < 1 {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "games must be at least 1")
		return
	}
	if req.Games > maxBatchGames {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation,
			fmt.Sprintf("games must be at most %d", maxBatchGames))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		batch, err := s.runner.RunBatchSeeded(s.bg, req.Games, req.Seed)
		if err != nil {
			s.logger.Printf("batch of %d failed: %v", req.Games, err)
			return
		}
		s.logger.Printf("batch %s finished: %d villager wins, %d werewolf wins, %d errors",
			batch.RunID, batch.Stats.VillagerWins, batch.Stats.WerewolfWins, batch.Stats.Errors)
	}()

	s.writeJSON(w, http.StatusAccepted, StartBatchResponse{Games: req.Games, Status: StatusRunning})
}

// handleListGames returns a page of stored games, newest first.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := queryInt(r, "offset", 0)

	rows, err := s.db.ListGames(limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}
	if rows == nil {
		rows = []sink.GameRow{}
	}

	s.writeJSON(w, http.StatusOK, GamesResponse{Games: rows, Limit: limit, Offset: offset})
}

// handleGetGame returns one game with its report and voting history once
// the game has finished.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	row, err := s.db.GetGame(id)
	if errors.Is(err, sink.ErrGameNotFound) {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, fmt.Sprintf("game %q not found", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}

	detail := GameDetail{GameRow: *row, Status: StatusRunning}
	if row.Winner != "" {
		detail.Status = StatusFinished
		report, err := s.db.GetReport(id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
			return
		}
		detail.Report = report
	}

	votes, err := s.db.GetVotes(id)
	if err != nil {
		s.logger.Printf("load votes for %s: %v", id, err)
	} else {
		detail.Votes = votes
	}

	s.writeJSON(w, http.StatusOK, detail)
}

// handleGetEvents returns a page of one game's event log.
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.db.GetGame(id); err != nil {
		if errors.Is(err, sink.ErrGameNotFound) {
			s.writeError(w, http.StatusNotFound, ErrTypeNotFound, fmt.Sprintf("game %q not found", id))
			return
		}
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}

	limit := queryInt(r, "limit", defaultEventPage)
	if limit > maxEventPage {
		limit = maxEventPage
	}
	offset := queryInt(r, "offset", 0)

	events, err := s.db.GetEvents(id, limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}
	if events == nil {
		events = []sink.Event{}
	}

	s.writeJSON(w, http.StatusOK, EventsResponse{GameID: id, Events: events, Limit: limit, Offset: offset})
}

// queryInt parses a non-negative integer query parameter, falling back
// to def when absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
