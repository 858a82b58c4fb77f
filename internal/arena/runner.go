package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"wolfarena/internal/config"
	"wolfarena/internal/game"
	"wolfarena/internal/sink"
)

// Result holds the outcome of a single game in a batch.
type Result struct {
	GameID string       `json:"game_id"`
	Seed   int64        `json:"seed"`
	Report *game.Report `json:"report,omitempty"`
	Err    error        `json:"-"`
}

// AggregatedStats summarizes a batch of game reports.
type AggregatedStats struct {
	TotalGames   int     `json:"total_games"`
	VillagerWins int     `json:"villager_wins"`
	WerewolfWins int     `json:"werewolf_wins"`
	Errors       int     `json:"errors"`
	AvgRounds    float64 `json:"avg_rounds"`

	AvgSeerAccuracy            float64 `json:"avg_seer_accuracy"`
	AvgVotingAccuracy          float64 `json:"avg_voting_accuracy"`
	AvgSeerRevealRate          float64 `json:"avg_seer_reveal_rate"`
	AvgSuspicionChangeRate     float64 `json:"avg_suspicion_change_rate"`
	AvgVoteDiscussionAlignment float64 `json:"avg_vote_discussion_alignment"`
	AvgStatementVarietyRate    float64 `json:"avg_statement_variety_rate"`
	AvgWerewolfDeceptionRate   float64 `json:"avg_werewolf_deception_rate"`
}

// BatchResult is the full outcome of one batch run.
type BatchResult struct {
	RunID   string          `json:"run_id"`
	Dir     string          `json:"dir,omitempty"`
	Stats   AggregatedStats `json:"stats"`
	Results []Result        `json:"results"`
}

// Runner executes games that share a configuration, an oracle and
// optional persistent stores. Games never share state with each other,
// so batches parallelize freely.
type Runner struct {
	cfg    *config.Config
	oracle game.Oracle
	db     *sink.DB
	log    *log.Logger
}

// NewRunner creates a runner. db may be nil when no SQLite store is
// configured.
func NewRunner(cfg *config.Config, oracle game.Oracle, db *sink.DB, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cfg: cfg, oracle: oracle, db: db, log: logger}
}

// RunOne runs a single game under the given id (empty for a generated
// one) and returns its final report. Per-game JSON logs land under the
// configured log directory.
func (r *Runner) RunOne(ctx context.Context, id string) (*game.Report, error) {
	return r.RunSeeded(ctx, id, r.cfg.Game.Seed)
}

// RunSeeded is RunOne with an explicit seed, overriding the configured
// one. A zero seed leaves seeding to the game clock.
func (r *Runner) RunSeeded(ctx context.Context, id string, seed int64) (*game.Report, error) {
	res := r.runGame(ctx, id, seed, r.cfg.Logs.Dir)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Report, nil
}

// RunBatch runs n independent games in parallel and aggregates their
// reports. Per-game seeds all derive from the configured master seed
// before any game starts, so a batch is reproducible end to end.
func (r *Runner) RunBatch(ctx context.Context, n int) (*BatchResult, error) {
	return r.RunBatchSeeded(ctx, n, r.cfg.Game.Seed)
}

// RunBatchSeeded is RunBatch with an explicit master seed. A zero seed
// picks a fresh one from the clock.
func (r *Runner) RunBatchSeeded(ctx context.Context, n int, masterSeed int64) (*BatchResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch size must be at least 1, got %d", n)
	}

	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}
	master := rand.New(rand.NewSource(masterSeed))

	runID := time.Now().Format("20060102_150405")
	batchDir := ""
	if r.cfg.Batch.Dir != "" {
		batchDir = filepath.Join(r.cfg.Batch.Dir, runID)
		if err := os.MkdirAll(batchDir, 0o755); err != nil {
			return nil, fmt.Errorf("create batch directory: %w", err)
		}
	}

	seeds := make([]int64, n)
	ids := make([]string, n)
	for i := range seeds {
		seeds[i] = master.Int63()
		ids[i] = fmt.Sprintf("%s_%03d", runID, i+1)
	}

	limit := r.cfg.Batch.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, n)
	var eg errgroup.Group
	eg.SetLimit(limit)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			results[i] = r.runGame(ctx, ids[i], seeds[i], batchDir)
			if results[i].Err != nil {
				r.log.Printf("game %s failed: %v", ids[i], results[i].Err)
			} else {
				rep := results[i].Report
				r.log.Printf("game %s finished: %s (%d rounds)", ids[i], rep.Winner, rep.RoundsPlayed)
			}
			return nil
		})
	}
	eg.Wait()

	batch := &BatchResult{
		RunID:   runID,
		Dir:     batchDir,
		Stats:   aggregate(results),
		Results: results,
	}

	if batchDir != "" {
		if err := writeSummary(batchDir, batch); err != nil {
			r.log.Printf("arena: write batch summary: %v", err)
		}
	}

	return batch, ctx.Err()
}

// runGame wires the sinks for one game and runs it to completion.
func (r *Runner) runGame(ctx context.Context, id string, seed int64, logDir string) Result {
	var sinks sink.Fanout

	if logDir != "" {
		files, err := sink.NewFiles(logDir, id, r.log)
		if err != nil {
			return Result{GameID: id, Seed: seed, Err: err}
		}
		sinks = append(sinks, files)
	}
	if r.db != nil {
		dbSink, err := r.db.GameSink(id)
		if err != nil {
			return Result{GameID: id, Seed: seed, Err: err}
		}
		sinks = append(sinks, dbSink)
	}

	g, err := game.NewGame(r.cfg.Game.Players, game.Options{
		DiscussionRounds: r.cfg.Game.DiscussionRounds,
		RandomizeRoles:   r.cfg.Game.RandomizeRoles,
		Seed:             seed,
		Oracle:           r.oracle,
		OracleTimeout:    r.cfg.Oracle.Timeout,
		Sink:             sinks,
		Logger:           r.log,
		ID:               id,
	})
	if err != nil {
		return Result{GameID: id, Seed: seed, Err: err}
	}

	report, err := g.Run(ctx)
	if err != nil {
		return Result{GameID: g.ID, Seed: seed, Err: err}
	}

	return Result{GameID: g.ID, Seed: seed, Report: report}
}

// aggregate computes batch summary statistics from individual results.
func aggregate(results []Result) AggregatedStats {
	stats := AggregatedStats{TotalGames: len(results)}

	finished := 0
	for _, res := range results {
		if res.Err != nil || res.Report == nil {
			stats.Errors++
			continue
		}
		finished++

		switch game.Winner(res.Report.Winner) {
		case game.WinnerVillagers:
			stats.VillagerWins++
		case game.WinnerWerewolves:
			stats.WerewolfWins++
		}

		stats.AvgRounds += float64(res.Report.RoundsPlayed)
		stats.AvgSeerAccuracy += res.Report.SeerAccuracy
		stats.AvgVotingAccuracy += res.Report.VotingAccuracy
		stats.AvgSeerRevealRate += res.Report.SeerRevealRate
		stats.AvgSuspicionChangeRate += res.Report.SuspicionChangeRate
		stats.AvgVoteDiscussionAlignment += res.Report.VoteDiscussionAlignment
		stats.AvgStatementVarietyRate += res.Report.StatementVarietyRate
		stats.AvgWerewolfDeceptionRate += res.Report.WerewolfDeceptionRate
	}

	if finished > 0 {
		div := float64(finished)
		stats.AvgRounds /= div
		stats.AvgSeerAccuracy /= div
		stats.AvgVotingAccuracy /= div
		stats.AvgSeerRevealRate /= div
		stats.AvgSuspicionChangeRate /= div
		stats.AvgVoteDiscussionAlignment /= div
		stats.AvgStatementVarietyRate /= div
		stats.AvgWerewolfDeceptionRate /= div
	}

	return stats
}

func writeSummary(dir string, batch *BatchResult) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "summary.json"), data, 0o644)
}
