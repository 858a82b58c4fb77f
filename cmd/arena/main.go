package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wolfarena/internal/arena"
	"wolfarena/internal/config"
	"wolfarena/internal/game"
	"wolfarena/internal/sink"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: search ./config, ., /etc/wolfarena)")
	games := flag.Int("games", 0, "number of games to run, overrides config")
	provider := flag.String("provider", "", "oracle provider (azure, gemini, script), overrides config")
	seed := flag.Int64("seed", 0, "master seed for reproducible runs, overrides config")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system variables")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if *games > 0 {
		cfg.Batch.Games = *games
	}
	if *provider != "" {
		cfg.Oracle.Provider = *provider
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Ctrl-C cancels the run; finished games keep their logs.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := arena.NewOracle(ctx, cfg.Oracle)
	if err != nil {
		log.Fatal("Failed to initialize oracle: ", err)
	}

	var db *sink.DB
	if cfg.Logs.SQLitePath != "" {
		db, err = sink.NewDB(cfg.Logs.SQLitePath, nil)
		if err != nil {
			log.Fatal("Failed to open database: ", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			log.Fatal("Failed to migrate database: ", err)
		}
	}

	runner := arena.NewRunner(cfg, generator, db, log.Default())

	if cfg.Batch.Games == 1 {
		report, err := runner.RunOne(ctx, "")
		if err != nil {
			log.Fatal("Game failed: ", err)
		}
		printReport(report)
		return
	}

	batch, err := runner.RunBatch(ctx, cfg.Batch.Games)
	if batch == nil {
		log.Fatal("Batch failed: ", err)
	}
	if err != nil {
		log.Printf("Run interrupted: %v", err)
	}
	printStats(&batch.Stats)
	if batch.Dir != "" {
		fmt.Printf("\nPer-game logs and summary.json written under %s\n", batch.Dir)
	}
}

func printReport(r *game.Report) {
	fmt.Printf("=== Game %s ===\n", r.GameID)
	fmt.Printf("Winner:                    %s\n", r.Winner)
	fmt.Printf("Rounds Played:             %d\n", r.RoundsPlayed)
	fmt.Printf("Seer Accuracy:             %.2f\n", r.SeerAccuracy)
	fmt.Printf("Seer Reveal Rate:          %.2f\n", r.SeerRevealRate)
	fmt.Printf("Voting Accuracy:           %.2f\n", r.VotingAccuracy)
	fmt.Printf("Vote-Discussion Alignment: %.2f\n", r.VoteDiscussionAlignment)
	fmt.Printf("Suspicion Change Rate:     %.2f\n", r.SuspicionChangeRate)
	fmt.Printf("Statement Variety Rate:    %.2f\n", r.StatementVarietyRate)
	fmt.Printf("Werewolf Deception Rate:   %.2f\n", r.WerewolfDeceptionRate)
	fmt.Printf("Medic Protections:         %d\n", r.MedicProtections)
	fmt.Printf("Total Statements:          %d\n", r.TotalStatements)
	fmt.Printf("Total Votes:               %d\n", r.TotalVotes)
}

func printStats(s *arena.AggregatedStats) {
	pct := func(n int) float64 {
		if s.TotalGames == 0 {
			return 0
		}
		return float64(n) / float64(s.TotalGames) * 100
	}

	fmt.Println("=== Werewolf Arena Results ===")
	fmt.Printf("Total Games:    %d\n", s.TotalGames)
	fmt.Printf("Villager Wins:  %d (%.1f%%)\n", s.VillagerWins, pct(s.VillagerWins))
	fmt.Printf("Werewolf Wins:  %d (%.1f%%)\n", s.WerewolfWins, pct(s.WerewolfWins))
	fmt.Printf("Errors:         %d\n", s.Errors)
	fmt.Printf("Average Rounds: %.2f\n", s.AvgRounds)
	fmt.Println()
	fmt.Println("Average Metrics Across Games:")
	fmt.Printf("  Seer Accuracy:             %.3f\n", s.AvgSeerAccuracy)
	fmt.Printf("  Seer Reveal Rate:          %.3f\n", s.AvgSeerRevealRate)
	fmt.Printf("  Voting Accuracy:           %.3f\n", s.AvgVotingAccuracy)
	fmt.Printf("  Vote-Discussion Alignment: %.3f\n", s.AvgVoteDiscussionAlignment)
	fmt.Printf("  Suspicion Change Rate:     %.3f\n", s.AvgSuspicionChangeRate)
	fmt.Printf("  Statement Variety Rate:    %.3f\n", s.AvgStatementVarietyRate)
	fmt.Printf("  Werewolf Deception Rate:   %.3f\n", s.AvgWerewolfDeceptionRate)
}
