package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"wolfarena/internal/game"
)

// Aggregates the metrics.json files a run left behind. The batch runner
// prints the same numbers at the end of a run; this script recovers them
// from disk for older runs or for runs that were interrupted.
func main() {
	dir := flag.String("dir", ".", "directory holding game_logs_* directories")
	flag.Parse()

	pattern := filepath.Join(*dir, "game_logs_*", "metrics.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Printf("Error scanning %s: %v\n", *dir, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No metrics files found under %s\n", *dir)
		os.Exit(1)
	}

	var reports []game.Report
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("Error loading %s: %v\n", file, err)
			continue
		}
		var report game.Report
		if err := json.Unmarshal(data, &report); err != nil {
			fmt.Printf("Error parsing %s: %v\n", file, err)
			continue
		}
		reports = append(reports, report)
	}
	if len(reports) == 0 {
		fmt.Println("No readable metrics files.")
		os.Exit(1)
	}

	villager, werewolf := 0, 0
	var rounds, seerAcc, voteAcc, reveal, suspicion, alignment, variety, deception float64
	for _, r := range reports {
		switch game.Winner(r.Winner) {
		case game.WinnerVillagers:
			villager++
		case game.WinnerWerewolves:
			werewolf++
		}
		rounds += float64(r.RoundsPlayed)
		seerAcc += r.SeerAccuracy
		voteAcc += r.VotingAccuracy
		reveal += r.SeerRevealRate
		suspicion += r.SuspicionChangeRate
		alignment += r.VoteDiscussionAlignment
		variety += r.StatementVarietyRate
		deception += r.WerewolfDeceptionRate
	}
	n := float64(len(reports))

	fmt.Println("WEREWOLF GAME ANALYSIS REPORT")
	fmt.Println("=============================")
	fmt.Println()
	fmt.Println("OVERALL STATISTICS")
	fmt.Println("------------------")
	fmt.Printf("Total Games Analyzed: %d\n", len(reports))
	fmt.Printf("Villager Wins: %d (%.1f%%)\n", villager, float64(villager)/n*100)
	fmt.Printf("Werewolf Wins: %d (%.1f%%)\n", werewolf, float64(werewolf)/n*100)
	fmt.Printf("Average Rounds per Game: %.2f\n", rounds/n)
	fmt.Println()
	fmt.Println("PERFORMANCE METRICS")
	fmt.Println("-------------------")
	fmt.Printf("Average Seer Accuracy: %.3f\n", seerAcc/n)
	fmt.Printf("Average Voting Accuracy: %.3f\n", voteAcc/n)
	fmt.Printf("Average Seer Reveal Rate: %.3f\n", reveal/n)
	fmt.Printf("Average Suspicion Change Rate: %.3f\n", suspicion/n)
	fmt.Printf("Average Vote Discussion Alignment: %.3f\n", alignment/n)
	fmt.Printf("Average Statement Variety Rate: %.3f\n", variety/n)
	fmt.Printf("Average Werewolf Deception Rate: %.3f\n", deception/n)
}
