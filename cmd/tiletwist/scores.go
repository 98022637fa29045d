package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiletwist/internal/game"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [stage]",
	Short: "Show best times",
	Long: `Display the fastest solves, for one stage or across all stages.

Examples:
  tiletwist scores
  tiletwist scores e01
  tiletwist scores --stats
  tiletwist scores e01 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of times to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-stage attempt statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded attempts for the stage")
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	stageID := ""
	title := "All stages"
	if len(args) == 1 {
		stageID = args[0]
		s, ok := a.catalog.ByID(stageID)
		if !ok {
			return fmt.Errorf("unknown stage %q (run 'tiletwist stages list')", stageID)
		}
		title = s.Title()
	}

	if flagScoresClear {
		if stageID == "" {
			return fmt.Errorf("--clear needs a stage id")
		}
		if err := a.store.ClearAttempts(stageID); err != nil {
			return err
		}
		fmt.Printf("Cleared attempts for %s\n", stageID)
		return nil
	}

	if flagScoresStats {
		return printStats(a)
	}

	times, err := a.store.TopTimes(stageID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n", title)
	fmt.Println()

	if len(times) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		if stageID != "" {
			fmt.Printf("Play 'tiletwist play %s' to set the first time!\n", stageID)
		}
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-6s  %-5s  %s\n", "Rank", "Player", "Stage", "Time", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %-6s  %-5s  %s\n", "----", "------", "-----", "----", "-----", "----")

	for i, t := range times {
		player := t.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-12s  %-6s  %-5d  %s\n",
			i+1, player, t.StageID, game.FormatDuration(t.Elapsed), t.Moves, t.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stageID != "" {
		if best, ok, err := a.store.BestTime(stageID); err == nil && ok {
			fmt.Println()
			fmt.Printf("Best: %s\n", game.FormatDuration(best))
		}
	}
	return nil
}

func printStats(a *app) error {
	stats, err := a.store.AllStageStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No attempts recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-8s  %-6s  %-5s  %-6s  %-9s  %s\n", "Stage", "Attempts", "Solves", "Rate", "Best", "Avg moves", "Last played")
	fmt.Printf("  %-12s  %-8s  %-6s  %-5s  %-6s  %-9s  %s\n", "-----", "--------", "------", "----", "----", "---------", "-----------")
	for _, id := range ids {
		st := stats[id]
		best := "-"
		if st.Solves > 0 {
			best = game.FormatDuration(st.BestTime)
		}
		fmt.Printf("  %-12s  %-8d  %-6d  %4.0f%%  %-6s  %-9.1f  %s\n",
			id, st.Attempts, st.Solves, st.SolveRate()*100, best, st.AvgMoves, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
