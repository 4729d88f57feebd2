package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkoshelev/snowline/internal/platform/tui"
	"github.com/vkoshelev/snowline/internal/storage"
)

var flagPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show your best runs",
	Long: `Display the best recorded runs.

By default an interactive table opens; --plain prints to stdout instead.

Examples:
  snowline scores
  snowline scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores to stdout instead of the interactive table")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		if err := tui.RunScoreboard(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error showing scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs - Snowline")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snowline play' to set the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-10s  %-8s  %-8s  %s\n", "Rank", "Score", "Distance", "Max spd", "Fate", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-8s  %-8s  %s\n", "----", "-----", "--------", "-------", "----", "----")

	for i, run := range runs {
		fate := "caught"
		if !run.Caught {
			fate = "escaped"
		}
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-10s  %-8.1f  %-8s  %s\n",
			i+1, run.Score, fmt.Sprintf("%.0f m", run.Distance), run.MaxSpeed, fate, dateStr)
	}

	fmt.Println()
	if high, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}
