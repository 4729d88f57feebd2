// snowline is a terminal endless-runner: ski down a procedurally generated
// mountain while an avalanche hunts you down.
//
// Usage:
//
//	snowline play            - Play in the local terminal
//	snowline scores          - Show best runs
//	snowline serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.snowline/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snowline",
	Short: "Snowline - Outrun the avalanche in your terminal",
	Long: `Snowline is a terminal ski runner. Descend an endless mountain,
tuck on the steeps, launch off crests, and stay ahead of the avalanche.

Available commands:
  play     - Start a run in the local terminal
  scores   - View your best runs
  serve    - Start SSH server for remote play

Examples:
  snowline play
  snowline play --difficulty hard
  snowline scores
  snowline serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snowline/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
