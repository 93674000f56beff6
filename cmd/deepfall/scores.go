package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/deepfall/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recent run history",
	Long: `Display the most recent finished runs.

Examples:
  deepfall scores`,
	Run: runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(context.Background(), 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'deepfall play' to start your first run!")
		return
	}

	fmt.Printf("  %-8s  %-6s  %-6s  %s\n", "Outcome", "Floor", "Turns", "Date")
	fmt.Printf("  %-8s  %-6s  %-6s  %s\n", "-------", "-----", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-6d  %-6d  %s\n",
			r.Outcome, r.Floor, r.Turns, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
