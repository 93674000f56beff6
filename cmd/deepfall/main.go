// deepfall is a turn-based dungeon crawler played in the terminal.
//
// Usage:
//
//	deepfall play            - Start or resume a run
//	deepfall scores          - Show recent run history
//	deepfall genmap          - Print a generated floor to stdout
//	deepfall schema          - Emit the JSON schema for the game data files
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible runs (0 = random)
//	--config <path> - Path to a config file
//	--db <path>     - Database path (default: ~/.deepfall/deepfall.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deepfall",
	Short: "Deepfall - a turn-based dungeon crawler for your terminal",
	Long: `Deepfall drops you at the top of a procedurally generated dungeon.
Fight your way down to the final floor and find the stairs out.

Available commands:
  play     - Start or resume a run
  scores   - Recent run history
  genmap   - Print a generated floor for a seed
  schema   - Emit the game data JSON schema

Examples:
  deepfall play
  deepfall play --seed 42
  deepfall genmap --seed 42
  deepfall scores`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.deepfall/deepfall.db", "Path to database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(genmapCmd)
	rootCmd.AddCommand(schemaCmd)
}
