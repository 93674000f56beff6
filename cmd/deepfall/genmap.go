package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/samdwyer/deepfall/internal/config"
	"github.com/samdwyer/deepfall/internal/world"
)

var flagGenFloor int

var genmapCmd = &cobra.Command{
	Use:   "genmap",
	Short: "Print a generated floor to stdout",
	Long: `Generate one dungeon floor and print it as ASCII, for eyeballing
generator output or sharing a seed.

Examples:
  deepfall genmap --seed 42
  deepfall genmap --seed 42 --floor 3`,
	Run: runGenmap,
}

func init() {
	genmapCmd.Flags().IntVar(&flagGenFloor, "floor", 1, "Floor depth to generate")
}

func runGenmap(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	floor, err := world.GenerateFloor(context.Background(), cfg.GenParams(), flagGenFloor, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating floor: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed %d, floor %d: %d rooms, %d doors\n",
		seed, flagGenFloor, len(floor.Rooms), len(floor.Doors))
	for y := 0; y < floor.Grid.Height; y++ {
		for x := 0; x < floor.Grid.Width; x++ {
			if x == floor.Spawn.X && y == floor.Spawn.Y {
				fmt.Print("@")
				continue
			}
			tile, _ := floor.Grid.TileAt(x, y)
			fmt.Print(string(tile.Rune()))
		}
		fmt.Println()
	}
}
