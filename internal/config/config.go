// Package config provides the injected, read-only game configuration.
// The core packages never read environment or global state directly; every
// tunable flows through a Config value built here.
package config

import (
	"fmt"

	"github.com/samdwyer/deepfall/internal/world"
)

// Generation holds the dungeon generation parameters.
type Generation struct {
	MapWidth    int     `yaml:"map_width"`
	MapHeight   int     `yaml:"map_height"`
	MinLeafSize int     `yaml:"min_leaf_size"`
	MinRoomSize int     `yaml:"min_room_size"`
	MaxRoomSize int     `yaml:"max_room_size"`
	MaxDepth    int     `yaml:"max_depth"`
	DoorChance  float64 `yaml:"door_chance"`
}

// Difficulty holds the per-floor scaling parameters.
type Difficulty struct {
	// EnemiesPerFloor is the enemy count slope: floor index times this,
	// plus a small random jitter at population time.
	EnemiesPerFloor int `yaml:"enemies_per_floor"`
	// ItemsBase is the minimum number of ground items per floor.
	ItemsBase int `yaml:"items_base"`
	// ItemsPerFloor adds items as floors deepen.
	ItemsPerFloor int `yaml:"items_per_floor"`
	// HPBonusPerFloor is added to each enemy's max HP per floor of depth.
	HPBonusPerFloor int `yaml:"hp_bonus_per_floor"`
	// AttackDivisor: enemies gain floor/AttackDivisor bonus attack.
	AttackDivisor int `yaml:"attack_divisor"`
	// FinalFloor is the floor whose stairs end the run in victory.
	FinalFloor int `yaml:"final_floor"`
}

// Player holds the player's starting statistics.
type Player struct {
	HP                int `yaml:"hp"`
	Attack            int `yaml:"attack"`
	Defense           int `yaml:"defense"`
	InventoryCapacity int `yaml:"inventory_capacity"`
}

// Config is the whole injected configuration.
type Config struct {
	Generation Generation `yaml:"generation"`
	Difficulty Difficulty `yaml:"difficulty"`
	Player     Player     `yaml:"player"`
}

// GenParams converts the generation section into the world package's input.
func (c Config) GenParams() world.GenConfig {
	return world.GenConfig{
		Width:       c.Generation.MapWidth,
		Height:      c.Generation.MapHeight,
		MinLeafSize: c.Generation.MinLeafSize,
		MinRoomSize: c.Generation.MinRoomSize,
		MaxRoomSize: c.Generation.MaxRoomSize,
		MaxDepth:    c.Generation.MaxDepth,
		DoorChance:  c.Generation.DoorChance,
	}
}

// Validate rejects configurations that cannot produce a playable game
// before any generation runs.
func (c Config) Validate() error {
	g := c.Generation
	if g.MinRoomSize < 3 {
		return fmt.Errorf("config: min_room_size %d too small, need at least 3", g.MinRoomSize)
	}
	if g.MaxRoomSize < g.MinRoomSize {
		return fmt.Errorf("config: max_room_size %d below min_room_size %d", g.MaxRoomSize, g.MinRoomSize)
	}
	if g.MinLeafSize < g.MinRoomSize+2 {
		return fmt.Errorf("config: min_leaf_size %d cannot hold a %d room with margins", g.MinLeafSize, g.MinRoomSize)
	}
	if g.MapWidth-2 < g.MinRoomSize+2 || g.MapHeight-2 < g.MinRoomSize+2 {
		return fmt.Errorf("config: map %dx%d cannot fit the minimum room size", g.MapWidth, g.MapHeight)
	}
	if g.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must not be negative")
	}
	if g.DoorChance < 0 || g.DoorChance > 1 {
		return fmt.Errorf("config: door_chance %v outside [0,1]", g.DoorChance)
	}
	if c.Difficulty.FinalFloor < 1 {
		return fmt.Errorf("config: final_floor must be at least 1")
	}
	if c.Difficulty.AttackDivisor <= 0 {
		return fmt.Errorf("config: attack_divisor must be positive")
	}
	if c.Player.HP <= 0 {
		return fmt.Errorf("config: player hp must be positive")
	}
	if c.Player.InventoryCapacity <= 0 {
		return fmt.Errorf("config: inventory_capacity must be positive")
	}
	return nil
}
