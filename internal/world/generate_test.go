package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/deepfall/internal/path"
)

func testGenConfig() GenConfig {
	return GenConfig{
		Width:       80,
		Height:      60,
		MinLeafSize: 10,
		MinRoomSize: 5,
		MaxRoomSize: 14,
		MaxDepth:    6,
		DoorChance:  0.2,
	}
}

func TestGenerateFloorReproducible(t *testing.T) {
	ctx := context.Background()
	seed := int64(12345)

	f1, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}
	f2, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}

	if len(f1.Rooms) != len(f2.Rooms) {
		t.Fatalf("room count mismatch: %d != %d", len(f1.Rooms), len(f2.Rooms))
	}
	for i := range f1.Rooms {
		if f1.Rooms[i] != f2.Rooms[i] {
			t.Errorf("room %d mismatch: %+v != %+v", i, f1.Rooms[i], f2.Rooms[i])
		}
	}
	if !f1.Grid.Equal(f2.Grid) {
		t.Error("grids differ for identical seeds")
	}
	if f1.Spawn != f2.Spawn || f1.Stairs != f2.Stairs {
		t.Errorf("spawn/stairs differ: %v/%v vs %v/%v", f1.Spawn, f1.Stairs, f2.Spawn, f2.Stairs)
	}
}

func TestGenerateFloorDifferentSeeds(t *testing.T) {
	ctx := context.Background()

	f1, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(12345)))
	if err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}
	f2, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(54321)))
	if err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}

	identical := len(f1.Rooms) == len(f2.Rooms)
	if identical {
		for i := range f1.Rooms {
			if f1.Rooms[i] != f2.Rooms[i] {
				identical = false
				break
			}
		}
	}
	if identical {
		t.Error("floors with different seeds should not be identical")
	}
}

func TestGenerateFloorConnectivity(t *testing.T) {
	// The core invariant, across a spread of seeds: every carved room and
	// corridor tile is reachable from spawn.
	ctx := context.Background()

	for seed := int64(0); seed < 25; seed++ {
		f, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		reach := path.ReachableSet(f.OpenView(), f.Spawn)
		for _, room := range f.Rooms {
			for y := room.Y; y < room.Y+room.Height; y++ {
				for x := room.X; x < room.X+room.Width; x++ {
					if _, ok := reach[path.Point{X: x, Y: y}]; !ok {
						t.Fatalf("seed %d: room tile (%d,%d) unreachable from spawn", seed, x, y)
					}
				}
			}
		}
		for _, corridor := range f.Corridors {
			for _, q := range corridor {
				if _, ok := reach[q]; !ok {
					t.Fatalf("seed %d: corridor tile %v unreachable from spawn", seed, q)
				}
			}
		}
	}
}

func TestGenerateFloorSpawnAndStairs(t *testing.T) {
	ctx := context.Background()

	for seed := int64(0); seed < 25; seed++ {
		f, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		if f.Spawn == f.Stairs {
			t.Fatalf("seed %d: stairs placed on spawn %v", seed, f.Spawn)
		}
		if !f.Grid.IsWalkable(f.Spawn.X, f.Spawn.Y) {
			t.Fatalf("seed %d: spawn %v not walkable", seed, f.Spawn)
		}

		stairs := 0
		for y := 0; y < f.Grid.Height; y++ {
			for x := 0; x < f.Grid.Width; x++ {
				if f.Grid.Tiles[y][x] == TileStairsDown {
					stairs++
				}
			}
		}
		if stairs != 1 {
			t.Fatalf("seed %d: %d stairs tiles, want exactly 1", seed, stairs)
		}
	}
}

func TestGenerateFloorRoomsDoNotOverlap(t *testing.T) {
	ctx := context.Background()
	f, err := GenerateFloor(ctx, testGenConfig(), 1, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}
	for i := range f.Rooms {
		for j := i + 1; j < len(f.Rooms); j++ {
			if f.Rooms[i].Intersects(f.Rooms[j]) {
				t.Errorf("rooms %d and %d overlap: %+v %+v", i, j, f.Rooms[i], f.Rooms[j])
			}
		}
	}
}

func TestGenerateFloorTinyMap(t *testing.T) {
	// A map that only fits one room must still produce a floor with spawn
	// and stairs in it.
	cfg := GenConfig{
		Width:       12,
		Height:      12,
		MinLeafSize: 10,
		MinRoomSize: 5,
		MaxRoomSize: 8,
		MaxDepth:    4,
	}

	f, err := GenerateFloor(context.Background(), cfg, 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}
	if len(f.Rooms) < 1 {
		t.Fatal("expected at least one room on a tiny map")
	}
	if !f.Rooms[0].Contains(f.Spawn.X, f.Spawn.Y) {
		t.Errorf("spawn %v outside first room %+v", f.Spawn, f.Rooms[0])
	}
	if f.Spawn == f.Stairs {
		t.Error("stairs must differ from spawn even on a single-room floor")
	}
}

func TestGenerateFloorTooSmall(t *testing.T) {
	cfg := GenConfig{
		Width:       6,
		Height:      6,
		MinLeafSize: 10,
		MinRoomSize: 5,
		MaxRoomSize: 8,
		MaxDepth:    4,
	}

	_, err := GenerateFloor(context.Background(), cfg, 1, rand.New(rand.NewSource(1)))
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
}

func TestGridTileAt(t *testing.T) {
	g := NewGrid(4, 3)
	g.SetTile(1, 1, TileFloor)

	if tile, err := g.TileAt(1, 1); err != nil || tile != TileFloor {
		t.Errorf("TileAt(1,1) = %v, %v", tile, err)
	}
	if _, err := g.TileAt(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("TileAt(-1,0) error = %v, want ErrOutOfBounds", err)
	}
	if _, err := g.TileAt(4, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("TileAt(4,0) error = %v, want ErrOutOfBounds", err)
	}
	if g.IsWalkable(99, 99) {
		t.Error("out-of-bounds coordinates must not be walkable")
	}
}

func TestGridOpenDoor(t *testing.T) {
	g := NewGrid(3, 3)
	g.SetTile(1, 1, TileDoorClosed)

	if g.IsWalkable(1, 1) {
		t.Error("closed door should not be walkable")
	}
	if !g.OpenDoor(1, 1) {
		t.Fatal("OpenDoor on a closed door should succeed")
	}
	if !g.IsWalkable(1, 1) {
		t.Error("open door should be walkable")
	}
	if g.OpenDoor(1, 1) {
		t.Error("OpenDoor on an already-open door should fail")
	}
	if g.OpenDoor(0, 0) {
		t.Error("OpenDoor on a wall should fail")
	}
}

func TestTileWalkable(t *testing.T) {
	tests := []struct {
		tile Tile
		want bool
	}{
		{TileWall, false},
		{TileFloor, true},
		{TileDoorClosed, false},
		{TileDoorOpen, true},
		{TileStairsDown, true},
	}
	for _, tt := range tests {
		if got := tt.tile.Walkable(); got != tt.want {
			t.Errorf("Tile(%q).Walkable() = %v, want %v", tt.tile.Rune(), got, tt.want)
		}
	}
}
