package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for coordinates outside the grid. Correct
// callers never trigger it; it marks a programmer error, not a game state.
var ErrOutOfBounds = errors.New("world: coordinates out of bounds")

// GenerationError reports that no valid floor can be produced under the
// given configuration. Retrying with the same parameters repeats the
// failure, so the generator surfaces it instead of looping.
type GenerationError struct {
	Reason        string
	Width, Height int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("world: cannot generate %dx%d floor: %s", e.Width, e.Height, e.Reason)
}

// Grid is the tile map for one floor. Tiles are stored row-major, indexed
// [y][x]. After generation completes the only legal mutation is opening a
// door.
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"`
}

// NewGrid creates a grid of the given size filled with walls.
func NewGrid(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TileAt returns the tile at (x, y), or ErrOutOfBounds.
func (g *Grid) TileAt(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return TileWall, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return g.Tiles[y][x], nil
}

// IsWalkable returns true if an entity can stand on (x, y). Out-of-bounds
// coordinates are simply not walkable.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Tiles[y][x].Walkable()
}

// SetTile overwrites the tile at (x, y). Used by the generator during
// construction; out-of-bounds writes are ignored so carving can clip at the
// map border.
func (g *Grid) SetTile(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y][x] = t
}

// OpenDoor turns a closed door into an open one. Returns false if the tile
// is not a closed door.
func (g *Grid) OpenDoor(x, y int) bool {
	if !g.InBounds(x, y) || g.Tiles[y][x] != TileDoorClosed {
		return false
	}
	g.Tiles[y][x] = TileDoorOpen
	return true
}

// Equal reports structural equality with another grid, tile for tile.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] != o.Tiles[y][x] {
				return false
			}
		}
	}
	return true
}

// doorOpenView is a grid view that treats closed doors as walkable. The
// connectivity invariant is checked through it: a closed door is a passage
// the player can open with a key, not a wall.
type doorOpenView struct {
	g *Grid
}

func (v doorOpenView) IsWalkable(x, y int) bool {
	if !v.g.InBounds(x, y) {
		return false
	}
	t := v.g.Tiles[y][x]
	return t.Walkable() || t == TileDoorClosed
}
