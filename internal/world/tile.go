// Package world provides the tile grid, floor generation and map queries.
package world

// Tile represents a single map tile. The underlying rune doubles as the
// tile's display character.
type Tile rune

const (
	// TileWall is an impassable wall.
	TileWall Tile = '#'
	// TileFloor is open ground.
	TileFloor Tile = '.'
	// TileDoorClosed is a locked door; a key turns it into TileDoorOpen.
	TileDoorClosed Tile = '+'
	// TileDoorOpen is an opened door.
	TileDoorOpen Tile = '\''
	// TileStairsDown leads to the next floor.
	TileStairsDown Tile = '>'
)

// Walkable returns true if an entity can stand on the tile.
func (t Tile) Walkable() bool {
	switch t {
	case TileFloor, TileDoorOpen, TileStairsDown:
		return true
	default:
		return false
	}
}

// Opaque returns true if the tile blocks line of sight. Unused by the turn
// engine today; kept for field-of-view work.
func (t Tile) Opaque() bool {
	return t == TileWall || t == TileDoorClosed
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
