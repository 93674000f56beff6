package world

import "github.com/samdwyer/deepfall/internal/path"

// Room is a rectangular room carved into the grid.
type Room struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the room.
func (r Room) Center() path.Point {
	return path.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// OnBoundary reports whether (x, y) sits on the one-tile wall ring
// surrounding the room. Corridors crossing this ring are door candidates.
func (r Room) OnBoundary(x, y int) bool {
	inRing := x >= r.X-1 && x <= r.X+r.Width && y >= r.Y-1 && y <= r.Y+r.Height
	return inRing && !r.Contains(x, y)
}
