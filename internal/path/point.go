// Package path provides grid pathfinding and reachability queries.
package path

// Point is a coordinate on the dungeon grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Chebyshev returns the Chebyshev (king-move) distance between two points.
// Enemy detection radii are measured in this metric.
func (p Point) Chebyshev(o Point) int {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Manhattan returns the Manhattan (taxicab) distance between two points.
func (p Point) Manhattan(o Point) int {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent4 reports whether o is orthogonally adjacent to p.
func (p Point) Adjacent4(o Point) bool {
	return p.Manhattan(o) == 1
}

// neighborOffsets is the fixed expansion order for all searches: N, E, S, W.
// Keeping this order stable makes path tie-breaks identical across runs.
var neighborOffsets = [4]Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}
