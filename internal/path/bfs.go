package path

// Walkable is the minimal grid view a search needs. The world grid satisfies
// it directly; the turn engine wraps it to overlay entity occupancy.
type Walkable interface {
	IsWalkable(x, y int) bool
}

// ShortestPath returns the shortest walkable route from start to goal over
// the 4-connected neighbor graph, including both endpoints. Edge weight is
// uniform (one turn per tile), so breadth-first search is exact.
//
// A nil result means the goal is unreachable. That is a normal answer, not
// an error: AI decision logic consumes it to give up on a target. When
// start == goal the path is the single point itself.
func ShortestPath(g Walkable, start, goal Point) []Point {
	if !g.IsWalkable(start.X, start.Y) || !g.IsWalkable(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []Point{start}
	}

	cameFrom := map[Point]Point{start: start}
	frontier := []Point{start}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, d := range neighborOffsets {
			next := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			if !g.IsWalkable(next.X, next.Y) {
				continue
			}
			cameFrom[next] = cur
			if next == goal {
				return reconstruct(cameFrom, start, goal)
			}
			frontier = append(frontier, next)
		}
	}

	return nil
}

// reconstruct walks the parent links backwards and reverses them.
func reconstruct(cameFrom map[Point]Point, start, goal Point) []Point {
	route := []Point{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		route = append(route, cur)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// ReachableSet flood-fills from start and returns every point connected to it
// through walkable moves only. The generator uses it to verify floor
// connectivity; the AI uses it to decide whether chasing is worthwhile.
func ReachableSet(g Walkable, start Point) map[Point]struct{} {
	reached := map[Point]struct{}{}
	if !g.IsWalkable(start.X, start.Y) {
		return reached
	}

	reached[start] = struct{}{}
	frontier := []Point{start}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, d := range neighborOffsets {
			next := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if _, seen := reached[next]; seen {
				continue
			}
			if !g.IsWalkable(next.X, next.Y) {
				continue
			}
			reached[next] = struct{}{}
			frontier = append(frontier, next)
		}
	}

	return reached
}

// Distances returns the BFS hop count from start to every reachable point.
// The generator uses it to pick the stairs room farthest from spawn.
func Distances(g Walkable, start Point) map[Point]int {
	dist := map[Point]int{}
	if !g.IsWalkable(start.X, start.Y) {
		return dist
	}

	dist[start] = 0
	frontier := []Point{start}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, d := range neighborOffsets {
			next := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if _, seen := dist[next]; seen {
				continue
			}
			if !g.IsWalkable(next.X, next.Y) {
				continue
			}
			dist[next] = dist[cur] + 1
			frontier = append(frontier, next)
		}
	}

	return dist
}
