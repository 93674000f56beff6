package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepfall/internal/path"
	"github.com/samdwyer/deepfall/internal/telemetry"
)

// GenConfig holds the generation parameters for one floor. Callers build it
// from the injected game configuration; the generator reads nothing else.
type GenConfig struct {
	Width       int
	Height      int
	MinLeafSize int
	MinRoomSize int
	MaxRoomSize int
	MaxDepth    int
	DoorChance  float64
}

// Floor is the product of generation: the grid plus the room and corridor
// structure carved into it.
type Floor struct {
	Depth     int            `json:"depth"`
	Grid      *Grid          `json:"grid"`
	Rooms     []Room         `json:"rooms"`
	Corridors [][]path.Point `json:"corridors"`
	Doors     []path.Point   `json:"doors"`
	Spawn     path.Point     `json:"spawn"`
	Stairs    path.Point     `json:"stairs"`
}

// aspectRatioBias: above this width/height ratio the split axis is forced to
// cut the long side, avoiding degenerate sliver partitions.
const aspectRatioBias = 1.25

// partition is a node in the BSP arena. Children are indexes into the arena
// slice, -1 for leaves; the explicit arena bounds stack depth on large maps.
type partition struct {
	x, y, w, h  int
	depth       int
	left, right int
	room        int
}

// GenerateFloor builds one dungeon floor via binary space partitioning.
//
// Every floor tile it carves is connected to the spawn point; closed doors
// count as passable for that invariant since a key opens them. The error is
// a *GenerationError when the configured map cannot fit a single minimum
// room.
func GenerateFloor(ctx context.Context, cfg GenConfig, depth int, rng *rand.Rand) (*Floor, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "floor.generate")
	defer span.End()

	start := time.Now()

	interiorW, interiorH := cfg.Width-2, cfg.Height-2
	if interiorW < cfg.MinRoomSize+2 || interiorH < cfg.MinRoomSize+2 {
		return nil, &GenerationError{
			Reason: "map too small for minimum room size",
			Width:  cfg.Width, Height: cfg.Height,
		}
	}

	f := &Floor{Depth: depth, Grid: NewGrid(cfg.Width, cfg.Height)}

	parts := splitPartitions(cfg, rng)
	carveRooms(f, cfg, parts, rng)
	if len(f.Rooms) == 0 {
		return nil, &GenerationError{
			Reason: "no rooms carved",
			Width:  cfg.Width, Height: cfg.Height,
		}
	}
	connectPartitions(f, parts, rng)
	placeDoors(f, cfg, rng)

	f.Spawn = f.Rooms[0].Center()
	if err := placeStairs(f); err != nil {
		return nil, err
	}

	if err := verifyConnectivity(f); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("floor.depth", depth),
		attribute.Int("floor.width", cfg.Width),
		attribute.Int("floor.height", cfg.Height),
		attribute.Int("floor.room_count", len(f.Rooms)),
		attribute.Int("floor.door_count", len(f.Doors)),
		attribute.Int64("floor.generation_us", time.Since(start).Microseconds()),
	)

	return f, nil
}

// splitPartitions runs the BSP phase: a work queue over an arena of
// partitions, splitting until pieces fall under the minimum leaf size or the
// depth limit.
func splitPartitions(cfg GenConfig, rng *rand.Rand) []partition {
	parts := []partition{{
		x: 1, y: 1, w: cfg.Width - 2, h: cfg.Height - 2,
		left: -1, right: -1, room: -1,
	}}
	queue := []int{0}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		p := parts[idx]

		if p.depth >= cfg.MaxDepth {
			continue
		}
		canVertical := p.w >= 2*cfg.MinLeafSize
		canHorizontal := p.h >= 2*cfg.MinLeafSize
		if !canVertical && !canHorizontal {
			continue
		}

		var horizontal bool
		switch {
		case canHorizontal && !canVertical:
			horizontal = true
		case canVertical && !canHorizontal:
			horizontal = false
		case float64(p.w) >= aspectRatioBias*float64(p.h):
			horizontal = false
		case float64(p.h) >= aspectRatioBias*float64(p.w):
			horizontal = true
		default:
			horizontal = rng.Intn(2) == 0
		}

		span := p.w
		if horizontal {
			span = p.h
		}
		splitPos := cfg.MinLeafSize + rng.Intn(span-2*cfg.MinLeafSize+1)

		var a, b partition
		if horizontal {
			a = partition{x: p.x, y: p.y, w: p.w, h: splitPos}
			b = partition{x: p.x, y: p.y + splitPos, w: p.w, h: p.h - splitPos}
		} else {
			a = partition{x: p.x, y: p.y, w: splitPos, h: p.h}
			b = partition{x: p.x + splitPos, y: p.y, w: p.w - splitPos, h: p.h}
		}
		a.depth, b.depth = p.depth+1, p.depth+1
		a.left, a.right, a.room = -1, -1, -1
		b.left, b.right, b.room = -1, -1, -1

		parts[idx].left = len(parts)
		parts = append(parts, a)
		parts[idx].right = len(parts)
		parts = append(parts, b)
		queue = append(queue, parts[idx].left, parts[idx].right)
	}

	return parts
}

// carveRooms places one room inside every leaf partition, keeping at least a
// one-tile wall margin from the partition edge.
func carveRooms(f *Floor, cfg GenConfig, parts []partition, rng *rand.Rand) {
	for i := range parts {
		p := &parts[i]
		if p.left != -1 {
			continue
		}

		maxW := min(cfg.MaxRoomSize, p.w-2)
		maxH := min(cfg.MaxRoomSize, p.h-2)
		if maxW < cfg.MinRoomSize || maxH < cfg.MinRoomSize {
			continue
		}

		roomW := cfg.MinRoomSize + rng.Intn(maxW-cfg.MinRoomSize+1)
		roomH := cfg.MinRoomSize + rng.Intn(maxH-cfg.MinRoomSize+1)
		roomX := p.x + 1 + rng.Intn(p.w-roomW-1)
		roomY := p.y + 1 + rng.Intn(p.h-roomH-1)

		room := Room{X: roomX, Y: roomY, Width: roomW, Height: roomH}
		p.room = len(f.Rooms)
		f.Rooms = append(f.Rooms, room)

		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				f.Grid.SetTile(x, y, TileFloor)
			}
		}
	}
}

// connectPartitions walks the arena bottom-up and carves exactly one
// corridor per internal node, between the first leaf room of each child
// subtree. One corridor per node makes the room-adjacency graph a spanning
// tree, which is the whole connectivity argument.
//
// "First leaf room" is the deterministic tie-break: descend left before
// right. The corridor shape still consumes one rng draw for its bend
// direction.
func connectPartitions(f *Floor, parts []partition, rng *rand.Rand) {
	for idx := len(parts) - 1; idx >= 0; idx-- {
		p := parts[idx]
		if p.left == -1 {
			continue
		}
		r1 := firstRoom(parts, p.left)
		r2 := firstRoom(parts, p.right)
		if r1 < 0 || r2 < 0 {
			continue
		}
		carveCorridor(f, f.Rooms[r1].Center(), f.Rooms[r2].Center(), rng)
	}
}

// firstRoom returns the room index of the first leaf under node idx,
// or -1 if the subtree carved no room.
func firstRoom(parts []partition, idx int) int {
	p := parts[idx]
	if p.left == -1 {
		return p.room
	}
	if r := firstRoom(parts, p.left); r >= 0 {
		return r
	}
	return firstRoom(parts, p.right)
}

// carveCorridor cuts an L-shaped tunnel between two points and records its
// tile sequence on the floor.
func carveCorridor(f *Floor, a, b path.Point, rng *rand.Rand) {
	var pts []path.Point
	if rng.Intn(2) == 0 {
		pts = append(pts, horizontalRun(a.X, b.X, a.Y)...)
		pts = append(pts, verticalRun(a.Y, b.Y, b.X)...)
	} else {
		pts = append(pts, verticalRun(a.Y, b.Y, a.X)...)
		pts = append(pts, horizontalRun(a.X, b.X, b.Y)...)
	}

	corridor := make([]path.Point, 0, len(pts))
	for _, q := range pts {
		if !f.Grid.InBounds(q.X, q.Y) {
			continue
		}
		if f.Grid.Tiles[q.Y][q.X] == TileWall {
			f.Grid.SetTile(q.X, q.Y, TileFloor)
		}
		corridor = append(corridor, q)
	}
	f.Corridors = append(f.Corridors, corridor)
}

func horizontalRun(x1, x2, y int) []path.Point {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	pts := make([]path.Point, 0, x2-x1+1)
	for x := x1; x <= x2; x++ {
		pts = append(pts, path.Point{X: x, Y: y})
	}
	return pts
}

func verticalRun(y1, y2, x int) []path.Point {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	pts := make([]path.Point, 0, y2-y1+1)
	for y := y1; y <= y2; y++ {
		pts = append(pts, path.Point{X: x, Y: y})
	}
	return pts
}

// placeDoors converts some corridor tiles on room boundaries into closed
// doors. Doors never stack next to each other.
func placeDoors(f *Floor, cfg GenConfig, rng *rand.Rand) {
	if cfg.DoorChance <= 0 {
		return
	}
	for _, corridor := range f.Corridors {
		for _, q := range corridor {
			if f.Grid.Tiles[q.Y][q.X] != TileFloor {
				continue
			}
			onRing := false
			for _, room := range f.Rooms {
				if room.OnBoundary(q.X, q.Y) {
					onRing = true
					break
				}
			}
			if !onRing || hasDoorNeighbor(f.Grid, q) {
				continue
			}
			if rng.Float64() < cfg.DoorChance {
				f.Grid.SetTile(q.X, q.Y, TileDoorClosed)
				f.Doors = append(f.Doors, q)
			}
		}
	}
}

func hasDoorNeighbor(g *Grid, q path.Point) bool {
	for _, d := range [4]path.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
		t, err := g.TileAt(q.X+d.X, q.Y+d.Y)
		if err != nil {
			continue
		}
		if t == TileDoorClosed || t == TileDoorOpen {
			return true
		}
	}
	return false
}

// placeStairs puts the stairs in the room farthest from spawn by walking
// distance, lowest room index on ties. A single-room floor falls back to
// the most distant tile inside the room.
func placeStairs(f *Floor) error {
	dist := path.Distances(doorOpenView{f.Grid}, f.Spawn)

	best, bestDist := path.Point{}, -1
	for _, room := range f.Rooms {
		c := room.Center()
		d, ok := dist[c]
		if !ok || c == f.Spawn {
			continue
		}
		if d > bestDist {
			best, bestDist = c, d
		}
	}

	if bestDist < 0 {
		// One room only: farthest tile from spawn within it.
		room := f.Rooms[0]
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				q := path.Point{X: x, Y: y}
				if q == f.Spawn {
					continue
				}
				if d, ok := dist[q]; ok && d > bestDist {
					best, bestDist = q, d
				}
			}
		}
	}
	if bestDist < 0 {
		return &GenerationError{
			Reason: "no stairs position distinct from spawn",
			Width:  f.Grid.Width, Height: f.Grid.Height,
		}
	}

	f.Stairs = best
	f.Grid.SetTile(best.X, best.Y, TileStairsDown)
	return nil
}

// verifyConnectivity asserts the generator's core invariant: every tile
// carved by a room or corridor is reachable from spawn. Closed doors count
// as passable. A violation is a generator bug surfaced as an error rather
// than a broken floor handed to the engine.
func verifyConnectivity(f *Floor) error {
	reach := path.ReachableSet(doorOpenView{f.Grid}, f.Spawn)

	check := func(q path.Point) error {
		if _, ok := reach[q]; !ok {
			return &GenerationError{
				Reason: "carved tile unreachable from spawn",
				Width:  f.Grid.Width, Height: f.Grid.Height,
			}
		}
		return nil
	}

	for _, room := range f.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if err := check(path.Point{X: x, Y: y}); err != nil {
					return err
				}
			}
		}
	}
	for _, corridor := range f.Corridors {
		for _, q := range corridor {
			if err := check(q); err != nil {
				return err
			}
		}
	}
	return nil
}

// OpenView returns a grid view that treats closed doors as walkable, for
// reachability questions that span key-locked doors.
func (f *Floor) OpenView() path.Walkable {
	return doorOpenView{f.Grid}
}
