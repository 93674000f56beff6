// Package engine owns the game's turn resolution. All rules live here:
// the UI submits one Action per turn and renders the CoreState and events
// that come back. The engine is single-threaded and never blocks.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/samdwyer/deepfall/internal/config"
	"github.com/samdwyer/deepfall/internal/entity"
	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/path"
	"github.com/samdwyer/deepfall/internal/world"
)

// Outcome is the terminal status of a run.
type Outcome string

const (
	OutcomeRunning Outcome = "running"
	OutcomeDead    Outcome = "dead"
	OutcomeVictory Outcome = "victory"
)

// maxMessages bounds the scrolling message log.
const maxMessages = 100

// CoreState is the complete game state for one run. Entities are keyed by
// stable ID; tile association is positional lookup, tiles never hold entity
// references.
type CoreState struct {
	RunID    string
	Seed     int64
	FloorNum int
	Turn     int
	Outcome  Outcome

	Floor  *world.Floor
	Player *entity.Player

	enemies map[entity.ID]*entity.Enemy
	items   map[entity.ID]*entity.Item
	nextID  entity.ID

	rng      *rand.Rand
	cfg      config.Config
	enemyReg *gamedata.EnemyRegistry
	itemReg  *gamedata.ItemRegistry

	messages []string
}

// NewRun starts a fresh run on floor 1 of the given seed.
func NewRun(ctx context.Context, cfg config.Config, enemyReg *gamedata.EnemyRegistry, itemReg *gamedata.ItemRegistry, seed int64) (*CoreState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &CoreState{
		RunID:    uuid.NewString(),
		Seed:     seed,
		FloorNum: 1,
		Outcome:  OutcomeRunning,
		enemies:  map[entity.ID]*entity.Enemy{},
		items:    map[entity.ID]*entity.Item{},
		nextID:   1,
		cfg:      cfg,
		enemyReg: enemyReg,
		itemReg:  itemReg,
	}
	if err := s.enterFloor(ctx, 1); err != nil {
		return nil, err
	}
	p := cfg.Player
	s.Player = entity.NewPlayer(s.Floor.Spawn, p.HP, p.Attack, p.Defense, p.InventoryCapacity)
	return s, nil
}

// enterFloor generates and populates the given floor, replacing the current
// one. The per-floor rng stream is derived from the run seed so a seed fully
// determines the whole run. Nothing is committed until generation succeeds:
// on error the current floor and its entities stay intact.
func (s *CoreState) enterFloor(ctx context.Context, floorNum int) error {
	rng := rand.New(rand.NewSource(s.Seed + int64(floorNum)*7919))

	floor, err := world.GenerateFloor(ctx, s.cfg.GenParams(), floorNum, rng)
	if err != nil {
		return fmt.Errorf("engine: floor %d: %w", floorNum, err)
	}
	s.rng = rng
	s.Floor = floor
	s.FloorNum = floorNum
	s.enemies = map[entity.ID]*entity.Enemy{}
	s.items = map[entity.ID]*entity.Item{}
	s.populate()
	if s.Player != nil {
		s.Player.Pos = floor.Spawn
	}
	return nil
}

// populate scatters enemies and items across the fresh floor. Every closed
// door gets a matching key somewhere on the floor, so no content is ever
// locked away for good.
func (s *CoreState) populate() {
	d := s.cfg.Difficulty
	hpBonus := d.HPBonusPerFloor * (s.FloorNum - 1)
	attackBonus := (s.FloorNum - 1) / d.AttackDivisor

	enemyCount := s.FloorNum*d.EnemiesPerFloor + s.rng.Intn(2)
	for i := 0; i < enemyCount; i++ {
		pos, ok := s.randomFreeTile()
		if !ok {
			break
		}
		def := s.enemyReg.SpawnRandom(s.rng)
		if def == nil {
			break
		}
		e := entity.NewEnemy(s.allocID(), def, pos, hpBonus, attackBonus)
		s.enemies[e.ID] = e
	}

	if keyDef := s.itemReg.GetByKind(gamedata.ItemKey); keyDef != nil {
		for range s.Floor.Doors {
			pos, ok := s.randomFreeTile()
			if !ok {
				break
			}
			it := entity.NewItem(s.allocID(), keyDef, pos)
			s.items[it.ID] = it
		}
	}

	itemCount := d.ItemsBase + s.FloorNum*d.ItemsPerFloor
	for i := 0; i < itemCount; i++ {
		pos, ok := s.randomFreeTile()
		if !ok {
			break
		}
		def := s.itemReg.SpawnRandom(s.rng)
		if def == nil {
			break
		}
		it := entity.NewItem(s.allocID(), def, pos)
		s.items[it.ID] = it
	}
}

// randomFreeTile picks a walkable tile that holds no entity and is neither
// the spawn nor the stairs. Gives up after a bounded number of draws so a
// crowded floor cannot spin forever.
func (s *CoreState) randomFreeTile() (path.Point, bool) {
	g := s.Floor.Grid
	for tries := 0; tries < 500; tries++ {
		q := path.Point{X: s.rng.Intn(g.Width), Y: s.rng.Intn(g.Height)}
		if !g.IsWalkable(q.X, q.Y) {
			continue
		}
		if q == s.Floor.Spawn || q == s.Floor.Stairs {
			continue
		}
		if s.EnemyAt(q) != nil || s.ItemAt(q) != nil {
			continue
		}
		return q, true
	}
	return path.Point{}, false
}

func (s *CoreState) allocID() entity.ID {
	id := s.nextID
	s.nextID++
	return id
}

// Enemies returns the live enemies in ascending ID order, the canonical
// iteration order everywhere in the engine.
func (s *CoreState) Enemies() []*entity.Enemy {
	out := make([]*entity.Enemy, 0, len(s.enemies))
	for _, e := range s.enemies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Items returns the ground items in ascending ID order.
func (s *CoreState) Items() []*entity.Item {
	out := make([]*entity.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EnemyAt returns the live enemy at the position, or nil.
func (s *CoreState) EnemyAt(q path.Point) *entity.Enemy {
	for _, e := range s.enemies {
		if e.Pos == q {
			return e
		}
	}
	return nil
}

// ItemAt returns the ground item at the position, or nil.
func (s *CoreState) ItemAt(q path.Point) *entity.Item {
	for _, it := range s.items {
		if it.Pos == q {
			return it
		}
	}
	return nil
}

// Terminal reports whether the run has ended.
func (s *CoreState) Terminal() bool {
	return s.Outcome != OutcomeRunning
}

// Messages returns the message log, oldest first.
func (s *CoreState) Messages() []string {
	return s.messages
}

func (s *CoreState) log(events []Event) {
	for _, ev := range events {
		if ev.Message == "" {
			continue
		}
		s.messages = append(s.messages, ev.Message)
	}
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

// walkView overlays entity occupancy on the grid: a tile with a live enemy
// on it is not walkable. The moving enemy's own tile is exempted so its
// path search can start from where it stands.
type walkView struct {
	s      *CoreState
	ignore path.Point
}

func (v walkView) IsWalkable(x, y int) bool {
	if !v.s.Floor.Grid.IsWalkable(x, y) {
		return false
	}
	q := path.Point{X: x, Y: y}
	if q == v.ignore {
		return true
	}
	return v.s.EnemyAt(q) == nil
}
