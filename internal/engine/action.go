package engine

import "github.com/samdwyer/deepfall/internal/path"

// Direction is one of the four cardinal movement directions.
type Direction int

const (
	DirNorth Direction = iota
	DirEast
	DirSouth
	DirWest
)

// Delta returns the unit offset for the direction.
func (d Direction) Delta() path.Point {
	switch d {
	case DirNorth:
		return path.Point{X: 0, Y: -1}
	case DirEast:
		return path.Point{X: 1, Y: 0}
	case DirSouth:
		return path.Point{X: 0, Y: 1}
	default:
		return path.Point{X: -1, Y: 0}
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirEast:
		return "east"
	case DirSouth:
		return "south"
	default:
		return "west"
	}
}

// ActionKind discriminates player actions.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionAttack
	ActionUseItem
	ActionPickUp
	ActionWait
)

// Action is one player intent for a turn. Every submitted action consumes
// the turn, including rejected ones; rejections surface as events so the
// boundary can re-prompt or not, as it pleases.
type Action struct {
	Kind ActionKind
	Dir  Direction
	Slot int
}

// Move moves or interacts one tile in the given direction.
func Move(dir Direction) Action { return Action{Kind: ActionMove, Dir: dir} }

// Attack strikes the adjacent tile in the given direction.
func Attack(dir Direction) Action { return Action{Kind: ActionAttack, Dir: dir} }

// UseItem consumes or equips the item in the given inventory slot.
func UseItem(slot int) Action { return Action{Kind: ActionUseItem, Slot: slot} }

// PickUp lifts the item under the player, if any.
func PickUp() Action { return Action{Kind: ActionPickUp} }

// Wait passes the turn.
func Wait() Action { return Action{Kind: ActionWait} }
