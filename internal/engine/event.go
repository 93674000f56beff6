package engine

import "github.com/samdwyer/deepfall/internal/path"

// EventKind discriminates what happened during a turn.
type EventKind string

const (
	EventMoved         EventKind = "moved"
	EventDamaged       EventKind = "damaged"
	EventDied          EventKind = "died"
	EventItemPickedUp  EventKind = "item_picked_up"
	EventItemUsed      EventKind = "item_used"
	EventEquipped      EventKind = "equipped"
	EventDoorOpened    EventKind = "door_opened"
	EventInventoryFull EventKind = "inventory_full"
	EventRejected      EventKind = "action_rejected"
	EventFloorComplete EventKind = "floor_complete"
	EventGameOver      EventKind = "game_over"
	EventVictory       EventKind = "victory"
)

// Event is one observable consequence of a resolved turn. The engine emits
// events in resolution order; the presentation layer turns Message into the
// scrolling log and may inspect the typed fields for effects.
type Event struct {
	Kind    EventKind  `json:"kind"`
	Message string     `json:"message"`
	Actor   string     `json:"actor,omitempty"`
	Target  string     `json:"target,omitempty"`
	From    path.Point `json:"from,omitzero"`
	Pos     path.Point `json:"pos,omitzero"`
	Amount  int        `json:"amount,omitempty"`
	Floor   int        `json:"floor,omitempty"`
}
