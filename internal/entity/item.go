package entity

import (
	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/path"
)

// Item is an item lying on the floor. Once picked up it lives in the
// player's inventory as a bare definition ID; ground items carry position
// and a stable entity ID.
type Item struct {
	ID    ID                `json:"id"`
	DefID string            `json:"defId"`
	Name  string            `json:"name"`
	Kind  gamedata.ItemKind `json:"kind"`
	Pos   path.Point        `json:"pos"`
}

// NewItem creates a ground item from its definition.
func NewItem(id ID, def *gamedata.ItemDef, pos path.Point) *Item {
	return &Item{
		ID:    id,
		DefID: def.ID,
		Name:  def.Name,
		Kind:  def.Kind,
		Pos:   pos,
	}
}
