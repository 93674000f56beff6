package entity

import "errors"

// ErrInventoryFull is returned when adding to a full inventory. The item
// stays where it was; the turn engine reports it as an event, not a fatal
// error.
var ErrInventoryFull = errors.New("entity: inventory full")

// Inventory is a bounded, ordered sequence of carried item definition IDs.
type Inventory struct {
	Capacity int      `json:"capacity"`
	Slots    []string `json:"slots"`
}

// NewInventory creates an empty inventory with the given capacity.
func NewInventory(capacity int) Inventory {
	return Inventory{Capacity: capacity, Slots: make([]string, 0, capacity)}
}

// Add appends an item, or fails with ErrInventoryFull.
func (inv *Inventory) Add(defID string) error {
	if len(inv.Slots) >= inv.Capacity {
		return ErrInventoryFull
	}
	inv.Slots = append(inv.Slots, defID)
	return nil
}

// At returns the item in the given slot, or "" when the slot is empty or
// out of range.
func (inv *Inventory) At(slot int) string {
	if slot < 0 || slot >= len(inv.Slots) {
		return ""
	}
	return inv.Slots[slot]
}

// Remove deletes and returns the item in the given slot, preserving the
// order of the rest. Returns false for an empty or invalid slot.
func (inv *Inventory) Remove(slot int) (string, bool) {
	if slot < 0 || slot >= len(inv.Slots) {
		return "", false
	}
	defID := inv.Slots[slot]
	inv.Slots = append(inv.Slots[:slot], inv.Slots[slot+1:]...)
	return defID, true
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int {
	return len(inv.Slots)
}

// Full reports whether the inventory is at capacity.
func (inv *Inventory) Full() bool {
	return len(inv.Slots) >= inv.Capacity
}
