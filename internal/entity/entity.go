// Package entity provides the game entities: the player, enemies and items.
//
// The entity model owns every live entity keyed by a stable ID. The grid
// never owns entities; entity-to-tile association is a positional lookup,
// re-derived each query.
package entity

// ID is a stable entity identifier, allocated monotonically per run.
// Ascending ID order is the canonical iteration order for enemy turns, so
// resolution is deterministic and testable.
type ID int64
