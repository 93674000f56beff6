package entity

import (
	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/path"
)

// AIState is an enemy's behavioral state. Dead is not a state: an enemy at
// zero HP is removed from the live set immediately.
type AIState int

const (
	// AIIdle - the enemy has not noticed the player.
	AIIdle AIState = iota
	// AIChasing - the enemy is pathing toward the player.
	AIChasing
	// AIAttacking - the enemy is adjacent and striking.
	AIAttacking
)

// String returns a human-readable state name.
func (s AIState) String() string {
	switch s {
	case AIIdle:
		return "idle"
	case AIChasing:
		return "chasing"
	case AIAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

// Enemy is a hostile creature on the current floor. Stats come from its
// data-driven kind definition plus floor scaling; behavior differences
// between kinds are fields, not subclasses.
type Enemy struct {
	ID              ID         `json:"id"`
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	Pos             path.Point `json:"pos"`
	HP              int        `json:"hp"`
	MaxHP           int        `json:"maxHp"`
	Attack          int        `json:"attack"`
	Defense         int        `json:"defense"`
	DetectionRadius int        `json:"detectionRadius"`
	Patience        int        `json:"patience"`

	State AIState `json:"state"`
	// LostTurns counts consecutive chase turns without contact; at
	// Patience the enemy gives up and goes idle.
	LostTurns int `json:"lostTurns"`
}

// NewEnemy creates an enemy of the given kind with floor-scaled stats.
func NewEnemy(id ID, def *gamedata.EnemyDef, pos path.Point, hpBonus, attackBonus int) *Enemy {
	return &Enemy{
		ID:              id,
		Kind:            def.ID,
		Name:            def.Name,
		Pos:             pos,
		HP:              def.HP + hpBonus,
		MaxHP:           def.HP + hpBonus,
		Attack:          def.Attack + attackBonus,
		Defense:         def.Defense,
		DetectionRadius: def.DetectionRadius,
		Patience:        def.Patience,
		State:           AIIdle,
	}
}

// IsAlive returns true while the enemy has HP remaining.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > e.HP {
		actual = e.HP
	}
	e.HP -= actual
	return actual
}
