package entity

import "github.com/samdwyer/deepfall/internal/path"

// Player is the player character. It persists across floors, carrying its
// inventory, keys and HP; only its position is reset on floor transitions.
type Player struct {
	Pos        path.Point `json:"pos"`
	HP         int        `json:"hp"`
	MaxHP      int        `json:"maxHp"`
	BaseAttack int        `json:"baseAttack"`
	Defense    int        `json:"defense"`
	Keys       int        `json:"keys"`
	Inventory  Inventory  `json:"inventory"`

	// WeaponID and WeaponBonus describe the equipped weapon, if any.
	// Equipping takes the weapon out of the inventory; the one it
	// replaces goes back in.
	WeaponID    string `json:"weaponId,omitempty"`
	WeaponBonus int    `json:"weaponBonus,omitempty"`
}

// NewPlayer creates a player at the given position.
func NewPlayer(pos path.Point, hp, attack, defense, inventoryCapacity int) *Player {
	return &Player{
		Pos:        pos,
		HP:         hp,
		MaxHP:      hp,
		BaseAttack: attack,
		Defense:    defense,
		Inventory:  NewInventory(inventoryCapacity),
	}
}

// Attack returns the player's effective attack power including the
// equipped weapon bonus.
func (p *Player) Attack() int {
	return p.BaseAttack + p.WeaponBonus
}

// IsAlive returns true while the player has HP remaining.
func (p *Player) IsAlive() bool {
	return p.HP > 0
}

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.HP {
		actual = p.HP
	}
	p.HP -= actual
	return actual
}

// Heal restores HP and returns the actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.HP+actual > p.MaxHP {
		actual = p.MaxHP - p.HP
	}
	p.HP += actual
	return actual
}

// Equip makes the weapon in defID the active one, replacing any previous
// bonus.
func (p *Player) Equip(defID string, bonus int) {
	p.WeaponID = defID
	p.WeaponBonus = bonus
}
