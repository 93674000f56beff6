package gamedata

import "github.com/gdamore/tcell/v2"

// ItemKind classifies what an item does when used or carried.
type ItemKind string

const (
	// ItemPotion heals the drinker and is consumed.
	ItemPotion ItemKind = "potion"
	// ItemWeapon grants an attack bonus while equipped.
	ItemWeapon ItemKind = "weapon"
	// ItemKey opens one locked door and is consumed. Keys bypass the
	// inventory: picking one up increments the player's key count.
	ItemKey ItemKind = "key"
)

// ItemDef defines an item type loaded from JSON.
type ItemDef struct {
	ID          string   `json:"id" jsonschema:"title=Item id,pattern=^[a-z0-9_]+$"`
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind" jsonschema:"enum=potion,enum=weapon,enum=key"`
	Glyph       string   `json:"glyph" jsonschema:"description=Single character for rendering"`
	Color       string   `json:"color" jsonschema:"description=Hex color code"`
	HealAmount  int      `json:"healAmount,omitempty" jsonschema:"description=HP restored by a potion"`
	AttackBonus int      `json:"attackBonus,omitempty" jsonschema:"description=Attack added while a weapon is equipped"`
	SpawnWeight int      `json:"spawnWeight"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	if len(i.Glyph) == 0 {
		return '?'
	}
	return rune(i.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (i *ItemDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(i.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
