package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines an enemy kind loaded from JSON. Behavior differences
// between kinds are data here, not subclasses: the AI step reads these
// fields and dispatches on them.
type EnemyDef struct {
	ID              string `json:"id" jsonschema:"title=Enemy id,pattern=^[a-z0-9_]+$"`
	Name            string `json:"name"`
	Glyph           string `json:"glyph" jsonschema:"description=Single character for rendering"`
	Color           string `json:"color" jsonschema:"description=Hex color code such as #00FF00"`
	HP              int    `json:"hp"`
	Attack          int    `json:"attack"`
	Defense         int    `json:"defense"`
	DetectionRadius int    `json:"detectionRadius" jsonschema:"description=Chebyshev distance at which an idle enemy notices the player"`
	Patience        int    `json:"patience" jsonschema:"description=Turns a chasing enemy keeps hunting after losing the player"`
	SpawnWeight     int    `json:"spawnWeight" jsonschema:"description=Relative spawn frequency; higher is more common"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
