package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deepfall/internal/engine"
	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/world"
)

// hudRows is the number of terminal rows reserved under the map for the
// status line and message log.
const hudRows = 6

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen   *Screen
	enemyReg *gamedata.EnemyRegistry
	itemReg  *gamedata.ItemRegistry
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, enemyReg *gamedata.EnemyRegistry, itemReg *gamedata.ItemRegistry) *Renderer {
	return &Renderer{screen: screen, enemyReg: enemyReg, itemReg: itemReg}
}

// Render draws the full game state: map, items, enemies, player, HUD.
func (r *Renderer) Render(s *engine.CoreState) {
	r.screen.Clear()

	grid := s.Floor.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile, err := grid.TileAt(x, y)
			if err != nil {
				continue
			}
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
		}
	}

	for _, it := range s.Items() {
		def := r.itemReg.GetByID(it.DefID)
		if def == nil {
			continue
		}
		style := tcell.StyleDefault.Foreground(def.TCellColor())
		r.screen.SetContent(it.Pos.X, it.Pos.Y, def.GlyphRune(), style)
	}

	for _, e := range s.Enemies() {
		def := r.enemyReg.GetByID(e.Kind)
		if def == nil {
			continue
		}
		style := tcell.StyleDefault.Foreground(def.TCellColor())
		r.screen.SetContent(e.Pos.X, e.Pos.Y, def.GlyphRune(), style)
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(s.Player.Pos.X, s.Player.Pos.Y, '@', playerStyle)

	r.renderHUD(s, grid.Height)

	r.screen.Show()
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileDoorClosed, world.TileDoorOpen:
		return tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	case world.TileStairsDown:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// renderHUD draws the status line and the message log tail below the map.
func (r *Renderer) renderHUD(s *engine.CoreState, mapHeight int) {
	p := s.Player

	status := fmt.Sprintf("HP %d/%d  ATK %d  Keys %d  Floor %d  Turn %d",
		p.HP, p.MaxHP, p.Attack(), p.Keys, s.FloorNum, s.Turn)
	r.putString(0, mapHeight, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	inv := "Pack:"
	for i := 0; i < p.Inventory.Capacity; i++ {
		id := p.Inventory.At(i)
		if id == "" {
			inv += fmt.Sprintf(" [%d]-", i+1)
			continue
		}
		name := id
		if def := r.itemReg.GetByID(id); def != nil {
			name = def.Name
		}
		inv += fmt.Sprintf(" [%d]%s", i+1, name)
	}
	if p.WeaponID != "" {
		if def := r.itemReg.GetByID(p.WeaponID); def != nil {
			inv += "  Wielding: " + def.Name
		}
	}
	r.putString(0, mapHeight+1, inv, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	msgs := s.Messages()
	tail := hudRows - 3
	if len(msgs) < tail {
		tail = len(msgs)
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i := 0; i < tail; i++ {
		r.putString(0, mapHeight+2+i, msgs[len(msgs)-tail+i], style)
	}
}

// RenderGameOver overlays the terminal-state banner.
func (r *Renderer) RenderGameOver(s *engine.CoreState) {
	msg := "GAME OVER - press q to quit"
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	if s.Outcome == engine.OutcomeVictory {
		msg = "VICTORY! - press q to quit"
		style = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	}
	w, h := r.screen.Size()
	x := (w - len(msg)) / 2
	if x < 0 {
		x = 0
	}
	r.putString(x, h/2, msg, style)
	r.screen.Show()
}

func (r *Renderer) putString(x, y int, msg string, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
