package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/deepfall/internal/config"
	"github.com/samdwyer/deepfall/internal/engine"
	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/storage"
	"github.com/samdwyer/deepfall/internal/telemetry"
	"github.com/samdwyer/deepfall/internal/ui"
)

// quickSlot is the save slot bound to the F5/F9 keys.
const quickSlot = "quicksave"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume a run",
	Long: `Start a new run, or continue from the quicksave slot.

Keys:
  arrows / hjkl  - move (walking into an enemy attacks it)
  HJKL           - attack in a direction without moving
  g              - pick up the item under you
  1-9            - use an inventory slot
  .              - wait one turn
  F5 / F9        - quicksave / quickload
  q              - quit`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Warn("telemetry setup failed, continuing without it", "err", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Error("telemetry shutdown", "err", err)
			}
		}()
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}

	enemyReg, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		log.Fatal("loading enemy data", "err", err)
	}
	itemReg, err := gamedata.LoadItemRegistry()
	if err != nil {
		log.Fatal("loading item data", "err", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Fatal("opening database", "err", err)
	}
	defer store.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state, err := engine.NewRun(ctx, cfg, enemyReg, itemReg, seed)
	if err != nil {
		log.Fatal("starting run", "err", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatal("initializing terminal", "err", err)
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen, enemyReg, itemReg)

	recorded := false
	for {
		renderer.Render(state)
		if state.Terminal() {
			if !recorded {
				recordOutcome(ctx, store, state)
				recorded = true
			}
			renderer.RenderGameOver(state)
		}

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				return
			}
			switch ev.Key() {
			case tcell.KeyF5:
				saveGame(ctx, store, state)
				continue
			case tcell.KeyF9:
				if restored := loadGame(ctx, store, cfg, enemyReg, itemReg); restored != nil {
					state = restored
					recorded = false
				}
				continue
			}
			if state.Terminal() {
				continue
			}
			action, ok := keyToAction(ev)
			if !ok {
				continue
			}
			if _, err := state.AdvanceTurn(ctx, action); err != nil {
				screen.Close()
				log.Fatal("turn resolution", "err", err)
			}
		}
	}
}

// keyToAction maps a terminal key event to a player action.
func keyToAction(ev *tcell.EventKey) (engine.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.Move(engine.DirNorth), true
	case tcell.KeyDown:
		return engine.Move(engine.DirSouth), true
	case tcell.KeyLeft:
		return engine.Move(engine.DirWest), true
	case tcell.KeyRight:
		return engine.Move(engine.DirEast), true
	}

	r := ev.Rune()
	switch r {
	case 'k':
		return engine.Move(engine.DirNorth), true
	case 'j':
		return engine.Move(engine.DirSouth), true
	case 'h':
		return engine.Move(engine.DirWest), true
	case 'l':
		return engine.Move(engine.DirEast), true
	case 'K':
		return engine.Attack(engine.DirNorth), true
	case 'J':
		return engine.Attack(engine.DirSouth), true
	case 'H':
		return engine.Attack(engine.DirWest), true
	case 'L':
		return engine.Attack(engine.DirEast), true
	case 'g':
		return engine.PickUp(), true
	case '.':
		return engine.Wait(), true
	}
	if r >= '1' && r <= '9' {
		return engine.UseItem(int(r - '1')), true
	}
	return engine.Action{}, false
}

func saveGame(ctx context.Context, store *storage.Store, state *engine.CoreState) {
	blob, err := state.Export()
	if err != nil {
		log.Error("exporting snapshot", "err", err)
		return
	}
	err = store.WriteSave(ctx, storage.SaveSlot{
		Slot:  quickSlot,
		RunID: state.RunID,
		Floor: state.FloorNum,
		Turn:  state.Turn,
		Blob:  blob,
	})
	if err != nil {
		log.Error("writing save", "err", err)
	}
}

func loadGame(ctx context.Context, store *storage.Store, cfg config.Config, enemyReg *gamedata.EnemyRegistry, itemReg *gamedata.ItemRegistry) *engine.CoreState {
	save, err := store.ReadSave(ctx, quickSlot)
	if err != nil {
		log.Error("reading save", "err", err)
		return nil
	}
	if save == nil {
		return nil
	}
	state, err := engine.Import(save.Blob, cfg, enemyReg, itemReg)
	if err != nil {
		log.Error("restoring snapshot", "err", err)
		return nil
	}
	return state
}

func recordOutcome(ctx context.Context, store *storage.Store, state *engine.CoreState) {
	err := store.RecordRun(ctx, storage.RunRecord{
		RunID:   state.RunID,
		Outcome: string(state.Outcome),
		Floor:   state.FloorNum,
		Turns:   state.Turn,
	})
	if err != nil {
		log.Error("recording run", "err", err)
	}
}
