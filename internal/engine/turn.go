package engine

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deepfall/internal/entity"
	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/telemetry"
	"github.com/samdwyer/deepfall/internal/world"
)

// ErrRunOver is returned when an action is submitted after the run has
// already ended.
var ErrRunOver = errors.New("engine: run is over")

// AdvanceTurn resolves one full game turn: the player action first, then
// every enemy in ascending ID order, then end-of-turn bookkeeping. Every
// submitted action consumes the turn; rejected actions surface as events,
// not errors. No enemy acts once the player is dead.
func (s *CoreState) AdvanceTurn(ctx context.Context, action Action) ([]Event, error) {
	if s.Terminal() {
		return nil, ErrRunOver
	}

	tracer := telemetry.Tracer("engine")
	_, span := tracer.Start(ctx, "turn.advance")
	defer span.End()

	events := s.applyPlayerAction(action)

	for _, e := range s.Enemies() {
		if !s.Player.IsAlive() {
			break
		}
		events = append(events, s.advanceEnemy(e)...)
	}

	s.Turn++

	if !s.Player.IsAlive() {
		s.Outcome = OutcomeDead
		events = append(events,
			Event{Kind: EventDied, Actor: "player", Message: "You die."},
			Event{Kind: EventGameOver, Floor: s.FloorNum, Message: fmt.Sprintf("Game over on floor %d.", s.FloorNum)},
		)
	} else if s.Player.Pos == s.Floor.Stairs {
		if s.FloorNum >= s.cfg.Difficulty.FinalFloor {
			s.Outcome = OutcomeVictory
			events = append(events, Event{
				Kind: EventVictory, Floor: s.FloorNum,
				Message: "You descend the final stair into daylight. Victory!",
			})
		} else {
			next := s.FloorNum + 1
			events = append(events, Event{
				Kind: EventFloorComplete, Floor: next,
				Message: fmt.Sprintf("You descend to floor %d.", next),
			})
			if err := s.enterFloor(ctx, next); err != nil {
				// Generation failed: the current floor survives and the
				// turn is handed back, player still on the stairs.
				s.Turn--
				return nil, err
			}
		}
	}

	span.SetAttributes(
		attribute.Int("turn.number", s.Turn),
		attribute.Int("turn.floor", s.FloorNum),
		attribute.Int("turn.events", len(events)),
		attribute.String("turn.outcome", string(s.Outcome)),
	)

	s.log(events)
	return events, nil
}

func (s *CoreState) applyPlayerAction(action Action) []Event {
	switch action.Kind {
	case ActionMove:
		return s.playerMove(action.Dir)
	case ActionAttack:
		return s.playerAttack(action.Dir)
	case ActionUseItem:
		return s.playerUseItem(action.Slot)
	case ActionPickUp:
		return s.playerPickUp()
	default:
		return nil
	}
}

// playerMove walks one tile, or resolves whatever occupies the target: an
// enemy means a melee attack, a closed door means opening it with a key.
func (s *CoreState) playerMove(dir Direction) []Event {
	d := dir.Delta()
	target := s.Player.Pos
	target.X += d.X
	target.Y += d.Y

	if e := s.EnemyAt(target); e != nil {
		return s.playerStrike(e)
	}

	tile, err := s.Floor.Grid.TileAt(target.X, target.Y)
	if err != nil || tile == world.TileWall {
		return []Event{{
			Kind: EventRejected, Pos: target,
			Message: "You bump into a wall.",
		}}
	}
	if tile == world.TileDoorClosed {
		if s.Player.Keys > 0 {
			s.Player.Keys--
			s.Floor.Grid.OpenDoor(target.X, target.Y)
			return []Event{{
				Kind: EventDoorOpened, Pos: target,
				Message: "You unlock the door.",
			}}
		}
		return []Event{{
			Kind: EventRejected, Pos: target,
			Message: "The door is locked. You need a key.",
		}}
	}
	if !tile.Walkable() {
		return []Event{{Kind: EventRejected, Pos: target, Message: "You can't go that way."}}
	}

	from := s.Player.Pos
	s.Player.Pos = target
	return []Event{{Kind: EventMoved, Actor: "player", From: from, Pos: target}}
}

func (s *CoreState) playerAttack(dir Direction) []Event {
	d := dir.Delta()
	target := s.Player.Pos
	target.X += d.X
	target.Y += d.Y

	if e := s.EnemyAt(target); e != nil {
		return s.playerStrike(e)
	}
	return []Event{{
		Kind: EventRejected, Pos: target,
		Message: "You swing at empty air.",
	}}
}

func (s *CoreState) playerStrike(e *entity.Enemy) []Event {
	dmg := damage(s.Player.Attack(), e.Defense)
	e.TakeDamage(dmg)
	events := []Event{{
		Kind: EventDamaged, Actor: "player", Target: e.Name, Amount: dmg,
		Message: fmt.Sprintf("You hit the %s for %d damage.", e.Name, dmg),
	}}
	if !e.IsAlive() {
		delete(s.enemies, e.ID)
		events = append(events, Event{
			Kind: EventDied, Actor: e.Name, Pos: e.Pos,
			Message: fmt.Sprintf("The %s dies.", e.Name),
		})
	}
	return events
}

func (s *CoreState) playerUseItem(slot int) []Event {
	defID := s.Player.Inventory.At(slot)
	if defID == "" {
		return []Event{{Kind: EventRejected, Message: "That slot is empty."}}
	}
	def := s.itemReg.GetByID(defID)
	if def == nil {
		return []Event{{Kind: EventRejected, Message: "You can't use that."}}
	}

	switch def.Kind {
	case gamedata.ItemPotion:
		s.Player.Inventory.Remove(slot)
		healed := s.Player.Heal(def.HealAmount)
		return []Event{{
			Kind: EventItemUsed, Target: def.Name, Amount: healed,
			Message: fmt.Sprintf("You drink the %s and recover %d HP.", def.Name, healed),
		}}
	case gamedata.ItemWeapon:
		s.Player.Inventory.Remove(slot)
		prev := s.Player.WeaponID
		s.Player.Equip(def.ID, def.AttackBonus)
		if prev != "" {
			// Swap: the old weapon goes back into the slot just freed.
			_ = s.Player.Inventory.Add(prev)
		}
		return []Event{{
			Kind: EventEquipped, Target: def.Name,
			Message: fmt.Sprintf("You wield the %s.", def.Name),
		}}
	default:
		return []Event{{Kind: EventRejected, Message: "You can't use that."}}
	}
}

func (s *CoreState) playerPickUp() []Event {
	it := s.ItemAt(s.Player.Pos)
	if it == nil {
		return []Event{{Kind: EventRejected, Message: "There is nothing here."}}
	}

	if it.Kind == gamedata.ItemKey {
		s.Player.Keys++
		delete(s.items, it.ID)
		return []Event{{
			Kind: EventItemPickedUp, Target: it.Name, Pos: it.Pos,
			Message: "You pick up a key.",
		}}
	}

	if err := s.Player.Inventory.Add(it.DefID); err != nil {
		return []Event{{
			Kind: EventInventoryFull, Target: it.Name,
			Message: "Your pack is full.",
		}}
	}
	delete(s.items, it.ID)
	return []Event{{
		Kind: EventItemPickedUp, Target: it.Name, Pos: it.Pos,
		Message: fmt.Sprintf("You pick up the %s.", it.Name),
	}}
}
