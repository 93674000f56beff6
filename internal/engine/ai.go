package engine

import (
	"fmt"

	"github.com/samdwyer/deepfall/internal/entity"
	"github.com/samdwyer/deepfall/internal/path"
)

// advanceEnemy runs one enemy's turn through its state machine.
//
// Detection is Chebyshev distance against the enemy's radius, gated on the
// player being reachable over the bare grid. Occupancy is deliberately left
// out of that gate: another enemy transiently plugging a corridor must not
// put a chaser to sleep or burn its patience. A chasing enemy keeps pursuit
// for up to Patience consecutive turns after losing contact, then goes
// idle.
func (s *CoreState) advanceEnemy(e *entity.Enemy) []Event {
	if e.Pos.Adjacent4(s.Player.Pos) {
		e.State = entity.AIAttacking
		e.LostTurns = 0
		return []Event{s.enemyStrike(e)}
	}

	inRadius := e.Pos.Chebyshev(s.Player.Pos) <= e.DetectionRadius
	contact := inRadius && path.ShortestPath(s.Floor.Grid, e.Pos, s.Player.Pos) != nil

	switch e.State {
	case entity.AIIdle:
		if contact {
			e.State = entity.AIChasing
			e.LostTurns = 0
			return s.stepToward(e)
		}
	case entity.AIChasing, entity.AIAttacking:
		e.State = entity.AIChasing
		if contact {
			e.LostTurns = 0
			return s.stepToward(e)
		}
		e.LostTurns++
		if e.LostTurns >= e.Patience {
			e.State = entity.AIIdle
			e.LostTurns = 0
			break
		}
		// Still patient: press on toward the player.
		return s.stepToward(e)
	}

	return nil
}

// stepToward moves the enemy one tile down its route to the player and
// reports the move. The route respects occupancy: a blocked enemy holds
// position this turn without leaving the chase.
func (s *CoreState) stepToward(e *entity.Enemy) []Event {
	route := path.ShortestPath(walkView{s: s, ignore: e.Pos}, e.Pos, s.Player.Pos)
	if len(route) < 2 {
		return nil
	}
	next := route[1]
	if next == s.Player.Pos {
		return nil
	}
	if s.EnemyAt(next) != nil {
		return nil
	}
	from := e.Pos
	e.Pos = next
	return []Event{{Kind: EventMoved, Actor: e.Name, From: from, Pos: next}}
}

// enemyStrike resolves one melee hit on the player.
func (s *CoreState) enemyStrike(e *entity.Enemy) Event {
	dmg := damage(e.Attack, s.Player.Defense)
	s.Player.TakeDamage(dmg)
	return Event{
		Kind:    EventDamaged,
		Actor:   e.Name,
		Target:  "player",
		Amount:  dmg,
		Message: fmt.Sprintf("The %s hits you for %d damage.", e.Name, dmg),
	}
}

// damage applies the defense rule: attack minus defense, never below 1 for
// a positive attack.
func damage(attack, defense int) int {
	if attack <= 0 {
		return 0
	}
	d := attack - defense
	if d < 1 {
		d = 1
	}
	return d
}
