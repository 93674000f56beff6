package entity

import (
	"errors"
	"testing"

	"github.com/samdwyer/deepfall/internal/gamedata"
	"github.com/samdwyer/deepfall/internal/path"
)

func TestInventoryAddAndFull(t *testing.T) {
	inv := NewInventory(2)

	if err := inv.Add("health_potion"); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := inv.Add("sword"); err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if !inv.Full() {
		t.Fatal("inventory should be full at capacity")
	}
	if err := inv.Add("health_potion"); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("Add past capacity = %v, want ErrInventoryFull", err)
	}
	if inv.Len() != 2 {
		t.Fatalf("Len = %d, want 2", inv.Len())
	}
}

func TestInventoryRemovePreservesOrder(t *testing.T) {
	inv := NewInventory(4)
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := inv.Add(id); err != nil {
			t.Fatalf("Add(%q): %v", id, err)
		}
	}

	got, ok := inv.Remove(1)
	if !ok || got != "b" {
		t.Fatalf("Remove(1) = %q, %v, want \"b\", true", got, ok)
	}

	want := []string{"a", "c", "d"}
	for i, id := range want {
		if inv.At(i) != id {
			t.Fatalf("slot %d = %q, want %q", i, inv.At(i), id)
		}
	}

	if _, ok := inv.Remove(10); ok {
		t.Fatal("Remove of invalid slot should report false")
	}
}

func TestInventoryAt(t *testing.T) {
	inv := NewInventory(3)
	if got := inv.At(0); got != "" {
		t.Fatalf("At on empty slot = %q, want empty", got)
	}
	if got := inv.At(-1); got != "" {
		t.Fatalf("At(-1) = %q, want empty", got)
	}
}

func TestPlayerDamageAndHeal(t *testing.T) {
	p := NewPlayer(path.Point{X: 1, Y: 1}, 100, 10, 0, 5)

	if actual := p.TakeDamage(30); actual != 30 {
		t.Fatalf("TakeDamage(30) = %d, want 30", actual)
	}
	if p.HP != 70 {
		t.Fatalf("HP = %d, want 70", p.HP)
	}

	if healed := p.Heal(40); healed != 30 {
		t.Fatalf("Heal(40) = %d, want 30 capped at MaxHP", healed)
	}
	if p.HP != 100 {
		t.Fatalf("HP after heal = %d, want 100", p.HP)
	}

	if actual := p.TakeDamage(500); actual != 100 {
		t.Fatalf("lethal TakeDamage = %d, want 100", actual)
	}
	if p.IsAlive() {
		t.Fatal("player should be dead at zero HP")
	}
}

func TestPlayerEquip(t *testing.T) {
	p := NewPlayer(path.Point{}, 100, 10, 0, 5)
	if p.Attack() != 10 {
		t.Fatalf("unarmed Attack = %d, want 10", p.Attack())
	}

	p.Equip("sword", 10)
	if p.Attack() != 20 {
		t.Fatalf("armed Attack = %d, want 20", p.Attack())
	}

	// A new weapon replaces the old bonus rather than stacking.
	p.Equip("dagger", 4)
	if p.Attack() != 14 {
		t.Fatalf("re-equipped Attack = %d, want 14", p.Attack())
	}
	if p.WeaponID != "dagger" {
		t.Fatalf("WeaponID = %q, want dagger", p.WeaponID)
	}
}

func TestNewEnemyFloorScaling(t *testing.T) {
	def := &gamedata.EnemyDef{
		ID:              "goblin",
		Name:            "Goblin",
		HP:              20,
		Attack:          5,
		Defense:         1,
		DetectionRadius: 8,
		Patience:        4,
	}

	e := NewEnemy(7, def, path.Point{X: 3, Y: 4}, 6, 1)

	if e.HP != 26 || e.MaxHP != 26 {
		t.Fatalf("HP/MaxHP = %d/%d, want 26/26", e.HP, e.MaxHP)
	}
	if e.Attack != 6 {
		t.Fatalf("Attack = %d, want 6", e.Attack)
	}
	if e.State != AIIdle {
		t.Fatalf("State = %v, want idle", e.State)
	}
	if e.ID != 7 || e.Kind != "goblin" {
		t.Fatalf("identity = %d/%q", e.ID, e.Kind)
	}
}

func TestEnemyTakeDamage(t *testing.T) {
	def := &gamedata.EnemyDef{ID: "goblin", Name: "Goblin", HP: 10, Attack: 4}
	e := NewEnemy(1, def, path.Point{}, 0, 0)

	if actual := e.TakeDamage(3); actual != 3 {
		t.Fatalf("TakeDamage(3) = %d", actual)
	}
	if actual := e.TakeDamage(0); actual != 0 {
		t.Fatalf("TakeDamage(0) = %d, want 0", actual)
	}
	if actual := e.TakeDamage(99); actual != 7 {
		t.Fatalf("overkill TakeDamage = %d, want 7", actual)
	}
	if e.IsAlive() {
		t.Fatal("enemy should be dead")
	}
}

func TestAIStateString(t *testing.T) {
	cases := map[AIState]string{
		AIIdle:      "idle",
		AIChasing:   "chasing",
		AIAttacking: "attacking",
		AIState(99): "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
