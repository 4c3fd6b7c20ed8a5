package entity

import (
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

func newTestPlayer() *Player {
	weapons := gamedata.MustLoadWeaponRegistry()
	def := gamedata.MustLoadPlayer()
	return NewPlayer(&def, weapons.Default(), "Tester")
}

func TestNewPlayer(t *testing.T) {
	p := newTestPlayer()

	if p.Name != "Tester" {
		t.Errorf("Expected name Tester, got %q", p.Name)
	}
	if p.HP != 5 || p.MaxHP != 5 {
		t.Errorf("Expected 5/5 health, got %d/%d", p.HP, p.MaxHP)
	}
	if p.HasSpareImplement() {
		t.Error("New player should hold bare hands")
	}
	if p.HasCondition() {
		t.Error("New player should have no condition")
	}
}

func TestNewPlayerDefaultName(t *testing.T) {
	def := gamedata.MustLoadPlayer()
	p := NewPlayer(&def, nil, "")
	if p.Name != def.Name {
		t.Errorf("Expected default name %q, got %q", def.Name, p.Name)
	}
}

func TestVitalsClamp(t *testing.T) {
	v := NewVitals(5)

	if got := v.TakeDamage(7); got != 5 {
		t.Errorf("TakeDamage(7) = %d, want 5", got)
	}
	if v.HP != 0 {
		t.Errorf("Expected HP 0, got %d", v.HP)
	}
	if v.IsAlive() {
		t.Error("Expected dead at 0 HP")
	}

	if got := v.Heal(10); got != 5 {
		t.Errorf("Heal(10) = %d, want 5", got)
	}
	if v.HP != 5 {
		t.Errorf("Expected HP capped at 5, got %d", v.HP)
	}
	if got := v.Heal(1); got != 0 {
		t.Errorf("Heal at max = %d, want 0", got)
	}
	if got := v.TakeDamage(-3); got != 0 || v.HP != 5 {
		t.Errorf("Negative damage should be ignored, got %d (HP %d)", got, v.HP)
	}
}

func TestVitalsClampRepairsSnapshot(t *testing.T) {
	v := Vitals{HP: 9, MaxHP: 5, Condition: combat.Condition{Kind: gamedata.StatusPoisoned}}
	v.Clamp()
	if v.HP != 5 {
		t.Errorf("Expected HP 5, got %d", v.HP)
	}
	if v.Condition != combat.NoCondition {
		t.Errorf("Expected zero-duration condition cleared, got %+v", v.Condition)
	}

	v = Vitals{HP: -2, MaxHP: 5}
	v.Clamp()
	if v.HP != 0 {
		t.Errorf("Expected HP 0, got %d", v.HP)
	}
}

func TestPlayerConditionTick(t *testing.T) {
	p := newTestPlayer()
	p.SetCondition(combat.Condition{Kind: gamedata.StatusPoisoned, Duration: 2})

	tick, ok := p.TickCondition()
	if !ok || tick.Damage != 1 || tick.Ended {
		t.Fatalf("first tick = %+v (ok %v), want 1 damage, not ended", tick, ok)
	}
	if p.HP != 4 || p.GetCondition().Duration != 1 {
		t.Errorf("Expected HP 4 and 1 turn left, got HP %d, %d turns", p.HP, p.GetCondition().Duration)
	}

	tick, ok = p.TickCondition()
	if !ok || !tick.Ended {
		t.Fatalf("second tick = %+v (ok %v), want ended", tick, ok)
	}
	if p.HasCondition() {
		t.Error("Condition should be cleared")
	}

	if _, ok := p.TickCondition(); ok {
		t.Error("Expected no tick once cleared")
	}
}

func TestChestOpenOnce(t *testing.T) {
	weapons := gamedata.MustLoadWeaponRegistry()
	p := newTestPlayer()
	chest := NewChest(3, 4, weapons.GetByID(gamedata.ImplementBlade))

	if !chest.Open(p) {
		t.Fatal("First open should succeed")
	}
	if p.Implement.ID != gamedata.ImplementBlade {
		t.Errorf("Expected blade equipped, got %q", p.Implement.ID)
	}

	p.Equip(weapons.GetByID(gamedata.ImplementBow))
	if chest.Open(p) {
		t.Error("Second open should be a no-op")
	}
	if p.Implement.ID != gamedata.ImplementBow {
		t.Errorf("Opened chest must not change equipment, got %q", p.Implement.ID)
	}
	if !chest.Opened {
		t.Error("Chest should stay opened")
	}
}

func TestOpponentFromDef(t *testing.T) {
	registry := gamedata.MustLoadEnemyRegistry()
	def := registry.GetByID("goblin")

	o := NewOpponent(def, 2, 7, 3)

	if o.ID() != "goblin" || o.Symbol != 'g' {
		t.Errorf("Expected goblin 'g', got %q %q", o.ID(), o.Symbol)
	}
	if !o.At(2, 7) || o.At(7, 2) {
		t.Error("At() should match row/col exactly")
	}
	if o.HP != 3 || o.MaxHP != 3 {
		t.Errorf("Expected 3/3, got %d/%d", o.HP, o.MaxHP)
	}
}
