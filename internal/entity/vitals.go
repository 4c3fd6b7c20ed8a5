// Package entity provides the player, opponents and chests that populate a level.
package entity

import "github.com/samdwyer/dungeoncrawl/internal/combat"

// Vitals is the health and condition state shared by every combatant.
// HP stays within [0, MaxHP] after every mutation.
type Vitals struct {
	HP        int              `json:"hp"`
	MaxHP     int              `json:"maxHp"`
	Condition combat.Condition `json:"condition"`
}

// NewVitals creates full-health vitals with no condition.
func NewVitals(maxHP int) Vitals {
	return Vitals{HP: maxHP, MaxHP: maxHP, Condition: combat.NoCondition}
}

// IsAlive returns true if any health remains.
func (v *Vitals) IsAlive() bool { return v.HP > 0 }

// GetHP returns current health.
func (v *Vitals) GetHP() int { return v.HP }

// GetMaxHP returns maximum health.
func (v *Vitals) GetMaxHP() int { return v.MaxHP }

// IsFullHealth reports whether health is at its maximum.
func (v *Vitals) IsFullHealth() bool { return v.HP >= v.MaxHP }

// TakeDamage reduces health and returns actual damage taken.
func (v *Vitals) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > v.HP {
		actual = v.HP
	}
	v.HP -= actual
	return actual
}

// Heal restores health and returns actual amount healed.
func (v *Vitals) Heal(amount int) int {
	if amount <= 0 || v.HP >= v.MaxHP {
		return 0
	}
	actual := amount
	if v.HP+actual > v.MaxHP {
		actual = v.MaxHP - v.HP
	}
	v.HP += actual
	return actual
}

// GetCondition returns the active condition, or combat.NoCondition.
func (v *Vitals) GetCondition() combat.Condition { return v.Condition.Normalize() }

// SetCondition replaces the condition. Exhausted conditions are stored as none.
func (v *Vitals) SetCondition(c combat.Condition) { v.Condition = c.Normalize() }

// HasCondition reports whether a condition is active.
func (v *Vitals) HasCondition() bool { return v.Condition.Active() }

// Clamp restores the health invariant, e.g. after loading a snapshot.
func (v *Vitals) Clamp() {
	if v.MaxHP < 0 {
		v.MaxHP = 0
	}
	if v.HP > v.MaxHP {
		v.HP = v.MaxHP
	}
	if v.HP < 0 {
		v.HP = 0
	}
	v.Condition = v.Condition.Normalize()
}
