package combat

import "github.com/samdwyer/dungeoncrawl/internal/gamedata"

// PoisonDuration is the number of turns a freshly inflicted poison lasts.
const PoisonDuration = 2

// Condition is a timed status effect. A combatant carries at most one.
// Duration == 0 always means no condition.
type Condition struct {
	Kind     gamedata.StatusEffectType `json:"kind"`
	Duration int                       `json:"duration"`
}

// NoCondition is the cleared state.
var NoCondition = Condition{Kind: gamedata.StatusNone}

// Active reports whether the condition still has turns left.
func (c Condition) Active() bool {
	return c.Kind != "" && c.Kind != gamedata.StatusNone && c.Duration > 0
}

// Normalize collapses any exhausted or kind-less condition to NoCondition.
func (c Condition) Normalize() Condition {
	if !c.Active() {
		return NoCondition
	}
	return c
}

// ConditionTick is what happened when a condition was processed for one turn.
type ConditionTick struct {
	Kind      gamedata.StatusEffectType
	Damage    int // Health actually lost
	Remaining int // Turns left after this tick
	Ended     bool
}

// TickCondition advances c by one turn against the holder's health.
// Poison costs 1 health per turn. It returns the next condition and the tick;
// ok is false when c was not active and nothing happened.
func TickCondition(c Condition, holder Combatant) (next Condition, tick ConditionTick, ok bool) {
	if !c.Active() {
		return NoCondition, ConditionTick{}, false
	}

	tick.Kind = c.Kind
	switch c.Kind {
	case gamedata.StatusPoisoned:
		tick.Damage = holder.TakeDamage(1)
	}

	c.Duration--
	tick.Remaining = c.Duration
	if c.Duration <= 0 {
		tick.Ended = true
		return NoCondition, tick, true
	}
	return c, tick, true
}
