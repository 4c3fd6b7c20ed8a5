// Package combat resolves one encounter turn between the player and a single
// opponent.
//
// Every turn draws, in this order, from the Roller:
//
//  1. the opponent decision: Intn(3) -> attack, defend, heal
//  2. if the player attacks: Intn(10) == 0 is a critical hit, then, if the
//     implement inflicts a status, Intn(10) < 2 applies it
//  3. the sub-outcome: Intn(2) for attack-vs-defend, Intn(3) for
//     defend-vs-attack
//
// The resolver never produces display text; callers narrate TurnResult.
package combat

import (
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

const (
	criticalOdds   = 10 // 1 in criticalOdds attacks is critical
	statusOdds     = 10
	statusHits     = 2 // statusHits in statusOdds attacks inflict the implement's status
	opponentDamage = 1
	opponentHeal   = 1
)

// Roller is the randomness source. *rand.Rand satisfies it.
type Roller interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Combatant is the interface for any entity that can take part in an encounter.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	GetMaxHP() int

	// Mutations clamp health to [0, max].
	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed

	GetCondition() Condition
	SetCondition(c Condition)
}

// Armed is a combatant whose attacks are driven by an equipped implement.
type Armed interface {
	Combatant
	Weapon() *gamedata.WeaponDef
}

// Action is what the player chose for this turn.
type Action int

const (
	ActionInvalid Action = iota
	ActionAttack
	ActionDefend
)

// ParseAction maps a key to an action. Anything unrecognised is ActionInvalid.
func ParseAction(r rune) Action {
	switch r {
	case 'a', 'A':
		return ActionAttack
	case 'd', 'D':
		return ActionDefend
	default:
		return ActionInvalid
	}
}

// Coerce returns a if it is Attack or Defend and ActionInvalid otherwise.
func (a Action) Coerce() Action {
	switch a {
	case ActionAttack, ActionDefend:
		return a
	default:
		return ActionInvalid
	}
}

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	default:
		return "invalid"
	}
}

// Decision is the opponent's choice for this turn.
type Decision int

const (
	DecisionAttack Decision = iota
	DecisionDefend
	DecisionHeal
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case DecisionAttack:
		return "attack"
	case DecisionDefend:
		return "defend"
	case DecisionHeal:
		return "heal"
	default:
		return "unknown"
	}
}

// OutcomeCode identifies a combat sub-result independently of any text.
type OutcomeCode int

const (
	OutcomeNone OutcomeCode = iota
	OutcomePlayerDefendSuccess
	OutcomePlayerDefendFail
	OutcomeEnemyBlockHeld
	OutcomeEnemyBlockBroken
	OutcomeEnemyParry
	OutcomeStalemate
)

// String returns the outcome's stable identifier.
func (o OutcomeCode) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePlayerDefendSuccess:
		return "player_defend_success"
	case OutcomePlayerDefendFail:
		return "player_defend_fail"
	case OutcomeEnemyBlockHeld:
		return "enemy_block_held"
	case OutcomeEnemyBlockBroken:
		return "enemy_block_broken"
	case OutcomeEnemyParry:
		return "enemy_parry"
	case OutcomeStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// EncounterResult says whether the encounter continues after a turn.
type EncounterResult int

const (
	Ongoing EncounterResult = iota
	Victory
	Defeat
)

// String returns a human-readable result name.
func (r EncounterResult) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// TurnResult is the structured outcome of one turn.
type TurnResult struct {
	Action   Action // After coercion
	Decision Decision
	Outcome  OutcomeCode

	RolledDamage    int  // Damage the player's attack would deal (0 unless attacking)
	WasCritical     bool // RolledDamage came from the critical roll
	DamageDealt     int  // Health the opponent actually lost to the player's attack
	DamageTaken     int  // Health the player actually lost
	OpponentHealed  int  // Health the opponent actually regained
	HealInterrupted bool // The opponent's heal was turned into damage

	ConditionApplied gamedata.StatusEffectType // Set when the attack inflicted a status
	ConditionTick    *ConditionTick            // Set when the opponent's condition ticked

	Result EncounterResult
}

// Resolver resolves encounter turns.
type Resolver struct {
	roller Roller
}

// NewResolver creates a resolver drawing from roller.
func NewResolver(roller Roller) *Resolver {
	return &Resolver{roller: roller}
}

// ResolveTurn plays one turn: the opponent decides, the player's action and the
// decision are combined, health and conditions of both sides are mutated in
// place, and the result is returned for narration.
func (r *Resolver) ResolveTurn(action Action, player Armed, opponent Combatant) TurnResult {
	result := TurnResult{
		Action:   action.Coerce(),
		Decision: Decision(r.roller.Intn(3)),
	}

	if result.Action == ActionAttack {
		r.rollAttack(player.Weapon(), opponent, &result)
	}

	r.applyOutcome(player, opponent, &result)

	// A condition inflicted this turn first ticks on the next one.
	if result.ConditionApplied == "" {
		next, tick, ok := TickCondition(opponent.GetCondition(), opponent)
		opponent.SetCondition(next)
		if ok {
			result.ConditionTick = &tick
		}
	}

	switch {
	case !opponent.IsAlive():
		result.Result = Victory
	case !player.IsAlive():
		result.Result = Defeat
	default:
		result.Result = Ongoing
	}

	return result
}

// rollAttack draws the player's damage and any status the implement inflicts.
func (r *Resolver) rollAttack(weapon *gamedata.WeaponDef, opponent Combatant, result *TurnResult) {
	if weapon == nil {
		result.RolledDamage = opponentDamage
		return
	}

	result.RolledDamage = weapon.BaseDamage
	if r.roller.Intn(criticalOdds) == 0 {
		result.RolledDamage = weapon.CriticalDamage
		result.WasCritical = true
	}

	if weapon.InflictsStatus() && r.roller.Intn(statusOdds) < statusHits {
		opponent.SetCondition(Condition{Kind: weapon.StatusEffect, Duration: PoisonDuration})
		result.ConditionApplied = weapon.StatusEffect
	}
}

// applyOutcome combines the player's action with the opponent's decision.
func (r *Resolver) applyOutcome(player, opponent Combatant, result *TurnResult) {
	hitOpponent := func() {
		result.DamageDealt = opponent.TakeDamage(result.RolledDamage)
	}
	hitPlayer := func() {
		result.DamageTaken = player.TakeDamage(opponentDamage)
	}

	switch result.Decision {
	case DecisionAttack:
		switch result.Action {
		case ActionDefend:
			if r.roller.Intn(2) == 0 {
				result.Outcome = OutcomePlayerDefendSuccess
			} else {
				result.Outcome = OutcomePlayerDefendFail
				hitPlayer()
			}
		case ActionAttack:
			hitPlayer()
			hitOpponent()
		default:
			hitPlayer()
		}

	case DecisionDefend:
		if result.Action != ActionAttack {
			result.Outcome = OutcomeStalemate
			return
		}
		switch r.roller.Intn(3) {
		case 0:
			result.Outcome = OutcomeEnemyBlockHeld
		case 1:
			result.Outcome = OutcomeEnemyBlockBroken
			hitOpponent()
		default:
			result.Outcome = OutcomeEnemyParry
			hitPlayer()
		}

	case DecisionHeal:
		if result.Action == ActionAttack {
			result.HealInterrupted = true
			hitOpponent()
			return
		}
		result.OpponentHealed = opponent.Heal(opponentHeal)
	}
}
