package combat

import (
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// scriptedRoller returns queued values in order and fails the test when it
// runs dry or a value is out of range.
type scriptedRoller struct {
	t      *testing.T
	values []int
}

func roll(t *testing.T, values ...int) *scriptedRoller {
	return &scriptedRoller{t: t, values: values}
}

func (s *scriptedRoller) Intn(n int) int {
	s.t.Helper()
	if len(s.values) == 0 {
		s.t.Fatalf("roller exhausted (Intn(%d))", n)
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted value %d out of range for Intn(%d)", v, n)
	}
	return v
}

func (s *scriptedRoller) assertDrained() {
	s.t.Helper()
	if len(s.values) != 0 {
		s.t.Errorf("roller has %d unused values: %v", len(s.values), s.values)
	}
}

// mockCombatant is a test implementation of the Armed interface.
type mockCombatant struct {
	name      string
	hp, maxHP int
	weapon    *gamedata.WeaponDef
	condition Condition
}

func newMockCombatant(name string, hp int, weapon *gamedata.WeaponDef) *mockCombatant {
	return &mockCombatant{name: name, hp: hp, maxHP: hp, weapon: weapon, condition: NoCondition}
}

func (m *mockCombatant) GetName() string             { return m.name }
func (m *mockCombatant) IsAlive() bool               { return m.hp > 0 }
func (m *mockCombatant) GetHP() int                  { return m.hp }
func (m *mockCombatant) GetMaxHP() int               { return m.maxHP }
func (m *mockCombatant) Weapon() *gamedata.WeaponDef { return m.weapon }
func (m *mockCombatant) GetCondition() Condition     { return m.condition }
func (m *mockCombatant) SetCondition(c Condition)    { m.condition = c.Normalize() }

func (m *mockCombatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > m.hp {
		actual = m.hp
	}
	m.hp -= actual
	return actual
}

func (m *mockCombatant) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if m.hp+actual > m.maxHP {
		actual = m.maxHP - m.hp
	}
	m.hp += actual
	return actual
}

var (
	blade = &gamedata.WeaponDef{ID: gamedata.ImplementBlade, Name: "Sword", BaseDamage: 2, CriticalDamage: 4, StatusEffect: gamedata.StatusNone}
	bow   = &gamedata.WeaponDef{ID: gamedata.ImplementBow, Name: "Poison Bow", BaseDamage: 1, CriticalDamage: 2, StatusEffect: gamedata.StatusPoisoned}
)

const (
	rAttack = int(DecisionAttack)
	rDefend = int(DecisionDefend)
	rHeal   = int(DecisionHeal)
	noCrit  = 5
	crit    = 0
)

func TestResolveBlockBroken(t *testing.T) {
	tests := []struct {
		name     string
		critRoll int
		wantHP   int
		wantCrit bool
	}{
		{"base damage", noCrit, 8, false},
		{"critical", crit, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := newMockCombatant("Hero", 5, blade)
			opponent := newMockCombatant("Goblin", 10, nil)
			r := roll(t, rDefend, tt.critRoll, 1)

			result := NewResolver(r).ResolveTurn(ActionAttack, player, opponent)
			r.assertDrained()

			if result.Outcome != OutcomeEnemyBlockBroken {
				t.Errorf("Outcome = %v, want %v", result.Outcome, OutcomeEnemyBlockBroken)
			}
			if opponent.hp != tt.wantHP {
				t.Errorf("Expected opponent HP %d, got %d", tt.wantHP, opponent.hp)
			}
			if result.WasCritical != tt.wantCrit {
				t.Errorf("WasCritical = %v, want %v", result.WasCritical, tt.wantCrit)
			}
			if player.hp != 5 {
				t.Errorf("Expected player HP unchanged at 5, got %d", player.hp)
			}
		})
	}
}

func TestResolveOutcomeTable(t *testing.T) {
	tests := []struct {
		name           string
		action         Action
		rolls          []int
		wantOutcome    OutcomeCode
		wantPlayerHP   int
		wantOpponentHP int
	}{
		{"attack vs defend: defend success", ActionDefend, []int{rAttack, 0}, OutcomePlayerDefendSuccess, 5, 2},
		{"attack vs defend: defend fail", ActionDefend, []int{rAttack, 1}, OutcomePlayerDefendFail, 4, 2},
		{"attack vs attack: trade", ActionAttack, []int{rAttack, noCrit}, OutcomeNone, 4, 0},
		{"attack vs invalid", ActionInvalid, []int{rAttack}, OutcomeNone, 4, 2},
		{"defend vs attack: block held", ActionAttack, []int{rDefend, noCrit, 0}, OutcomeEnemyBlockHeld, 5, 2},
		{"defend vs attack: block broken", ActionAttack, []int{rDefend, noCrit, 1}, OutcomeEnemyBlockBroken, 5, 0},
		{"defend vs attack: parry", ActionAttack, []int{rDefend, noCrit, 2}, OutcomeEnemyParry, 4, 2},
		{"defend vs defend", ActionDefend, []int{rDefend}, OutcomeStalemate, 5, 2},
		{"defend vs invalid", ActionInvalid, []int{rDefend}, OutcomeStalemate, 5, 2},
		{"heal vs attack: interrupted", ActionAttack, []int{rHeal, noCrit}, OutcomeNone, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := newMockCombatant("Hero", 5, blade)
			opponent := newMockCombatant("Goblin", 2, nil)
			r := roll(t, tt.rolls...)

			result := NewResolver(r).ResolveTurn(tt.action, player, opponent)
			r.assertDrained()

			if result.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %v, want %v", result.Outcome, tt.wantOutcome)
			}
			if player.hp != tt.wantPlayerHP {
				t.Errorf("Expected player HP %d, got %d", tt.wantPlayerHP, player.hp)
			}
			if opponent.hp != tt.wantOpponentHP {
				t.Errorf("Expected opponent HP %d, got %d", tt.wantOpponentHP, opponent.hp)
			}
		})
	}
}

func TestResolveOpponentHeal(t *testing.T) {
	for _, action := range []Action{ActionDefend, ActionInvalid} {
		player := newMockCombatant("Hero", 5, blade)
		opponent := newMockCombatant("Goblin", 3, nil)
		opponent.hp = 1

		result := NewResolver(roll(t, rHeal)).ResolveTurn(action, player, opponent)

		if result.OpponentHealed != 1 || opponent.hp != 2 {
			t.Errorf("%v: Expected heal of 1 to HP 2, got healed %d HP %d", action, result.OpponentHealed, opponent.hp)
		}
		if player.hp != 5 {
			t.Errorf("%v: Expected player HP unchanged, got %d", action, player.hp)
		}
	}
}

func TestResolveOpponentHealCapped(t *testing.T) {
	player := newMockCombatant("Hero", 5, blade)
	opponent := newMockCombatant("Goblin", 3, nil)

	result := NewResolver(roll(t, rHeal)).ResolveTurn(ActionDefend, player, opponent)

	if opponent.hp != 3 {
		t.Errorf("Expected HP capped at 3, got %d", opponent.hp)
	}
	if result.OpponentHealed != 0 {
		t.Errorf("Expected 0 healing at max health, got %d", result.OpponentHealed)
	}
}

func TestResolveInterruptedHealIsNetDamage(t *testing.T) {
	for _, critRoll := range []int{noCrit, crit} {
		player := newMockCombatant("Hero", 5, blade)
		opponent := newMockCombatant("Ogre", 10, nil)
		opponent.hp = 9

		result := NewResolver(roll(t, rHeal, critRoll)).ResolveTurn(ActionAttack, player, opponent)

		if !result.HealInterrupted {
			t.Error("Expected heal to be interrupted")
		}
		if result.OpponentHealed != 0 {
			t.Errorf("Interrupted heal must not heal, got %d", result.OpponentHealed)
		}
		if got := 9 - opponent.hp; got != result.RolledDamage {
			t.Errorf("Expected net damage %d, got %d", result.RolledDamage, got)
		}
	}
}

func TestResolveInvalidActionCoerced(t *testing.T) {
	player := newMockCombatant("Hero", 5, blade)
	opponent := newMockCombatant("Goblin", 3, nil)

	result := NewResolver(roll(t, rDefend)).ResolveTurn(Action(42), player, opponent)

	if result.Action != ActionInvalid {
		t.Errorf("Action = %v, want invalid", result.Action)
	}
	if result.RolledDamage != 0 || opponent.hp != 3 {
		t.Error("Invalid action must not deal damage")
	}
}

func TestResolvePoisonAppliedThenTicks(t *testing.T) {
	player := newMockCombatant("Archer", 5, bow)
	opponent := newMockCombatant("Skeleton", 10, nil)
	resolver := NewResolver(nil)

	// Turn 1: attack into a held block, poison lands; no tick this turn.
	resolver.roller = roll(t, rDefend, noCrit, 0, 0)
	result := resolver.ResolveTurn(ActionAttack, player, opponent)
	if result.ConditionApplied != gamedata.StatusPoisoned {
		t.Fatalf("Expected poison applied, got %q", result.ConditionApplied)
	}
	if result.ConditionTick != nil {
		t.Error("Freshly applied poison must not tick on the same turn")
	}
	if opponent.hp != 10 {
		t.Errorf("Expected HP 10 after held block, got %d", opponent.hp)
	}
	if c := opponent.GetCondition(); c.Kind != gamedata.StatusPoisoned || c.Duration != 2 {
		t.Errorf("Expected Poisoned(2), got %+v", c)
	}

	// Turn 2: stalemate, poison ticks once.
	resolver.roller = roll(t, rDefend)
	result = resolver.ResolveTurn(ActionDefend, player, opponent)
	if result.ConditionTick == nil || result.ConditionTick.Damage != 1 || result.ConditionTick.Ended {
		t.Fatalf("Expected a 1-damage tick that does not end, got %+v", result.ConditionTick)
	}
	if c := opponent.GetCondition(); c.Duration != 1 {
		t.Errorf("Expected duration 1, got %d", c.Duration)
	}
	if opponent.hp != 9 {
		t.Errorf("Expected HP 9, got %d", opponent.hp)
	}

	// Turn 3: final tick clears the condition.
	resolver.roller = roll(t, rDefend)
	result = resolver.ResolveTurn(ActionDefend, player, opponent)
	if result.ConditionTick == nil || !result.ConditionTick.Ended {
		t.Fatalf("Expected final tick, got %+v", result.ConditionTick)
	}
	if c := opponent.GetCondition(); c != NoCondition {
		t.Errorf("Expected condition cleared, got %+v", c)
	}
	if opponent.hp != 8 {
		t.Errorf("Expected HP 8, got %d", opponent.hp)
	}

	// Turn 4: nothing left to tick.
	resolver.roller = roll(t, rDefend)
	result = resolver.ResolveTurn(ActionDefend, player, opponent)
	if result.ConditionTick != nil {
		t.Error("Expected no tick after poison ended")
	}
}

func TestResolvePoisonReapplyResetsWithoutTick(t *testing.T) {
	player := newMockCombatant("Archer", 5, bow)
	opponent := newMockCombatant("Skeleton", 10, nil)
	opponent.SetCondition(Condition{Kind: gamedata.StatusPoisoned, Duration: 1})

	result := NewResolver(roll(t, rDefend, noCrit, 0, 1)).ResolveTurn(ActionAttack, player, opponent)

	if result.ConditionTick != nil {
		t.Error("Re-applied poison must not tick on the turn it lands")
	}
	if c := opponent.GetCondition(); c.Duration != PoisonDuration {
		t.Errorf("Expected duration reset to %d, got %d", PoisonDuration, c.Duration)
	}
}

func TestResolvePoisonMissLeavesNoCondition(t *testing.T) {
	player := newMockCombatant("Archer", 5, bow)
	opponent := newMockCombatant("Skeleton", 10, nil)

	result := NewResolver(roll(t, rDefend, noCrit, 2, 0)).ResolveTurn(ActionAttack, player, opponent)

	if result.ConditionApplied != "" {
		t.Errorf("Expected no condition, got %q", result.ConditionApplied)
	}
	if opponent.GetCondition().Active() {
		t.Error("Opponent should not be poisoned")
	}
}

func TestResolvePoisonTickCanWin(t *testing.T) {
	player := newMockCombatant("Archer", 5, bow)
	opponent := newMockCombatant("Skeleton", 3, nil)
	opponent.hp = 1
	opponent.SetCondition(Condition{Kind: gamedata.StatusPoisoned, Duration: 2})

	result := NewResolver(roll(t, rDefend)).ResolveTurn(ActionDefend, player, opponent)

	if result.Result != Victory {
		t.Errorf("Result = %v, want victory", result.Result)
	}
	if opponent.hp != 0 {
		t.Errorf("Expected HP 0, got %d", opponent.hp)
	}
}

func TestResolveTermination(t *testing.T) {
	t.Run("defeat clamps at zero", func(t *testing.T) {
		player := newMockCombatant("Hero", 5, blade)
		player.hp = 1
		opponent := newMockCombatant("Goblin", 3, nil)

		result := NewResolver(roll(t, rAttack)).ResolveTurn(ActionInvalid, player, opponent)

		if result.Result != Defeat {
			t.Errorf("Result = %v, want defeat", result.Result)
		}
		if player.hp != 0 {
			t.Errorf("Expected player HP 0, got %d", player.hp)
		}
	})

	t.Run("victory wins the trade", func(t *testing.T) {
		player := newMockCombatant("Hero", 5, blade)
		player.hp = 1
		opponent := newMockCombatant("Goblin", 2, nil)

		result := NewResolver(roll(t, rAttack, noCrit)).ResolveTurn(ActionAttack, player, opponent)

		if result.Result != Victory {
			t.Errorf("Result = %v, want victory", result.Result)
		}
	})

	t.Run("ongoing", func(t *testing.T) {
		player := newMockCombatant("Hero", 5, blade)
		opponent := newMockCombatant("Goblin", 3, nil)

		result := NewResolver(roll(t, rDefend)).ResolveTurn(ActionDefend, player, opponent)

		if result.Result != Ongoing {
			t.Errorf("Result = %v, want ongoing", result.Result)
		}
	})
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input rune
		want  Action
	}{
		{'a', ActionAttack},
		{'A', ActionAttack},
		{'d', ActionDefend},
		{'D', ActionDefend},
		{'x', ActionInvalid},
		{' ', ActionInvalid},
	}

	for _, tt := range tests {
		if got := ParseAction(tt.input); got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutcomeCodeString(t *testing.T) {
	if OutcomeEnemyParry.String() != "enemy_parry" {
		t.Errorf("OutcomeEnemyParry.String() = %q", OutcomeEnemyParry.String())
	}
	if OutcomeCode(99).String() != "unknown" {
		t.Errorf("OutcomeCode(99).String() = %q, want unknown", OutcomeCode(99).String())
	}
}
