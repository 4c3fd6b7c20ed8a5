package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Narrate turns a report into the lines shown under the map. Combat turns are
// described first, then the notices in order.
func Narrate(s *game.Session, report game.Report) []string {
	var lines []string

	if report.Turn != nil {
		opponent := "enemy"
		if len(report.Notices) > 0 && report.Notices[0].Subject != "" {
			opponent = report.Notices[0].Subject
		} else if s != nil && s.Engaged != nil {
			opponent = s.Engaged.Name
		}
		lines = append(lines, DescribeTurn(*report.Turn, opponent)...)
	}

	for _, n := range report.Notices {
		if line := DescribeNotice(n); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// DescribeTurn narrates one combat turn against the named opponent.
func DescribeTurn(result combat.TurnResult, opponent string) []string {
	var lines []string

	switch result.Action {
	case combat.ActionAttack:
		line := fmt.Sprintf("You attack the %s!", opponent)
		if result.WasCritical {
			line += " Critical hit!"
		}
		lines = append(lines, line)
	case combat.ActionDefend:
		lines = append(lines, "You defend and brace yourself!")
	default:
		lines = append(lines, "Invalid action. You lose your turn!")
	}

	if result.ConditionApplied != "" {
		lines = append(lines, fmt.Sprintf("The %s is %s!", opponent, conditionWord(result.ConditionApplied)))
	}

	lines = append(lines, describeOutcome(result, opponent))

	if tick := result.ConditionTick; tick != nil {
		lines = append(lines, fmt.Sprintf("The %s suffers %d damage from %s.", opponent, tick.Damage, conditionNoun(tick.Kind)))
		if tick.Ended {
			lines = append(lines, fmt.Sprintf("The %s on the %s wears off.", conditionNoun(tick.Kind), opponent))
		}
	}
	return lines
}

func describeOutcome(result combat.TurnResult, opponent string) string {
	switch result.Decision {
	case combat.DecisionAttack:
		switch {
		case result.Outcome == combat.OutcomePlayerDefendSuccess:
			return fmt.Sprintf("The %s attacks! You defended and take no damage!", opponent)
		case result.Outcome == combat.OutcomePlayerDefendFail:
			return fmt.Sprintf("The %s attacks! You failed to defend. You take %d damage!", opponent, result.DamageTaken)
		case result.Action == combat.ActionAttack:
			return fmt.Sprintf("You trade blows with the %s: you deal %d damage and take %d!", opponent, result.DamageDealt, result.DamageTaken)
		default:
			return fmt.Sprintf("The %s attacks! You take %d damage!", opponent, result.DamageTaken)
		}

	case combat.DecisionDefend:
		switch result.Outcome {
		case combat.OutcomeEnemyBlockHeld:
			return fmt.Sprintf("The %s defends and blocks your attack!", opponent)
		case combat.OutcomeEnemyBlockBroken:
			return fmt.Sprintf("The %s's block is broken! You deal %d damage!", opponent, result.DamageDealt)
		case combat.OutcomeEnemyParry:
			return fmt.Sprintf("The %s parries your attack and counters! You take %d damage!", opponent, result.DamageTaken)
		default:
			return fmt.Sprintf("The %s defends. Neither of you lands a blow.", opponent)
		}

	case combat.DecisionHeal:
		switch {
		case result.HealInterrupted:
			return fmt.Sprintf("The %s tries to heal, but your attack interrupts it for %d damage!", opponent, result.DamageDealt)
		case result.OpponentHealed > 0:
			return fmt.Sprintf("The %s heals and regains %d health.", opponent, result.OpponentHealed)
		default:
			return fmt.Sprintf("The %s awaits your move.", opponent)
		}
	}
	return ""
}

// DescribeNotice returns the line for one notice, or "" for notices that
// need none.
func DescribeNotice(n game.Notice) string {
	switch n.Kind {
	case game.NoticeLevelEntered:
		return fmt.Sprintf("*** Level %d reached! ***", n.Amount)
	case game.NoticeWallBlocked:
		return "A wall blocks your way."
	case game.NoticeExitBlocked:
		return fmt.Sprintf("The exit is here (>) but you must defeat %s before proceeding!", plural(n.Amount, "enemy", "enemies"))
	case game.NoticeExitReached:
		return "You found the exit! All enemies defeated. Moving to the next level..."
	case game.NoticeChestOpened:
		return fmt.Sprintf("You open the chest and find a %s!", n.Subject)
	case game.NoticeChestEmpty:
		return "The chest is empty."
	case game.NoticeEncounterStarted:
		return fmt.Sprintf("You encountered a %s!", n.Subject)
	case game.NoticeFightChosen:
		return "You chose to fight!"
	case game.NoticeRetreated:
		return fmt.Sprintf("You ran away from the %s!", n.Subject)
	case game.NoticeVictory:
		return fmt.Sprintf("You defeated the %s!", n.Subject)
	case game.NoticeDefeat:
		if n.Tick != nil {
			return fmt.Sprintf("The %s finishes you off. You were defeated!", conditionNoun(n.Tick.Kind))
		}
		return fmt.Sprintf("The %s defeated you!", n.Subject)
	case game.NoticeConditionTick:
		if n.Tick == nil {
			return ""
		}
		line := fmt.Sprintf("The %s bites at you, dealing %d damage!", conditionNoun(n.Tick.Kind), n.Amount)
		if n.Tick.Ended {
			line += fmt.Sprintf(" The %s wears off.", conditionNoun(n.Tick.Kind))
		}
		return line
	case game.NoticeHealed:
		return fmt.Sprintf("You healed %s, at the cost of your %s.", plural(n.Amount, "health point", "health points"), n.Subject)
	case game.NoticeHealRejected:
		return describeHealRejection(n.Err)
	case game.NoticeSaved:
		return "Game saved."
	case game.NoticeSaveFailed:
		return fmt.Sprintf("Could not save the game: %v", n.Err)
	case game.NoticeLoaded:
		return fmt.Sprintf("Welcome back! Resuming on level %d.", n.Amount)
	case game.NoticeLoadFailed:
		return fmt.Sprintf("Could not load the saved game (%v). Starting a new one.", n.Err)
	case game.NoticeQuit:
		return "You leave the dungeon."
	case game.NoticeInvalidCommand:
		return "Invalid command."
	case game.NoticeUnknownPhase:
		return fmt.Sprintf("Error: %v", n.Err)
	default:
		return ""
	}
}

func describeHealRejection(err error) string {
	switch {
	case errors.Is(err, game.ErrConditionActive):
		return "You cannot focus to heal while afflicted!"
	case errors.Is(err, game.ErrHealthFull):
		return "Health is already full."
	case errors.Is(err, game.ErrNoSpareImplement):
		return "You cannot heal without a weapon to sacrifice."
	default:
		return "You cannot heal right now."
	}
}

// PromptText is the question shown for a yes/no prompt.
func PromptText(p game.Prompt) string {
	switch p {
	case game.PromptLoad:
		return "Do you want to load your saved game? (Y/N)"
	case game.PromptSaveBeforeQuit:
		return "Would you like to save your game before quitting? (Y/N)"
	case game.PromptPlayAgain:
		return "Game Over! Do you want to play again? (Y/N)"
	default:
		return "(Y/N)"
	}
}

// HelpText lists the keys that mean something in the session's phase.
func HelpText(s *game.Session) string {
	switch s.Phase {
	case game.PhaseExploring:
		return "Command: (W/A/S/D) Move, (H) Heal, (T) Save, (Q)uit"
	case game.PhaseEncounter:
		if s.Fighting {
			return "Do you want to (A)ttack or (D)efend?"
		}
		return "Do you want to (F)ight or (R)un away?"
	default:
		return ""
	}
}

func conditionNoun(kind gamedata.StatusEffectType) string {
	switch kind {
	case gamedata.StatusPoisoned:
		return "poison"
	default:
		return strings.ToLower(string(kind))
	}
}

func conditionWord(kind gamedata.StatusEffectType) string {
	return strings.ToLower(string(kind))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
