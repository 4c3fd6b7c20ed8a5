package game

import "github.com/samdwyer/dungeoncrawl/internal/combat"

// Command is one player input, already decoded from a key.
type Command int

const (
	CommandUnknown Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandHeal
	CommandSave
	CommandQuit
	CommandAttack
	CommandDefend
	CommandFight
	CommandRun
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandHeal:
		return "heal"
	case CommandSave:
		return "save"
	case CommandQuit:
		return "quit"
	case CommandAttack:
		return "attack"
	case CommandDefend:
		return "defend"
	case CommandFight:
		return "fight"
	case CommandRun:
		return "run"
	default:
		return "unknown"
	}
}

// delta returns the row and column offset of a movement command.
func (c Command) delta() (dRow, dCol int, ok bool) {
	switch c {
	case CommandUp:
		return -1, 0, true
	case CommandDown:
		return 1, 0, true
	case CommandLeft:
		return 0, -1, true
	case CommandRight:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}

// action converts the command to a combat action. Anything other than attack
// or defend is an invalid action and forfeits the turn.
func (c Command) action() combat.Action {
	switch c {
	case CommandAttack:
		return combat.ActionAttack
	case CommandDefend:
		return combat.ActionDefend
	default:
		return combat.ActionInvalid
	}
}
