package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/game"
)

// CommandFor maps a key press to a command. The same letter means different
// things depending on the phase: 'a' walks left while exploring and attacks
// during a fight.
func CommandFor(key tcell.Key, r rune, s *game.Session) game.Command {
	switch s.Phase {
	case game.PhaseExploring:
		return exploreCommand(key, r)
	case game.PhaseEncounter:
		if s.Fighting {
			return fightCommand(key, r)
		}
		return promptCommand(key, r)
	default:
		return game.CommandUnknown
	}
}

func exploreCommand(key tcell.Key, r rune) game.Command {
	switch key {
	case tcell.KeyUp:
		return game.CommandUp
	case tcell.KeyDown:
		return game.CommandDown
	case tcell.KeyLeft:
		return game.CommandLeft
	case tcell.KeyRight:
		return game.CommandRight
	case tcell.KeyEscape:
		return game.CommandQuit
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return game.CommandUp
		case 's', 'S':
			return game.CommandDown
		case 'a', 'A':
			return game.CommandLeft
		case 'd', 'D':
			return game.CommandRight
		case 'h', 'H':
			return game.CommandHeal
		case 't', 'T':
			return game.CommandSave
		case 'q', 'Q':
			return game.CommandQuit
		}
	}
	return game.CommandUnknown
}

func promptCommand(key tcell.Key, r rune) game.Command {
	if key != tcell.KeyRune {
		return game.CommandUnknown
	}
	switch r {
	case 'f', 'F':
		return game.CommandFight
	case 'r', 'R':
		return game.CommandRun
	default:
		return game.CommandUnknown
	}
}

func fightCommand(key tcell.Key, r rune) game.Command {
	if key != tcell.KeyRune {
		return game.CommandUnknown
	}
	switch r {
	case 'a', 'A':
		return game.CommandAttack
	case 'd', 'D':
		return game.CommandDefend
	default:
		return game.CommandUnknown
	}
}
