// Package game runs a play-through: the session and its phases, the engine
// that advances them one command at a time, and the loop that connects the
// engine to a player.
package game

// Phase is the session's top-level state.
type Phase int

const (
	// PhaseExploring accepts movement, heal, save and quit commands.
	PhaseExploring Phase = iota
	// PhaseLevelTransition builds the next level. It needs no input.
	PhaseLevelTransition
	// PhaseEncounter fights the engaged opponent.
	PhaseEncounter
	// PhaseGameOver is terminal until the player restarts.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseExploring:
		return "exploring"
	case PhaseLevelTransition:
		return "level_transition"
	case PhaseEncounter:
		return "encounter"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
