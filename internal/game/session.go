package game

import (
	"github.com/google/uuid"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Session is one play-through. The player persists across levels; the map,
// opponents and chests are replaced on every level transition.
type Session struct {
	ID        uuid.UUID
	Level     int
	Phase     Phase
	Player    *entity.Player
	Dungeon   *world.Dungeon
	Opponents []*entity.Opponent
	Chests    []*entity.Chest

	// Encounter state. Engaged is nil outside PhaseEncounter.
	Engaged  *entity.Opponent
	Fighting bool      // The fight/run prompt has been answered with fight
	Turns    int       // Combat turns resolved in the current encounter
	Retreat  world.Pos // Tile the player stepped from into the encounter
}

// LiveOpponents returns the opponents on this level that still have health.
func (s *Session) LiveOpponents() []*entity.Opponent {
	var live []*entity.Opponent
	for _, o := range s.Opponents {
		if o.IsAlive() {
			live = append(live, o)
		}
	}
	return live
}

// OpponentAt returns the live opponent on the given tile, or nil.
func (s *Session) OpponentAt(row, col int) *entity.Opponent {
	for _, o := range s.Opponents {
		if o.IsAlive() && o.At(row, col) {
			return o
		}
	}
	return nil
}

// ChestAt returns the chest on the given tile, or nil.
func (s *Session) ChestAt(row, col int) *entity.Chest {
	for _, c := range s.Chests {
		if c.At(row, col) {
			return c
		}
	}
	return nil
}

// PlayerPos returns the player's tile.
func (s *Session) PlayerPos() world.Pos {
	return world.Pos{Row: s.Player.Row, Col: s.Player.Col}
}

// endEncounter clears the encounter state and returns to phase.
func (s *Session) endEncounter(phase Phase) {
	s.Engaged = nil
	s.Fighting = false
	s.Turns = 0
	s.Phase = phase
}
