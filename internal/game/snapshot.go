package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const snapshotVersion = 1

// Snapshot is the serialized form of a session between turns. Implements and
// opponents are stored by catalog ID.
type Snapshot struct {
	Version   int                `json:"version"`
	ID        string             `json:"id"`
	Level     int                `json:"level"`
	Player    PlayerSnapshot     `json:"player"`
	Map       []string           `json:"map"`
	Opponents []OpponentSnapshot `json:"opponents"`
	Chests    []ChestSnapshot    `json:"chests"`
}

type PlayerSnapshot struct {
	Name      string               `json:"name"`
	Pos       world.Pos            `json:"pos"`
	Implement gamedata.ImplementID `json:"implement"`
	Vitals    entity.Vitals        `json:"vitals"`
}

type OpponentSnapshot struct {
	Kind   string        `json:"kind"`
	Pos    world.Pos     `json:"pos"`
	Vitals entity.Vitals `json:"vitals"`
}

type ChestSnapshot struct {
	Pos      world.Pos            `json:"pos"`
	Contents gamedata.ImplementID `json:"contents"`
	Opened   bool                 `json:"opened"`
}

// EncodeSession serializes an exploring session.
func EncodeSession(s *Session) ([]byte, error) {
	if s == nil || s.Player == nil || s.Dungeon == nil {
		return nil, fmt.Errorf("encode session: session has no level")
	}

	snap := Snapshot{
		Version: snapshotVersion,
		ID:      s.ID.String(),
		Level:   s.Level,
		Player: PlayerSnapshot{
			Name:   s.Player.Name,
			Pos:    s.PlayerPos(),
			Vitals: s.Player.Vitals,
		},
		Map:       s.Dungeon.Rows(),
		Opponents: make([]OpponentSnapshot, 0, len(s.Opponents)),
		Chests:    make([]ChestSnapshot, 0, len(s.Chests)),
	}
	if s.Player.Implement != nil {
		snap.Player.Implement = s.Player.Implement.ID
	}
	for _, o := range s.Opponents {
		snap.Opponents = append(snap.Opponents, OpponentSnapshot{
			Kind:   o.ID(),
			Pos:    world.Pos{Row: o.Row, Col: o.Col},
			Vitals: o.Vitals,
		})
	}
	for _, c := range s.Chests {
		cs := ChestSnapshot{Pos: world.Pos{Row: c.Row, Col: c.Col}, Opened: c.Opened}
		if c.Contents != nil {
			cs.Contents = c.Contents.ID
		}
		snap.Chests = append(snap.Chests, cs)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// DecodeSession restores a session saved by EncodeSession. The restored
// session is exploring, with health clamped into range. Anything that cannot
// be restored is reported as storage.ErrCorrupt.
func DecodeSession(data []byte, catalog Catalog) (*Session, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, corrupt("unmarshal: %v", err)
	}
	if snap.Version != snapshotVersion {
		return nil, corrupt("version %d, want %d", snap.Version, snapshotVersion)
	}
	if snap.Level < 1 {
		return nil, corrupt("level %d", snap.Level)
	}

	id, err := uuid.Parse(snap.ID)
	if err != nil {
		return nil, corrupt("session id: %v", err)
	}

	dungeon, err := world.FromRows(snap.Map, nil)
	if err != nil {
		return nil, corrupt("map: %v", err)
	}

	implement := catalog.Weapons.GetByID(snap.Player.Implement)
	if implement == nil {
		return nil, corrupt("unknown implement %q", snap.Player.Implement)
	}
	if !dungeon.IsPassable(snap.Player.Pos.Row, snap.Player.Pos.Col) {
		return nil, corrupt("player stands in a wall at %v", snap.Player.Pos)
	}

	player := entity.NewPlayer(&catalog.Player, implement, snap.Player.Name)
	player.MoveTo(snap.Player.Pos.Row, snap.Player.Pos.Col)
	player.Vitals = snap.Player.Vitals
	player.Clamp()

	s := &Session{
		ID:        id,
		Level:     snap.Level,
		Phase:     PhaseExploring,
		Player:    player,
		Dungeon:   dungeon,
		Opponents: make([]*entity.Opponent, 0, len(snap.Opponents)),
		Chests:    make([]*entity.Chest, 0, len(snap.Chests)),
	}

	for _, saved := range snap.Opponents {
		def := catalog.Enemies.GetByID(saved.Kind)
		if def == nil {
			return nil, corrupt("unknown opponent %q", saved.Kind)
		}
		if !dungeon.IsPassable(saved.Pos.Row, saved.Pos.Col) {
			return nil, corrupt("opponent in a wall at %v", saved.Pos)
		}
		o := entity.NewOpponent(def, saved.Pos.Row, saved.Pos.Col, saved.Vitals.MaxHP)
		o.Vitals = saved.Vitals
		o.Clamp()
		s.Opponents = append(s.Opponents, o)
	}

	for _, cs := range snap.Chests {
		contents := catalog.Weapons.GetByID(cs.Contents)
		if contents == nil {
			return nil, corrupt("unknown chest contents %q", cs.Contents)
		}
		if !dungeon.IsPassable(cs.Pos.Row, cs.Pos.Col) {
			return nil, corrupt("chest in a wall at %v", cs.Pos)
		}
		c := entity.NewChest(cs.Pos.Row, cs.Pos.Col, contents)
		c.Opened = cs.Opened
		s.Chests = append(s.Chests, c)
	}

	return s, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("decode session: %s: %w", fmt.Sprintf(format, args...), storage.ErrCorrupt)
}
