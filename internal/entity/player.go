package entity

import (
	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Player is the adventurer. It persists across levels.
type Player struct {
	Name      string
	Symbol    rune
	Row, Col  int
	Implement *gamedata.WeaponDef
	Vitals
}

// NewPlayer creates a player from a starting profile holding implement.
// An empty name falls back to the profile's default.
func NewPlayer(def *gamedata.PlayerDef, implement *gamedata.WeaponDef, name string) *Player {
	if name == "" {
		name = def.Name
	}
	return &Player{
		Name:      name,
		Symbol:    def.SymbolRune(),
		Implement: implement,
		Vitals:    NewVitals(def.HP),
	}
}

// Position returns the player's row and column.
func (p *Player) Position() (int, int) {
	return p.Row, p.Col
}

// MoveTo places the player on the given tile.
func (p *Player) MoveTo(row, col int) {
	p.Row = row
	p.Col = col
}

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// Weapon returns the equipped implement.
func (p *Player) Weapon() *gamedata.WeaponDef { return p.Implement }

// HasSpareImplement reports whether the player holds something other than bare hands.
func (p *Player) HasSpareImplement() bool {
	return p.Implement != nil && p.Implement.ID != gamedata.ImplementBareHands
}

// Equip replaces the held implement.
func (p *Player) Equip(w *gamedata.WeaponDef) {
	p.Implement = w
}

// TickCondition advances the player's own condition by one turn.
func (p *Player) TickCondition() (combat.ConditionTick, bool) {
	next, tick, ok := combat.TickCondition(p.GetCondition(), p)
	p.SetCondition(next)
	return tick, ok
}

// Ensure Player implements combat.Armed
var _ combat.Armed = (*Player)(nil)
