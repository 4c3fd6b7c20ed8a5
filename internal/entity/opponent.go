package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Opponent is a hostile creature on the current level.
type Opponent struct {
	Def      *gamedata.EnemyDef // Definition this opponent was spawned from
	Name     string
	Symbol   rune
	Row, Col int
	Vitals
}

// NewOpponent creates an opponent from a definition with the given starting health.
func NewOpponent(def *gamedata.EnemyDef, row, col, hp int) *Opponent {
	return &Opponent{
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		Row:    row,
		Col:    col,
		Vitals: NewVitals(hp),
	}
}

// Position returns the opponent's row and column.
func (o *Opponent) Position() (int, int) {
	return o.Row, o.Col
}

// At reports whether the opponent stands on the given tile.
func (o *Opponent) At(row, col int) bool {
	return o.Row == row && o.Col == col
}

// GetName returns the opponent's name.
func (o *Opponent) GetName() string { return o.Name }

// ID returns the opponent's type identifier.
func (o *Opponent) ID() string {
	if o.Def != nil {
		return o.Def.ID
	}
	return o.Name
}

// Color returns the tcell color for this opponent.
func (o *Opponent) Color() tcell.Color {
	if o.Def != nil {
		return o.Def.TCellColor()
	}
	return tcell.ColorRed
}

// Ensure Opponent implements combat.Combatant
var _ combat.Combatant = (*Opponent)(nil)
