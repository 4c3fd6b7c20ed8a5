package entity

import "github.com/samdwyer/dungeoncrawl/internal/gamedata"

// Chest holds one implement and can be opened once.
type Chest struct {
	Row, Col int
	Contents *gamedata.WeaponDef
	Opened   bool
}

// NewChest creates an unopened chest.
func NewChest(row, col int, contents *gamedata.WeaponDef) *Chest {
	return &Chest{Row: row, Col: col, Contents: contents}
}

// At reports whether the chest stands on the given tile.
func (c *Chest) At(row, col int) bool {
	return c.Row == row && c.Col == col
}

// Open hands the contents to the player the first time and reports whether
// anything changed. Opening an opened chest is a no-op.
func (c *Chest) Open(p *Player) bool {
	if c.Opened {
		return false
	}
	p.Equip(c.Contents)
	c.Opened = true
	return true
}
