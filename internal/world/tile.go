// Package world provides the level grid and the random-walk carver that fills it.
package world

import "fmt"

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileEntrance is where the player arrives on a level.
	TileEntrance Tile = '<'
	// TileExit leads to the next level once the level is cleared.
	TileExit Tile = '>'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// ParseTile converts a display character back into a tile.
func ParseTile(r rune) (Tile, error) {
	switch t := Tile(r); t {
	case TileWall, TileFloor, TileEntrance, TileExit:
		return t, nil
	default:
		return TileWall, fmt.Errorf("unknown tile %q", r)
	}
}

// Pos is a grid coordinate.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the position one tile away in the given direction.
func (p Pos) Step(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}
