package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Default level dimensions
	DefaultSize      = 25
	DefaultWalkSteps = 450

	minSize = 3 // room for the 3x3 starting cavern
)

// ErrInvalidGrid indicates a serialized grid could not be restored.
var ErrInvalidGrid = errors.New("invalid dungeon grid")

// cardinal moves of the random walk: up, down, left, right
var moves = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Dungeon is an N×N level map addressed as Tiles[row][col].
type Dungeon struct {
	Size     int
	Tiles    [][]Tile
	Entrance Pos
	Exit     Pos
	rng      *rand.Rand
}

// NewDungeon creates a dungeon filled with walls.
// A nil rng is replaced with a time-seeded one.
func NewDungeon(size int, rng *rand.Rand) *Dungeon {
	if size < minSize {
		size = minSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tiles := make([][]Tile, size)
	for row := range tiles {
		tiles[row] = make([]Tile, size)
		for col := range tiles[row] {
			tiles[row][col] = TileWall
		}
	}

	center := Pos{Row: size / 2, Col: size / 2}
	return &Dungeon{
		Size:     size,
		Tiles:    tiles,
		Entrance: center,
		Exit:     center,
		rng:      rng,
	}
}

// Generate carves the level with a random walk of the given number of steps
// from the centre, then places the exit on a random floor tile and the
// entrance at the centre.
func (d *Dungeon) Generate(ctx context.Context, steps int) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	center := Pos{Row: d.Size / 2, Col: d.Size / 2}

	// 3x3 starting cavern
	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			d.carve(center.Step(dRow, dCol))
		}
	}

	pos := center
	for i := 0; i < steps; i++ {
		m := moves[d.rng.Intn(len(moves))]
		next := pos.Step(m.Row, m.Col)
		if d.InBounds(next) {
			pos = next
			d.carve(pos)
		}
	}

	d.Entrance = center
	d.Tiles[center.Row][center.Col] = TileEntrance

	floors := d.FloorTiles()
	d.Exit = floors[d.rng.Intn(len(floors))]
	d.Tiles[d.Exit.Row][d.Exit.Col] = TileExit

	span.SetAttributes(
		attribute.Int("dungeon.size", d.Size),
		attribute.Int("dungeon.walk_steps", steps),
		attribute.Int("dungeon.floor_tiles", len(floors)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// carve turns an in-bounds tile into floor.
func (d *Dungeon) carve(p Pos) {
	if d.InBounds(p) {
		d.Tiles[p.Row][p.Col] = TileFloor
	}
}

// InBounds reports whether p lies on the grid.
func (d *Dungeon) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < d.Size && p.Col >= 0 && p.Col < d.Size
}

// TileAt returns the tile at the given position. Anything off the grid is wall.
func (d *Dungeon) TileAt(row, col int) Tile {
	if !d.InBounds(Pos{Row: row, Col: col}) {
		return TileWall
	}
	return d.Tiles[row][col]
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(row, col int) bool {
	return d.TileAt(row, col).IsPassable()
}

// FloorTiles lists plain floor tiles in row-major order. The entrance and
// exit are excluded so nothing is ever placed on them.
func (d *Dungeon) FloorTiles() []Pos {
	var floors []Pos
	for row := range d.Tiles {
		for col, t := range d.Tiles[row] {
			if t == TileFloor {
				floors = append(floors, Pos{Row: row, Col: col})
			}
		}
	}
	return floors
}

// Rows renders the grid as one string per row.
func (d *Dungeon) Rows() []string {
	rows := make([]string, len(d.Tiles))
	var b strings.Builder
	for i, row := range d.Tiles {
		b.Reset()
		for _, t := range row {
			b.WriteRune(t.Rune())
		}
		rows[i] = b.String()
	}
	return rows
}

// FromRows restores a dungeon from Rows output. Exactly one entrance and one
// exit must be present and the grid must be square.
func FromRows(rows []string, rng *rand.Rand) (*Dungeon, error) {
	size := len(rows)
	if size < minSize {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidGrid, size)
	}

	d := NewDungeon(size, rng)
	var entrances, exits int
	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != size {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, row, len(runes), size)
		}
		for col, r := range runes {
			t, err := ParseTile(r)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %v", ErrInvalidGrid, row, col, err)
			}
			d.Tiles[row][col] = t
			switch t {
			case TileEntrance:
				d.Entrance = Pos{Row: row, Col: col}
				entrances++
			case TileExit:
				d.Exit = Pos{Row: row, Col: col}
				exits++
			}
		}
	}
	if entrances != 1 || exits != 1 {
		return nil, fmt.Errorf("%w: %d entrances, %d exits", ErrInvalidGrid, entrances, exits)
	}
	return d, nil
}
