package gamedata

import (
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// EnemyDef defines an opponent type loaded from JSON.
type EnemyDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "g")
	Color       string `json:"color"`       // Hex color code (e.g., "#00FF00")
	MinHP       int    `json:"minHp"`       // Lowest starting health, inclusive
	MaxHP       int    `json:"maxHp"`       // Highest starting health, inclusive
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return 'E'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorRed
	}
	return color
}

// RollHP draws a starting health value in [MinHP, MaxHP].
func (e *EnemyDef) RollHP(rng *rand.Rand) int {
	if e.MaxHP <= e.MinHP {
		return e.MinHP
	}
	return e.MinHP + rng.Intn(e.MaxHP-e.MinHP+1)
}

// Validate checks the health range.
func (e *EnemyDef) Validate() error {
	if e.MinHP < 1 || e.MaxHP < e.MinHP {
		return fmt.Errorf("enemy %s: invalid hp range [%d, %d]", e.ID, e.MinHP, e.MaxHP)
	}
	return nil
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Enemies {
		if err := file.Enemies[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Enemies, nil
}
