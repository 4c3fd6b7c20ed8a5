package game

import "github.com/samdwyer/dungeoncrawl/internal/world"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeons and
	// combat. A seed of 0 means a random seed will be generated.
	Seed int64 `env:"DUNGEONCRAWL_SEED" envDefault:"0"`

	GridSize   int    `env:"DUNGEONCRAWL_GRID_SIZE" envDefault:"25"`
	WalkSteps  int    `env:"DUNGEONCRAWL_WALK_STEPS" envDefault:"450"`
	PlayerName string `env:"DUNGEONCRAWL_PLAYER_NAME" envDefault:"Adventurer"`

	SavePath string `env:"DUNGEONCRAWL_SAVE_PATH" envDefault:"savegame.db"`
	SaveSlot string `env:"DUNGEONCRAWL_SAVE_SLOT" envDefault:"default"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		GridSize:   world.DefaultSize,
		WalkSteps:  world.DefaultWalkSteps,
		PlayerName: "Adventurer",
		SavePath:   "savegame.db",
		SaveSlot:   "default",
	}
}

// normalize fills zero-valued level settings with their defaults.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.GridSize <= 0 {
		c.GridSize = def.GridSize
	}
	if c.WalkSteps <= 0 {
		c.WalkSteps = def.WalkSteps
	}
	if c.SaveSlot == "" {
		c.SaveSlot = def.SaveSlot
	}
	return c
}
