package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// WeaponRegistry
// =============================================================================

// WeaponRegistry holds loaded implement definitions.
type WeaponRegistry struct {
	weapons     map[ImplementID]*WeaponDef
	all         []WeaponDef
	chestWeight int
}

// NewWeaponRegistry creates a registry from loaded implement definitions.
// The bare-hands implement must be present: it is what a player falls back to.
func NewWeaponRegistry(weapons []WeaponDef) (*WeaponRegistry, error) {
	registry := &WeaponRegistry{
		weapons: make(map[ImplementID]*WeaponDef, len(weapons)),
		all:     weapons,
	}
	for i := range weapons {
		if _, dup := registry.weapons[weapons[i].ID]; dup {
			return nil, fmt.Errorf("duplicate weapon id %q", weapons[i].ID)
		}
		registry.weapons[weapons[i].ID] = &weapons[i]
		registry.chestWeight += weapons[i].ChestWeight
	}
	if registry.weapons[ImplementBareHands] == nil {
		return nil, fmt.Errorf("weapon table is missing %q", ImplementBareHands)
	}
	return registry, nil
}

// LoadWeaponRegistry loads and creates a registry from the embedded weapons.json.
func LoadWeaponRegistry() (*WeaponRegistry, error) {
	weapons, err := LoadWeapons()
	if err != nil {
		return nil, err
	}
	return NewWeaponRegistry(weapons)
}

// MustLoadWeaponRegistry loads a registry, panicking on error.
func MustLoadWeaponRegistry() *WeaponRegistry {
	registry, err := LoadWeaponRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the implement with the given ID, or nil if not found.
func (r *WeaponRegistry) GetByID(id ImplementID) *WeaponDef {
	return r.weapons[id]
}

// Default returns the bare-hands implement.
func (r *WeaponRegistry) Default() *WeaponDef {
	return r.weapons[ImplementBareHands]
}

// ChestRandom picks chest contents by chestWeight. Returns nil if no implement
// can be found in chests.
func (r *WeaponRegistry) ChestRandom(rng *rand.Rand) *WeaponDef {
	if r.chestWeight <= 0 {
		return nil
	}
	roll := rng.Intn(r.chestWeight)
	cumulative := 0
	for i := range r.all {
		cumulative += r.all[i].ChestWeight
		if roll < cumulative {
			return &r.all[i]
		}
	}
	return nil
}

// Count returns the number of implements in the registry.
func (r *WeaponRegistry) Count() int {
	return len(r.all)
}
