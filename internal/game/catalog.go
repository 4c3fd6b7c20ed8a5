package game

import (
	"fmt"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Catalog is the static game data a session refers to by ID.
type Catalog struct {
	Weapons *gamedata.WeaponRegistry
	Enemies *gamedata.EnemyRegistry
	Player  gamedata.PlayerDef
}

// LoadCatalog loads the embedded implement, opponent and player tables.
func LoadCatalog() (Catalog, error) {
	weapons, err := gamedata.LoadWeaponRegistry()
	if err != nil {
		return Catalog{}, fmt.Errorf("load weapons: %w", err)
	}
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return Catalog{}, fmt.Errorf("load enemies: %w", err)
	}
	player, err := gamedata.LoadPlayer()
	if err != nil {
		return Catalog{}, fmt.Errorf("load player: %w", err)
	}
	return Catalog{Weapons: weapons, Enemies: enemies, Player: player}, nil
}

// startingImplement is what a new player holds.
func (c Catalog) startingImplement() *gamedata.WeaponDef {
	if w := c.Weapons.GetByID(c.Player.Implement); w != nil {
		return w
	}
	return c.Weapons.Default()
}
