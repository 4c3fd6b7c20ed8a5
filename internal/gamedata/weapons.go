package gamedata

import "fmt"

// StatusEffectType names a condition an implement can inflict.
type StatusEffectType string

const (
	StatusNone     StatusEffectType = "None"
	StatusPoisoned StatusEffectType = "Poisoned"
)

// ImplementID identifies an equippable implement.
type ImplementID string

const (
	ImplementBareHands ImplementID = "bare_hands"
	ImplementBlade     ImplementID = "blade"
	ImplementBow       ImplementID = "bow"
)

// WeaponDef defines an implement loaded from JSON.
//
// {
//   "id": "bow",
//   "name": "Poison Bow",
//   "baseDamage": 1,
//   "criticalDamage": 2,
//   "statusEffect": "Poisoned",
//   "chestWeight": 40
// }
type WeaponDef struct {
	ID             ImplementID      `json:"id"`
	Name           string           `json:"name"`
	Glyph          string           `json:"glyph"`
	BaseDamage     int              `json:"baseDamage"`
	CriticalDamage int              `json:"criticalDamage"`
	StatusEffect   StatusEffectType `json:"statusEffect"`
	ChestWeight    int              `json:"chestWeight"` // 0 = never found in chests
}

// InflictsStatus reports whether hits with this implement can apply a condition.
func (w *WeaponDef) InflictsStatus() bool {
	return w.StatusEffect != "" && w.StatusEffect != StatusNone
}

// Validate checks the damage pair is usable.
func (w *WeaponDef) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("weapon has empty id")
	}
	if w.BaseDamage < 0 || w.CriticalDamage < w.BaseDamage {
		return fmt.Errorf("weapon %s: invalid damage pair (%d, %d)", w.ID, w.BaseDamage, w.CriticalDamage)
	}
	if w.ChestWeight < 0 {
		return fmt.Errorf("weapon %s: negative chest weight", w.ID)
	}
	return nil
}

// WeaponsFile represents the structure of weapons.json.
type WeaponsFile struct {
	Weapons []WeaponDef `json:"weapons"`
}

// LoadWeapons loads implement definitions from the embedded weapons.json file.
func LoadWeapons() ([]WeaponDef, error) {
	file, err := Load[WeaponsFile]("weapons.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Weapons {
		if err := file.Weapons[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Weapons, nil
}
