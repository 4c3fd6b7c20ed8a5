package gamedata

// PlayerDef defines the starting profile of a new adventurer.
type PlayerDef struct {
	Name      string      `json:"name"`      // Default display name
	Symbol    string      `json:"symbol"`    // Single character for rendering (e.g., "@")
	HP        int         `json:"hp"`        // Starting and maximum health
	Implement ImplementID `json:"implement"` // Implement held at the start of a run
}

// SymbolRune returns the symbol as a rune for rendering.
func (p *PlayerDef) SymbolRune() rune {
	if len(p.Symbol) == 0 {
		return '@'
	}
	return rune(p.Symbol[0])
}

// LoadPlayer loads the starting profile from the embedded player.json file.
func LoadPlayer() (PlayerDef, error) {
	return Load[PlayerDef]("player.json")
}

// MustLoadPlayer loads the starting profile, panicking on error.
func MustLoadPlayer() PlayerDef {
	def, err := LoadPlayer()
	if err != nil {
		panic(err)
	}
	return def
}
