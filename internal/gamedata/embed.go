// Package gamedata provides the embedded implement, opponent and player
// tables and the registries built from them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
