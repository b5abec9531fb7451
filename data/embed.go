package data

import (
	_ "embed"
)

// SeedSWAPI holds the starter catalog loaded by `manage seed`
//
//go:embed seed/swapi.json
var SeedSWAPI []byte
