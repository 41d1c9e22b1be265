package assets

import (
	_ "embed"
)

// SeedCatalog is the JSON catalog a fresh process starts with. Prompts are
// listed newest first, matching the store's listing order.
//
//go:embed seed/catalog.json
var SeedCatalog []byte
