package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/fpang/prompt-gallery/internal/assets"
	"github.com/rs/zerolog/log"
)

// seedFile is the on-disk shape of a catalog snapshot.
type seedFile struct {
	Categories []Category `json:"categories"`
	Prompts    []Prompt   `json:"prompts"`
}

// NewSeeded creates a store pre-populated with the embedded seed catalog.
func NewSeeded(opts ...Option) (*Store, error) {
	s := New(opts...)
	if err := s.Load(assets.SeedCatalog); err != nil {
		return nil, fmt.Errorf("load seed catalog: %w", err)
	}
	return s, nil
}

// Load replaces the store's contents with a JSON snapshot. Prompts must be
// ordered newest first, ids must be unique, and every categoryId must resolve.
func (s *Store) Load(data []byte) error {
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	categoryIDs := make(map[string]bool, len(seed.Categories))
	for _, c := range seed.Categories {
		if c.ID == "" || categoryIDs[c.ID] {
			return fmt.Errorf("category %q: %w", c.ID, ErrDuplicateCategory)
		}
		categoryIDs[c.ID] = true
	}

	promptIDs := make(map[string]bool, len(seed.Prompts))
	for _, p := range seed.Prompts {
		if p.ID == "" || promptIDs[p.ID] {
			return fmt.Errorf("prompt %q: duplicate or empty id", p.ID)
		}
		if !categoryIDs[p.CategoryID] {
			return fmt.Errorf("prompt %q: unknown category %q", p.ID, p.CategoryID)
		}
		promptIDs[p.ID] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = seed.Categories
	s.prompts = seed.Prompts

	log.Debug().
		Int("prompts", len(seed.Prompts)).
		Int("categories", len(seed.Categories)).
		Msg("Catalog loaded")
	return nil
}
