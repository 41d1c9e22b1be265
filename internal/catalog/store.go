package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store holds the prompt and category collections for the life of the process.
type Store struct {
	mu         sync.RWMutex
	prompts    []Prompt // newest first
	categories []Category

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides prompt id assignment. Generated ids must be unique.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: newPromptID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newPromptID returns a time-ordered UUID so ids sort by creation time.
func newPromptID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Prompt returns the prompt with the given id.
func (s *Store) Prompt(id string) (Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.promptIndex(id); i >= 0 {
		return s.prompts[i], nil
	}
	return Prompt{}, ErrNotFound
}

// Category returns the category with the given id.
func (s *Store) Category(id string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.categoryIndex(id); i >= 0 {
		return s.categories[i], nil
	}
	return Category{}, ErrNotFound
}

// Prompts lists every prompt, most recently created first.
func (s *Store) Prompts() []Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Prompt, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Categories lists every category in creation order.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Search lists the prompts matching f, preserving newest-first order.
func (s *Store) Search(f Filter) []Prompt {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PromptsInCategory lists the prompts that reference the category id.
func (s *Store) PromptsInCategory(id string) []Prompt {
	return s.Search(Filter{CategoryID: id})
}

// Stats returns the current prompt and category counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Prompts: len(s.prompts), Categories: len(s.categories)}
}

// AddPrompt stores a new prompt at the front of the listing. The store assigns
// a fresh id and the creation timestamp.
func (s *Store) AddPrompt(in PromptInput) (Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(in); err != nil {
		return Prompt{}, err
	}

	p := in.withIdentity(s.newID(), s.timestamp())
	s.prompts = append([]Prompt{p}, s.prompts...)

	log.Debug().
		Str("prompt_id", p.ID).
		Str("category_id", p.CategoryID).
		Msg("Prompt added")
	return p, nil
}

// UpdatePrompt replaces the stored prompt with the same id. ID and CreatedAt
// are kept from the stored record. Unknown ids return ErrNotFound.
func (s *Store) UpdatePrompt(p Prompt) (Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.promptIndex(p.ID)
	if i < 0 {
		return Prompt{}, ErrNotFound
	}
	in := p.Input()
	if err := s.validate(in); err != nil {
		return Prompt{}, err
	}

	updated := in.withIdentity(s.prompts[i].ID, s.prompts[i].CreatedAt)
	s.prompts[i] = updated

	log.Debug().Str("prompt_id", updated.ID).Msg("Prompt updated")
	return updated, nil
}

// DeletePrompt removes the prompt with the given id. Deleting an unknown id is
// not an error.
func (s *Store) DeletePrompt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.promptIndex(id); i >= 0 {
		s.prompts = append(s.prompts[:i], s.prompts[i+1:]...)
		log.Debug().Str("prompt_id", id).Msg("Prompt deleted")
	}
}

// AddCategory creates a category whose id is derived from name. A name whose
// id is already taken returns ErrDuplicateCategory.
func (s *Store) AddCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	id := CategoryID(name)
	if id == "" {
		return Category{}, &ValidationError{Field: "name", Message: "is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryIndex(id) >= 0 {
		return Category{}, ErrDuplicateCategory
	}
	c := Category{ID: id, Name: name}
	s.categories = append(s.categories, c)

	log.Debug().Str("category_id", id).Msg("Category added")
	return c, nil
}

// DeleteCategory removes a category. It fails with ErrCategoryInUse while any
// prompt references the id, leaving the catalog unchanged. Deleting an
// unknown id is not an error.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.prompts {
		if p.CategoryID == id {
			return ErrCategoryInUse
		}
	}
	if i := s.categoryIndex(id); i >= 0 {
		s.categories = append(s.categories[:i], s.categories[i+1:]...)
		log.Debug().Str("category_id", id).Msg("Category deleted")
	}
	return nil
}

// validate checks required fields and the category reference. Callers hold the lock.
func (s *Store) validate(in PromptInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return &ValidationError{Field: "title", Message: "is required"}
	case strings.TrimSpace(in.PromptText) == "":
		return &ValidationError{Field: "promptText", Message: "is required"}
	case in.CategoryID == "":
		return &ValidationError{Field: "categoryId", Message: "is required"}
	case s.categoryIndex(in.CategoryID) < 0:
		return &ValidationError{Field: "categoryId", Message: "unknown category " + in.CategoryID}
	}
	return nil
}

// timestamp returns the creation time at millisecond precision in UTC.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) promptIndex(id string) int {
	for i := range s.prompts {
		if s.prompts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}
