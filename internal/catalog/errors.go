package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a prompt or category id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse is returned when deleting a category that prompts still reference.
	ErrCategoryInUse = errors.New("cannot delete category with active prompts")

	// ErrDuplicateCategory is returned when a new category's derived id is already taken.
	ErrDuplicateCategory = errors.New("category already exists")
)

// ValidationError reports a missing or invalid field. The operation is not applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
