package content

import (
	"errors"
	"fmt"
)

var (
	ErrKindUnknown = errors.New("content: unknown content kind")
)

// NotFoundError reports a missing content item for a kind/slug pair.
type NotFoundError struct {
	Kind Kind
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content: %s %q not found", e.Kind, e.Slug)
}

// NewNotFoundError builds a NotFoundError for the given kind and slug.
func NewNotFoundError(kind Kind, slug string) *NotFoundError {
	return &NotFoundError{Kind: kind, Slug: slug}
}
