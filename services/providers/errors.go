// Package providers holds the error taxonomy shared by the external catalog
// clients. Callers match with errors.Is for the sentinels and errors.As for
// transport failures.
package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a title or id could not be resolved.
	ErrNotFound = errors.New("not found")

	// ErrNoImages reports that a provider has no usable artwork for a title.
	ErrNoImages = errors.New("no images available")
)

// Error wraps a transport or parse failure against an external service.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with the provider and operation it came from.
func Wrap(provider, op string, err error) error {
	return &Error{Provider: provider, Op: op, Err: err}
}

// NotFound builds an ErrNotFound for the given subject.
func NotFound(provider, subject string) error {
	return fmt.Errorf("%s: %q: %w", provider, subject, ErrNotFound)
}
