package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrMovieNotFound  = fmt.Errorf("movie %w", ErrNotFound)
	ErrSeriesNotFound = fmt.Errorf("series %w", ErrNotFound)
	ErrSeasonNotFound = fmt.Errorf("season %w", ErrNotFound)
	ErrInvalidInput   = errors.New("invalid catalog data")
	ErrIDCollision    = errors.New("allocated id already in use")
	ErrStoreClosed    = errors.New("catalog store is closed")
)

// ValidationError reports a field that violates a catalog invariant.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
