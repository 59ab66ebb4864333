package berita

import (
	"errors"
	"fmt"
)

var (
	// ErrBeritaNotFound covers both truly absent slugs and unpublished
	// articles on public reads, so draft status never leaks.
	ErrBeritaNotFound = errors.New("berita tidak ditemukan")

	ErrKomentarNotFound = errors.New("komentar tidak ditemukan")
)

// ConflictError reports a slug collision, naming the offending field.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError reports empty-after-trim or otherwise unusable input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func slugConflict() *ConflictError {
	return &ConflictError{
		Field:   "judul",
		Message: "judul berita sudah ada, gunakan judul lain",
	}
}

// AsConflict reports whether err is a slug conflict.
func AsConflict(err error) (*ConflictError, bool) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}

// AsValidation reports whether err is a validation failure.
func AsValidation(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
