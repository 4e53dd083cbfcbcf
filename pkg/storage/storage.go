// Package storage loads and saves whole documents by path.
// A document is always written in full; there are no partial updates.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no document exists at the path
var ErrNotFound = errors.New("storage: document not found")

// CorruptError is returned by Load when a document exists but cannot be decoded
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("storage: document %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err is or wraps a *CorruptError
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

// Backend persists serializable documents.
// Load decodes the document at path into v; Save replaces it with v.
type Backend interface {
	Load(path string, v any) error
	Save(path string, v any) error
}

// StatusReporter is implemented by backends that can describe their health
type StatusReporter interface {
	Status() (string, bool)
}

// Load is a typed helper around Backend.Load
func Load[T any](b Backend, path string) (*T, error) {
	var doc T
	if err := b.Load(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Status returns the backend status, or a generic online status when it does not report one
func Status(b Backend) (string, bool) {
	if sr, ok := b.(StatusReporter); ok {
		return sr.Status()
	}
	return "🟢 | En linea", true
}
