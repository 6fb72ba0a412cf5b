// Package id generates UUIDv7 identifiers for clients, challans and
// bills. Time-ordered UUIDs keep document ids sortable by creation time
// and index-friendly in PostgreSQL.
package id

import (
	"github.com/google/uuid"
)

// ID identifies any catalog or document entity.
type ID = uuid.UUID

// New generates a time-ordered UUIDv7.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails when the random source does; fall back
		// to V4 rather than propagate an error nobody can handle.
		return uuid.New()
	}
	return id
}

// Parse converts a string to an ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a string to an ID, panicking on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero-value ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether the ID is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
