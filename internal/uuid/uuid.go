// Package uuid generates and checks entity identifiers.
// Every entity id is a lowercase UUID v4 string.
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new entity id.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether s looks like an entity id. Path segments that
// fail this check can never match a stored row.
func IsValid(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil || len(s) != 36 {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}

// Normalize lowercases a valid id so lookups match the stored form.
// Invalid input is returned unchanged.
func Normalize(s string) string {
	if !IsValid(s) {
		return s
	}
	return strings.ToLower(s)
}
