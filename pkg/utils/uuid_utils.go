package utils

import "github.com/google/uuid"

var newUUIDv7 = uuid.NewV7

// GenerateUUIDv7 returns a time-ordered id so primary keys follow insertion order.
// It degrades to a random v4 id if the clock source fails.
func GenerateUUIDv7() uuid.UUID {
	if id, err := newUUIDv7(); err == nil {
		return id
	}
	return uuid.New()
}

// EnsureID assigns a fresh v7 id when *id is still nil and reports whether it did
func EnsureID(id *uuid.UUID) bool {
	if *id != uuid.Nil {
		return false
	}
	*id = GenerateUUIDv7()
	return true
}
