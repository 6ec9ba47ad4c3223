package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors shared by all repositories so handlers can map persistence
// failures to specific HTTP statuses with errors.Is instead of string matching.
var (
	// ErrNotFound is returned when no record matches the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint,
	// e.g. an already taken username.
	ErrDuplicate = errors.New("duplicate value")
)

// isDuplicate reports whether err is a uniqueness violation. GORM only
// translates these for some drivers, so we fall back to the driver messages
// for PostgreSQL and SQLite.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
