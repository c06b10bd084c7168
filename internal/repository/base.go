// Package repository implements the data access layer for the application.
package repository

import (
	"strings"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// violatesConstraint reports whether a unique violation names the given
// index or constraint. Postgres includes the name in the error message.
func violatesConstraint(err error, name string) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), name)
}
