package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrEmailExists is returned when an insert or update hits users.email UNIQUE.
	ErrEmailExists = errors.New("email already exists")
	// ErrTokenCollision is returned when a refresh token hash is already stored.
	// Nothing is written in that case.
	ErrTokenCollision = errors.New("refresh token hash collision")
	// ErrActiveTokenExists is returned when the one-active-token index rejects an insert.
	ErrActiveTokenExists = errors.New("user already has an active refresh token")
	ErrSettingsExist     = errors.New("user settings already exist")
)

const uniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name when err is a
// Postgres unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
