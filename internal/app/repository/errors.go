package repository

import (
	"errors"
	"strings"
)

var (
	ErrIdentityExists = errors.New("identity with this email already exists")
	ErrStatusChanged  = errors.New("entity status no longer matches the expected value")
	ErrUnknownKind    = errors.New("unknown entity kind")
)

// isUniqueViolation matches both the postgres (23505) and sqlite messages
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
