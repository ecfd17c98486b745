package models

import (
	"time"
)

// User is a row of the users table, read as the requester profile directory.
type User struct {
	UserID string  `db:"user_id"`
	Name   string  `db:"name"`
	Email  *string `db:"email"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
