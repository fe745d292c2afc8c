package entities

import (
	"time"
)

// User represents an account in the system. IsAdmin gates access to the
// administrative endpoints.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserDetail holds the optional profile fields a user can edit separately
// from their account record.
type UserDetail struct {
	UserID        string `json:"user_id" db:"user_id"`
	FullName      string `json:"full_name" db:"full_name"`
	Address       string `json:"address" db:"address"`
	Phone         string `json:"phone" db:"phone"`
	MaritalStatus string `json:"marital_status" db:"marital_status"`
}
