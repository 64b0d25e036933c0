package domain

import (
	"errors"
	"time"
)

// User models a registered identity. Accounts are provisioned by the seeder;
// the API itself never creates or mutates them.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ErrMissingCredentials is returned when email or password is absent from a
// login attempt. Checked before any storage lookup.
var ErrMissingCredentials = errors.New("email and password are required")

// ErrInvalidCredentials covers both "no such email" and "wrong password".
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserNotFound is repository-internal; the auth service collapses it into
// ErrInvalidCredentials before it can reach a client.
var ErrUserNotFound = errors.New("user not found")

var ErrUserExists = errors.New("user already exists")
