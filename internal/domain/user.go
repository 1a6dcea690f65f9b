// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailAlreadyExists indicates that a user with the given email is already registered.
	ErrEmailAlreadyExists = errors.New("email already registered")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates that the given password is invalid.
	ErrWrongPassword = errors.New("wrong email or password")
)

// User holds registered user data.
type User struct {
	ID             int64
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	ProfileImage   string
	CreatedAt      time.Time
}

// CreateUserParams is the input data to register a user.
type CreateUserParams struct {
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
}

// Profile is the user data exposed to the client.
type Profile struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ProfileImage string `json:"profile_image"`
}
