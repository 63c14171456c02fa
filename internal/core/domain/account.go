package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountLocked = errors.New("account temporarily locked")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrMissingSecret = errors.New("signing secret is not configured")

// Account models a registered identity in the credential store.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Claims       []Claim   `json:"claims,omitempty"`
	Roles        []string  `json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claim is a typed key/value fact attached to an identity. Claims travel
// inside issued tokens and are echoed back to clients for introspection.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SignInResult is the outcome of a password check against the store.
// Succeeded and IsLockedOut are mutually exclusive; both false means the
// password did not match.
type SignInResult struct {
	Succeeded   bool
	IsLockedOut bool
}
