package ports

import (
	"context"

	"github.com/deviolabs/accounts-api/internal/core/domain"
)

// CredentialStore defines the interface for account persistence and
// password verification.
type CredentialStore interface {
	// CreateAccount registers a new identity with a hashed password.
	// Returns domain.ErrAccountExists when the email is already taken.
	CreateAccount(ctx context.Context, email, password string) (*domain.Account, error)

	// CheckPassword verifies email+password. When lockoutOnFailure is true a
	// failed attempt counts towards the lockout threshold; a successful one
	// resets the counter.
	CheckPassword(ctx context.Context, email, password string, lockoutOnFailure bool) (domain.SignInResult, error)

	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Claims(ctx context.Context, account *domain.Account) ([]domain.Claim, error)
	Roles(ctx context.Context, account *domain.Account) ([]string, error)
}

// LockoutTracker counts consecutive failed sign-in attempts per identity.
type LockoutTracker interface {
	// RecordFailure increments the failure counter and returns the new count.
	RecordFailure(ctx context.Context, email string) (int64, error)

	// Failures returns the current failure count.
	Failures(ctx context.Context, email string) (int64, error)

	// Reset clears the failure counter after a successful sign-in.
	Reset(ctx context.Context, email string) error
}
