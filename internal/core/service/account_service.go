package service

import (
	"context"
	"errors"

	"github.com/deviolabs/accounts-api/internal/core/domain"
	"github.com/deviolabs/accounts-api/internal/core/ports"
)

// AccountService implements registration and sign-in on top of the
// credential store and the token issuer. It owns no state of its own.
type AccountService struct {
	store  ports.CredentialStore
	tokens ports.TokenIssuer
}

func NewAccountService(store ports.CredentialStore, tokens ports.TokenIssuer) *AccountService {
	return &AccountService{store: store, tokens: tokens}
}

// Register creates the account and immediately issues a token for it, so a
// fresh registration signs the caller in within the same request.
func (s *AccountService) Register(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.store.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issueFor(ctx, account)
}

// SignIn verifies the credentials with lockout accounting enabled and issues
// a token on success. An unknown email is reported as invalid credentials so
// the response never reveals whether the account exists.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.store.CheckPassword(ctx, email, password, true)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	switch {
	case result.IsLockedOut:
		return nil, domain.ErrAccountLocked
	case !result.Succeeded:
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.issueFor(ctx, account)
}

func (s *AccountService) issueFor(ctx context.Context, account *domain.Account) (*domain.TokenResponse, error) {
	claims, err := s.store.Claims(ctx, account)
	if err != nil {
		return nil, err
	}
	roles, err := s.store.Roles(ctx, account)
	if err != nil {
		return nil, err
	}
	return s.tokens.Issue(account, claims, roles)
}
