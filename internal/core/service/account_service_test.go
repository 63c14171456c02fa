package service

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/deviolabs/accounts-api/internal/core/domain"
)

// stubStore is an in-memory credential store with the same lockout
// accounting contract as the mongo/redis implementation.
type stubStore struct {
	accounts  map[string]*domain.Account
	failures  map[string]int
	lockAfter int
	claims    map[string][]domain.Claim
	roles     map[string][]string
}

func newStubStore(lockAfter int) *stubStore {
	return &stubStore{
		accounts:  make(map[string]*domain.Account),
		failures:  make(map[string]int),
		lockAfter: lockAfter,
		claims:    make(map[string][]domain.Claim),
		roles:     make(map[string][]string),
	}
}

func (s *stubStore) CreateAccount(_ context.Context, email, password string) (*domain.Account, error) {
	key := strings.ToLower(email)
	if _, exists := s.accounts[key]; exists {
		return nil, domain.ErrAccountExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	acc := &domain.Account{ID: "acc_" + key, Email: email, PasswordHash: string(hash)}
	s.accounts[key] = acc
	return acc, nil
}

func (s *stubStore) CheckPassword(_ context.Context, email, password string, lockoutOnFailure bool) (domain.SignInResult, error) {
	key := strings.ToLower(email)
	acc, ok := s.accounts[key]
	if !ok {
		return domain.SignInResult{}, domain.ErrAccountNotFound
	}
	if s.failures[key] >= s.lockAfter {
		return domain.SignInResult{IsLockedOut: true}, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		if lockoutOnFailure {
			s.failures[key]++
			if s.failures[key] >= s.lockAfter {
				return domain.SignInResult{IsLockedOut: true}, nil
			}
		}
		return domain.SignInResult{}, nil
	}
	s.failures[key] = 0
	return domain.SignInResult{Succeeded: true}, nil
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	acc, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

func (s *stubStore) Claims(_ context.Context, account *domain.Account) ([]domain.Claim, error) {
	return s.claims[strings.ToLower(account.Email)], nil
}

func (s *stubStore) Roles(_ context.Context, account *domain.Account) ([]string, error) {
	return s.roles[strings.ToLower(account.Email)], nil
}

func newTestAccountService(store *stubStore) *AccountService {
	return NewAccountService(store, NewTokenService(testSecret, testIssuer, testAudience, 1))
}

func TestAccountService_Register_Success(t *testing.T) {
	store := newStubStore(3)
	svc := newTestAccountService(store)

	resp, err := svc.Register(context.Background(), "alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.UserToken.Email != "alice@example.com" {
		t.Fatalf("unexpected userToken email: %s", resp.UserToken.Email)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected a token on registration")
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	store := newStubStore(3)
	svc := newTestAccountService(store)

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "other"); err != domain.ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAccountService_SignIn_Success(t *testing.T) {
	store := newStubStore(3)
	store.roles["carol@example.com"] = []string{domain.RoleAdmin}
	svc := newTestAccountService(store)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.SignIn(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	var gotRole bool
	for _, c := range resp.UserToken.Claims {
		if c.Type == "role" && c.Value == domain.RoleAdmin {
			gotRole = true
		}
	}
	if !gotRole {
		t.Fatalf("expected admin role claim, got %+v", resp.UserToken.Claims)
	}
}

func TestAccountService_SignIn_WrongPassword(t *testing.T) {
	store := newStubStore(3)
	svc := newTestAccountService(store)

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass")
	if _, err := svc.SignIn(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_SignIn_UnknownEmailDoesNotLeak(t *testing.T) {
	store := newStubStore(3)
	svc := newTestAccountService(store)

	// The unregistered-email path must collapse into the same generic
	// invalid-credentials error as a wrong password.
	if _, err := svc.SignIn(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_SignIn_LockoutAfterThreshold(t *testing.T) {
	store := newStubStore(3)
	svc := newTestAccountService(store)

	_, _ = svc.Register(context.Background(), "eve@example.com", "rightpass")

	for i := 0; i < 2; i++ {
		if _, err := svc.SignIn(context.Background(), "eve@example.com", "wrong"); err != domain.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Third failure crosses the threshold.
	if _, err := svc.SignIn(context.Background(), "eve@example.com", "wrong"); err != domain.ErrAccountLocked {
		t.Fatalf("expected ErrAccountLocked on third failure, got %v", err)
	}

	// Even the correct password is rejected while locked, and no token is
	// issued.
	if _, err := svc.SignIn(context.Background(), "eve@example.com", "rightpass"); err != domain.ErrAccountLocked {
		t.Fatalf("expected ErrAccountLocked with correct password, got %v", err)
	}
}

func TestAccountService_SignIn_SuccessResetsFailures(t *testing.T) {
	store := newStubStore(3)
	svc := newTestAccountService(store)

	_, _ = svc.Register(context.Background(), "frank@example.com", "pass")

	_, _ = svc.SignIn(context.Background(), "frank@example.com", "wrong")
	if _, err := svc.SignIn(context.Background(), "frank@example.com", "pass"); err != nil {
		t.Fatalf("sign-in after one failure should succeed: %v", err)
	}
	if store.failures["frank@example.com"] != 0 {
		t.Fatalf("expected failure counter reset, got %d", store.failures["frank@example.com"])
	}
}
