package ports

import (
	"github.com/deviolabs/accounts-api/internal/core/domain"
)

// TokenIssuer produces a signed, time-bounded bearer token for a resolved
// identity. Issuance is a pure, synchronous, single-attempt computation.
type TokenIssuer interface {
	Issue(account *domain.Account, claims []domain.Claim, roles []string) (*domain.TokenResponse, error)
}
