package ports

import (
	"context"

	"github.com/deviolabs/accounts-api/internal/core/domain"
)

type AccountService interface {
	Register(ctx context.Context, email, password string) (*domain.TokenResponse, error)
	SignIn(ctx context.Context, email, password string) (*domain.TokenResponse, error)
}
