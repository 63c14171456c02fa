package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/deviolabs/accounts-api/internal/core/domain"
)

// Registered claim types placed on every issued token.
const (
	claimSubject   = "sub"
	claimEmail     = "email"
	claimTokenID   = "jti"
	claimNotBefore = "nbf"
	claimIssuedAt  = "iat"
	claimRole      = "role"
)

// TokenService signs HS256 bearer tokens for resolved identities. It is
// stateless apart from reading its configuration, so a single instance is
// safe to share across concurrent requests.
type TokenService struct {
	secret          string
	issuer          string
	audience        string
	expirationHours int
}

func NewTokenService(secret, issuer, audience string, expirationHours int) *TokenService {
	if expirationHours <= 0 {
		expirationHours = 1
	}
	return &TokenService{
		secret:          secret,
		issuer:          issuer,
		audience:        audience,
		expirationHours: expirationHours,
	}
}

// Issue assembles the claim set for the account and returns the signed
// compact token plus the client-facing summary. The claim set starts from
// the identity's stored claims and appends sub, email, a fresh jti, nbf/iat
// as unix seconds, and one role claim per role name in the supplied order.
func (s *TokenService) Issue(account *domain.Account, claims []domain.Claim, roles []string) (*domain.TokenResponse, error) {
	if s.secret == "" {
		return nil, domain.ErrMissingSecret
	}
	if account == nil {
		return nil, domain.ErrIdentityNotFound
	}

	now := time.Now().UTC()
	issuedAt := now.Unix()

	all := make([]domain.Claim, 0, len(claims)+len(roles)+5)
	all = append(all, claims...)
	all = append(all,
		domain.Claim{Type: claimSubject, Value: account.ID},
		domain.Claim{Type: claimEmail, Value: account.Email},
		domain.Claim{Type: claimTokenID, Value: uuid.NewString()},
		domain.Claim{Type: claimNotBefore, Value: strconv.FormatInt(issuedAt, 10)},
		domain.Claim{Type: claimIssuedAt, Value: strconv.FormatInt(issuedAt, 10)},
	)
	for _, role := range roles {
		all = append(all, domain.Claim{Type: claimRole, Value: role})
	}

	payload := jwt.MapClaims{
		"iss": s.issuer,
		"aud": s.audience,
		"exp": now.Add(time.Duration(s.expirationHours) * time.Hour).Unix(),
	}
	for _, c := range all {
		// Repeated claim types collapse into a JSON array, preserving order.
		switch existing := payload[c.Type].(type) {
		case nil:
			payload[c.Type] = c.Value
		case string:
			payload[c.Type] = []string{existing, c.Value}
		case []string:
			payload[c.Type] = append(existing, c.Value)
		}
	}
	// nbf and iat must be numeric for standard JWT validation.
	payload[claimNotBefore] = issuedAt
	payload[claimIssuedAt] = issuedAt

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		AccessToken: signed,
		ExpiresIn:   float64(s.expirationHours) * 3600,
		UserToken: domain.UserToken{
			ID:     account.ID,
			Email:  account.Email,
			Claims: all,
		},
	}, nil
}
