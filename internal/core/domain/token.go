package domain

// TokenResponse is the payload returned to clients after a successful
// registration or sign-in.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   float64   `json:"expiresIn"`
	UserToken   UserToken `json:"userToken"`
}

// UserToken summarises the authenticated identity and mirrors every claim
// placed on the signed token, including the synthetic ones (sub, email, jti,
// nbf, iat and role claims), so clients can introspect without decoding.
type UserToken struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Claims []Claim `json:"claims"`
}
