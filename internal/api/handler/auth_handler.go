package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deviolabs/accounts-api/internal/api/metrics"
	"github.com/deviolabs/accounts-api/internal/core/domain"
	"github.com/deviolabs/accounts-api/internal/core/ports"
)

// Client-facing failure messages. Lockout and wrong-password share the same
// envelope shape and status; only the text differs. The invalid-credentials
// message is also used for unknown emails so responses never reveal whether
// an account exists.
const (
	msgInvalidCredentials = "invalid email or password"
	msgAccountLocked      = "account temporarily locked by too many failed sign-in attempts"
	msgAccountExists      = "an account with this email already exists"
)

type AuthHandler struct {
	accounts ports.AccountService
	log      zerolog.Logger
}

func NewAuthHandler(accounts ports.AccountService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log}
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// Register creates an account and signs the caller in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  handler.successEnvelope
// @Failure      400   {object}  handler.failureEnvelope
// @Router       /nova-conta [post]
func (h *AuthHandler) Register(c echo.Context) error {
	r := newResponder()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		r.failValidation(err)
		return r.respond(c, nil)
	}
	if err := c.Validate(req); err != nil {
		r.failValidation(err)
		return r.respond(c, nil)
	}

	start := time.Now()
	resp, err := h.accounts.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if failed := h.notifyAuthError(r, err); !failed {
			return err
		}
		return r.respond(c, nil)
	}

	metrics.RegistrationsTotal.Inc()
	metrics.TokensIssuedTotal.WithLabelValues("register").Inc()
	metrics.TokenIssueDuration.Observe(time.Since(start).Seconds())
	h.log.Info().Str("email", req.Email).Msg("account registered")

	return r.respond(c, resp)
}

// Login verifies credentials and issues a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Sign-in credentials"
// @Success      200   {object}  handler.successEnvelope
// @Failure      400   {object}  handler.failureEnvelope
// @Router       /entrar [post]
func (h *AuthHandler) Login(c echo.Context) error {
	r := newResponder()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		r.failValidation(err)
		return r.respond(c, nil)
	}
	if err := c.Validate(req); err != nil {
		r.failValidation(err)
		return r.respond(c, nil)
	}

	start := time.Now()
	resp, err := h.accounts.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAccountLocked) {
			h.log.Warn().Str("email", req.Email).Msg("sign-in rejected: account locked")
		}
		if failed := h.notifyAuthError(r, err); !failed {
			return err
		}
		return r.respond(c, nil)
	}

	metrics.TokensIssuedTotal.WithLabelValues("sign_in").Inc()
	metrics.TokenIssueDuration.Observe(time.Since(start).Seconds())
	h.log.Info().Str("email", req.Email).Msg("user signed in")

	return r.respond(c, resp)
}

// notifyAuthError maps expected auth failures onto notifications and reports
// whether the error was one of them. Unexpected errors are left for the
// top-level error handler.
func (h *AuthHandler) notifyAuthError(r *responder, err error) bool {
	switch {
	case errors.Is(err, domain.ErrAccountExists):
		metrics.SignInFailuresTotal.WithLabelValues("account_exists").Inc()
		r.fail(msgAccountExists)
	case errors.Is(err, domain.ErrAccountLocked):
		metrics.SignInFailuresTotal.WithLabelValues("locked_out").Inc()
		r.fail(msgAccountLocked)
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.SignInFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		r.fail(msgInvalidCredentials)
	default:
		return false
	}
	return true
}
