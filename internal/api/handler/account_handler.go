package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AccountHandler serves the protected endpoints that read the identity
// resolved from the bearer token by the auth middleware. It never touches
// the credential store; the token is the source of truth.
type AccountHandler struct{}

func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

type accountInfo struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
}

// Me returns the identity carried by the presented bearer token.
//
// @Summary      Current account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handler.successEnvelope
// @Failure      401  {object}  map[string]string
// @Router       /conta [get]
func (h *AccountHandler) Me(c echo.Context) error {
	r := newResponder()

	sub, _ := c.Get("sub").(string)
	if sub == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ := c.Get("email").(string)
	roles, _ := c.Get("roles").([]string)

	return r.respond(c, accountInfo{ID: sub, Email: email, Roles: roles})
}

// AdminStatus is an admin-gated probe exercising the role middleware.
//
// @Summary      Admin status
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handler.successEnvelope
// @Failure      403  {object}  map[string]string
// @Router       /admin/status [get]
func (h *AccountHandler) AdminStatus(c echo.Context) error {
	r := newResponder()
	return r.respond(c, map[string]string{"status": "ok"})
}
