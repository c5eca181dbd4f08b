package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id and role
// must be present, their presence proves the middleware ran.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if userID == "" || roleStr == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, domain.Role(roleStr), nil
}

// ctxScope builds the ownership scope for the caller. Sales users are
// scoped to their own records; admin and owner see everything.
func ctxScope(c echo.Context) (ports.CustomerScope, error) {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return ports.CustomerScope{}, err
	}
	scope := ports.CustomerScope{Role: role}
	if !domain.CanAccessAllData(role) {
		scope.SalesID = userID
	}
	return scope, nil
}
