package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rankforge/agency-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both claims must be
// present, their absence means the middleware did not run or the token was
// structurally valid but operationally unusable.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Identity{UserID: userID, Role: role}, nil
}
