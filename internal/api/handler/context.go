package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/api/middleware"
	"github.com/campusworks/campus-api/internal/core/domain"
)

// ctxIdentity extracts the identity resolved by the authentication gate.
// The gate itself never rejects a request, so handlers that need a
// caller must fail here: a missing identity is an authentication
// failure (401), distinct from a present-but-insufficient one (403).
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}
