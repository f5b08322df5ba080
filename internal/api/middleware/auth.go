package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/api/metrics"
	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/pkg/token"
)

// ContextKeyIdentity is the echo context key under which the resolved
// caller identity is stored.
const ContextKeyIdentity = "identity"

// DefaultSkipPrefixes are the path prefixes that bypass the gate
// entirely: the credential endpoints themselves, health checks, metrics and
// the API documentation. A prefix matches the exact path or a segment
// below it, so "/auth/signin" is skipped but "/authority" is not.
var DefaultSkipPrefixes = []string{"/auth", "/health", "/swagger", "/metrics"}

// Auth is the authentication gate. It runs once per request, before any
// handler, and resolves a bearer token into a request-scoped identity.
//
// The gate never rejects a request itself: a missing, malformed,
// badly-signed or expired token leaves the request unauthenticated and
// passes it on, and each route decides whether an identity is required
// (via RequireRole or the handler's own identity check). Populating the
// identity is idempotent: once set it is never overwritten.
func Auth(codec *token.Codec, skipPrefixes []string) echo.MiddlewareFunc {
	if skipPrefixes == nil {
		skipPrefixes = DefaultSkipPrefixes
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if path == "/" {
				return next(c)
			}
			for _, prefix := range skipPrefixes {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims, err := codec.Verify(parts[1], time.Now())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return next(c)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			if _, ok := c.Get(ContextKeyIdentity).(domain.Identity); !ok {
				c.Set(ContextKeyIdentity, domain.Identity{
					UserID: claims.Subject,
					Role:   claims.Role,
				})
			}

			return next(c)
		}
	}
}

// IdentityFrom extracts the identity resolved by the gate, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(ContextKeyIdentity).(domain.Identity)
	return id, ok && !id.IsZero()
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
