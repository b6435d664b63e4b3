package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/eventresults/auth"
)

// Authorizer checks that the caller carried by ctx is an admin.
type Authorizer interface {
	Authorize(ctx context.Context) error
}

// Session threads the caller's session token into the request context. It
// reads "Authorization: Bearer <token>" (a bare token is accepted too) and
// falls back to the session cookie. It never rejects a request; gated
// routes validate the token themselves.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := tokenFromRequest(c); token != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(auth.WithToken(req.Context(), token)))
			}
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	if header != "" {
		return header
	}
	if ck, err := c.Cookie(auth.CookieName); err == nil {
		return ck.Value
	}
	return ""
}

// RequireAdmin rejects callers that are not admins with the gate's error,
// which the error handler renders as 401, 403 or 500.
func RequireAdmin(gate Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := gate.Authorize(c.Request().Context()); err != nil {
				return err
			}
			return next(c)
		}
	}
}
