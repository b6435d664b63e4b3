package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/eventresults/auth"
	"github.com/padraicbc/eventresults/models"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login validates credentials, sets the session cookie and returns the
// token for clients that prefer the Authorization header.
func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return &models.ValidationError{Msg: "invalid request body"}
	}
	if err := c.Validate(&creds); err != nil {
		return err
	}

	s, err := h.gate.Login(c.Request().Context(), creds.Email, creds.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(s.Token, s.ExpiresAt))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":     s.Token,
		"expiresAt": s.ExpiresAt,
	})
}

// Logout clears the session cookie. Issued tokens stay valid until they
// expire.
func (h *Handler) Logout(c echo.Context) error {
	ck := h.sessionCookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me reports whether the current session belongs to an admin.
func (h *Handler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	claims, err := h.gate.Authenticate(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"email":   claims.Email,
		"isAdmin": h.gate.IsAdmin(ctx),
	})
}

func (h *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
