// Package auth decides whether the caller behind a request is an administrator.
//
// A caller is admin iff it presents an unexpired token signed with the
// server key whose subject is a profile with the admin role. The profile is
// re-read on every check, so a demoted admin loses access immediately.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/eventresults/logger"
	"github.com/padraicbc/eventresults/models"
)

// Profiles looks up user profiles.
type Profiles interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error)
}

// Claims extends jwt.RegisteredClaims with the profile email. The subject
// holds the profile's user_id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is an issued token and the moment it stops being valid.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Gate issues and checks admin session tokens.
type Gate struct {
	profiles Profiles
	key      []byte
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate creates a Gate signing tokens with key that expire after ttl.
func NewGate(profiles Profiles, key []byte, ttl time.Duration, opts ...Option) *Gate {
	g := &Gate{profiles: profiles, key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HashPassword validates password input and returns a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login checks email and password and issues a session token. Any mismatch,
// including an unknown email, is models.ErrUnauthorized.
func (g *Gate) Login(ctx context.Context, email, password string) (Session, error) {
	p, err := g.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return Session{}, models.ErrUnauthorized
		}
		logger.FromContext(ctx).Error("profile lookup failed", zap.String("email", email), zap.Error(err))
		return Session{}, &models.StoreError{Op: "login", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return Session{}, models.ErrUnauthorized
	}
	return g.issue(p)
}

func (g *Gate) issue(p *models.UserProfile) (Session, error) {
	now := g.now()
	expiresAt := now.Add(g.ttl)
	claims := &Claims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.key)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate validates the token carried by ctx and returns its claims.
// A missing, malformed, forged or expired token is models.ErrUnauthorized.
func (g *Gate) Authenticate(ctx context.Context) (*Claims, error) {
	raw := TokenFrom(ctx)
	if raw == "" {
		return nil, models.ErrUnauthorized
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return g.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: bad subject", models.ErrUnauthorized)
	}
	return claims, nil
}

// Authorize returns nil if the caller is an admin. Otherwise it returns
// models.ErrUnauthorized for a missing or invalid token, models.ErrForbidden
// for a valid token without an admin profile, or a *models.StoreError.
func (g *Gate) Authorize(ctx context.Context) error {
	claims, err := g.Authenticate(ctx)
	if err != nil {
		return err
	}

	p, err := g.profiles.GetProfile(ctx, uuid.MustParse(claims.Subject))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrForbidden
		}
		logger.FromContext(ctx).Error("profile lookup failed", zap.String("user_id", claims.Subject), zap.Error(err))
		return &models.StoreError{Op: "authorize", Err: err}
	}
	if !p.IsAdmin() {
		return models.ErrForbidden
	}
	return nil
}

// IsAdmin reports whether the caller is an admin. It never fails: absent
// credentials and lookup failures both mean false.
func (g *Gate) IsAdmin(ctx context.Context) bool {
	return g.Authorize(ctx) == nil
}
