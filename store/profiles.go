package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/padraicbc/eventresults/models"
)

// GetProfile returns the profile of userID.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := s.db.NewSelect().Model(p).Where("up.user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return p, nil
}

// GetProfileByEmail returns the profile registered with email, case-insensitively.
func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	err := s.db.NewSelect().Model(p).Where("up.email = ?", NormalizeEmail(email)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return p, nil
}

// SaveProfile creates p, or updates role and password of the existing
// profile with the same email. p.UserID is set to the stored id.
func (s *Store) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	p.Email = NormalizeEmail(p.Email)
	if p.Email == "" {
		return &models.ValidationError{Field: "email", Msg: "is required"}
	}
	if _, ok := models.ParseRole(string(p.Role)); !ok {
		return &models.ValidationError{Field: "role", Msg: "must be user or admin"}
	}
	if p.PasswordHash == "" {
		return &models.ValidationError{Field: "password", Msg: "is required"}
	}
	if p.UserID == uuid.Nil {
		p.UserID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NewInsert().Model(p).
		On("CONFLICT (email) DO UPDATE").
		Set("role = EXCLUDED.role").
		Set("password_hash = EXCLUDED.password_hash").
		Returning("user_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
