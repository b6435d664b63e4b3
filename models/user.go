package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the sole authorization signal of a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole returns the role named by s, or false if it is unknown.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, true
	}
	return "", false
}

// UserProfile is one authenticated identity with a bcrypt-hashed password.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:up"`

	UserID       uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id"`
	Role         Role      `bun:"role,notnull,default:'user'" json:"role"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
