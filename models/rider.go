package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Rider competes on a horse as part of a pair.
type Rider struct {
	bun.BaseModel `bun:"table:riders,alias:rd"`

	ID   uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name string    `bun:"name,notnull" json:"name"`
}
