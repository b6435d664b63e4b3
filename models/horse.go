package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Horse represents a competition horse.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	ID   uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name string    `bun:"name,notnull" json:"name"`
}
