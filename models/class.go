package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Class is a named, leveled division within an event.
type Class struct {
	bun.BaseModel `bun:"table:classes,alias:c"`

	ID      uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	EventID uuid.UUID `bun:"event_id,notnull,type:uuid" json:"event_id"`
	Name    string    `bun:"name,notnull" json:"name"`
	Level   string    `bun:"level,notnull" json:"level"`
}
