package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Pair is a fixed rider and horse combination.
type Pair struct {
	bun.BaseModel `bun:"table:pairs,alias:p"`

	ID      uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	RiderID uuid.UUID `bun:"rider_id,notnull,type:uuid" json:"rider_id"`
	HorseID uuid.UUID `bun:"horse_id,notnull,type:uuid" json:"horse_id"`
}
