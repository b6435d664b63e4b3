package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Unavailable is shown in place of a class, rider or horse name whose row
// is missing.
const Unavailable = "Unavailable"

var (
	minScore = decimal.Zero
	maxScore = decimal.NewFromInt(100)
)

// Result is the scored outcome of one pair in one class of one event.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	EventID       uuid.UUID       `bun:"event_id,notnull,type:uuid" json:"event_id"`
	ClassID       uuid.UUID       `bun:"class_id,notnull,type:uuid" json:"class_id"`
	PairID        uuid.UUID       `bun:"pair_id,notnull,type:uuid" json:"pair_id"`
	FinalScorePct decimal.Decimal `bun:"final_score_pct,notnull,type:decimal(5,2)" json:"final_score_pct"`
	Eligible      bool            `bun:"eligible,notnull" json:"eligible"`
}

// NormalizeScore rounds a percentage score to two fractional digits and
// checks it lies within [0,100].
func NormalizeScore(score decimal.Decimal) (decimal.Decimal, error) {
	s := score.Round(2)
	if s.LessThan(minScore) || s.GreaterThan(maxScore) {
		return decimal.Zero, &ValidationError{Field: "final_score_pct", Msg: "must be between 0 and 100"}
	}
	return s, nil
}

// ResultView is a result joined with its class and, through its pair, its
// rider and horse. Names of missing rows are reported as Unavailable.
type ResultView struct {
	ID            uuid.UUID       `json:"id"`
	ClassID       uuid.UUID       `json:"class_id"`
	ClassName     string          `json:"class_name"`
	ClassLevel    string          `json:"class_level"`
	PairID        uuid.UUID       `json:"pair_id"`
	RiderName     string          `json:"rider_name"`
	HorseName     string          `json:"horse_name"`
	FinalScorePct decimal.Decimal `json:"final_score_pct"`
	Eligible      bool            `json:"eligible"`
}
