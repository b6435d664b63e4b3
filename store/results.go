package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/padraicbc/eventresults/models"
)

// resultViewRow is a flat scan target for the results join query. Joined
// columns are nullable because any referenced row may be missing.
type resultViewRow struct {
	// results table (alias r)
	ID            uuid.UUID       `bun:"id"`
	ClassID       uuid.UUID       `bun:"class_id"`
	PairID        uuid.UUID       `bun:"pair_id"`
	FinalScorePct decimal.Decimal `bun:"final_score_pct"`
	Eligible      bool            `bun:"eligible"`
	// classes table (alias c)
	ClassName  *string `bun:"class_name"`
	ClassLevel *string `bun:"class_level"`
	// riders (alias rd) and horses (alias h) via pairs (alias p)
	RiderName *string `bun:"rider_name"`
	HorseName *string `bun:"horse_name"`
}

const resultsJoinSQL = `
SELECT
	r.id, r.class_id, r.pair_id, r.final_score_pct, r.eligible,
	c.name AS class_name, c.level AS class_level,
	rd.name AS rider_name, h.name AS horse_name
FROM results r
LEFT JOIN classes c  ON c.id  = r.class_id
LEFT JOIN pairs   p  ON p.id  = r.pair_id
LEFT JOIN riders  rd ON rd.id = p.rider_id
LEFT JOIN horses  h  ON h.id  = p.horse_id
WHERE r.event_id = ?
ORDER BY c.name IS NULL, c.name, r.final_score_pct DESC, r.id
`

// ResultsForEvent returns every result of the event joined with its class,
// rider and horse. Rows with broken references are kept with fallback names.
func (s *Store) ResultsForEvent(ctx context.Context, eventID uuid.UUID) ([]models.ResultView, error) {
	var rows []resultViewRow
	if err := s.db.NewRaw(resultsJoinSQL, eventID).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("results for event %s: %w", eventID, err)
	}

	out := make([]models.ResultView, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ResultView{
			ID:            row.ID,
			ClassID:       row.ClassID,
			ClassName:     orUnavailable(row.ClassName),
			ClassLevel:    orUnavailable(row.ClassLevel),
			PairID:        row.PairID,
			RiderName:     orUnavailable(row.RiderName),
			HorseName:     orUnavailable(row.HorseName),
			FinalScorePct: row.FinalScorePct,
			Eligible:      row.Eligible,
		})
	}
	return out, nil
}

func orUnavailable(s *string) string {
	if s == nil || *s == "" {
		return models.Unavailable
	}
	return *s
}
