package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/padraicbc/eventresults/models"
	"github.com/padraicbc/eventresults/store"
)

// steps run in dependency order.
var steps = []step{
	{"user_profiles", migrateProfiles},
	{"events", migrateEvents},
	{"riders", migrateRiders},
	{"horses", migrateHorses},
	{"classes", migrateClasses},
	{"pairs", migratePairs},
	{"results", migrateResults},
}

func migrateProfiles(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg,
		"SELECT user_id, role, email, password_hash, created_at FROM user_profiles",
		func(rows *sql.Rows, p *models.UserProfile) error {
			var role sql.NullString
			if err := rows.Scan(&p.UserID, &role, &p.Email, &p.PasswordHash, &p.CreatedAt); err != nil {
				return err
			}
			p.Email = store.NormalizeEmail(p.Email)
			// anything unrecognised loses admin rights
			p.Role = models.RoleUser
			if r, ok := models.ParseRole(strings.ToLower(role.String)); ok {
				p.Role = r
			}
			return nil
		})
}

func migrateEvents(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg,
		"SELECT id, name, event_date, status, created_at, updated_at FROM events",
		func(rows *sql.Rows, e *models.Event) error {
			var (
				status    sql.NullString
				updatedAt sql.NullTime
			)
			if err := rows.Scan(&e.ID, &e.Name, &e.EventDate, &status, &e.CreatedAt, &updatedAt); err != nil {
				return err
			}
			e.Status = models.StatusDraft
			if s, ok := models.ParseEventStatus(strings.ToLower(status.String)); ok {
				e.Status = s
			}
			e.UpdatedAt = e.CreatedAt
			if updatedAt.Valid {
				e.UpdatedAt = updatedAt.Time
			}
			return nil
		})
}

func migrateRiders(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg, "SELECT id, name FROM riders",
		func(rows *sql.Rows, r *models.Rider) error {
			return rows.Scan(&r.ID, &r.Name)
		})
}

func migrateHorses(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg, "SELECT id, name FROM horses",
		func(rows *sql.Rows, h *models.Horse) error {
			return rows.Scan(&h.ID, &h.Name)
		})
}

func migrateClasses(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg, "SELECT id, event_id, name, level FROM classes",
		func(rows *sql.Rows, c *models.Class) error {
			var level sql.NullString
			if err := rows.Scan(&c.ID, &c.EventID, &c.Name, &level); err != nil {
				return err
			}
			c.Level = level.String
			return nil
		})
}

func migratePairs(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg, "SELECT id, rider_id, horse_id FROM pairs",
		func(rows *sql.Rows, p *models.Pair) error {
			return rows.Scan(&p.ID, &p.RiderID, &p.HorseID)
		})
}

func migrateResults(ctx context.Context, myDB *sql.DB, pg bun.IDB) (int, error) {
	return copyRows(ctx, myDB, pg,
		"SELECT id, event_id, class_id, pair_id, final_score_pct, eligible FROM results",
		func(rows *sql.Rows, r *models.Result) error {
			var eligible sql.NullBool
			if err := rows.Scan(&r.ID, &r.EventID, &r.ClassID, &r.PairID, &r.FinalScorePct, &eligible); err != nil {
				return err
			}
			score, err := models.NormalizeScore(r.FinalScorePct)
			if err != nil {
				return &skipRow{reason: fmt.Sprintf("result %s: score %s out of range", r.ID, r.FinalScorePct)}
			}
			r.FinalScorePct = score
			r.Eligible = !eligible.Valid || eligible.Bool
			return nil
		})
}
