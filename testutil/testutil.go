// Package testutil provides an in-memory database with the production schema
// and fixture helpers for tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/eventresults/db"
	"github.com/padraicbc/eventresults/models"
)

// NewDB opens a fresh in-memory SQLite database with all tables created.
// Foreign keys are not enforced, so tests can create orphaned rows.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A second connection would see a different in-memory database.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return bdb
}

// Fixture inserts rows directly, bypassing store validation.
type Fixture struct {
	T  *testing.T
	DB bun.IDB
}

func (f Fixture) insert(model interface{}) {
	f.T.Helper()
	if _, err := f.DB.NewInsert().Model(model).Exec(context.Background()); err != nil {
		f.T.Fatalf("insert %T: %v", model, err)
	}
}

// Event inserts an event created a day before its date.
func (f Fixture) Event(name string, date time.Time, status models.EventStatus) *models.Event {
	f.T.Helper()
	created := date.Add(-24 * time.Hour).UTC()
	e := &models.Event{
		ID:        uuid.New(),
		Name:      name,
		EventDate: date.UTC(),
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
	f.insert(e)
	return e
}

func (f Fixture) Class(eventID uuid.UUID, name, level string) *models.Class {
	f.T.Helper()
	c := &models.Class{ID: uuid.New(), EventID: eventID, Name: name, Level: level}
	f.insert(c)
	return c
}

// Pair inserts a rider, a horse and the pair joining them.
func (f Fixture) Pair(rider, horse string) *models.Pair {
	f.T.Helper()
	r := &models.Rider{ID: uuid.New(), Name: rider}
	h := &models.Horse{ID: uuid.New(), Name: horse}
	f.insert(r)
	f.insert(h)
	p := &models.Pair{ID: uuid.New(), RiderID: r.ID, HorseID: h.ID}
	f.insert(p)
	return p
}

// OrphanPair inserts a pair whose rider and horse rows do not exist.
func (f Fixture) OrphanPair() *models.Pair {
	f.T.Helper()
	p := &models.Pair{ID: uuid.New(), RiderID: uuid.New(), HorseID: uuid.New()}
	f.insert(p)
	return p
}

func (f Fixture) Result(eventID, classID, pairID uuid.UUID, score string, eligible bool) *models.Result {
	f.T.Helper()
	r := &models.Result{
		ID:            uuid.New(),
		EventID:       eventID,
		ClassID:       classID,
		PairID:        pairID,
		FinalScorePct: decimal.RequireFromString(score),
		Eligible:      eligible,
	}
	f.insert(r)
	return r
}

// Profile inserts a profile with the given password, hashed at minimum cost.
func (f Fixture) Profile(email, password string, role models.Role) *models.UserProfile {
	f.T.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.T.Fatalf("bcrypt: %v", err)
	}
	p := &models.UserProfile{
		UserID:       uuid.New(),
		Role:         role,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	f.insert(p)
	return p
}
