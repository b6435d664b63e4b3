// Package store persists events, classes, pairs, results and user profiles.
//
// Error semantics:
//   - models.ErrNotFound: the requested row does not exist
//   - models.ErrInconsistentResult: a result's class belongs to another event
//   - *models.ValidationError: a row failed a write-time check
//   - other errors: infrastructure failures
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/padraicbc/eventresults/models"
)

// Store reads and writes entities through any bun connection or transaction.
type Store struct {
	db bun.IDB
}

// New creates a Store on db.
func New(db bun.IDB) *Store {
	return &Store{db: db}
}

// RunInTx runs fn with a Store bound to a single transaction. The
// transaction is committed if fn returns nil and rolled back otherwise.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, New(tx))
	})
}

// ListEvents returns events ordered by date, most recent first. Events on the
// same date keep creation order. An empty status returns every event.
func (s *Store) ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	events := []models.Event{}
	q := s.db.NewSelect().
		Model(&events).
		OrderExpr("e.event_date DESC").
		OrderExpr("e.created_at ASC").
		OrderExpr("e.id ASC")

	if status != "" {
		q = q.Where("e.status = ?", status)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent returns the event with the given id.
func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	err := s.db.NewSelect().Model(event).Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return event, nil
}

// SetEventStatus writes status and updated_at in a single statement.
func (s *Store) SetEventStatus(ctx context.Context, id uuid.UUID, status models.EventStatus, at time.Time) error {
	res, err := s.db.NewUpdate().
		TableExpr("events").
		Set("status = ?", status).
		Set("updated_at = ?", at.UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set event %s status: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set event %s status: rows affected: %w", id, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CreateEvent inserts e, assigning an id, draft status and timestamps when unset.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	if strings.TrimSpace(e.Name) == "" {
		return &models.ValidationError{Field: "name", Msg: "is required"}
	}
	if e.EventDate.IsZero() {
		return &models.ValidationError{Field: "event_date", Msg: "is required"}
	}
	if e.Status == "" {
		e.Status = models.StatusDraft
	}
	if !e.Status.Valid() {
		return &models.ValidationError{Field: "status", Msg: "must be draft or published"}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}

	if _, err := s.db.NewInsert().Model(e).Exec(ctx); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// CreateClass inserts c under an existing event.
func (s *Store) CreateClass(ctx context.Context, c *models.Class) error {
	if strings.TrimSpace(c.Name) == "" {
		return &models.ValidationError{Field: "name", Msg: "is required"}
	}
	if _, err := s.GetEvent(ctx, c.EventID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &models.ValidationError{Field: "event_id", Msg: "event does not exist"}
		}
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if _, err := s.db.NewInsert().Model(c).Exec(ctx); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// CreateRider inserts r.
func (s *Store) CreateRider(ctx context.Context, r *models.Rider) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if _, err := s.db.NewInsert().Model(r).Exec(ctx); err != nil {
		return fmt.Errorf("create rider: %w", err)
	}
	return nil
}

// CreateHorse inserts h.
func (s *Store) CreateHorse(ctx context.Context, h *models.Horse) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if _, err := s.db.NewInsert().Model(h).Exec(ctx); err != nil {
		return fmt.Errorf("create horse: %w", err)
	}
	return nil
}

// CreatePair inserts p.
func (s *Store) CreatePair(ctx context.Context, p *models.Pair) error {
	if p.RiderID == uuid.Nil || p.HorseID == uuid.Nil {
		return &models.ValidationError{Field: "pair", Msg: "rider and horse are required"}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, err := s.db.NewInsert().Model(p).Exec(ctx); err != nil {
		return fmt.Errorf("create pair: %w", err)
	}
	return nil
}

// CreateResult inserts r after checking that its class belongs to the same
// event and its score is a valid percentage. Run it inside RunInTx when the
// class may change concurrently.
func (s *Store) CreateResult(ctx context.Context, r *models.Result) error {
	score, err := models.NormalizeScore(r.FinalScorePct)
	if err != nil {
		return err
	}
	r.FinalScorePct = score

	class := &models.Class{}
	err = s.db.NewSelect().Model(class).Column("c.event_id").Where("c.id = ?", r.ClassID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.ValidationError{Field: "class_id", Msg: "class does not exist"}
		}
		return fmt.Errorf("create result: load class: %w", err)
	}
	if class.EventID != r.EventID {
		return models.ErrInconsistentResult
	}

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if _, err := s.db.NewInsert().Model(r).Exec(ctx); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

// InconsistentResults returns the ids of results whose class belongs to a
// different event than the result itself.
func (s *Store) InconsistentResults(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.db.NewSelect().
		TableExpr("results AS r").
		ColumnExpr("r.id").
		Join("INNER JOIN classes AS c ON c.id = r.class_id").
		Where("c.event_id <> r.event_id").
		OrderExpr("r.id").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("inconsistent results: %w", err)
	}
	return ids, nil
}
