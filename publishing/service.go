// Package publishing serves event listings and results and moves events
// between the draft and published states.
//
// Public reads only ever see published events. Listing every event and
// changing a status require the caller to be an admin; the check runs before
// any write reaches the store.
package publishing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padraicbc/eventresults/logger"
	"github.com/padraicbc/eventresults/metrics"
	"github.com/padraicbc/eventresults/models"
	"github.com/padraicbc/eventresults/validation"
)

// Store is the persistence the service needs.
type Store interface {
	ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	SetEventStatus(ctx context.Context, id uuid.UUID, status models.EventStatus, at time.Time) error
	ResultsForEvent(ctx context.Context, eventID uuid.UUID) ([]models.ResultView, error)
}

// Gate decides whether the caller carried by a context is an admin.
type Gate interface {
	Authorize(ctx context.Context) error
	IsAdmin(ctx context.Context) bool
}

// Service implements the public and admin read paths and status changes.
type Service struct {
	store    Store
	gate     Gate
	metrics  *metrics.Metrics
	validate *validation.Validator
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records status changes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock replaces time.Now as the source of updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service.
func New(store Store, gate Gate, opts ...Option) *Service {
	s := &Service{
		store:    store,
		gate:     gate,
		validate: validation.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storeErr logs a persistence failure and hides its detail from callers.
func storeErr(ctx context.Context, op string, err error) error {
	logger.FromContext(ctx).Error("store failure", zap.String("op", op), zap.Error(err))
	return &models.StoreError{Op: op, Err: err}
}

// ListPublished returns published events, most recent date first.
func (s *Service) ListPublished(ctx context.Context) ([]models.Event, error) {
	events, err := s.store.ListEvents(ctx, models.StatusPublished)
	if err != nil {
		return nil, storeErr(ctx, "list published events", err)
	}
	return events, nil
}

// ListAll returns every event in the same order as ListPublished. The caller
// must be an admin.
func (s *Service) ListAll(ctx context.Context) ([]models.Event, error) {
	if err := s.gate.Authorize(ctx); err != nil {
		return nil, err
	}
	events, err := s.store.ListEvents(ctx, "")
	if err != nil {
		return nil, storeErr(ctx, "list events", err)
	}
	return events, nil
}

// GetEvent returns the event with the given id. Unknown or malformed ids
// and drafts requested by non-admins are models.ErrNotFound.
func (s *Service) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, storeErr(ctx, "get event", err)
	}

	if event.Status != models.StatusPublished && !s.gate.IsAdmin(ctx) {
		return nil, models.ErrNotFound
	}
	return event, nil
}

// ResultsForEvent returns the joined results of a visible event. An event
// without results yields an empty slice.
func (s *Service) ResultsForEvent(ctx context.Context, id string) ([]models.ResultView, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.store.ResultsForEvent(ctx, event.ID)
	if err != nil {
		return nil, storeErr(ctx, "results for event", err)
	}
	return views, nil
}
