package publishing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padraicbc/eventresults/logger"
	"github.com/padraicbc/eventresults/models"
)

// SetStatus moves an event to target. Any status may follow any other,
// including itself; every call stamps a new updated_at. The caller must be
// an admin.
func (s *Service) SetStatus(ctx context.Context, eventID, target string) error {
	if err := s.gate.Authorize(ctx); err != nil {
		return err
	}
	return s.setStatus(ctx, eventID, target)
}

func (s *Service) setStatus(ctx context.Context, eventID, target string) error {
	status, ok := models.ParseEventStatus(target)
	if !ok {
		return &models.ValidationError{Field: "status", Msg: "must be one of draft, published"}
	}
	id, err := uuid.Parse(eventID)
	if err != nil {
		return &models.ValidationError{Field: "eventId", Msg: "must be a UUID"}
	}

	if err := s.store.SetEventStatus(ctx, id, status, s.now().UTC()); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &models.ValidationError{Field: "eventId", Msg: "event does not exist"}
		}
		return storeErr(ctx, "set event status", err)
	}

	s.metrics.StatusChanged(string(status))
	logger.FromContext(ctx).Info("event status changed",
		zap.String("event_id", id.String()),
		zap.String("status", string(status)),
	)
	return nil
}
