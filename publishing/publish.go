package publishing

import "context"

// PublishRequest is the body of an admin publish call.
type PublishRequest struct {
	EventID string `json:"eventId" validate:"required,uuid"`
	Status  string `json:"status" validate:"required,oneof=draft published"`
}

// Publish validates req and applies the status change. The caller must be
// an admin; that is checked before the request is looked at.
func (s *Service) Publish(ctx context.Context, req PublishRequest) error {
	if err := s.gate.Authorize(ctx); err != nil {
		return err
	}
	if err := s.validate.Struct(ctx, req); err != nil {
		return err
	}
	return s.setStatus(ctx, req.EventID, req.Status)
}
