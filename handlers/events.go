package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/eventresults/models"
	"github.com/padraicbc/eventresults/publishing"
)

// Events returns published events, most recent first.
func (h *Handler) Events(c echo.Context) error {
	events, err := h.svc.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]models.PublicEvent, len(events))
	for i, e := range events {
		out[i] = e.Public()
	}
	return c.JSON(http.StatusOK, out)
}

// Event returns a single published event.
func (h *Handler) Event(c echo.Context) error {
	event, err := h.svc.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event.Public())
}

// EventResults returns the results of a published event joined with class,
// rider and horse names.
func (h *Handler) EventResults(c echo.Context) error {
	views, err := h.svc.ResultsForEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// AdminEvents returns every event with all fields.
func (h *Handler) AdminEvents(c echo.Context) error {
	events, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Publish sets an event's status to draft or published.
func (h *Handler) Publish(c echo.Context) error {
	var req publishing.PublishRequest
	if err := c.Bind(&req); err != nil {
		return &models.ValidationError{Msg: "invalid request body"}
	}

	if err := h.svc.Publish(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "event status updated"})
}
