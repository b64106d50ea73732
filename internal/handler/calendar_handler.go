package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gracechapel/site-api/internal/calendar"
	"github.com/gracechapel/site-api/internal/models"
	"github.com/gracechapel/site-api/pkg/logger"
)

// EventSource is the slice of the calendar client the handler needs.
type EventSource interface {
	UpcomingEvents(ctx context.Context) ([]calendar.Event, error)
}

// CalendarHandler serves the upcoming-events endpoint. Calendar failures are
// reported in-band: status 200, empty items and a non-empty error field.
type CalendarHandler struct {
	client EventSource
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(client EventSource) *CalendarHandler {
	return &CalendarHandler{client: client}
}

// HandleUpcomingEvents lists events within the configured window.
func (h *CalendarHandler) HandleUpcomingEvents(c *gin.Context) {
	events, err := h.client.UpcomingEvents(c.Request.Context())
	if err != nil {
		logger.Log.Warn("calendar fetch failed",
			zap.Error(err),
		)
		c.JSON(http.StatusOK, models.CalendarResponse{
			Items: []calendar.Event{},
			Error: "calendar unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, models.CalendarResponse{Items: events, Error: ""})
}
