package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/queue"
	"github.com/fascinar/eventos-api/internal/repository"
)

// EventHandler exposes the admin-side CRUD for events.  Mutations publish
// a best-effort change notification so connected clients re-fetch.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(events *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: events}
}

type eventReq struct {
	Title      string `json:"title" validate:"required,min=2"`
	ClientName string `json:"client_name"`
	EventDate  string `json:"event_date" validate:"required"` // RFC3339 or YYYY-MM-DD
	Venue      string `json:"venue"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

// parseEventDate accepts a full timestamp or a bare date; bare dates mean
// midnight UTC, which is all the availability matching needs.
func parseEventDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func validEventStatus(s string) bool {
	switch s {
	case "PLANNED", "CONFIRMED", "DONE", "CANCELLED":
		return true
	}
	return false
}

// Create registers a new event owned by the calling admin.
func (h *EventHandler) Create(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and event_date are required"})
	}
	date, ok := parseEventDate(req.EventDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be RFC3339 or YYYY-MM-DD"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = "PLANNED"
	}
	if !validEventStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ev := model.Event{
		OwnerID:    pid,
		Title:      req.Title,
		ClientName: req.ClientName,
		EventDate:  date,
		Venue:      req.Venue,
		Status:     status,
		Notes:      req.Notes,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Events.Create(ctx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event", "created", ev.ID, pid)
	return c.JSON(http.StatusCreated, ev)
}

// Get returns one event by id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	ev, err := h.Events.EventByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// List returns the caller's events, newest date first per repo ordering.
func (h *EventHandler) List(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	events, err := h.Events.ListByOwner(ctx, pid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Update overwrites the event's editable fields.
func (h *EventHandler) Update(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and event_date are required"})
	}
	date, ok := parseEventDate(req.EventDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be RFC3339 or YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	ev, err := h.Events.EventByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}

	ev.Title = req.Title
	ev.ClientName = req.ClientName
	ev.EventDate = date
	ev.Venue = req.Venue
	ev.Notes = req.Notes
	if req.Status != "" {
		status := strings.ToUpper(strings.TrimSpace(req.Status))
		if !validEventStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		ev.Status = status
	}
	if err := h.Events.Update(ctx, ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event", "updated", ev.ID, pid)
	return c.JSON(http.StatusOK, ev)
}

// Delete removes the event.  Staffing and availability rows for the date
// are left alone; availability belongs to the date, not the event.
func (h *EventHandler) Delete(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Events.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event", "deleted", id, pid)
	return c.NoContent(http.StatusNoContent)
}
