package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/service"
)

// AvailabilityHandler serves the staff self-service surface: the upcoming
// event list with derived availability, the per-event availability write
// (guarded by the scheduling lock), raw per-date records and standing
// default roles.
type AvailabilityHandler struct {
	Availability *service.Availability
	Reconcile    *service.Reconcile
}

func NewAvailabilityHandler(a *service.Availability, r *service.Reconcile) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: a, Reconcile: r}
}

// MyEvents lists upcoming events with the caller's derived tri-state for
// each, windowed by ?limit and ?offset, plus a has_more flag.
func (h *AvailabilityHandler) MyEvents(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	views, hasMore, err := h.Reconcile.UpcomingEventsWithAvailability(ctx, pid, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": views, "has_more": hasMore})
}

// MyEventView returns the caller's derived view for one event.
func (h *AvailabilityHandler) MyEventView(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	v, err := h.Reconcile.EventView(ctx, eventID, pid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type eventAvailabilityReq struct {
	IsAvailable bool    `json:"is_available"`
	From        *string `json:"from"`  // "HH:MM"
	Until       *string `json:"until"` // "HH:MM"
	Notes       string  `json:"notes"`
}

// SetEventAvailability upserts the caller's availability record for the
// event's date.  A caller already scheduled onto the event gets 409 and
// the record stays untouched.
func (h *AvailabilityHandler) SetEventAvailability(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Reconcile.SetEventAvailability(ctx, pid, eventID, req.IsAvailable, req.From, req.Until, req.Notes); err != nil {
		return serviceError(c, err)
	}
	v, err := h.Reconcile.EventView(ctx, eventID, pid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type dayAvailabilityReq struct {
	Date      string  `json:"date" validate:"required"` // "YYYY-MM-DD"
	Status    string  `json:"status" validate:"required"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Notes     string  `json:"notes"`
}

// SetMyAvailability upserts the caller's raw per-date record, independent
// of any event.
func (h *AvailabilityHandler) SetMyAvailability(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req dayAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and status are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	ok := h.Availability.SetAvailability(ctx, pid, req.Date, model.AvailabilityStatus(req.Status), req.StartTime, req.EndTime, req.Notes)
	if !ok {
		if err := h.Availability.LastError(); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save availability failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": true})
}

// MyDefaultRoles lists the caller's standing role competencies.
func (h *AvailabilityHandler) MyDefaultRoles(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	roles, err := h.Availability.GetDefaultRoles(ctx, pid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"default_roles": roles})
}

type defaultRoleReq struct {
	Role            string `json:"role" validate:"required"`
	ExperienceLevel int    `json:"experience_level" validate:"required,min=1,max=5"`
	HourlyRate      string `json:"hourly_rate"`
}

// SetMyDefaultRole upserts one competency keyed on (profile, role).
func (h *AvailabilityHandler) SetMyDefaultRole(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req defaultRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role and experience_level (1-5) are required"})
	}
	rate := decimal.Zero
	if req.HourlyRate != "" {
		parsed, err := decimal.NewFromString(req.HourlyRate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate must be a decimal string"})
		}
		rate = parsed
	}
	d := model.DefaultRole{
		ProfileID:       pid,
		Role:            model.StaffRole(req.Role),
		ExperienceLevel: req.ExperienceLevel,
		HourlyRate:      rate,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if !h.Availability.SetDefaultRole(ctx, d) {
		if err := h.Availability.LastError(); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save default role failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": true})
}

// DayRoster returns every availability record for one calendar date,
// joined with profile identity.  Admin surface, ?date=YYYY-MM-DD.
func (h *AvailabilityHandler) DayRoster(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	roster, err := h.Availability.GetAvailability(ctx, date)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]echo.Map, 0, len(roster))
	for _, r := range roster {
		out = append(out, echo.Map{
			"profile_id": r.ProfileID,
			"name":       r.ProfileName,
			"email":      r.ProfileEmail,
			"date":       r.Date,
			"status":     r.Status,
			"time_range": model.TimeRangeDisplay(&r.Status, r.StartTime, r.EndTime),
			"notes":      r.Notes,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "availability": out})
}
