package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/repository"
	"github.com/fascinar/eventos-api/internal/service"
)

// dbTimeout bounds every store call made on behalf of a request.
const dbTimeout = 5 * time.Second

// getProfileID extracts the profile_id set by the JWT middleware and
// converts it to uint64.
func getProfileID(c echo.Context) (uint64, error) {
	v := c.Get("profile_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid profile_id in context")
}

// pathID parses the :id (or another named) route parameter as uint64.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// queryInt reads an optional integer query parameter, falling back to def
// when absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// serviceError maps service-layer failures onto HTTP responses.  The
// mapping is shared by every handler so equal failures always read the
// same on the wire.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrAlreadyScheduled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already scheduled for this event"})
	case errors.Is(err, service.ErrNoCandidates):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no eligible staff to schedule"})
	case service.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var se *service.StoreError
	if errors.As(err, &se) {
		c.Logger().Error(se)
		var su *repository.SetupError
		if errors.As(err, &su) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": su.Remediation})
		}
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// ----- shared response shapes -----

type slotResp struct {
	ID           uint64          `json:"id"`
	EventID      uint64          `json:"event_id"`
	Role         model.StaffRole `json:"role"`
	RoleLabel    string          `json:"role_label"`
	ProfileID    *uint64         `json:"profile_id"`
	StaffName    string          `json:"staff_name"`
	Assigned     bool            `json:"assigned"`
	Confirmed    bool            `json:"confirmed"`
	ConfirmedAt  *time.Time      `json:"confirmed_at"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	HoursPlanned decimal.Decimal `json:"hours_planned"`
	HoursWorked  *decimal.Decimal `json:"hours_worked"`
	ArrivalTime  *string         `json:"arrival_time"`
	Notes        string          `json:"notes"`
}

func toSlotResp(s model.EventStaffSlot) slotResp {
	out := slotResp{
		ID:           s.ID,
		EventID:      s.EventID,
		Role:         s.Role,
		RoleLabel:    s.Role.Label(),
		StaffName:    s.Assignee.DisplayName(),
		Assigned:     s.Assignee.Assigned(),
		Confirmed:    s.Confirmed,
		ConfirmedAt:  s.ConfirmedAt,
		HourlyRate:   s.HourlyRate,
		HoursPlanned: s.HoursPlanned,
		HoursWorked:  s.HoursWorked,
		ArrivalTime:  s.ArrivalTime,
		Notes:        s.Notes,
	}
	if s.Assignee.Kind == model.AssigneeRegistered {
		id := s.Assignee.ProfileID
		out.ProfileID = &id
	}
	return out
}
