package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fascinar/eventos-api/internal/model"
	"github.com/fascinar/eventos-api/internal/queue"
	"github.com/fascinar/eventos-api/internal/service"
)

// StaffingHandler exposes the staffing roster operations: slot CRUD,
// assignment, confirmation, candidate suggestions and the roster summary.
type StaffingHandler struct {
	Staffing *service.Staffing
}

func NewStaffingHandler(s *service.Staffing) *StaffingHandler {
	return &StaffingHandler{Staffing: s}
}

type addSlotReq struct {
	Role  string `json:"role" validate:"required"`
	Notes string `json:"notes"`
}

// AddSlot creates an empty role slot on the event's roster.
func (h *StaffingHandler) AddSlot(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req addSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	slot, err := h.Staffing.AddRoleSlot(ctx, eventID, model.StaffRole(req.Role), req.Notes, pid)
	if err != nil {
		return serviceError(c, err)
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event_staff", "created", eventID, pid)
	return c.JSON(http.StatusCreated, toSlotResp(slot))
}

type assignReq struct {
	StaffName    string  `json:"staff_name"`
	ProfileID    *uint64 `json:"profile_id"`
	ArrivalTime  *string `json:"arrival_time"`
	HourlyRate   *string `json:"hourly_rate"`
	HoursPlanned *string `json:"hours_planned"`
	Notes        *string `json:"notes"`
}

// Assign puts a person (registered profile or free-text name) on the
// slot.  Any prior confirmation is cleared by the service.
func (h *StaffingHandler) Assign(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	in := service.AssignPersonInput{
		PersonName:  strings.TrimSpace(req.StaffName),
		ProfileID:   req.ProfileID,
		ArrivalTime: req.ArrivalTime,
		Notes:       req.Notes,
	}
	if req.HourlyRate != nil {
		rate, err := decimal.NewFromString(*req.HourlyRate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate must be a decimal string"})
		}
		in.HourlyRate = &rate
	}
	if req.HoursPlanned != nil {
		hours, err := decimal.NewFromString(*req.HoursPlanned)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "hours_planned must be a decimal string"})
		}
		in.HoursPlanned = &hours
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	slot, err := h.Staffing.AssignPerson(ctx, slotID, in)
	if err != nil {
		return serviceError(c, err)
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event_staff", "updated", slot.EventID, pid)
	return c.JSON(http.StatusOK, toSlotResp(slot))
}

// Confirm marks the slot's assignment as confirmed now.
func (h *StaffingHandler) Confirm(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	slot, err := h.Staffing.ConfirmAssignment(ctx, slotID)
	if err != nil {
		return serviceError(c, err)
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event_staff", "updated", slot.EventID, pid)
	return c.JSON(http.StatusOK, toSlotResp(slot))
}

// Remove deletes the slot.  Deleting an id that is already gone still
// returns 204.  The slot is read first so the notification can carry the
// event id; a slot that no longer exists needs no notification.
func (h *StaffingHandler) Remove(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	var eventID uint64
	if slot, err := h.Staffing.SlotByID(ctx, slotID); err == nil {
		eventID = slot.EventID
	}
	if err := h.Staffing.RemoveSlot(ctx, slotID); err != nil {
		return serviceError(c, err)
	}
	if eventID != 0 {
		_ = queue.PublishEventChanged(c.Request().Context(), "event_staff", "deleted", eventID, pid)
	}
	return c.NoContent(http.StatusNoContent)
}

// Roster returns the event's slot list together with the derived summary
// (counts by role, assignment and confirmation totals, planned and actual
// cost).
func (h *StaffingHandler) Roster(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	slots, err := h.Staffing.SlotsForEvent(ctx, eventID)
	if err != nil {
		return serviceError(c, err)
	}
	summary, err := h.Staffing.BuildSummary(ctx, eventID)
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]slotResp, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": out, "summary": summary})
}

// Suggestions returns the ranked candidate list for the event, optionally
// filtered by the comma-separated ?roles= parameter.
func (h *StaffingHandler) Suggestions(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var roles []model.StaffRole
	if raw := c.QueryParam("roles"); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			r = strings.TrimSpace(r)
			if r != "" {
				roles = append(roles, model.StaffRole(r))
			}
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	candidates, err := h.Staffing.SuggestCandidates(ctx, eventID, roles)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"candidates": candidates})
}
