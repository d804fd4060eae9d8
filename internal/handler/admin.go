package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fascinar/eventos-api/internal/queue"
	"github.com/fascinar/eventos-api/internal/service"
)

// AdminHandler exposes the cross-event aggregation surface: windowed
// stats, the single-event per-staff breakdown, bulk auto-scheduling and
// the CSV export.
type AdminHandler struct {
	Agg *service.AdminAgg
}

func NewAdminHandler(agg *service.AdminAgg) *AdminHandler {
	return &AdminHandler{Agg: agg}
}

// EventStats aggregates the four-way availability partition for every
// event in the next ?days= days (default 30).
func (h *AdminHandler) EventStats(c echo.Context) error {
	days := queryInt(c, "days", 30)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	stats, err := h.Agg.GetEventStats(ctx, days)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": stats})
}

// EventAvailabilities returns one event's full per-staff breakdown with
// its stats.
func (h *AdminHandler) EventAvailabilities(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	detail, err := h.Agg.GetEventAvailabilities(ctx, eventID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

type autoScheduleReq struct {
	MaxStaff int `json:"max_staff"`
}

// AutoSchedule bulk-assigns up to max_staff available profiles onto the
// event.  No eligible profiles yields 422, not 500.
func (h *AdminHandler) AutoSchedule(c echo.Context) error {
	pid, err := getProfileID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req autoScheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MaxStaff == 0 {
		req.MaxStaff = 10
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	n, err := h.Agg.AutoScheduleEvent(ctx, eventID, req.MaxStaff, pid)
	if err != nil {
		return serviceError(c, err)
	}
	_ = queue.PublishEventChanged(c.Request().Context(), "event_staff", "created", eventID, pid)
	return c.JSON(http.StatusOK, echo.Map{"scheduled": n})
}

// ExportAvailabilities renders the event's per-staff breakdown as a CSV
// attachment for the office spreadsheets.
func (h *AdminHandler) ExportAvailabilities(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	csv, err := h.Agg.ExportEventAvailabilities(ctx, eventID)
	if err != nil {
		return serviceError(c, err)
	}
	filename := fmt.Sprintf("disponibilidade_evento_%d.csv", eventID)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
