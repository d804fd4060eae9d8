package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fascinar/eventos-api/internal/model"
)

// GetRoleCatalog returns the fixed catalog of staff roles in display
// order.  The payload never changes at runtime, so the route sits behind
// the response cache.
func GetRoleCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"roles": model.RoleCatalog()})
}
