// Package router wires HTTP routes to handlers and applies the auth
// middleware per scope.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fascinar/eventos-api/internal/handler"
	"github.com/fascinar/eventos-api/internal/middleware"
)

// RegisterRoutes registers the unauthenticated routes: the health check
// and the role catalog.  The catalog payload is static, so cache (when
// enabled) goes on that route only.
func RegisterRoutes(e *echo.Echo, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	if cache != nil {
		e.GET("/v1/roles", handler.GetRoleCatalog, cache)
	} else {
		e.GET("/v1/roles", handler.GetRoleCatalog)
	}
}

// RegisterAuth registers the auth endpoints.  Register, login, refresh
// and logout live under /v1/auth without a JWT; /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "STAFF"))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterStaff registers the staff self-service surface under /v1/me.
// Every route requires a valid token; both roles may use it (admins state
// availability too).
func RegisterStaff(e *echo.Echo, av *handler.AvailabilityHandler, jwtSecret string) {
	g := e.Group("/v1/me")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "STAFF"))

	g.GET("/events", av.MyEvents)
	g.GET("/events/:id", av.MyEventView)
	g.PUT("/events/:id/availability", av.SetEventAvailability)
	g.PUT("/availability", av.SetMyAvailability)
	g.GET("/roles", av.MyDefaultRoles)
	g.PUT("/roles", av.SetMyDefaultRole)
}

// RegisterAdmin registers the planning surface: event CRUD, roster slot
// operations, suggestions, the per-date roster and the aggregation
// endpoints.  ADMIN only.
func RegisterAdmin(e *echo.Echo, ev *handler.EventHandler, st *handler.StaffingHandler, av *handler.AvailabilityHandler, ad *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.POST("/events", ev.Create)
	g.GET("/events", ev.List)
	g.GET("/events/:id", ev.Get)
	g.PUT("/events/:id", ev.Update)
	g.DELETE("/events/:id", ev.Delete)

	g.POST("/events/:id/staff", st.AddSlot)
	g.GET("/events/:id/staff", st.Roster)
	g.GET("/events/:id/suggestions", st.Suggestions)
	g.PATCH("/staff/:id/assign", st.Assign)
	g.POST("/staff/:id/confirm", st.Confirm)
	g.DELETE("/staff/:id", st.Remove)

	g.GET("/availability", av.DayRoster)

	g.GET("/admin/event-stats", ad.EventStats)
	g.GET("/admin/events/:id/availability", ad.EventAvailabilities)
	g.POST("/admin/events/:id/autoschedule", ad.AutoSchedule)
	g.GET("/admin/events/:id/availability/export", ad.ExportAvailabilities)
}
