package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tkratz/pokedex-api/internal/handler"
	"github.com/tkratz/pokedex-api/internal/middleware"
)

// registerSystemRoutes registers endpoints that are not part of the
// business logic: index page, health status, and operational tasks.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	e.GET("/", h.System.Index)

	// Used by Kubernetes probes and uptime monitors.
	e.GET("/status", h.Health.CheckHealth)

	system := e.Group("/system", m.RateLimit.Limit(reseedRateLimit))
	system.POST("/reseed", handler.Handle(h.System.Handler, h.System.Reseed, http.StatusAccepted))
}
