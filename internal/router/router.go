// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tkratz/pokedex-api/internal/handler"
	"github.com/tkratz/pokedex-api/internal/middleware"
	"github.com/tkratz/pokedex-api/internal/server"
)

// reseedRateLimit caps reseed requests per client per minute. The task
// wipes and rebuilds the whole dataset, so it should not be spammable.
const reseedRateLimit = 5

// Setup builds the Echo instance with the full middleware chain and
// all application routes registered.
func Setup(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: recovery first, then request identity and tracing,
	// so the logger and transaction see every request.
	e.Use(m.Global.Recover())
	e.Use(m.Global.Secure())
	e.Use(m.Global.CORS())
	e.Use(middleware.RequestID())
	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.RequestLogger())

	registerSystemRoutes(e, h, m)
	registerPokemonRoutes(e, h)

	return e
}

// registerPokemonRoutes wires the /db group.
func registerPokemonRoutes(e *echo.Echo, h *handler.Handlers) {
	db := e.Group("/db")

	db.GET("/pokemon", handler.Handle(h.Pokemon.Handler, h.Pokemon.List, http.StatusOK))
	db.GET("/pokemon/:id", handler.Handle(h.Pokemon.Handler, h.Pokemon.Get, http.StatusOK))
	db.GET("/pokemon/name/:name", handler.Handle(h.Pokemon.Handler, h.Pokemon.GetByName, http.StatusOK))
	db.POST("/pokemon", handler.Handle(h.Pokemon.Handler, h.Pokemon.Create, http.StatusCreated))
	db.PUT("/pokemon", handler.Handle(h.Pokemon.Handler, h.Pokemon.Update, http.StatusOK))
	db.DELETE("/pokemon/:id", handler.HandleNoContent(h.Pokemon.Handler, h.Pokemon.Delete, http.StatusNoContent))

	db.GET("/type", handler.Handle(h.Type.Handler, h.Type.List, http.StatusOK))
}
