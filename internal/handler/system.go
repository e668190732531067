package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tkratz/pokedex-api/internal/middleware"
	"github.com/tkratz/pokedex-api/internal/server"
	"github.com/tkratz/pokedex-api/internal/service"
)

// SystemHandler serves the index page and operational endpoints.
type SystemHandler struct {
	Handler
	services *service.Services
}

// NewSystemHandler constructs a SystemHandler.
func NewSystemHandler(s *server.Server, services *service.Services) *SystemHandler {
	return &SystemHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// Index returns a plain-text listing of the available endpoints.
func (h *SystemHandler) Index(c echo.Context) error {
	lines := []string{
		"Pokedex API:",
		"     GET /db/pokemon                - List all pokemons",
		"     GET /db/pokemon/:id            - Get pokemon by id",
		"     GET /db/pokemon/name/:name     - Get pokemon by name",
		"    POST /db/pokemon                - Insert new pokemon",
		"     PUT /db/pokemon                - Update pokemon",
		"  DELETE /db/pokemon/:id            - Delete pokemon by id",
		"     GET /db/type                   - List all pokemon types",
		"     GET /status                    - Health and dependency checks",
		"    POST /system/reseed             - Reset database to seed data",
		"",
	}

	return c.String(http.StatusOK, strings.Join(lines, "\n"))
}

// ReseedRequest is the (empty) payload for the reseed endpoint.
type ReseedRequest struct{}

func (r *ReseedRequest) Validate() error {
	return nil
}

// Reseed enqueues a background task that resets the database back to
// the bundled seed data. The reset runs asynchronously on the job
// worker, so the endpoint returns 202 immediately.
func (h *SystemHandler) Reseed(c echo.Context, req *ReseedRequest) (map[string]string, error) {
	if err := h.services.Job.EnqueueReseed(c.Request().Context()); err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().Msg("Reseed task enqueued")

	return map[string]string{"status": "queued"}, nil
}
