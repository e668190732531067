package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tkratz/pokedex-api/internal/repository"
	"github.com/tkratz/pokedex-api/internal/server"
	"github.com/tkratz/pokedex-api/internal/service"
)

// TypeHandler serves the pokemon type lookup endpoints.
type TypeHandler struct {
	Handler
	service *service.TypeService
}

// NewTypeHandler constructs a TypeHandler.
func NewTypeHandler(s *server.Server, services *service.Services) *TypeHandler {
	return &TypeHandler{
		Handler: NewHandler(s),
		service: services.Type,
	}
}

// ListTypesRequest is the (empty) payload for listing all types.
type ListTypesRequest struct{}

func (r *ListTypesRequest) Validate() error {
	return nil
}

// List returns all known pokemon types.
func (h *TypeHandler) List(c echo.Context, req *ListTypesRequest) ([]repository.TypeRecord, error) {
	return h.service.List(c.Request().Context())
}
