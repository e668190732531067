package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tkratz/pokedex-api/internal/aggregate"
	"github.com/tkratz/pokedex-api/internal/server"
	"github.com/tkratz/pokedex-api/internal/service"
	"github.com/tkratz/pokedex-api/internal/validation"
)

// PokemonHandler serves the pokemon CRUD endpoints. Read endpoints
// return documents with the type names already aggregated in.
type PokemonHandler struct {
	Handler
	service *service.PokemonService
}

// NewPokemonHandler constructs a PokemonHandler.
func NewPokemonHandler(s *server.Server, services *service.Services) *PokemonHandler {
	return &PokemonHandler{
		Handler: NewHandler(s),
		service: services.Pokemon,
	}
}

// ListPokemonsRequest is the (empty) payload for listing all pokemons.
type ListPokemonsRequest struct{}

func (r *ListPokemonsRequest) Validate() error {
	return nil
}

// GetPokemonRequest identifies a pokemon by id.
type GetPokemonRequest struct {
	ID int32 `param:"id" validate:"required,min=1"`
}

func (r *GetPokemonRequest) Validate() error {
	return validation.Struct(r)
}

// GetPokemonByNameRequest identifies a pokemon by name.
type GetPokemonByNameRequest struct {
	Name string `param:"name" validate:"required"`
}

func (r *GetPokemonByNameRequest) Validate() error {
	return validation.Struct(r)
}

// CreatePokemonRequest carries a new pokemon. The id is client
// assigned, matching the seed data numbering. Type holds type ids.
type CreatePokemonRequest struct {
	ID   int32   `json:"id" validate:"required,min=1"`
	Name string  `json:"name" validate:"required"`
	Type []int32 `json:"type" validate:"dive,min=1"`
}

func (r *CreatePokemonRequest) Validate() error {
	return validation.Struct(r)
}

// UpdatePokemonRequest replaces a pokemon's name and type links.
type UpdatePokemonRequest struct {
	ID   int32   `json:"id" validate:"required,min=1"`
	Name string  `json:"name" validate:"required"`
	Type []int32 `json:"type" validate:"dive,min=1"`
}

func (r *UpdatePokemonRequest) Validate() error {
	return validation.Struct(r)
}

// DeletePokemonRequest identifies the pokemon to delete.
type DeletePokemonRequest struct {
	ID int32 `param:"id" validate:"required,min=1"`
}

func (r *DeletePokemonRequest) Validate() error {
	return validation.Struct(r)
}

// List returns all pokemons with their type names.
func (h *PokemonHandler) List(c echo.Context, req *ListPokemonsRequest) ([]aggregate.Document, error) {
	return h.service.ListWithTypes(c.Request().Context())
}

// Get returns a single pokemon by id.
func (h *PokemonHandler) Get(c echo.Context, req *GetPokemonRequest) (aggregate.Document, error) {
	return h.service.Get(c.Request().Context(), req.ID)
}

// GetByName returns a single pokemon by name.
func (h *PokemonHandler) GetByName(c echo.Context, req *GetPokemonByNameRequest) (aggregate.Document, error) {
	return h.service.GetByName(c.Request().Context(), req.Name)
}

// Create stores a new pokemon and its type links.
func (h *PokemonHandler) Create(c echo.Context, req *CreatePokemonRequest) (aggregate.Document, error) {
	return h.service.Create(c.Request().Context(), req.ID, req.Name, req.Type)
}

// Update replaces a pokemon's name and type links.
func (h *PokemonHandler) Update(c echo.Context, req *UpdatePokemonRequest) (aggregate.Document, error) {
	return h.service.Update(c.Request().Context(), req.ID, req.Name, req.Type)
}

// Delete removes a pokemon and its type links.
func (h *PokemonHandler) Delete(c echo.Context, req *DeletePokemonRequest) error {
	return h.service.Delete(c.Request().Context(), req.ID)
}
