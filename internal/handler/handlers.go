package handler

import (
	"github.com/tkratz/pokedex-api/internal/server"
	"github.com/tkratz/pokedex-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup passes one object around instead of many.
type Handlers struct {
	Pokemon *PokemonHandler
	Type    *TypeHandler
	Health  *HealthHandler
	System  *SystemHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Pokemon: NewPokemonHandler(s, services),
		Type:    NewTypeHandler(s, services),
		Health:  NewHealthHandler(s),
		System:  NewSystemHandler(s, services),
	}
}
