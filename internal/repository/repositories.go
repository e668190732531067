package repository

import (
	"github.com/tkratz/pokedex-api/internal/server"
)

// Repositories is a container for all repository instances, wired once
// from the application container and passed to the service layer.
type Repositories struct {
	Pokemon *PokemonRepository
	Type    *TypeRepository
}

// NewRepositories constructs the repository container from the shared
// named-statement executor.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Pokemon: NewPokemonRepository(s.Executor),
		Type:    NewTypeRepository(s.Executor),
	}
}
