package service

import (
	"github.com/tkratz/pokedex-api/internal/lib/job"
	"github.com/tkratz/pokedex-api/internal/repository"
	"github.com/tkratz/pokedex-api/internal/server"
)

// Services is a container that groups all service instances.
type Services struct {
	Pokemon *PokemonService
	Type    *TypeService
	Job     *job.JobService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	pokemonService, err := NewPokemonService(s, repos)
	if err != nil {
		return nil, err
	}

	return &Services{
		Pokemon: pokemonService,
		Type:    NewTypeService(s, repos),
		Job:     s.Job,
	}, nil
}
