package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tkratz/pokedex-api/internal/aggregate"
	"github.com/tkratz/pokedex-api/internal/errs"
	"github.com/tkratz/pokedex-api/internal/repository"
	"github.com/tkratz/pokedex-api/internal/server"
)

// PokemonService exposes pokemon operations to the HTTP layer.
type PokemonService struct {
	repo       *repository.PokemonRepository
	aggregator *aggregate.Aggregator
	timeout    time.Duration
	log        zerolog.Logger
}

// NewPokemonService wires the repository and the aggregator from
// application config.
func NewPokemonService(s *server.Server, repos *repository.Repositories) (*PokemonService, error) {
	policy, err := aggregate.ParsePolicy(s.Config.Aggregate.FailurePolicy)
	if err != nil {
		return nil, err
	}

	limit := s.Config.Aggregate.MaxConcurrency
	if limit < 0 {
		// Explicitly unbounded: one in-flight lookup per pokemon row.
		limit = 0
	}

	aggregator := aggregate.New(repos.Pokemon, aggregate.Config{
		MaxConcurrency: limit,
		FailurePolicy:  policy,
		Logger:         s.Logger,
	})

	return &PokemonService{
		repo:       repos.Pokemon,
		aggregator: aggregator,
		timeout:    s.Config.Aggregate.Timeout,
		log:        *s.Logger,
	}, nil
}

// ListWithTypes runs the primary pokemon query and aggregates each row
// with its type names. The whole aggregation runs under the configured
// timeout; on expiry the caller gets a gateway-timeout error, never a
// truncated array.
func (svc *PokemonService) ListWithTypes(ctx context.Context) ([]aggregate.Document, error) {
	runCtx, cancel := context.WithTimeout(ctx, svc.timeout)
	defer cancel()

	rows, err := svc.repo.List(runCtx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs, err := svc.aggregator.Aggregate(runCtx, rows)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			svc.log.Error().Dur("timeout", svc.timeout).Msg("pokemon aggregation timed out")
			return nil, errs.NewGatewayTimeoutError("Listing pokemons timed out")
		}
		return nil, err
	}
	return docs, nil
}

// Get returns one pokemon with its type names.
func (svc *PokemonService) Get(ctx context.Context, id int32) (aggregate.Document, error) {
	parent, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return aggregate.Document{}, err
	}
	return svc.withTypes(ctx, parent)
}

// GetByName returns one pokemon, looked up by name, with its type
// names.
func (svc *PokemonService) GetByName(ctx context.Context, name string) (aggregate.Document, error) {
	parent, err := svc.repo.GetByName(ctx, name)
	if err != nil {
		return aggregate.Document{}, err
	}
	return svc.withTypes(ctx, parent)
}

func (svc *PokemonService) withTypes(ctx context.Context, parent aggregate.Parent) (aggregate.Document, error) {
	names, err := svc.repo.TypesFor(ctx, parent.ID)
	if err != nil {
		return aggregate.Document{}, err
	}
	if names == nil {
		names = []string{}
	}
	return aggregate.Document{ID: parent.ID, Name: parent.Name, Types: names}, nil
}

// Create inserts a new pokemon with its type links and returns the
// stored document.
func (svc *PokemonService) Create(ctx context.Context, id int32, name string, typeIDs []int32) (aggregate.Document, error) {
	if err := svc.repo.Create(ctx, id, name, typeIDs); err != nil {
		return aggregate.Document{}, err
	}
	return svc.Get(ctx, id)
}

// Update renames a pokemon and replaces its type links, returning the
// stored document.
func (svc *PokemonService) Update(ctx context.Context, id int32, name string, typeIDs []int32) (aggregate.Document, error) {
	if err := svc.repo.Update(ctx, id, name, typeIDs); err != nil {
		return aggregate.Document{}, err
	}
	return svc.Get(ctx, id)
}

// Delete removes a pokemon and its type links.
func (svc *PokemonService) Delete(ctx context.Context, id int32) error {
	return svc.repo.Delete(ctx, id)
}
