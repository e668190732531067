package service

import (
	"context"

	"github.com/tkratz/pokedex-api/internal/repository"
	"github.com/tkratz/pokedex-api/internal/server"
)

// TypeService exposes pokemon type operations to the HTTP layer.
type TypeService struct {
	repo *repository.TypeRepository
}

// NewTypeService wires the type repository.
func NewTypeService(s *server.Server, repos *repository.Repositories) *TypeService {
	return &TypeService{repo: repos.Type}
}

// List returns all pokemon types.
func (svc *TypeService) List(ctx context.Context) ([]repository.TypeRecord, error) {
	types, err := svc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []repository.TypeRecord{}
	}
	return types, nil
}
