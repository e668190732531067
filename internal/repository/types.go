package repository

import (
	"context"

	"github.com/tkratz/pokedex-api/internal/query"
)

// TypeRecord is one pokemon type row.
type TypeRecord struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// TypeRepository reads pokemon type rows.
type TypeRepository struct {
	exec query.Executor
}

// NewTypeRepository builds a repository over exec.
func NewTypeRepository(exec query.Executor) *TypeRepository {
	return &TypeRepository{exec: exec}
}

// List returns all pokemon types ordered by id.
func (r *TypeRepository) List(ctx context.Context) ([]TypeRecord, error) {
	rows, err := r.exec.Query(ctx, "select-all-types")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []TypeRecord
	for rows.Next() {
		var t TypeRecord
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}
