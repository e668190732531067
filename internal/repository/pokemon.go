package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tkratz/pokedex-api/internal/aggregate"
	"github.com/tkratz/pokedex-api/internal/query"
)

// PokemonRepository reads and writes pokemon rows and their type
// links. It also implements aggregate.TypeSource through TypesFor.
type PokemonRepository struct {
	exec query.Executor
}

// NewPokemonRepository builds a repository over exec.
func NewPokemonRepository(exec query.Executor) *PokemonRepository {
	return &PokemonRepository{exec: exec}
}

// PokemonRows streams the primary pokemon result set. Close must be
// called once iteration is finished, whether or not it completed.
type PokemonRows struct {
	rows pgx.Rows
}

// Next implements aggregate.ParentSource.
func (r *PokemonRows) Next() (aggregate.Parent, bool, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return aggregate.Parent{}, false, err
		}
		return aggregate.Parent{}, false, nil
	}

	var parent aggregate.Parent
	if err := r.rows.Scan(&parent.ID, &parent.Name); err != nil {
		return aggregate.Parent{}, false, err
	}
	return parent, true, nil
}

// Close releases the underlying rows.
func (r *PokemonRows) Close() {
	r.rows.Close()
}

// List runs the primary query and returns the row stream.
func (r *PokemonRepository) List(ctx context.Context) (*PokemonRows, error) {
	rows, err := r.exec.Query(ctx, "select-all-pokemons")
	if err != nil {
		return nil, err
	}
	return &PokemonRows{rows: rows}, nil
}

// TypesFor runs the secondary lookup for one pokemon and returns its
// type names in the order the statement yields them.
func (r *PokemonRepository) TypesFor(ctx context.Context, pokemonID int32) ([]string, error) {
	rows, err := r.exec.Query(ctx, "select-type-name-by-pokemon-id", pokemonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// GetByID fetches a single pokemon row by primary key.
func (r *PokemonRepository) GetByID(ctx context.Context, id int32) (aggregate.Parent, error) {
	return r.getOne(ctx, "select-pokemon-by-id", id)
}

// GetByName fetches a single pokemon row by name.
func (r *PokemonRepository) GetByName(ctx context.Context, name string) (aggregate.Parent, error) {
	return r.getOne(ctx, "select-pokemon-by-name", name)
}

func (r *PokemonRepository) getOne(ctx context.Context, statement string, arg any) (aggregate.Parent, error) {
	rows, err := r.exec.Query(ctx, statement, arg)
	if err != nil {
		return aggregate.Parent{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return aggregate.Parent{}, err
		}
		// The table prefix lets the error mapper name the entity in
		// the not-found response.
		return aggregate.Parent{}, fmt.Errorf("table:pokemons: %w", pgx.ErrNoRows)
	}

	var parent aggregate.Parent
	if err := rows.Scan(&parent.ID, &parent.Name); err != nil {
		return aggregate.Parent{}, err
	}
	rows.Close()
	return parent, rows.Err()
}

// Create inserts a pokemon row and its type links. There is no
// transaction around the inserts; a failed link insert leaves the
// pokemon row in place and surfaces the constraint error.
func (r *PokemonRepository) Create(ctx context.Context, id int32, name string, typeIDs []int32) error {
	if _, err := r.exec.Exec(ctx, "insert-pokemon", id, name); err != nil {
		return err
	}
	for _, typeID := range typeIDs {
		if _, err := r.exec.Exec(ctx, "insert-poke-type", id, typeID); err != nil {
			return err
		}
	}
	return nil
}

// Update renames a pokemon and replaces its type links.
func (r *PokemonRepository) Update(ctx context.Context, id int32, name string, typeIDs []int32) error {
	affected, err := r.exec.Exec(ctx, "update-pokemon", id, name)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("table:pokemons: %w", pgx.ErrNoRows)
	}

	if _, err := r.exec.Exec(ctx, "delete-poke-types-by-pokemon-id", id); err != nil {
		return err
	}
	for _, typeID := range typeIDs {
		if _, err := r.exec.Exec(ctx, "insert-poke-type", id, typeID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a pokemon row and its type links.
func (r *PokemonRepository) Delete(ctx context.Context, id int32) error {
	if _, err := r.exec.Exec(ctx, "delete-poke-types-by-pokemon-id", id); err != nil {
		return err
	}

	affected, err := r.exec.Exec(ctx, "delete-pokemon", id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("table:pokemons: %w", pgx.ErrNoRows)
	}
	return nil
}
