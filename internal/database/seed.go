package database

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tkratz/pokedex-api/internal/query"
)

// The bootstrap dataset ships inside the binary: one JSON array of
// type records and one of pokemon records referencing type ids.
//
//go:embed seed/Types.json seed/Pokemons.json
var seedFiles embed.FS

type typeRecord struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type pokemonRecord struct {
	ID   int32   `json:"id"`
	Name string  `json:"name"`
	Type []int32 `json:"type"`
}

// Seeder loads the bootstrap dataset into the database.
type Seeder struct {
	exec query.Executor
	log  zerolog.Logger
}

// NewSeeder builds a Seeder running inserts through exec.
func NewSeeder(exec query.Executor, logger *zerolog.Logger) *Seeder {
	return &Seeder{
		exec: exec,
		log:  *logger,
	}
}

// Seed inserts the embedded types and pokemons. Types go first since
// the link table references them.
func (s *Seeder) Seed(ctx context.Context) error {
	types, pokemons, err := loadSeedData()
	if err != nil {
		return err
	}

	for _, t := range types {
		if _, err := s.exec.Exec(ctx, "insert-type", t.ID, t.Name); err != nil {
			return fmt.Errorf("inserting type %q: %w", t.Name, err)
		}
	}

	for _, p := range pokemons {
		if _, err := s.exec.Exec(ctx, "insert-pokemon", p.ID, p.Name); err != nil {
			return fmt.Errorf("inserting pokemon %q: %w", p.Name, err)
		}
		for _, typeID := range p.Type {
			if _, err := s.exec.Exec(ctx, "insert-poke-type", p.ID, typeID); err != nil {
				return fmt.Errorf("linking pokemon %q to type %d: %w", p.Name, typeID, err)
			}
		}
	}

	s.log.Info().
		Int("types", len(types)).
		Int("pokemons", len(pokemons)).
		Msg("seeded database")

	return nil
}

// Reset clears all rows and reloads the bootstrap dataset. Used by the
// reseed background job.
func (s *Seeder) Reset(ctx context.Context) error {
	for _, name := range []string{"delete-all-poke-types", "delete-all-pokemons", "delete-all-types"} {
		if _, err := s.exec.Exec(ctx, name); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
	}
	return s.Seed(ctx)
}

func loadSeedData() ([]typeRecord, []pokemonRecord, error) {
	typesRaw, err := seedFiles.ReadFile("seed/Types.json")
	if err != nil {
		return nil, nil, fmt.Errorf("reading embedded types: %w", err)
	}
	var types []typeRecord
	if err := json.Unmarshal(typesRaw, &types); err != nil {
		return nil, nil, fmt.Errorf("parsing embedded types: %w", err)
	}

	pokemonsRaw, err := seedFiles.ReadFile("seed/Pokemons.json")
	if err != nil {
		return nil, nil, fmt.Errorf("reading embedded pokemons: %w", err)
	}
	var pokemons []pokemonRecord
	if err := json.Unmarshal(pokemonsRaw, &pokemons); err != nil {
		return nil, nil, fmt.Errorf("parsing embedded pokemons: %w", err)
	}

	return types, pokemons, nil
}
