package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tkratz/pokedex-api/internal/query"
)

// Schema DDL runs through the same named-statement executor as every
// other query. Creation is idempotent (IF NOT EXISTS), teardown drops
// the link table first so foreign keys do not block the drop.

var createStatements = []string{
	"create-types",
	"create-pokemons",
	"create-poke-types",
}

var dropStatements = []string{
	"drop-poke-types",
	"drop-pokemons",
	"drop-types",
}

// InitSchema creates the pokemon tables when they do not exist yet.
func InitSchema(ctx context.Context, exec query.Executor, logger *zerolog.Logger) error {
	for _, name := range createStatements {
		if _, err := exec.Exec(ctx, name); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
	}
	logger.Info().Msg("database schema created")
	return nil
}

// DropSchema removes the pokemon tables. Called on shutdown to mirror
// the throwaway nature of the demo dataset.
func DropSchema(ctx context.Context, exec query.Executor, logger *zerolog.Logger) error {
	for _, name := range dropStatements {
		if _, err := exec.Exec(ctx, name); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
	}
	logger.Info().Msg("database schema deleted")
	return nil
}
