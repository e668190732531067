package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingExecutor captures statement invocations in order.
type recordingExecutor struct {
	calls []string
}

func (r *recordingExecutor) Query(ctx context.Context, name string, args ...any) (pgx.Rows, error) {
	r.calls = append(r.calls, name)
	return nil, nil
}

func (r *recordingExecutor) Exec(ctx context.Context, name string, args ...any) (int64, error) {
	r.calls = append(r.calls, name)
	return 1, nil
}

func TestLoadSeedDataIsConsistent(t *testing.T) {
	types, pokemons, err := loadSeedData()
	require.NoError(t, err)

	require.NotEmpty(t, types)
	require.NotEmpty(t, pokemons)

	knownTypes := make(map[int32]bool, len(types))
	for _, tr := range types {
		assert.Positive(t, tr.ID)
		assert.NotEmpty(t, tr.Name)
		assert.False(t, knownTypes[tr.ID], "duplicate type id %d", tr.ID)
		knownTypes[tr.ID] = true
	}

	// Every type id a pokemon references must exist, otherwise seeding
	// would hit a foreign key violation.
	for _, p := range pokemons {
		assert.Positive(t, p.ID)
		assert.NotEmpty(t, p.Name)
		for _, typeID := range p.Type {
			assert.True(t, knownTypes[typeID], "pokemon %q references unknown type %d", p.Name, typeID)
		}
	}
}

func TestSeedInsertsTypesBeforePokemons(t *testing.T) {
	exec := &recordingExecutor{}
	logger := zerolog.Nop()

	seeder := NewSeeder(exec, &logger)
	require.NoError(t, seeder.Seed(context.Background()))

	require.NotEmpty(t, exec.calls)

	firstPokemon := -1
	lastType := -1
	for i, name := range exec.calls {
		switch name {
		case "insert-type":
			lastType = i
		case "insert-pokemon":
			if firstPokemon == -1 {
				firstPokemon = i
			}
		}
	}

	require.GreaterOrEqual(t, lastType, 0)
	require.GreaterOrEqual(t, firstPokemon, 0)
	assert.Less(t, lastType, firstPokemon)
}

func TestResetClearsRowsBeforeSeeding(t *testing.T) {
	exec := &recordingExecutor{}
	logger := zerolog.Nop()

	seeder := NewSeeder(exec, &logger)
	require.NoError(t, seeder.Reset(context.Background()))

	require.GreaterOrEqual(t, len(exec.calls), 4)
	assert.Equal(t, []string{
		"delete-all-poke-types",
		"delete-all-pokemons",
		"delete-all-types",
	}, exec.calls[:3])
	assert.Equal(t, "insert-type", exec.calls[3])
}
