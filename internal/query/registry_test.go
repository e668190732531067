package query

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryLoadsEmbeddedStatements(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	// Every statement the repositories and schema bootstrap run by name
	// must be present in the embedded document.
	expected := []string{
		"create-types",
		"create-pokemons",
		"create-poke-types",
		"drop-types",
		"drop-pokemons",
		"drop-poke-types",
		"delete-all-types",
		"delete-all-pokemons",
		"delete-all-poke-types",
		"insert-type",
		"insert-pokemon",
		"insert-poke-type",
		"select-all-types",
		"select-all-pokemons",
		"select-pokemon-by-id",
		"select-pokemon-by-name",
		"select-type-name-by-pokemon-id",
		"update-pokemon",
		"delete-pokemon",
		"delete-poke-types-by-pokemon-id",
	}

	for _, name := range expected {
		sql, err := registry.SQL(name)
		require.NoError(t, err, "statement %q", name)
		assert.NotEmpty(t, sql)
	}
}

func TestRegistryUnknownStatement(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	_, err = registry.SQL("select-unicorns")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select-unicorns")
}

func TestRegistryNamesSorted(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	names := registry.Names()
	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestParseRegistryRejectsEmptyDocument(t *testing.T) {
	_, err := parseRegistry([]byte("statements: {}\n"))
	require.Error(t, err)
}

func TestParseRegistryRejectsEmptyStatement(t *testing.T) {
	_, err := parseRegistry([]byte("statements:\n  select-nothing: \"\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select-nothing")
}
