package sqlerr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkratz/pokedex-api/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"40001", SerializationFailure},
		{"40P01", DeadlockDetected},
		{"08006", ConnectionFailure},
		{"42P01", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapCode(tt.sqlstate), "sqlstate %s", tt.sqlstate)
	}
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "pokemons",
		ConstraintName: "pokemons_pkey",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "POKEMON_ALREADY_EXISTS", httpErr.Code)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		Message:    "insert or update violates foreign key constraint",
		TableName:  "poke_types",
		ColumnName: "id_type",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "POKE_TYPE_NOT_FOUND", httpErr.Code)
}

func TestHandleErrorNoRowsWithTableAnnotation(t *testing.T) {
	err := HandleError(fmt.Errorf("table:pokemons: %w", pgx.ErrNoRows))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Pokemon not found", httpErr.Message)
}

func TestHandleErrorNoRowsWithoutAnnotation(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewGatewayTimeoutError("Listing pokemons timed out")

	err := HandleError(original)

	assert.Same(t, original, err)
}

func TestHandleErrorUnknownErrorBecomesInternal(t *testing.T) {
	err := HandleError(fmt.Errorf("connection reset by peer"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_pokemons_name"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("pokemons_name_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pokemons_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
