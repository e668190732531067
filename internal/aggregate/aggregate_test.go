package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTypeSource implements TypeSource with a configurable function.
type stubTypeSource struct {
	typesFor func(ctx context.Context, pokemonID int32) ([]string, error)
}

func (s *stubTypeSource) TypesFor(ctx context.Context, pokemonID int32) ([]string, error) {
	return s.typesFor(ctx, pokemonID)
}

// failingSource yields rows and then an error, simulating a primary
// query failing mid-stream.
type failingSource struct {
	rows []Parent
	pos  int
	err  error
}

func (s *failingSource) Next() (Parent, bool, error) {
	if s.pos >= len(s.rows) {
		return Parent{}, false, s.err
	}
	row := s.rows[s.pos]
	s.pos++
	return row, true, nil
}

func makeParents(n int) []Parent {
	parents := make([]Parent, n)
	for i := 0; i < n; i++ {
		parents[i] = Parent{ID: int32(i + 1), Name: fmt.Sprintf("pokemon-%d", i+1)}
	}
	return parents
}

func TestAggregateEmptyPrimary(t *testing.T) {
	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			t.Fatal("no type lookup expected for an empty primary stream")
			return nil, nil
		},
	}, Config{})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource(nil))
	require.NoError(t, err)
	require.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestAggregateZeroTypesPerParent(t *testing.T) {
	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			return nil, nil
		},
	}, Config{})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(7)))
	require.NoError(t, err)
	require.Len(t, docs, 7)
	for _, doc := range docs {
		require.NotNil(t, doc.Types)
		assert.Empty(t, doc.Types)
	}
}

func TestAggregateSingleParentWithTypes(t *testing.T) {
	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			require.Equal(t, int32(1), pokemonID)
			return []string{"normal", "flying"}, nil
		},
	}, Config{})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource([]Parent{{ID: 1, Name: "Pidgey"}}))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, Document{ID: 1, Name: "Pidgey", Types: []string{"normal", "flying"}}, docs[0])
}

func TestAggregatePreservesPrimaryOrder(t *testing.T) {
	const n = 20

	// Earlier rows finish last, so completion order is roughly the
	// reverse of dispatch order.
	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			time.Sleep(time.Duration(n-pokemonID) * time.Millisecond)
			return []string{fmt.Sprintf("type-%d", pokemonID)}, nil
		},
	}, Config{})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(n)))
	require.NoError(t, err)
	require.Len(t, docs, n)
	for i, doc := range docs {
		assert.Equal(t, int32(i+1), doc.ID)
		assert.Equal(t, []string{fmt.Sprintf("type-%d", i+1)}, doc.Types)
	}
}

func TestAggregatePrimaryStreamError(t *testing.T) {
	var dispatched atomic.Int32

	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			dispatched.Add(1)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}, Config{})

	source := &failingSource{
		rows: makeParents(2),
		err:  errors.New("connection reset"),
	}

	docs, err := agg.Aggregate(context.Background(), source)
	require.Error(t, err)
	assert.ErrorContains(t, err, "reading pokemon rows")
	assert.Nil(t, docs, "a failed aggregation must not return a partial array")
	assert.LessOrEqual(t, dispatched.Load(), int32(2))
}

func TestAggregateFailFastOnTypeLookupError(t *testing.T) {
	lookupErr := errors.New("relation poke_types does not exist")

	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			if pokemonID == 3 {
				return nil, lookupErr
			}
			return []string{"normal"}, nil
		},
	}, Config{FailurePolicy: PolicyFailFast})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(5)))
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	assert.Nil(t, docs)
}

func TestAggregatePartialKeepsDocumentOnLookupError(t *testing.T) {
	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			if pokemonID == 2 {
				return nil, errors.New("lookup failed")
			}
			return []string{"water"}, nil
		},
	}, Config{FailurePolicy: PolicyPartial})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(3)))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"water"}, docs[0].Types)
	assert.Empty(t, docs[1].Types)
	assert.Equal(t, []string{"water"}, docs[2].Types)
}

func TestAggregatePartialStillFailsOnContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			cancel()
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}, Config{FailurePolicy: PolicyPartial})

	docs, err := agg.Aggregate(ctx, NewSliceSource(makeParents(4)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, docs)
}

func TestAggregateRespectsConcurrencyLimit(t *testing.T) {
	const limit = 2

	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0

	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil, nil
		},
	}, Config{MaxConcurrency: limit})

	docs, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(10)))
	require.NoError(t, err)
	require.Len(t, docs, 10)
	assert.LessOrEqual(t, maxInFlight, limit)
}

func TestAggregateIdempotentForFixedSource(t *testing.T) {
	agg := New(&stubTypeSource{
		typesFor: func(ctx context.Context, pokemonID int32) ([]string, error) {
			return []string{"grass", "poison"}, nil
		},
	}, Config{})

	first, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(6)))
	require.NoError(t, err)

	second, err := agg.Aggregate(context.Background(), NewSliceSource(makeParents(6)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParsePolicy(t *testing.T) {
	policy, err := ParsePolicy("fail_fast")
	require.NoError(t, err)
	assert.Equal(t, PolicyFailFast, policy)

	policy, err = ParsePolicy("partial")
	require.NoError(t, err)
	assert.Equal(t, PolicyPartial, policy)

	_, err = ParsePolicy("retry")
	require.Error(t, err)
}
