// Package aggregate builds the combined pokemon/type documents
// returned by the list endpoint.
//
// The primary query yields a stream of pokemon rows. For every row one
// secondary lookup fetches the associated type names, with the lookups
// running concurrently. The aggregation completes exactly once, either
// with one document per pokemon row or with an error; it never returns
// a truncated result as a success.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Parent is a row from the primary pokemon query.
type Parent struct {
	ID   int32
	Name string
}

// Document is one aggregated pokemon with its type names. The wire
// field is "type" (singular) even though it is a list; clients depend
// on that name.
type Document struct {
	ID    int32    `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"type"`
}

// ParentSource is a pull-based stream of primary rows.
//
// Next returns the next row, false when the stream is exhausted, or an
// error when the primary query fails mid-stream.
type ParentSource interface {
	Next() (Parent, bool, error)
}

// TypeSource runs the secondary lookup for one pokemon. It must be
// safe for concurrent calls.
type TypeSource interface {
	TypesFor(ctx context.Context, pokemonID int32) ([]string, error)
}

// Policy decides what a failed type lookup does to the aggregation.
type Policy string

const (
	// PolicyFailFast fails the whole aggregation on the first type
	// lookup error and cancels the remaining lookups.
	PolicyFailFast Policy = "fail_fast"

	// PolicyPartial keeps the affected document with an empty type
	// list and logs a warning. Context cancellation still fails the
	// aggregation.
	PolicyPartial Policy = "partial"
)

// ParsePolicy validates a policy string from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFailFast, PolicyPartial:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown aggregate failure policy %q", s)
	}
}

// Config tunes the aggregation fan-out.
type Config struct {
	// MaxConcurrency caps concurrent type lookups; 0 means unbounded.
	MaxConcurrency int

	// FailurePolicy applies to individual type lookup failures.
	FailurePolicy Policy

	// Logger receives warnings for skipped lookups under PolicyPartial.
	Logger *zerolog.Logger
}

// Aggregator joins the primary pokemon stream with per-row type
// lookups.
type Aggregator struct {
	types  TypeSource
	limit  int
	policy Policy
	logger zerolog.Logger
}

// New builds an Aggregator reading type names from types.
func New(types TypeSource, cfg Config) *Aggregator {
	policy := cfg.FailurePolicy
	if policy == "" {
		policy = PolicyFailFast
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Aggregator{
		types:  types,
		limit:  cfg.MaxConcurrency,
		policy: policy,
		logger: logger,
	}
}

// Aggregate consumes the primary stream, dispatching one type lookup
// per row, and returns one document per row in primary-query order.
//
// The driving loop reads rows one at a time and hands each to a
// goroutine in the errgroup; group Wait is the completion barrier, so
// every dispatched lookup is accounted for before the result is
// produced. A primary stream error fails the aggregation immediately:
// in-flight lookups are cancelled through the group context and their
// results discarded.
func (a *Aggregator) Aggregate(ctx context.Context, parents ParentSource) ([]Document, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	if a.limit > 0 {
		g.SetLimit(a.limit)
	}

	// Each dispatch appends its own document before the goroutine
	// starts; goroutines only ever write through their own pointer, so
	// the slice itself is touched by the driving loop alone.
	var docs []*Document

	for {
		parent, ok, err := parents.Next()
		if err != nil {
			cancel()
			_ = g.Wait()
			return nil, fmt.Errorf("reading pokemon rows: %w", err)
		}
		if !ok {
			break
		}

		doc := &Document{
			ID:    parent.ID,
			Name:  parent.Name,
			Types: []string{},
		}
		docs = append(docs, doc)

		g.Go(func() error {
			names, err := a.types.TypesFor(gctx, doc.ID)
			if err != nil {
				if a.policy == PolicyPartial && !isContextError(err) {
					a.logger.Warn().
						Err(err).
						Int32("pokemon_id", doc.ID).
						Str("pokemon_name", doc.Name).
						Msg("type lookup failed, keeping document without types")
					return nil
				}
				return fmt.Errorf("loading types for pokemon %d: %w", doc.ID, err)
			}
			if names == nil {
				names = []string{}
			}
			doc.Types = names
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Document, len(docs))
	for i, doc := range docs {
		out[i] = *doc
	}
	return out, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// SliceSource adapts an in-memory slice into a ParentSource.
type SliceSource struct {
	rows []Parent
	pos  int
}

// NewSliceSource returns a ParentSource reading from rows.
func NewSliceSource(rows []Parent) *SliceSource {
	return &SliceSource{rows: rows}
}

func (s *SliceSource) Next() (Parent, bool, error) {
	if s.pos >= len(s.rows) {
		return Parent{}, false, nil
	}
	row := s.rows[s.pos]
	s.pos++
	return row, true, nil
}
