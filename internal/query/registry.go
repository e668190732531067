// Package query provides named SQL statement execution.
//
// Statements are bound at build time from an embedded YAML document
// mapping a statement name to a literal SQL string with positional
// parameters. Callers run statements by name through an Executor, so
// repositories never carry inline SQL.
package query

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed statements.yaml
var statementsFile []byte

// Registry holds the named SQL statements.
type Registry struct {
	statements map[string]string
}

type statementsDoc struct {
	Statements map[string]string `yaml:"statements"`
}

// NewRegistry parses the embedded statement document.
func NewRegistry() (*Registry, error) {
	return parseRegistry(statementsFile)
}

func parseRegistry(raw []byte) (*Registry, error) {
	doc := statementsDoc{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing statements document: %w", err)
	}
	if len(doc.Statements) == 0 {
		return nil, fmt.Errorf("statements document contains no statements")
	}
	for name, sql := range doc.Statements {
		if sql == "" {
			return nil, fmt.Errorf("statement %q is empty", name)
		}
	}
	return &Registry{statements: doc.Statements}, nil
}

// SQL returns the statement bound to name.
func (r *Registry) SQL(name string) (string, error) {
	sql, ok := r.statements[name]
	if !ok {
		return "", fmt.Errorf("unknown statement %q", name)
	}
	return sql, nil
}

// Names returns all statement names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.statements))
	for name := range r.statements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
