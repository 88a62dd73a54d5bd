package authturso

import "context"

// Stmt is a single parameterized statement. Args and NamedArgs are mutually
// exclusive: positional statements use `?` placeholders, named statements use
// `:name` placeholders. Only scalar values (strings, integers, nil and ISO
// timestamp text) are ever bound; native time values are serialized before
// they reach the client.
type Stmt struct {
	SQL       string
	Args      []any
	NamedArgs map[string]any
}

// ResultSet is the raw tabular result of a statement: an ordered column-name
// list and zero or more rows whose values are ordered the same way.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Client executes parameterized SQL against the backing store. Connection
// management, retries and timeouts belong to the implementation; the adapter
// issues exactly one statement per call and propagates failures unchanged.
type Client interface {
	Execute(ctx context.Context, stmt Stmt) (*ResultSet, error)
}
