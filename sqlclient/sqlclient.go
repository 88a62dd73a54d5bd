// Package sqlclient adapts a database/sql connection to the adapter's wire
// contract. It works with any driver that supports `:name` placeholders and
// RETURNING clauses, such as SQLite and libSQL.
package sqlclient

import (
	"context"
	"database/sql"

	authturso "github.com/fahim-kamal/auth-turso"
)

// DB is the subset of *sql.DB the client needs. Everything runs through
// QueryContext so statements with RETURNING clauses yield their rows.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Client struct {
	db DB
}

// Wrap adapts db to the authturso.Client interface.
func Wrap(db DB) *Client {
	return &Client{db: db}
}

func (c *Client) Execute(ctx context.Context, stmt authturso.Stmt) (*authturso.ResultSet, error) {
	args := stmt.Args
	if len(stmt.NamedArgs) > 0 {
		args = make([]any, 0, len(stmt.NamedArgs))
		for name, value := range stmt.NamedArgs {
			args = append(args, sql.Named(name, value))
		}
	}

	rows, err := c.db.QueryContext(ctx, stmt.SQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &authturso.ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}
