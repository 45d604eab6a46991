// Package database executes report queries. Each request opens one
// connection, runs exactly one statement and closes the connection; the
// service keeps no pool and no cross-request state.
package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/farmasys/orcamento-api/internal/apperr"
	"github.com/farmasys/orcamento-api/internal/report"
)

// Client runs SQL against the configured database.
type Client struct {
	url string
}

// New creates a Client for the given connection URL.
func New(url string) *Client {
	return &Client{url: url}
}

// Execute runs one statement and materializes the full result. Column names
// are normalized to upper case so report field lookups see the same keys the
// legacy budget tables use. pgx's extended protocol rejects multi-statement
// strings, so a stacked statement cannot slip past the facade's check.
func (c *Client) Execute(ctx context.Context, sqlText string, args ...any) (*report.QueryResult, error) {
	conn, err := pgx.Connect(ctx, c.url)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "database connection failed", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Database, "query execution failed", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = strings.ToUpper(f.Name)
	}

	res := &report.QueryResult{Columns: cols}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, apperr.Wrap(apperr.Database, "row scan failed", err)
		}
		row := make(report.Row, len(cols))
		for i, v := range values {
			row[cols[i]] = coerceValue(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Database, "query execution failed", err)
	}
	return res, nil
}

// coerceValue flattens driver-specific value types into plain scalars so the
// report layer and the JSON encoder never see pgtype wrappers.
func coerceValue(v any) any {
	if v == nil {
		return nil
	}
	if dv, ok := v.(driver.Valuer); ok {
		inner, err := dv.Value()
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		v = inner
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
