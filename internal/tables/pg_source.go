package tables

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the slice of *pgxpool.Pool the Postgres source needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgSource reads the same tables straight from Postgres, aggregated into a
// JSON array so rows decode exactly like the HTTP envelope.
type PgSource struct {
	db Querier
}

func NewPgSource(db Querier) *PgSource {
	return &PgSource{db: db}
}

func (s *PgSource) Rows(ctx context.Context, table string) ([]byte, error) {
	var raw []byte
	if err := s.db.QueryRow(ctx, tableQuery(table)).Scan(&raw); err != nil {
		return nil, fmt.Errorf("query table %s: %w", table, err)
	}
	return raw, nil
}

func tableQuery(table string) string {
	return fmt.Sprintf(`SELECT COALESCE(json_agg(t), '[]'::json) FROM %s t`, pgx.Identifier{table}.Sanitize())
}
