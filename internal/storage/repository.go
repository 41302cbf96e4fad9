package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripscout/tripscout/internal/catalog"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository reads the destination metadata table. The table is seeded by
// migration and editable by ops, so new destinations show up on restart
// without a redeploy.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// ListDestinations returns the full metadata table keyed by IATA code.
func (r *Repository) ListDestinations(ctx context.Context) (map[string]catalog.Info, error) {
	const q = `
		SELECT iata_code, city, country, country_code
		FROM destination_info
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying destination metadata: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]catalog.Info)
	for rows.Next() {
		var code string
		var info catalog.Info
		if err := rows.Scan(&code, &info.City, &info.Country, &info.CountryCode); err != nil {
			return nil, fmt.Errorf("scanning destination metadata row: %w", err)
		}
		entries[code] = info
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination metadata rows: %w", err)
	}

	return entries, nil
}
