package chartrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mingyue/astro-insights/internal/domain/natal"
)

// PostgresRepository implements natal.Repository using pgx.
//
// Expected schema:
//
//	CREATE TABLE natal_charts (
//	    id          text PRIMARY KEY,
//	    person_name text NOT NULL,
//	    birth_date  text NOT NULL,
//	    birth_time  text NOT NULL,
//	    birth_place text NOT NULL,
//	    latitude    double precision NOT NULL,
//	    longitude   double precision NOT NULL,
//	    chart       jsonb NOT NULL,
//	    created_at  timestamptz NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a computed chart. Chart IDs are deterministic per birth
// input, so replays of the same input are idempotent.
func (r *PostgresRepository) Insert(ctx context.Context, record natal.ChartRecord) error {
	chart, err := json.Marshal(record.Chart)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO natal_charts (id, person_name, birth_date, birth_time, birth_place, latitude, longitude, chart, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`, record.ID, record.Name, record.BirthDate, record.BirthTime, record.BirthPlace,
		record.Latitude, record.Longitude, chart, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chart: %w", err)
	}
	return nil
}

// GetByID fetches a persisted chart.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (natal.ChartRecord, bool, error) {
	var (
		record natal.ChartRecord
		chart  []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, person_name, birth_date, birth_time, birth_place, latitude, longitude, chart, created_at
		FROM natal_charts
		WHERE id = $1
	`, id).Scan(&record.ID, &record.Name, &record.BirthDate, &record.BirthTime, &record.BirthPlace,
		&record.Latitude, &record.Longitude, &chart, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return natal.ChartRecord{}, false, nil
		}
		return natal.ChartRecord{}, false, fmt.Errorf("select chart: %w", err)
	}
	if err := json.Unmarshal(chart, &record.Chart); err != nil {
		return natal.ChartRecord{}, false, fmt.Errorf("decode chart: %w", err)
	}
	return record, true, nil
}

var _ natal.Repository = (*PostgresRepository)(nil)
