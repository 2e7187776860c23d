package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"relocation-estimator/models"
	"relocation-estimator/utils"
)

const upsertColumns = 10

// PostgresWriter persists evaluated addresses to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, pinging it under the
// given retry policy, runs schema migrations and returns a ready-to-use
// PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS address_evaluations (
			id                     TEXT          PRIMARY KEY,
			sequence               INTEGER       NOT NULL DEFAULT 0,
			name                   TEXT          NOT NULL DEFAULT '',
			ownership              TEXT          NOT NULL DEFAULT '',
			housing_cost_monthly   NUMERIC(12,2),
			car_cost_monthly       NUMERIC(12,2),
			total_cost_monthly     NUMERIC(12,2),
			monthly_cost           JSONB,
			accessibility_map      JSONB,
			routing_time_distances JSONB,
			evaluated_at           TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_address_evaluations_total ON address_evaluations(total_cost_monthly);
	`)
	return err
}

// Write upserts the addresses in batches, keyed by address id.
func (pw *PostgresWriter) Write(addresses []*models.Address) error {
	const batchSize = 50
	for i := 0; i < len(addresses); i += batchSize {
		end := i + batchSize
		if end > len(addresses) {
			end = len(addresses)
		}
		query, args, err := buildUpsert(addresses[i:end])
		if err != nil {
			return err
		}
		if _, err := pw.db.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: upsert: %w", err)
		}
	}
	return nil
}

func buildUpsert(batch []*models.Address) (string, []any, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*upsertColumns)

	for idx, a := range batch {
		placeholders := make([]string, upsertColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", idx*upsertColumns+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		monthlyCost, err := jsonb(a.MonthlyCost, a.MonthlyCost == nil)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: encode monthly cost of %s: %w", a.ID, err)
		}
		accessibility, err := jsonb(a.AccessibilityMap, a.AccessibilityMap == nil)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: encode accessibility map of %s: %w", a.ID, err)
		}
		routing, err := jsonb(a.RoutingTimeDistances, a.RoutingTimeDistances == nil)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: encode routing of %s: %w", a.ID, err)
		}

		r := flatten(a)
		valueArgs = append(valueArgs,
			a.ID, a.Sequence, a.DisplayName(), a.OwnershipLabel(),
			r.housing, r.car, r.total,
			monthlyCost, accessibility, routing)
	}

	query := fmt.Sprintf(`
		INSERT INTO address_evaluations (id, sequence, name, ownership,
			housing_cost_monthly, car_cost_monthly, total_cost_monthly,
			monthly_cost, accessibility_map, routing_time_distances)
		VALUES %s
		ON CONFLICT (id) DO UPDATE SET
			sequence = EXCLUDED.sequence,
			name = EXCLUDED.name,
			ownership = EXCLUDED.ownership,
			housing_cost_monthly = EXCLUDED.housing_cost_monthly,
			car_cost_monthly = EXCLUDED.car_cost_monthly,
			total_cost_monthly = EXCLUDED.total_cost_monthly,
			monthly_cost = EXCLUDED.monthly_cost,
			accessibility_map = EXCLUDED.accessibility_map,
			routing_time_distances = EXCLUDED.routing_time_distances,
			evaluated_at = NOW()
	`, strings.Join(valueStrings, ","))

	return query, valueArgs, nil
}

// jsonb encodes v for a JSONB column, or SQL NULL when null is set.
func jsonb(v any, null bool) (any, error) {
	if null {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves the stored evaluations ordered by sequence. Tenure
// details are not stored, so the returned addresses carry outputs only.
func (pw *PostgresWriter) FetchAll(ctx context.Context) ([]*models.Address, error) {
	rows, err := pw.db.QueryContext(ctx, `
		SELECT id, sequence, name, monthly_cost, accessibility_map, routing_time_distances
		FROM address_evaluations
		ORDER BY sequence, id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		a := &models.Address{}
		var monthlyCost, accessibility, routing []byte
		if err := rows.Scan(&a.ID, &a.Sequence, &a.Name, &monthlyCost, &accessibility, &routing); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if err := decodeJSONB(monthlyCost, &a.MonthlyCost); err != nil {
			return nil, fmt.Errorf("postgres: decode monthly cost of %s: %w", a.ID, err)
		}
		if err := decodeJSONB(accessibility, &a.AccessibilityMap); err != nil {
			return nil, fmt.Errorf("postgres: decode accessibility map of %s: %w", a.ID, err)
		}
		if err := decodeJSONB(routing, &a.RoutingTimeDistances); err != nil {
			return nil, fmt.Errorf("postgres: decode routing of %s: %w", a.ID, err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func decodeJSONB(raw []byte, out any) error {
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
