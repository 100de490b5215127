package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxRateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new repository for exchange rate data.
func NewRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{pool: pool}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// GetRateTable retrieves all rates quoted against the reporting currency.
// A currency with no stored rate is simply absent from the table; the
// normalizer decides how to degrade.
func (r *PgxRateRepository) GetRateTable(ctx context.Context, reportingCurrency string) (domain.RateTable, error) {
	query := `
		SELECT currency_code, units_per_base
		FROM fx_rates
		WHERE base_currency = $1;
	`
	rows, err := r.pool.Query(ctx, query, reportingCurrency)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to query rate table for %s: %w", reportingCurrency, err)
	}
	defer rows.Close()

	table := domain.RateTable{
		ReportingCurrency: reportingCurrency,
		Rates:             make(map[string]decimal.Decimal),
	}
	for rows.Next() {
		var code string
		var rate decimal.Decimal
		if err := rows.Scan(&code, &rate); err != nil {
			return domain.RateTable{}, fmt.Errorf("failed to scan rate row: %w", err)
		}
		table.Rates[code] = rate
	}
	if err := rows.Err(); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to read rate table: %w", err)
	}
	return table, nil
}

// UpsertRate persists a rate, replacing any existing rate for the pair.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, rate domain.FxRate) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO fx_rates (currency_code, base_currency, units_per_base, date_effective, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency_code, base_currency) DO UPDATE SET
			units_per_base = EXCLUDED.units_per_base,
			date_effective = EXCLUDED.date_effective,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.pool.Exec(ctx, query,
		rate.CurrencyCode,
		rate.BaseCurrency,
		rate.UnitsPerBase,
		rate.DateEffective,
		now,
		rate.CreatedBy,
		now,
		rate.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate %s/%s: %w", rate.CurrencyCode, rate.BaseCurrency, err)
	}
	return nil
}
