package repositories

import (
	"context"

	"github.com/novira-app/novira-backend/internal/core/domain"
)

// RateReader defines read operations for live exchange rate data
type RateReader interface {
	// GetRateTable retrieves the current rate table relative to the given
	// reporting currency.
	GetRateTable(ctx context.Context, reportingCurrency string) (domain.RateTable, error)
}

// RateWriter defines write operations for live exchange rate data
type RateWriter interface {
	// UpsertRate persists a new rate for a currency pair, replacing any
	// existing rate for the same pair.
	UpsertRate(ctx context.Context, rate domain.FxRate) error
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
